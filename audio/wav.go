package audio

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// wavHeader holds the parsed RIFF/WAV format fields.
type wavHeader struct {
	sampleRate    uint32
	bitsPerSample uint16
	numChannels   uint16
}

// ReadWAV decodes a 16-bit PCM WAV stream. Multi-channel input is downmixed
// to mono by averaging; the sample rate is preserved (callers resample).
func ReadWAV(r io.ReadSeeker) (Waveform, error) {
	var hdr wavHeader

	var riffID [4]byte
	if err := binary.Read(r, binary.LittleEndian, &riffID); err != nil {
		return Waveform{}, errors.Wrap(err, "read RIFF ID")
	}
	if string(riffID[:]) != "RIFF" {
		return Waveform{}, errors.New("not a RIFF file")
	}
	var fileSize uint32
	if err := binary.Read(r, binary.LittleEndian, &fileSize); err != nil {
		return Waveform{}, errors.Wrap(err, "read file size")
	}
	var waveID [4]byte
	if err := binary.Read(r, binary.LittleEndian, &waveID); err != nil {
		return Waveform{}, errors.Wrap(err, "read WAVE ID")
	}
	if string(waveID[:]) != "WAVE" {
		return Waveform{}, errors.New("not a WAVE file")
	}

	var fmtFound bool
	for {
		var chunkID [4]byte
		if err := binary.Read(r, binary.LittleEndian, &chunkID); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return Waveform{}, errors.Wrap(err, "read chunk ID")
		}
		var chunkSize uint32
		if err := binary.Read(r, binary.LittleEndian, &chunkSize); err != nil {
			return Waveform{}, errors.Wrap(err, "read chunk size")
		}

		switch string(chunkID[:]) {
		case "fmt ":
			if err := readFmtChunk(r, chunkSize, &hdr); err != nil {
				return Waveform{}, err
			}
			fmtFound = true
		case "data":
			if !fmtFound {
				return Waveform{}, errors.New("data chunk before fmt chunk")
			}
			samples, err := readDataChunk(r, chunkSize, hdr)
			if err != nil {
				return Waveform{}, err
			}
			return Waveform{Samples: samples, Rate: int(hdr.sampleRate)}, nil
		default:
			skip := int64(chunkSize)
			if chunkSize%2 != 0 {
				skip++ // chunks are word aligned
			}
			if _, err := r.Seek(skip, io.SeekCurrent); err != nil {
				return Waveform{}, errors.Wrapf(err, "skip chunk %q", chunkID)
			}
		}
	}

	return Waveform{}, errors.New("missing data chunk")
}

// ReadWAVFile is a convenience wrapper that opens a file path.
func ReadWAVFile(path string) (Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return Waveform{}, errors.Wrap(err, "open wav")
	}
	defer f.Close()
	return ReadWAV(f)
}

func readFmtChunk(r io.ReadSeeker, size uint32, h *wavHeader) error {
	var audioFormat uint16
	if err := binary.Read(r, binary.LittleEndian, &audioFormat); err != nil {
		return errors.Wrap(err, "read audio format")
	}
	if audioFormat != 1 {
		return errors.Errorf("unsupported audio format %d (only PCM=1 supported)", audioFormat)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.numChannels); err != nil {
		return errors.Wrap(err, "read num channels")
	}
	if h.numChannels == 0 {
		return errors.New("zero channel count")
	}
	if err := binary.Read(r, binary.LittleEndian, &h.sampleRate); err != nil {
		return errors.Wrap(err, "read sample rate")
	}
	if h.sampleRate == 0 {
		return errors.New("zero sample rate")
	}
	// Skip byteRate (4 bytes) and blockAlign (2 bytes).
	if _, err := r.Seek(6, io.SeekCurrent); err != nil {
		return errors.Wrap(err, "skip byte rate / block align")
	}
	if err := binary.Read(r, binary.LittleEndian, &h.bitsPerSample); err != nil {
		return errors.Wrap(err, "read bits per sample")
	}
	if h.bitsPerSample != 16 {
		return errors.Errorf("unsupported bits per sample %d (only 16 supported)", h.bitsPerSample)
	}
	consumed := uint32(16)
	if size > consumed {
		if _, err := r.Seek(int64(size-consumed), io.SeekCurrent); err != nil {
			return errors.Wrap(err, "skip extra fmt bytes")
		}
	}
	return nil
}

func readDataChunk(r io.Reader, size uint32, h wavHeader) ([]float64, error) {
	bytesPerSample := int(h.bitsPerSample) / 8
	nc := int(h.numChannels)
	numSamples := int(size) / bytesPerSample / nc

	raw := make([]int16, numSamples*nc)
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return nil, errors.Wrap(err, "read PCM data")
	}

	samples := make([]float64, numSamples)
	for i := 0; i < numSamples; i++ {
		sum := 0.0
		for c := 0; c < nc; c++ {
			sum += float64(raw[i*nc+c])
		}
		samples[i] = sum / float64(nc) / 32768.0
	}
	return samples, nil
}

// WriteWAV encodes the waveform as 16-bit PCM mono WAV.
func WriteWAV(w io.Writer, wf Waveform) error {
	n := len(wf.Samples)
	dataSize := uint32(n * 2)

	if _, err := w.Write([]byte("RIFF")); err != nil {
		return errors.Wrap(err, "write RIFF ID")
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(36)+dataSize); err != nil {
		return errors.Wrap(err, "write file size")
	}
	if _, err := w.Write([]byte("WAVEfmt ")); err != nil {
		return errors.Wrap(err, "write WAVE/fmt IDs")
	}
	rate := uint32(wf.Rate)
	hdr := []any{
		uint32(16), // fmt chunk size
		uint16(1),  // PCM
		uint16(1),  // mono
		rate,
		rate * 2,   // byte rate
		uint16(2),  // block align
		uint16(16), // bits per sample
	}
	for _, v := range hdr {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return errors.Wrap(err, "write fmt chunk")
		}
	}
	if _, err := w.Write([]byte("data")); err != nil {
		return errors.Wrap(err, "write data ID")
	}
	if err := binary.Write(w, binary.LittleEndian, dataSize); err != nil {
		return errors.Wrap(err, "write data size")
	}
	raw := make([]int16, n)
	for i, s := range wf.Samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		raw[i] = int16(s * 32767.0)
	}
	if err := binary.Write(w, binary.LittleEndian, raw); err != nil {
		return errors.Wrap(err, "write PCM data")
	}
	return nil
}

// WriteWAVFile writes the waveform to a WAV file at path.
func WriteWAVFile(path string, wf Waveform) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create wav")
	}
	if err := WriteWAV(f, wf); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close wav")
	}
	return nil
}
