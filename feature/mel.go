package feature

import "math"

// filterbank is a triangular mel-spaced filterbank over FFT power bins.
type filterbank struct {
	filters [][]float64 // [numFilters][fftSize/2+1]
}

func newFilterbank(numFilters, fftSize, sampleRate int, lowFreq, highFreq float64) *filterbank {
	nBins := fftSize/2 + 1
	lowMel := hzToMel(lowFreq)
	highMel := hzToMel(highFreq)

	// numFilters+2 equally spaced points on the mel scale -> FFT bin indices
	bin := make([]int, numFilters+2)
	step := (highMel - lowMel) / float64(numFilters+1)
	for i := range bin {
		hz := melToHz(lowMel + float64(i)*step)
		bin[i] = int(math.Floor(hz * float64(fftSize+1) / float64(sampleRate)))
	}

	filters := make([][]float64, numFilters)
	for i := range filters {
		filters[i] = make([]float64, nBins)
		left, center, right := bin[i], bin[i+1], bin[i+2]
		for j := left; j < center && j < nBins; j++ {
			if center != left {
				filters[i][j] = float64(j-left) / float64(center-left)
			}
		}
		for j := center; j <= right && j < nBins; j++ {
			if right != center {
				filters[i][j] = float64(right-j) / float64(right-center)
			}
		}
	}
	return &filterbank{filters: filters}
}

// apply writes log mel energies for the power spectrum into dst.
func (fb *filterbank) apply(power, dst []float64) {
	for i, f := range fb.filters {
		sum := 0.0
		for j, p := range power {
			sum += p * f[j]
		}
		if sum < 1e-30 {
			sum = 1e-30
		}
		dst[i] = math.Log(sum)
	}
}

// dct applies a Type-II DCT to extract numCepstra cepstral coefficients.
func dct(logMelEnergies []float64, numCepstra int) []float64 {
	n := len(logMelEnergies)
	cep := make([]float64, numCepstra)
	for k := range cep {
		sum := 0.0
		for j, e := range logMelEnergies {
			sum += e * math.Cos(math.Pi*float64(k)*(float64(j)+0.5)/float64(n))
		}
		cep[k] = sum
	}
	return cep
}

// lifter applies sinusoidal liftering with parameter L in place.
func lifter(cepstra []float64, L int) {
	for i := range cepstra {
		cepstra[i] *= 1.0 + float64(L)/2.0*math.Sin(math.Pi*float64(i)/float64(L))
	}
}

func hzToMel(hz float64) float64 {
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

func melToHz(mel float64) float64 {
	return 700.0 * (math.Pow(10, mel/2595.0) - 1.0)
}
