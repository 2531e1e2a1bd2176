package feature

// delta computes first-derivative coefficients with regression window N:
// d[t] = sum_{n=1}^{N} n*(c[t+n] - c[t-n]) / (2 * sum_{n=1}^{N} n^2)
// Frame indices are clamped at the sequence edges.
func delta(features [][]float64, N int) [][]float64 {
	T := len(features)
	if T == 0 {
		return nil
	}
	dim := len(features[0])

	denom := 0.0
	for n := 1; n <= N; n++ {
		denom += float64(n * n)
	}
	denom *= 2.0

	out := make([][]float64, T)
	for t := range out {
		out[t] = make([]float64, dim)
		for d := 0; d < dim; d++ {
			num := 0.0
			for n := 1; n <= N; n++ {
				tp := min(t+n, T-1)
				tn := max(t-n, 0)
				num += float64(n) * (features[tp][d] - features[tn][d])
			}
			out[t][d] = num / denom
		}
	}
	return out
}

// withDeltas appends delta and delta-delta columns to each frame:
// [T][D] -> [T][3*D].
func withDeltas(features [][]float64, N int) [][]float64 {
	d1 := delta(features, N)
	d2 := delta(d1, N)

	dim := len(features[0])
	out := make([][]float64, len(features))
	for t := range features {
		row := make([]float64, dim*3)
		copy(row[:dim], features[t])
		copy(row[dim:dim*2], d1[t])
		copy(row[dim*2:], d2[t])
		out[t] = row
	}
	return out
}
