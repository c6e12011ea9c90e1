package audio

// Resample converts signal from srcRate to dstRate using linear
// interpolation. The input slice is returned unchanged when the rates
// already match, when either rate is non-positive, or when the signal is
// empty, so same-rate calls cost nothing.
func Resample(signal []float64, srcRate, dstRate int) []float64 {
	if srcRate <= 0 || dstRate <= 0 {
		return signal
	}
	if srcRate == dstRate || len(signal) == 0 {
		return signal
	}

	dstLen := int(int64(len(signal)) * int64(dstRate) / int64(srcRate))
	if dstLen == 0 {
		return nil
	}

	out := make([]float64, dstLen)
	ratio := float64(srcRate) / float64(dstRate)

	for i := 0; i < dstLen; i++ {
		srcPos := float64(i) * ratio
		srcIdx := int(srcPos)
		frac := srcPos - float64(srcIdx)

		s0 := signal[srcIdx]
		s1 := s0
		if srcIdx+1 < len(signal) {
			s1 = signal[srcIdx+1]
		}
		out[i] = s0*(1-frac) + s1*frac
	}
	return out
}
