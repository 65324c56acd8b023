package embedding

import "math"

// Cosine returns dot(a,b) / (|a| * |b|). Accumulation runs in float64.
func Cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, &DegenerateInputError{Reason: ErrEmptyVector}
	}
	if len(a) != len(b) {
		return 0, &DegenerateInputError{Reason: ErrDimensionMismatch}
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, &DegenerateInputError{Reason: ErrZeroMagnitude}
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
