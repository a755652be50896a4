package services

// neutralSimilarity is the score assigned when either side carries no text.
// A job without a skills field should not collapse to near-zero similarity
// just because one of its fields is missing.
const neutralSimilarity = 0.5

// Similarity maps the cosine of two unit vectors from [-1,1] into [0,1].
// Zero-information vectors score the neutral midpoint.
func Similarity(a, b Vector) float64 {
	if a.IsZero() || b.IsZero() {
		return neutralSimilarity
	}

	score := (cosine(a, b) + 1.0) / 2.0
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return score
}

// cosine computes the cosine between two unit-normalized vectors, which
// reduces to their dot product. Mismatched dimensions score 0.
func cosine(a, b Vector) float64 {
	if len(a.Values) != len(b.Values) {
		return 0
	}

	var dot float64
	for i := range a.Values {
		dot += float64(a.Values[i]) * float64(b.Values[i])
	}

	if dot > 1 {
		dot = 1
	}
	if dot < -1 {
		dot = -1
	}

	return dot
}
