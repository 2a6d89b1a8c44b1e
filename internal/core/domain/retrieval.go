package domain

// DefaultK is the number of results returned when no count is given.
const DefaultK = 4

// Hit is a single nearest-neighbour result.
type Hit struct {
	// Position is the index of the text in the corpus the index was built from.
	Position int

	// Text is the source string.
	Text string

	// Distance is the cosine distance to the query (0 = identical direction).
	Distance float64

	// Similarity is the cosine similarity to the query (1 - Distance).
	Similarity float64
}

// Texts returns the source strings of hits, preserving order.
func Texts(hits []Hit) []string {
	out := make([]string, len(hits))
	for i := range hits {
		out[i] = hits[i].Text
	}
	return out
}
