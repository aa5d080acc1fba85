package domain

// DuplicateCandidate is a record that may duplicate the anchor record. It is a suggestion
// for human review, never merged automatically.
type DuplicateCandidate struct {
	Record            FinancialRecord `json:"record"`
	SimilarityScore   float64         `json:"similarityScore"`
	DateSimilarity    float64         `json:"dateSimilarity"`
	PartnerSimilarity float64         `json:"partnerSimilarity"`
	MatchedFields     []string        `json:"matchedFields"`
}
