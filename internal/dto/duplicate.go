package dto

import (
	"time"

	"github.com/SscSPs/freelancer_books/internal/core/domain"
)

// FindDuplicatesQuery are the query parameters of an ad-hoc duplicate lookup, used by forms
// before the record is saved.
type FindDuplicatesQuery struct {
	Amount    string `form:"amount" binding:"required,money"`
	Date      string `form:"date" binding:"required,datetime=2006-01-02"`
	Partner   string `form:"partner" binding:"max=255"`
	ExcludeID string `form:"excludeID" binding:"max=36"`
}

// ListDuplicatesQuery optionally restricts the marked-duplicates list to one variant.
type ListDuplicatesQuery struct {
	Variant string `form:"variant" binding:"omitempty,record_variant"`
}

// MarkDuplicateRequest names the original a record duplicates.
type MarkDuplicateRequest struct {
	OriginalID string `json:"originalID" binding:"required,max=36"`
}

// RecordResponse is the integrity view of a financial record.
type RecordResponse struct {
	ID            string  `json:"id"`
	Variant       string  `json:"variant"`
	Date          string  `json:"date"`
	Partner       string  `json:"partner"`
	Amount        string  `json:"amount"`
	HasReceipt    bool    `json:"hasReceipt"`
	IsDeleted     bool    `json:"isDeleted"`
	IsDuplicate   bool    `json:"isDuplicate"`
	DuplicateOfID *string `json:"duplicateOfID"`
	LastUpdatedAt string  `json:"lastUpdatedAt,omitempty"`
	LastUpdatedBy string  `json:"lastUpdatedBy,omitempty"`
}

// DuplicateCandidateResponse is one ranked candidate.
type DuplicateCandidateResponse struct {
	Record            RecordResponse `json:"record"`
	SimilarityScore   float64        `json:"similarityScore"`
	DateSimilarity    float64        `json:"dateSimilarity"`
	PartnerSimilarity float64        `json:"partnerSimilarity"`
	MatchedFields     []string       `json:"matchedFields"`
}

// ListDuplicateCandidatesResponse wraps a ranked candidate list.
type ListDuplicateCandidatesResponse struct {
	Candidates []DuplicateCandidateResponse `json:"candidates"`
}

// ListRecordsResponse wraps a list of records.
type ListRecordsResponse struct {
	Records []RecordResponse `json:"records"`
}

// ToRecordResponse converts a domain.FinancialRecord to RecordResponse DTO
func ToRecordResponse(r *domain.FinancialRecord) RecordResponse {
	resp := RecordResponse{
		ID:            r.ID,
		Variant:       string(r.Variant),
		Date:          r.Date.Format(DateLayout),
		Partner:       r.Partner,
		Amount:        r.Amount.StringFixed(2),
		HasReceipt:    r.HasReceipt(),
		IsDeleted:     r.IsDeleted,
		IsDuplicate:   r.IsDuplicate,
		DuplicateOfID: r.DuplicateOfID,
		LastUpdatedBy: r.LastUpdatedBy,
	}
	if !r.LastUpdatedAt.IsZero() {
		resp.LastUpdatedAt = formatTimestamp(r.LastUpdatedAt)
	}
	return resp
}

// ToListRecordsResponse converts a slice of records
func ToListRecordsResponse(records []domain.FinancialRecord) ListRecordsResponse {
	out := make([]RecordResponse, len(records))
	for i := range records {
		out[i] = ToRecordResponse(&records[i])
	}
	return ListRecordsResponse{Records: out}
}

// ToListDuplicateCandidatesResponse converts ranked candidates
func ToListDuplicateCandidatesResponse(candidates []domain.DuplicateCandidate) ListDuplicateCandidatesResponse {
	out := make([]DuplicateCandidateResponse, len(candidates))
	for i, c := range candidates {
		out[i] = DuplicateCandidateResponse{
			Record:            ToRecordResponse(&c.Record),
			SimilarityScore:   c.SimilarityScore,
			DateSimilarity:    c.DateSimilarity,
			PartnerSimilarity: c.PartnerSimilarity,
			MatchedFields:     c.MatchedFields,
		}
	}
	return ListDuplicateCandidatesResponse{Candidates: out}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
