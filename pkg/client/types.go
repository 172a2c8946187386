package client

// searchRequest is the body of POST /search.
type searchRequest struct {
	CaseNumber string `json:"case_number"`
	TopK       *int   `json:"top_k,omitempty"`
}

// SimilarCase is one ranked hit.
type SimilarCase struct {
	CaseNumber      string  `json:"case_number"`
	SimilarityScore float64 `json:"similarity_score"`
	Title           string  `json:"title,omitempty"`
	Resolution      string  `json:"resolution,omitempty"`
	AssignmentGroup string  `json:"assignment_group,omitempty"`
	CaseType        string  `json:"case_type,omitempty"`
	Status          string  `json:"status,omitempty"`
}

// SearchResult is the outcome of a similarity search.
type SearchResult struct {
	CaseNumber   string        `json:"case_number"`
	SimilarCases []SimilarCase `json:"similar_cases"`
	TotalFound   int           `json:"total_found"`
}

// Case is one table row.
type Case struct {
	CaseNumber      string `json:"case_number"`
	Title           string `json:"title,omitempty"`
	Resolution      string `json:"resolution,omitempty"`
	AssignmentGroup string `json:"assignment_group,omitempty"`
	CaseType        string `json:"case_type,omitempty"`
	Status          string `json:"status,omitempty"`
	VectorDim       int    `json:"vector_dim"`
}

// Preview is the first rows of the table.
type Preview struct {
	Table string `json:"table"`
	Rows  []Case `json:"rows"`
}

// Status describes the loaded table.
type Status struct {
	Table     string `json:"table"`
	Rows      int    `json:"rows"`
	VectorDim int    `json:"vector_dim"`
}

// Health is the service health report.
type Health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// OK reports whether all health checks passed.
func (h Health) OK() bool { return h.Status == "ok" }
