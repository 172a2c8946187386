package chi

// ErrorCode identifies an API error class.
type ErrorCode string

const (
	// ErrorCodeBadRequest indicates a malformed request.
	ErrorCodeBadRequest ErrorCode = "bad_request"
	// ErrorCodeValidationFailed indicates a well-formed request with invalid parameters.
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	// ErrorCodeCaseNotFound indicates the requested case is not in the table.
	ErrorCodeCaseNotFound ErrorCode = "case_not_found"
	// ErrorCodeInternalError indicates an unexpected server failure.
	ErrorCodeInternalError ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	CaseNumber string `json:"case_number"`
	TopK       *int   `json:"top_k,omitempty"`
}

// SimilarCase is one ranked hit in a search response.
type SimilarCase struct {
	CaseNumber      string  `json:"case_number"`
	SimilarityScore float64 `json:"similarity_score"`
	Title           string  `json:"title,omitempty"`
	Resolution      string  `json:"resolution,omitempty"`
	AssignmentGroup string  `json:"assignment_group,omitempty"`
	CaseType        string  `json:"case_type,omitempty"`
	Status          string  `json:"status,omitempty"`
}

// SearchResponse is the body of a successful POST /search.
type SearchResponse struct {
	Success      bool          `json:"success"`
	CaseNumber   string        `json:"case_number"`
	SimilarCases []SimilarCase `json:"similar_cases"`
	TotalFound   int           `json:"total_found"`
}

// CaseResponse is one table row as returned by GET /cases/{caseNumber}
// and GET /table-preview.
type CaseResponse struct {
	CaseNumber      string `json:"case_number"`
	Title           string `json:"title,omitempty"`
	Resolution      string `json:"resolution,omitempty"`
	AssignmentGroup string `json:"assignment_group,omitempty"`
	CaseType        string `json:"case_type,omitempty"`
	Status          string `json:"status,omitempty"`
	VectorDim       int    `json:"vector_dim"`
}

// PreviewResponse is the body of GET /table-preview.
type PreviewResponse struct {
	Success bool           `json:"success"`
	Table   string         `json:"table"`
	Rows    []CaseResponse `json:"rows"`
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Success   bool   `json:"success"`
	Table     string `json:"table"`
	Rows      int    `json:"rows"`
	VectorDim int    `json:"vector_dim"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
