package domain

// Metadata holds the display fields of a case record. Fields missing upstream
// stay empty; the similarity flow never fails on absent metadata.
type Metadata struct {
	Title           string
	Resolution      string
	AssignmentGroup string
	CaseType        string
	Status          string
}

// CaseRecord is a read-only snapshot of one row of the topic-vectors table:
// an identifier, display metadata, and the case's feature vector. Records are
// constructed from a query result, consumed by one ranking invocation, and
// discarded; nothing mutates them after construction.
type CaseRecord struct {
	number string
	meta   Metadata
	vector FeatureVector
}

// NewCaseRecord creates a case record.
func NewCaseRecord(number string, meta Metadata, vector FeatureVector) CaseRecord {
	return CaseRecord{number: number, meta: meta, vector: vector}
}

// Number returns the case identifier.
func (c *CaseRecord) Number() string { return c.number }

// Meta returns the display metadata.
func (c *CaseRecord) Meta() Metadata { return c.meta }

// Vector returns the feature vector. Nil when the source row carried no
// parseable vector columns.
func (c *CaseRecord) Vector() FeatureVector { return c.vector }

// HasVector reports whether the record carries a non-empty feature vector.
func (c *CaseRecord) HasVector() bool { return len(c.vector) > 0 }
