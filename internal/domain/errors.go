package domain

import "errors"

var (
	// ErrCaseNotFound signals that a case number has no row in the table.
	ErrCaseNotFound = errors.New("case not found")
	// ErrNoFeatureVector signals a record without comparable vector columns.
	ErrNoFeatureVector = errors.New("case has no feature vector")
)
