package model

import "time"

// File records one imported CSV file. Files are never mutated after creation.
type File struct {
	ID          uint64    `json:"id"`
	Filename    string    `json:"filename"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Fingerprint string    `json:"fingerprint"`
	Size        int       `json:"size"` // bytes of the raw content
	// TransactionCount is the number of non-blank lines minus the header. It
	// counts malformed rows too, so it can exceed the rows actually stored.
	TransactionCount int    `json:"transaction_count"`
	ProfileID        string `json:"profile_id"`
}
