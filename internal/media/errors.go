package media

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFolderUnknown indicates no classification scheme exists for the folder.
	ErrFolderUnknown = errors.New("unknown media folder")
	// ErrEmptyDeletion signals a deletion request without identifiers.
	ErrEmptyDeletion = errors.New("deletion request is empty")
	// ErrScopeMismatch signals a deletion request addressed to a different
	// target than the coordinator it reached. It means a caller bug, never
	// user input, so it is fatal and precedes any store call.
	ErrScopeMismatch = errors.New("deletion request scope mismatch")
	// ErrAllUploadsFailed signals that no file in a validated batch was stored.
	ErrAllUploadsFailed = errors.New("all uploads failed")
)

// ClassificationError wraps a failed asset listing, naming the folder so the
// caller can retry the exact scope.
type ClassificationError struct {
	Folder string
	Err    error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classify folder %q: %v", e.Folder, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// FieldFault pinpoints a single pre-flight validation problem. FileIndex is
// -1 for faults on shared batch fields.
type FieldFault struct {
	Field     string `json:"field,omitempty"`
	FileIndex int    `json:"fileIndex"`
	Reason    string `json:"reason"`
}

// ValidationError rejects a whole batch before any upload call is made.
type ValidationError struct {
	Faults []FieldFault
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Faults))
	for _, f := range e.Faults {
		if f.Field != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
			continue
		}
		parts = append(parts, fmt.Sprintf("file %d: %s", f.FileIndex, f.Reason))
	}
	return "batch validation failed: " + strings.Join(parts, "; ")
}
