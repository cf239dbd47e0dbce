package engine

import (
	"fmt"
)

// DuplicateStrictness selects what happens when an object repeats a key.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

const (
	CodeDuplicateKey  = "duplicate_key"
	CodeDepthExceeded = "depth_exceeded"
)

// SimpleIssue is a problem found while reading, located by JSON Pointer.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a fatal SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.Message + " at " + e.Path }

// EnforceOptions are the limits applied while a tree is built.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	// MaxDepth bounds container nesting; zero disables the check.
	MaxDepth int
	// IssueSink receives duplicate keys under DupWarn.
	IssueSink func(SimpleIssue)
}

// Duplicate applies the duplicate key policy to key, seen again at path.
// Only DupError turns it into an error.
func (o EnforceOptions) Duplicate(path, key string) error {
	si := SimpleIssue{Code: CodeDuplicateKey, Path: path, Message: fmt.Sprintf("key %q duplicated", key)}
	switch o.OnDuplicate {
	case DupError:
		return IssueError{si}
	case DupWarn:
		if o.IssueSink != nil {
			o.IssueSink(si)
		}
	}
	return nil
}

// CheckDepth fails when the container at path sits deeper than MaxDepth.
// The document root is at depth 1.
func (o EnforceOptions) CheckDepth(path string, depth int) error {
	if o.MaxDepth <= 0 || depth <= o.MaxDepth {
		return nil
	}
	if path == "" {
		path = "/"
	}
	return IssueError{SimpleIssue{
		Code:    CodeDepthExceeded,
		Path:    path,
		Message: fmt.Sprintf("nesting deeper than %d levels", o.MaxDepth),
	}}
}
