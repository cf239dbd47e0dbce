package jsonschema

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMissingType          = "missing_type"
	CodeInvalidType          = "invalid_type"
	CodeMalformedEnumLiteral = "malformed_enum_literal"
	CodeMalformedDocument    = "malformed_document"
	CodeUnknownReferenceFile = "unknown_reference_file"
	CodeUnknownReferenceKey  = "unknown_reference_key"
	CodeHeterogeneousEnum    = "heterogeneous_enum"
	CodeUnsupportedEnumType  = "unsupported_enum_type"
)

// Sentinels matched by errors.Is against any *Error of the same code.
var (
	ErrMissingType          = errors.New(CodeMissingType)
	ErrInvalidType          = errors.New(CodeInvalidType)
	ErrMalformedEnumLiteral = errors.New(CodeMalformedEnumLiteral)
	ErrMalformedDocument    = errors.New(CodeMalformedDocument)
	ErrUnknownReferenceFile = errors.New(CodeUnknownReferenceFile)
	ErrUnknownReferenceKey  = errors.New(CodeUnknownReferenceKey)
	ErrHeterogeneousEnum    = errors.New(CodeHeterogeneousEnum)
	ErrUnsupportedEnumType  = errors.New(CodeUnsupportedEnumType)

	// ErrUnresolvedReference matches both reference failures.
	ErrUnresolvedReference = errors.New("unresolved_reference")
)

var sentinels = map[string]error{
	CodeMissingType:          ErrMissingType,
	CodeInvalidType:          ErrInvalidType,
	CodeMalformedEnumLiteral: ErrMalformedEnumLiteral,
	CodeMalformedDocument:    ErrMalformedDocument,
	CodeUnknownReferenceFile: ErrUnknownReferenceFile,
	CodeUnknownReferenceKey:  ErrUnknownReferenceKey,
	CodeHeterogeneousEnum:    ErrHeterogeneousEnum,
	CodeUnsupportedEnumType:  ErrUnsupportedEnumType,
}

// Error is a fatal schema processing failure.
type Error struct {
	Code    string // One of the codes listed above.
	File    string // Document the error was found in; empty when unknown.
	Path    string // JSON Pointer inside the document (for example: /properties/a/items/0).
	Message string
	Cause   error // Optional: underlying error.
}

// Errorf creates an Error with the given code and formatted message.
func Errorf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	b.WriteString(e.Code)
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Is matches the sentinel for the error's code.
func (e *Error) Is(target error) bool {
	if target == ErrUnresolvedReference {
		return e.Code == CodeUnknownReferenceFile || e.Code == CodeUnknownReferenceKey
	}
	s, ok := sentinels[e.Code]
	return ok && s == target
}

func (e *Error) Unwrap() error { return e.Cause }

// WithPath returns a copy positioned at path unless a path is already set.
func (e *Error) WithPath(path string) *Error {
	if e.Path != "" {
		return e
	}
	c := *e
	c.Path = path
	return &c
}

// WithFile returns a copy stamped with file unless a file is already set.
func (e *Error) WithFile(file string) *Error {
	if e.File != "" {
		return e
	}
	c := *e
	c.File = file
	return &c
}

// Annotate stamps file and path onto err when it is an *Error. Other errors
// are wrapped as malformed documents.
func Annotate(err error, file, path string) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se.WithPath(path).WithFile(file)
	}
	return &Error{Code: CodeMalformedDocument, File: file, Path: path, Cause: err}
}

// AsError extracts an *Error using errors.As internally.
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
