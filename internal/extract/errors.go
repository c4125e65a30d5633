package extract

import "fmt"

// FileTooLargeError is returned when the document exceeds the size limit.
type FileTooLargeError struct {
	Name     string
	Size     int64
	MaxBytes int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file %s is %.1f MB, exceeds limit of %.1f MB",
		e.Name, float64(e.Size)/(1<<20), float64(e.MaxBytes)/(1<<20))
}

// UnsupportedTypeError is returned when the document's extension is not in
// the accepted set.
type UnsupportedTypeError struct {
	Name string
	Ext  string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %s (supported: pdf, docx, doc, png, jpg, jpeg)", e.Ext, e.Name)
}

// NoUsableProviderError is returned when every remote provider failed soft
// and no local parser can handle the file type.
type NoUsableProviderError struct {
	Name string
	Ext  string
}

func (e *NoUsableProviderError) Error() string {
	return fmt.Sprintf("no usable extraction path for %s: all providers failed and no local parser handles %q", e.Name, e.Ext)
}

// LocalParseError wraps a local parser failure.
type LocalParseError struct {
	Name  string
	Cause error
}

func (e *LocalParseError) Error() string {
	return fmt.Sprintf("local extraction failed for %s: %v", e.Name, e.Cause)
}

func (e *LocalParseError) Unwrap() error {
	return e.Cause
}
