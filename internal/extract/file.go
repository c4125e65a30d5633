// Package extract turns resume documents into plain text. Remote multimodal
// providers are tried first in rank order; PDF and DOCX files additionally
// have local parsers as a last resort.
package extract

import (
	"os"
	"path/filepath"
	"strings"
)

// MaxFileBytes is the default document size limit.
const MaxFileBytes int64 = 10 << 20

// MinTextLen is the minimum extracted text length considered usable. Shorter
// output from a provider is treated as bad output.
const MinTextLen = 50

// mimeTypes maps supported extensions to their MIME types.
var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".doc":  "application/msword",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// FileRef is an in-memory document to extract.
type FileRef struct {
	Name string
	Data []byte
}

// ReadFile loads a document from disk into a FileRef.
func ReadFile(path string) (*FileRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &FileRef{Name: filepath.Base(path), Data: data}, nil
}

// Ext returns the lowercase extension of the file name.
func (f *FileRef) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// MIMEType returns the MIME type for the file, or "" if unsupported.
func (f *FileRef) MIMEType() string {
	return mimeTypes[f.Ext()]
}

// ValidateFile checks type and size before any extraction work. Type is
// checked first so an unsupported file is rejected for that reason even
// when it is also oversized.
func ValidateFile(f *FileRef, maxBytes int64) error {
	if _, ok := mimeTypes[f.Ext()]; !ok {
		return &UnsupportedTypeError{Name: f.Name, Ext: f.Ext()}
	}
	if maxBytes <= 0 {
		maxBytes = MaxFileBytes
	}
	if int64(len(f.Data)) > maxBytes {
		return &FileTooLargeError{Name: f.Name, Size: int64(len(f.Data)), MaxBytes: maxBytes}
	}
	return nil
}

// localParseable reports whether a local fallback parser exists for the
// extension. Images have none; their text lives in pixels.
func localParseable(ext string) bool {
	return ext == ".pdf" || ext == ".docx" || ext == ".doc"
}
