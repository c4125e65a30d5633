package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-screener/internal/prompts"
	"github.com/jonathan/resume-screener/internal/provider"
)

// StageName identifies extraction attempts in the attempt log.
const StageName = "extract"

// Extract produces plain text from a validated document. Ranked multimodal
// providers are tried first; when all fail soft, PDF and DOCX files fall
// back to local parsing. Images with no working provider cannot be read.
func Extract(ctx context.Context, gw *provider.Gateway, f *FileRef, sink provider.AttemptSink) (string, error) {
	if err := ValidateFile(f, MaxFileBytes); err != nil {
		return "", err
	}

	prompt := prompts.MustGet("extraction.json", "extract-document-text")
	payload := provider.Payload{
		Prompt:   prompt,
		FileData: f.Data,
		MIMEType: f.MIMEType(),
		Validate: func(text string) error {
			if len(strings.TrimSpace(text)) < MinTextLen {
				return fmt.Errorf("extracted text too short (%d chars, need %d)", len(strings.TrimSpace(text)), MinTextLen)
			}
			return nil
		},
	}

	for _, spec := range gw.Ranked(provider.KindMultimodal) {
		text, err := gw.Invoke(ctx, StageName, spec, provider.KindMultimodal, payload, sink)
		if err != nil {
			continue
		}
		return strings.TrimSpace(text), nil
	}

	return extractLocal(f)
}

// extractLocal parses the document without a provider.
func extractLocal(f *FileRef) (string, error) {
	ext := f.Ext()
	if !localParseable(ext) {
		return "", &NoUsableProviderError{Name: f.Name, Ext: ext}
	}

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = pdfText(f.Data)
	case ".docx", ".doc":
		text, err = docxText(f.Data)
	}
	if err != nil {
		return "", &LocalParseError{Name: f.Name, Cause: err}
	}

	text = strings.TrimSpace(text)
	if len(text) < MinTextLen {
		return "", &LocalParseError{
			Name:  f.Name,
			Cause: fmt.Errorf("extracted text too short (%d chars, need %d)", len(text), MinTextLen),
		}
	}
	return text, nil
}
