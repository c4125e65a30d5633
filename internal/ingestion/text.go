// Package ingestion loads and cleans job descriptions from files, inline
// text, or URLs.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// MinJobDescriptionLen is the minimum usable job description length.
const MinJobDescriptionLen = 20

var (
	multiSpace = regexp.MustCompile(`\s+`)
	blankRuns  = regexp.MustCompile(`\n\n\n+`)
)

// JobTooShortError is returned when a job description is below the minimum
// length after cleaning.
type JobTooShortError struct {
	Length int
}

func (e *JobTooShortError) Error() string {
	return fmt.Sprintf("job description too short: %d characters (minimum %d)", e.Length, MinJobDescriptionLen)
}

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving bullet indentation.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "• ") {
		indent := len(line) - len(trimmed)
		if indent > 0 {
			return strings.Repeat(" ", indent) + trimmed
		}
		return trimmed
	}

	content := multiSpace.ReplaceAllString(strings.TrimSpace(line), " ")
	leadingSpace := len(line) - len(trimmed)
	if leadingSpace > 0 {
		return strings.Repeat(" ", leadingSpace) + content
	}
	return content
}

// ValidateJobText checks a cleaned job description against the length
// minimum.
func ValidateJobText(text string) error {
	if len(text) < MinJobDescriptionLen {
		return &JobTooShortError{Length: len(text)}
	}
	return nil
}

// JobFromText cleans and validates an inline job description.
func JobFromText(text string) (string, error) {
	cleaned := CleanText(text)
	if err := ValidateJobText(cleaned); err != nil {
		return "", err
	}
	return cleaned, nil
}

// JobFromFile reads, cleans, and validates a job description file.
func JobFromFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("job description file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read job description file: %w", err)
	}
	return JobFromText(string(content))
}
