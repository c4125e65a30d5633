// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-screener/internal/provider"
	"github.com/jonathan/resume-screener/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintVerdict outputs the final screening decision.
func (p *Printer) PrintVerdict(v *types.Verdict) {
	if v == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recommendation:  %s\n", v.Recommendation))
	sb.WriteString(fmt.Sprintf("Match score:     %.2f\n", v.MatchScore))
	sb.WriteString(fmt.Sprintf("Confidence:      %.2f\n", v.Confidence))
	if v.RequiresHuman {
		sb.WriteString("Human review:    required\n")
	}
	sb.WriteString("\n")
	sb.WriteString(wrapText(v.ReasoningSummary, boxWidth-6))

	if len(v.MatchingSkills) > 0 {
		sb.WriteString("\n\nMatching skills:\n")
		writeSkillList(&sb, v.MatchingSkills)
	}
	if len(v.MissingSkills) > 0 {
		sb.WriteString("\nMissing skills:\n")
		writeSkillList(&sb, v.MissingSkills)
	}

	p.printBox("SCREENING VERDICT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResume outputs a summary of the structured resume.
func (p *Printer) PrintResume(r *types.StructuredResume) {
	if r == nil {
		return
	}

	var sb strings.Builder
	if r.TotalYearsExperience != nil {
		sb.WriteString(fmt.Sprintf("Experience: %.1f years\n", *r.TotalYearsExperience))
	}
	sb.WriteString(fmt.Sprintf("Skills:     %d\n", len(r.Skills)))
	sb.WriteString(fmt.Sprintf("Positions:  %d\n", len(r.Experience)))

	if len(r.Skills) > 0 {
		sb.WriteString("\nTop skills:\n")
		writeSkillList(&sb, r.Skills)
	}

	count := min(len(r.Experience), 3)
	if count > 0 {
		sb.WriteString("\nRecent positions:\n")
		for i := 0; i < count; i++ {
			e := r.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s (%s)\n", e.Title, e.Organization, e.Duration))
		}
	}

	p.printBox("STRUCTURED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJob outputs a summary of the structured job requirements.
func (p *Printer) PrintJob(j *types.StructuredJob) {
	if j == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:       %s\n", j.RoleTitle))
	sb.WriteString(fmt.Sprintf("Seniority:  %s\n", j.Seniority))
	if j.MinYearsExperience != nil {
		sb.WriteString(fmt.Sprintf("Min years:  %.1f\n", *j.MinYearsExperience))
	}

	if len(j.RequiredSkills) > 0 {
		sb.WriteString("\nRequired skills:\n")
		writeSkillList(&sb, j.RequiredSkills)
	}
	if len(j.PreferredSkills) > 0 {
		sb.WriteString("\nPreferred skills:\n")
		writeSkillList(&sb, j.PreferredSkills)
	}

	p.printBox("STRUCTURED JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAttempts outputs the provider attempt log.
func (p *Printer) PrintAttempts(attempts []provider.Attempt) {
	if len(attempts) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total attempts: %d\n\n", len(attempts)))
	for _, a := range attempts {
		marker := "✓"
		if a.Outcome != provider.OutcomeSuccess {
			marker = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %s: %s", marker, a.Stage, a.Provider))
		if a.Reason != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", a.Reason))
		}
		sb.WriteString("\n")
	}

	p.printBox("PROVIDER ATTEMPTS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeSkillList(sb *strings.Builder, skills []string) {
	count := min(len(skills), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", skills[i]))
	}
	if len(skills) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills)-maxItemsToShow))
	}
}

// wrapText wraps text to the given width on word boundaries.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if lineLen > 0 && lineLen+1+len(word) > width {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
