// Package structuring converts free text into schema-validated structures.
// Every provider response is checked against a JSON Schema before it is
// parsed; a violation is a soft failure and the next ranked provider runs.
package structuring

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-screener/internal/prompts"
	"github.com/jonathan/resume-screener/internal/provider"
	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/skills"
	"github.com/jonathan/resume-screener/internal/types"
)

// Stage names for the attempt log.
const (
	StageResume = "structure-resume"
	StageJob    = "structure-job"
)

var (
	//go:embed resume_schema.json
	resumeSchema string

	//go:embed job_schema.json
	jobSchema string
)

// AllProvidersFailedError is returned when every ranked provider failed soft
// for a structuring stage.
type AllProvidersFailedError struct {
	Stage string
}

func (e *AllProvidersFailedError) Error() string {
	return fmt.Sprintf("all providers failed for stage %s", e.Stage)
}

// StructureResume extracts a StructuredResume from resume text.
func StructureResume(ctx context.Context, gw *provider.Gateway, resumeText string, sink provider.AttemptSink) (*types.StructuredResume, error) {
	prompt := prompts.Format(prompts.MustGet("structuring.json", "structure-resume"), map[string]string{
		"ResumeText": resumeText,
	})

	raw, err := structure(ctx, gw, StageResume, prompt, resumeSchema, sink)
	if err != nil {
		return nil, err
	}

	var resume types.StructuredResume
	if err := json.Unmarshal([]byte(raw), &resume); err != nil {
		// Schema validation passed, so this should not happen.
		return nil, &AllProvidersFailedError{Stage: StageResume}
	}
	resume.Skills = skills.NormalizeSet(resume.Skills)
	return &resume, nil
}

// StructureJob extracts a StructuredJob from a job description.
func StructureJob(ctx context.Context, gw *provider.Gateway, jobText string, sink provider.AttemptSink) (*types.StructuredJob, error) {
	prompt := prompts.Format(prompts.MustGet("structuring.json", "structure-job"), map[string]string{
		"JobDescription": jobText,
	})

	raw, err := structure(ctx, gw, StageJob, prompt, jobSchema, sink)
	if err != nil {
		return nil, err
	}

	var job types.StructuredJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return nil, &AllProvidersFailedError{Stage: StageJob}
	}
	job.RequiredSkills = skills.NormalizeSet(job.RequiredSkills)
	job.PreferredSkills = skills.NormalizeSet(job.PreferredSkills)
	job.Seniority = types.NormalizeSeniority(job.Seniority)
	return &job, nil
}

// structure runs the ranked fallback loop for one structuring call.
func structure(ctx context.Context, gw *provider.Gateway, stage, prompt, schema string, sink provider.AttemptSink) (string, error) {
	payload := provider.Payload{
		Prompt: prompt,
		Validate: func(text string) error {
			return schemas.ValidateJSONString(schema, text)
		},
	}

	for _, spec := range gw.Ranked(provider.KindStructured) {
		text, err := gw.Invoke(ctx, stage, spec, provider.KindStructured, payload, sink)
		if err != nil {
			continue
		}
		return text, nil
	}

	return "", &AllProvidersFailedError{Stage: stage}
}
