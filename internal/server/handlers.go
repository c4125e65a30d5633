package server

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/extract"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/pipeline"
	"github.com/jonathan/resume-screener/internal/provider"
	"github.com/jonathan/resume-screener/internal/store"
	"github.com/jonathan/resume-screener/internal/types"
)

// multipartMemoryLimit is the in-memory budget for multipart parsing; the
// file itself is capped separately by extract.MaxFileBytes.
const multipartMemoryLimit = 16 << 20

// ScreenTextRequest is the JSON body for pre-extracted resume text.
type ScreenTextRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,min=50"`
	JobDescription string `json:"job_description" validate:"required,min=20"`
	Verbose        bool   `json:"verbose"`
}

// ScreenResponse is the API result envelope. Details are only populated in
// verbose mode.
type ScreenResponse struct {
	ID       string         `json:"id"`
	FileName string         `json:"file_name,omitempty"`
	Verdict  *types.Verdict `json:"verdict"`
	Details  *ScreenDetails `json:"details,omitempty"`
}

// ScreenDetails carries intermediate pipeline data for verbose responses.
type ScreenDetails struct {
	Resume   *types.StructuredResume `json:"resume"`
	Job      *types.StructuredJob    `json:"job"`
	Attempts []provider.Attempt      `json:"attempts"`
}

// handleScreen runs the pipeline on an uploaded resume document.
// Multipart form fields: resume (file), job_description (text), verbose.
func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing resume file")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, extract.MaxFileBytes+1))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read resume file")
		return
	}

	ref := &extract.FileRef{Name: header.Filename, Data: data}
	if err := extract.ValidateFile(ref, extract.MaxFileBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	jobText, err := ingestion.JobFromText(r.FormValue("job_description"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	verbose := r.FormValue("verbose") == "true"
	s.runPipeline(r.Context(), w, pipeline.Request{File: ref, JobText: jobText}, verbose)
}

// handleScreenText runs the pipeline on pre-extracted resume text.
func (s *Server) handleScreenText(w http.ResponseWriter, r *http.Request) {
	var req ScreenTextRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			s.errorResponse(w, http.StatusBadRequest, validationMessage(verrs[0]))
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.ResumeText = ingestion.CleanText(req.ResumeText)
	jobText := ingestion.CleanText(req.JobDescription)

	s.runPipeline(r.Context(), w, pipeline.Request{ResumeText: req.ResumeText, JobText: jobText}, req.Verbose)
}

// runPipeline executes a bounded pipeline run and writes the response.
func (s *Server) runPipeline(ctx context.Context, w http.ResponseWriter, req pipeline.Request, verbose bool) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "server is at capacity")
		return
	}
	defer s.sem.Release(1)

	result := s.runner.Run(ctx, req)

	if s.store != nil {
		if err := s.store.SaveScreening(ctx, result, req.JobText); err != nil {
			// History is best effort; the verdict still goes out.
			log.Printf("Failed to persist screening %s: %v", result.ID, err)
		}
	}

	resp := ScreenResponse{
		ID:       result.ID,
		FileName: result.FileName,
		Verdict:  result.Verdict,
	}
	if verbose {
		resp.Details = &ScreenDetails{
			Resume:   result.Resume,
			Job:      result.Job,
			Attempts: result.Attempts,
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListScreenings returns recent screening history.
func (s *Server) handleListScreenings(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusNotImplemented, "screening history is not configured")
		return
	}

	screenings, err := s.store.ListScreenings(r.Context(), 50)
	if err != nil {
		log.Printf("Failed to list screenings: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to list screenings")
		return
	}
	if screenings == nil {
		screenings = []store.Screening{}
	}
	s.jsonResponse(w, http.StatusOK, screenings)
}

// handleGetScreening returns one screening by ID.
func (s *Server) handleGetScreening(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusNotImplemented, "screening history is not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid screening id")
		return
	}

	screening, err := s.store.GetScreening(r.Context(), id)
	if err == store.ErrNotFound {
		s.errorResponse(w, http.StatusNotFound, "screening not found")
		return
	}
	if err != nil {
		log.Printf("Failed to get screening %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to get screening")
		return
	}
	s.jsonResponse(w, http.StatusOK, screening)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "ResumeText":
		if fe.Tag() == "min" {
			return "resume_text must be at least 50 characters"
		}
		return "resume_text is required"
	case "JobDescription":
		if fe.Tag() == "min" {
			return "job_description must be at least 20 characters"
		}
		return "job_description is required"
	}
	return "invalid request"
}
