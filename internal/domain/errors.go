package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when a CV, profile or template does not exist
	// for the requesting user.
	ErrNotFound = errors.New("not found")

	// ErrPDFNotGenerated is returned by downloads of CVs that were never rendered.
	ErrPDFNotGenerated = fmt.Errorf("pdf not generated yet: %w", ErrNotFound)

	// ErrRenderBusy is returned when no render slot frees up in time.
	ErrRenderBusy = errors.New("renderer busy")
)

// NotFound wraps ErrNotFound with the entity kind and identifier.
func NotFound(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
}

// TemplateError represents a template that could not be parsed or executed.
// The pipeline recovers from it by falling back to the default template.
type TemplateError struct {
	Template string
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template %q: %s: %v", e.Template, e.Message, e.Cause)
	}
	return fmt.Sprintf("template %q: %s", e.Template, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderStage names the browser step a RenderError happened in.
type RenderStage string

const (
	StageLaunch RenderStage = "launch"
	StageOpen   RenderStage = "open"
	StageLoad   RenderStage = "load"
	StagePrint  RenderStage = "print"
)

// RenderError represents a failed HTML to PDF conversion.
type RenderError struct {
	Stage RenderStage
	Cause error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed at %s: %v", e.Stage, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// UploadError represents a PDF that was produced but could not be stored.
type UploadError struct {
	Key   string
	Cause error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s failed: %v", e.Key, e.Cause)
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var renderErr *RenderError
	var uploadErr *UploadError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRenderBusy):
		return http.StatusServiceUnavailable
	case errors.As(err, &uploadErr):
		return http.StatusOK
	case errors.As(err, &renderErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
