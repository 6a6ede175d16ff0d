package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"cv-renderer/internal/domain"
	"cv-renderer/internal/model"
	"cv-renderer/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	res         *usecase.GenerateResult
	err         error
	url         string
	override    *uuid.UUID
	invalidated uuid.UUID
}

func (f *fakeGenerator) Generate(_ context.Context, _, _ uuid.UUID, override *uuid.UUID) (*usecase.GenerateResult, error) {
	f.override = override
	return f.res, f.err
}

func (f *fakeGenerator) DownloadURL(context.Context, uuid.UUID, uuid.UUID) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func (f *fakeGenerator) InvalidateTemplate(_ context.Context, id uuid.UUID) error {
	f.invalidated = id
	return f.err
}

func newApp(g Generator) *fiber.App {
	app := fiber.New()
	NewHandler(g, nil).Register(app)
	return app
}

func okResult() *usecase.GenerateResult {
	return &usecase.GenerateResult{
		Artifact: &model.RenderedArtifact{PDF: []byte("%PDF-1.7"), Filename: "My_CV.pdf", PageCount: 2},
		URL:      "https://cdn.example.com/cvs/u/cv-1.pdf",
	}
}

func decodeError(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&m))
	return m
}

func TestGeneratePDF(t *testing.T) {
	g := &fakeGenerator{res: okResult()}
	tplID := uuid.New()
	req := httptest.NewRequest("POST", "/api/cvs/"+uuid.NewString()+"/generate/pdf?templateId="+tplID.String(), nil)
	req.Header.Set(UserIDHeader, uuid.NewString())

	resp, err := newApp(g).Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "My_CV.pdf")
	assert.Equal(t, "2", resp.Header.Get("X-PDF-Pages"))
	assert.Equal(t, "https://cdn.example.com/cvs/u/cv-1.pdf", resp.Header.Get("X-PDF-URL"))
	assert.Empty(t, resp.Header.Get("X-Upload-Warning"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.7", string(body))
	require.NotNil(t, g.override)
	assert.Equal(t, tplID, *g.override)
}

func TestGeneratePDF_UploadWarning(t *testing.T) {
	res := okResult()
	res.URL = ""
	res.UploadErr = &domain.UploadError{Key: "k", Cause: errors.New("denied")}
	req := httptest.NewRequest("POST", "/api/cvs/"+uuid.NewString()+"/generate/pdf", nil)
	req.Header.Set(UserIDHeader, uuid.NewString())

	resp, err := newApp(&fakeGenerator{res: res}).Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Upload-Warning"))
	assert.Empty(t, resp.Header.Get("X-PDF-URL"))
}

func TestGeneratePDF_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		user   string
		err    error
		status int
	}{
		{"bad cv id", "/api/cvs/nope/generate/pdf", uuid.NewString(), nil, 400},
		{"missing user", "/api/cvs/" + uuid.NewString() + "/generate/pdf", "", nil, 400},
		{"bad template", "/api/cvs/" + uuid.NewString() + "/generate/pdf?templateId=x", uuid.NewString(), nil, 400},
		{"not found", "/api/cvs/" + uuid.NewString() + "/generate/pdf", uuid.NewString(), domain.NotFound("cv", "1"), 404},
		{"busy", "/api/cvs/" + uuid.NewString() + "/generate/pdf", uuid.NewString(), domain.ErrRenderBusy, 503},
		{"render", "/api/cvs/" + uuid.NewString() + "/generate/pdf", uuid.NewString(), &domain.RenderError{Stage: domain.StageLoad, Cause: errors.New("timeout")}, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", tt.path, nil)
			if tt.user != "" {
				req.Header.Set(UserIDHeader, tt.user)
			}
			resp, err := newApp(&fakeGenerator{err: tt.err}).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decodeError(t, resp.Body)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestDownloadPDF(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/cvs/"+uuid.NewString()+"/download/pdf", nil)
	req.Header.Set(UserIDHeader, uuid.NewString())
	resp, err := newApp(&fakeGenerator{url: "https://cdn.example.com/a.pdf"}).Test(req)
	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)
	assert.Equal(t, "https://cdn.example.com/a.pdf", resp.Header.Get("Location"))

	req = httptest.NewRequest("GET", "/api/cvs/"+uuid.NewString()+"/download/pdf", nil)
	req.Header.Set(UserIDHeader, uuid.NewString())
	resp, err = newApp(&fakeGenerator{err: domain.ErrPDFNotGenerated}).Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestInvalidateTemplate(t *testing.T) {
	g := &fakeGenerator{}
	id := uuid.New()
	resp, err := newApp(g).Test(httptest.NewRequest("POST", "/api/templates/"+id.String()+"/invalidate", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	assert.Equal(t, id, g.invalidated)

	resp, err = newApp(g).Test(httptest.NewRequest("POST", "/api/templates/bad/invalidate", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	resp, err := newApp(&fakeGenerator{}).Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
