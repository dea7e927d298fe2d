package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cwhitfield/cert-tracker/internal/api"
	"github.com/cwhitfield/cert-tracker/internal/logger"
	"github.com/cwhitfield/cert-tracker/internal/opengraph"
	"github.com/cwhitfield/cert-tracker/internal/services"
	"github.com/cwhitfield/cert-tracker/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func postForm(t *testing.T, router *gin.Engine, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeFlash(t *testing.T, rec *httptest.ResponseRecorder) Flash {
	t.Helper()
	var flash Flash
	if err := json.Unmarshal(rec.Body.Bytes(), &flash); err != nil {
		t.Fatalf("decode flash: %v (body %q)", err, rec.Body.String())
	}
	return flash
}

// stubCertService answers every call with canned results.
type stubCertService struct {
	deleteEnvelope api.Envelope
	deleteErr      error
	deletedID      uint
}

func (s *stubCertService) Create(ctx context.Context, in services.CertInput) (string, error) {
	return "Cert created successfully", nil
}

func (s *stubCertService) Update(ctx context.Context, certID uint, in services.CertInput) (string, error) {
	return "Cert updated successfully", nil
}

func (s *stubCertService) UpdateExamDate(ctx context.Context, certID uint, examDate string) (string, error) {
	if examDate == "" {
		return "", services.ErrEmptyDate
	}
	return "Cert updated successfully", nil
}

func (s *stubCertService) SetReminder(ctx context.Context, certID uint, frequency, startingFrom string) (string, error) {
	return "Email reminder set", nil
}

func (s *stubCertService) DeleteReminder(ctx context.Context, certID uint) (string, error) {
	return "", services.ErrReminderNotSet
}

func (s *stubCertService) Delete(ctx context.Context, certID uint) (api.Envelope, error) {
	s.deletedID = certID
	return s.deleteEnvelope, s.deleteErr
}

type stubResourceService struct {
	deleteEnvelope api.Envelope
	deletedID      uint
}

func (s *stubResourceService) Create(ctx context.Context, in services.ResourceInput) (string, error) {
	return "Resource created successfully", nil
}

func (s *stubResourceService) ResolveOpenGraph(ctx context.Context, rawURL string) (*opengraph.Data, bool) {
	return nil, false
}

func (s *stubResourceService) Import(ctx context.Context, certID uint, resourceIDs []uint) (string, error) {
	if len(resourceIDs) == 0 {
		return "", services.ErrNoImportSelection
	}
	return "Resources imported successfully", nil
}

func (s *stubResourceService) Update(ctx context.Context, resourceID uint, in services.ResourceInput) (string, error) {
	return "Resource updated successfully", nil
}

func (s *stubResourceService) SetComplete(ctx context.Context, resourceID uint, resourceType string, complete bool) (string, error) {
	if resourceType != types.ResourceTypeCourse {
		return "", services.ErrNotCourse
	}
	return "Resource updated successfully", nil
}

func (s *stubResourceService) Delete(ctx context.Context, resourceID uint) (api.Envelope, error) {
	s.deletedID = resourceID
	return s.deleteEnvelope, nil
}

type stubSectionService struct {
	updateMessage string
	updateErr     error
}

func (s *stubSectionService) Create(ctx context.Context, certID, resourceID uint, number int, title string) (string, error) {
	return "Section created successfully", nil
}

func (s *stubSectionService) ImportJSON(ctx context.Context, certID, resourceID uint, raw string) (string, error) {
	return "JSON imported successfully", nil
}

func (s *stubSectionService) Update(ctx context.Context, sectionID uint, in services.SectionInput) (string, error) {
	return s.updateMessage, s.updateErr
}

func (s *stubSectionService) Delete(ctx context.Context, sectionID uint) (api.Envelope, error) {
	return api.Envelope{Message: "Section deleted successfully", Status: http.StatusOK}, nil
}

func TestDeleteDispatchesCert(t *testing.T) {
	certs := &stubCertService{deleteEnvelope: api.Envelope{Message: "Cert deleted successfully", Status: http.StatusOK}}
	h := NewDeleteHandler(testLogger(t), certs, &stubResourceService{}, &stubSectionService{})
	router := gin.New()
	router.POST("/delete/:id", h.Delete)

	rec := postForm(t, router, "/delete/3", url.Values{"type": {"cert"}})
	flash := decodeFlash(t, rec)
	if flash.Category != "message" || flash.Redirect != "/certs" {
		t.Fatalf("unexpected flash %+v", flash)
	}
	if certs.deletedID != 3 {
		t.Fatalf("expected cert 3 deleted, got %d", certs.deletedID)
	}
}

func TestDeleteDispatchesResourceToDetailPage(t *testing.T) {
	resources := &stubResourceService{deleteEnvelope: api.Envelope{Message: "Resource deleted successfully", Status: http.StatusOK}}
	h := NewDeleteHandler(testLogger(t), &stubCertService{}, resources, &stubSectionService{})
	router := gin.New()
	router.POST("/delete/:id", h.Delete)

	rec := postForm(t, router, "/delete/5", url.Values{"type": {"resource"}, "cert_id": {"1"}})
	flash := decodeFlash(t, rec)
	if flash.Redirect != "/certs/data/1" {
		t.Fatalf("resource deletes should send the user back to the cert page, got %+v", flash)
	}
	if resources.deletedID != 5 {
		t.Fatalf("expected resource 5 deleted, got %d", resources.deletedID)
	}
}

func TestDeleteNotFoundEnvelopeFlashesError(t *testing.T) {
	certs := &stubCertService{deleteEnvelope: api.Envelope{Message: "Cert not found", Status: http.StatusNotFound}}
	h := NewDeleteHandler(testLogger(t), certs, &stubResourceService{}, &stubSectionService{})
	router := gin.New()
	router.POST("/delete/:id", h.Delete)

	rec := postForm(t, router, "/delete/9", url.Values{"type": {"cert"}})
	flash := decodeFlash(t, rec)
	if flash.Category != "error" || flash.Message != "Cert not found" {
		t.Fatalf("unexpected flash %+v", flash)
	}
}

func TestDeleteUnknownType(t *testing.T) {
	h := NewDeleteHandler(testLogger(t), &stubCertService{}, &stubResourceService{}, &stubSectionService{})
	router := gin.New()
	router.POST("/delete/:id", h.Delete)

	rec := postForm(t, router, "/delete/1", url.Values{"type": {"wibble"}})
	flash := decodeFlash(t, rec)
	if flash.Category != "error" {
		t.Fatalf("unexpected flash %+v", flash)
	}
}

func TestSectionUpdateInlineToggleIs204(t *testing.T) {
	sections := &stubSectionService{updateMessage: "Section updated successfully"}
	h := NewSectionHandler(testLogger(t), sections)
	router := gin.New()
	router.POST("/update/section", h.Update)

	rec := postForm(t, router, "/update/section", url.Values{
		"section_id": {"1"},
		"cert_id":    {"1"},
		"number":     {"1"},
		"title":      {"Identity"},
		"cards_made": {"true"},
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("inline toggles must not flash, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestSectionUpdateSaveFlashes(t *testing.T) {
	sections := &stubSectionService{updateMessage: "Section updated successfully"}
	h := NewSectionHandler(testLogger(t), sections)
	router := gin.New()
	router.POST("/update/section", h.Update)

	rec := postForm(t, router, "/update/section", url.Values{
		"section_id": {"1"},
		"cert_id":    {"2"},
		"number":     {"1"},
		"title":      {"Identity"},
		"updated":    {"true"},
	})
	flash := decodeFlash(t, rec)
	if flash.Message != "Section updated successfully" || flash.Redirect != "/certs/data/2" {
		t.Fatalf("unexpected flash %+v", flash)
	}
}

func TestResourcePreviewNoDataIs204(t *testing.T) {
	h := NewResourceHandler(testLogger(t), &stubResourceService{})
	router := gin.New()
	router.POST("/create/resource/preview", h.Preview)

	rec := postForm(t, router, "/create/resource/preview", url.Values{"url": {"https://example.com"}})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("no Open Graph data must be a 204, got %d", rec.Code)
	}
}

func TestResourceCompleteNonCourseFlashesError(t *testing.T) {
	h := NewResourceHandler(testLogger(t), &stubResourceService{})
	router := gin.New()
	router.POST("/update/resource/complete", h.Complete)

	rec := postForm(t, router, "/update/resource/complete", url.Values{
		"resource_id":   {"5"},
		"cert_id":       {"1"},
		"resource_type": {"video"},
		"complete":      {"true"},
	})
	flash := decodeFlash(t, rec)
	if flash.Category != "error" || flash.Message != services.ErrNotCourse.Error() {
		t.Fatalf("unexpected flash %+v", flash)
	}
}
