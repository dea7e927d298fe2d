package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cwhitfield/cert-tracker/internal/types"
)

func newCertRouter(repo *fakeCertRepo, t *testing.T) *gin.Engine {
	a := NewCertAPI(testLogger(t), repo)
	router := gin.New()
	router.GET("/cert", a.GetAll)
	router.GET("/cert/:cert_id", a.Get)
	router.POST("/cert", a.Create)
	router.PUT("/cert/:cert_id", a.Update)
	router.DELETE("/cert/:cert_id", a.Delete)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var envelope Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return envelope
}

func TestCertGetMissingReturnsNull(t *testing.T) {
	router := newCertRouter(&fakeCertRepo{}, t)

	rec := doJSON(t, router, http.MethodGet, "/cert/42", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected transport 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected null body, got %q", rec.Body.String())
	}
}

func TestCertGetBadIDReturnsNull(t *testing.T) {
	router := newCertRouter(&fakeCertRepo{}, t)

	rec := doJSON(t, router, http.MethodGet, "/cert/notanumber", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected 200/null, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestCertCreateStampsCreatedAndClearsReminder(t *testing.T) {
	repo := &fakeCertRepo{}
	router := newCertRouter(repo, t)

	rec := doJSON(t, router, http.MethodPost, "/cert", `{"name":"Azure Administrator","code":"AZ-104","reminder":true}`)
	envelope := decodeEnvelope(t, rec)
	if envelope.Status != http.StatusOK || envelope.Message != "Cert created successfully" {
		t.Fatalf("unexpected envelope %+v", envelope)
	}
	if len(repo.certs) != 1 {
		t.Fatalf("expected one cert, got %d", len(repo.certs))
	}
	created := repo.certs[0]
	if created.Reminder {
		t.Fatalf("reminder must start false regardless of payload")
	}
	if want := time.Now().Format("02/01/2006"); created.Created != want {
		t.Fatalf("expected created stamp %q, got %q", want, created.Created)
	}
}

func TestCertUpdateMissingReturns404Envelope(t *testing.T) {
	router := newCertRouter(&fakeCertRepo{}, t)

	rec := doJSON(t, router, http.MethodPut, "/cert/7", `{"name":"X","code":"Y"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("not-found travels in the body, transport must stay 200, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Status != http.StatusNotFound || envelope.Message != "Cert not found" {
		t.Fatalf("unexpected envelope %+v", envelope)
	}
}

func TestCertUpdateWithoutReminderKeepsFlag(t *testing.T) {
	repo := &fakeCertRepo{certs: []types.Cert{
		{ID: 1, Name: "Azure Administrator", Code: "AZ-104", Reminder: true},
	}, nextID: 1}
	router := newCertRouter(repo, t)

	doJSON(t, router, http.MethodPut, "/cert/1", `{"name":"Azure Administrator","code":"AZ-104","tags":"cloud"}`)
	if !repo.certs[0].Reminder {
		t.Fatalf("an update that omits reminder must not clear it")
	}
	if repo.certs[0].Tags != "cloud" {
		t.Fatalf("other fields must still apply, got %+v", repo.certs[0])
	}
}

func TestCertUpdateWithReminderSetsFlag(t *testing.T) {
	repo := &fakeCertRepo{certs: []types.Cert{
		{ID: 1, Name: "Azure Administrator", Code: "AZ-104", Reminder: true},
	}, nextID: 1}
	router := newCertRouter(repo, t)

	doJSON(t, router, http.MethodPut, "/cert/1", `{"name":"Azure Administrator","code":"AZ-104","reminder":false}`)
	if repo.certs[0].Reminder {
		t.Fatalf("an explicit reminder value must be applied")
	}
}

func TestCertDeleteMissingReturns404Envelope(t *testing.T) {
	router := newCertRouter(&fakeCertRepo{}, t)

	rec := doJSON(t, router, http.MethodDelete, "/cert/9", "")
	envelope := decodeEnvelope(t, rec)
	if envelope.Status != http.StatusNotFound || envelope.Message != "Cert not found" {
		t.Fatalf("unexpected envelope %+v", envelope)
	}
}

func TestCertDelete(t *testing.T) {
	repo := &fakeCertRepo{certs: []types.Cert{{ID: 1, Name: "X", Code: "Y"}}, nextID: 1}
	router := newCertRouter(repo, t)

	rec := doJSON(t, router, http.MethodDelete, "/cert/1", "")
	envelope := decodeEnvelope(t, rec)
	if envelope.Status != http.StatusOK {
		t.Fatalf("unexpected envelope %+v", envelope)
	}
	if len(repo.certs) != 0 {
		t.Fatalf("cert should be gone")
	}
}
