package api

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cwhitfield/cert-tracker/internal/types"
)

// newAPIServer wires the three record APIs behind a real HTTP listener
// the way the server does, so the loopback client is exercised
// end-to-end.
func newAPIServer(t *testing.T) (Client, *fakeCertRepo) {
	t.Helper()
	log := testLogger(t)
	certRepo := &fakeCertRepo{}
	certAPI := NewCertAPI(log, certRepo)

	router := gin.New()
	router.GET("/cert", certAPI.GetAll)
	router.GET("/cert/:cert_id", certAPI.Get)
	router.POST("/cert", certAPI.Create)
	router.PUT("/cert/:cert_id", certAPI.Update)
	router.DELETE("/cert/:cert_id", certAPI.Delete)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, log), certRepo
}

func TestClientCertRoundTrip(t *testing.T) {
	client, _ := newAPIServer(t)
	ctx := context.Background()

	envelope, err := client.CreateCert(ctx, CertCreate{Name: "Azure Administrator", Code: "AZ-104"})
	if err != nil {
		t.Fatalf("CreateCert: %v", err)
	}
	if envelope.Status != 200 {
		t.Fatalf("unexpected envelope %+v", envelope)
	}

	certs, err := client.GetAllCerts(ctx)
	if err != nil {
		t.Fatalf("GetAllCerts: %v", err)
	}
	if len(certs) != 1 || certs[0].Name != "Azure Administrator" {
		t.Fatalf("unexpected certs %+v", certs)
	}

	cert, err := client.GetCert(ctx, certs[0].ID)
	if err != nil {
		t.Fatalf("GetCert: %v", err)
	}
	if cert == nil || cert.Code != "AZ-104" {
		t.Fatalf("unexpected cert %+v", cert)
	}
}

func TestClientGetCertMissingIsNil(t *testing.T) {
	client, _ := newAPIServer(t)

	cert, err := client.GetCert(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetCert: %v", err)
	}
	if cert != nil {
		t.Fatalf("a null body must decode to nil, got %+v", cert)
	}
}

func TestClientDeleteMissingCarries404Envelope(t *testing.T) {
	client, _ := newAPIServer(t)

	envelope, err := client.DeleteCert(context.Background(), 42)
	if err != nil {
		t.Fatalf("DeleteCert: %v", err)
	}
	if envelope.Status != 404 || envelope.Message != "Cert not found" {
		t.Fatalf("unexpected envelope %+v", envelope)
	}
}

func TestClientUpdatePreservesReminderWhenOmitted(t *testing.T) {
	client, repo := newAPIServer(t)
	repo.certs = []types.Cert{{ID: 1, Name: "X", Code: "Y", Reminder: true}}
	repo.nextID = 1

	if _, err := client.UpdateCert(context.Background(), 1, CertUpdate{Name: "X", Code: "Y"}); err != nil {
		t.Fatalf("UpdateCert: %v", err)
	}
	if !repo.certs[0].Reminder {
		t.Fatalf("omitted reminder must not clear the stored flag")
	}
}
