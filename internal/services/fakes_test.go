package services

import (
	"context"
	"net/http"
	"path"
	"testing"

	"github.com/cwhitfield/cert-tracker/internal/api"
	"github.com/cwhitfield/cert-tracker/internal/images"
	"github.com/cwhitfield/cert-tracker/internal/logger"
	"github.com/cwhitfield/cert-tracker/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type certUpdateCall struct {
	id      uint
	payload api.CertUpdate
}

type resourceUpdateCall struct {
	id      uint
	payload api.ResourceUpdate
}

// fakeClient is an in-memory stand-in for the loopback API client. It
// records every mutation so tests can assert ordering and payloads.
type fakeClient struct {
	certs     []types.Cert
	resources []types.Resource
	sections  []types.Section

	createdCerts     []api.CertCreate
	createdResources []api.ResourceCreate
	createdSections  []api.SectionCreate
	certUpdates      []certUpdateCall
	resourceUpdates  []resourceUpdateCall
	sectionUpdates   []api.SectionUpdate
	deletedCerts     []uint
	deletedResources []uint
	deletedSections  []uint
}

func okEnvelope(message string) api.Envelope {
	return api.Envelope{Message: message, Status: http.StatusOK}
}

func (f *fakeClient) GetAllCerts(ctx context.Context) ([]types.Cert, error) {
	return f.certs, nil
}

func (f *fakeClient) GetCert(ctx context.Context, certID uint) (*types.Cert, error) {
	for i := range f.certs {
		if f.certs[i].ID == certID {
			cert := f.certs[i]
			return &cert, nil
		}
	}
	return nil, nil
}

func (f *fakeClient) CreateCert(ctx context.Context, in api.CertCreate) (api.Envelope, error) {
	f.createdCerts = append(f.createdCerts, in)
	return okEnvelope("Cert created successfully"), nil
}

func (f *fakeClient) UpdateCert(ctx context.Context, certID uint, in api.CertUpdate) (api.Envelope, error) {
	f.certUpdates = append(f.certUpdates, certUpdateCall{id: certID, payload: in})
	return okEnvelope("Cert updated successfully"), nil
}

func (f *fakeClient) DeleteCert(ctx context.Context, certID uint) (api.Envelope, error) {
	for _, cert := range f.certs {
		if cert.ID == certID {
			f.deletedCerts = append(f.deletedCerts, certID)
			return okEnvelope("Cert deleted successfully"), nil
		}
	}
	return api.Envelope{Message: "Cert not found", Status: http.StatusNotFound}, nil
}

func (f *fakeClient) GetAllResources(ctx context.Context) ([]types.Resource, error) {
	return f.resources, nil
}

func (f *fakeClient) GetResource(ctx context.Context, resourceID uint) (*types.Resource, error) {
	for i := range f.resources {
		if f.resources[i].ID == resourceID {
			resource := f.resources[i]
			return &resource, nil
		}
	}
	return nil, nil
}

func (f *fakeClient) CreateResource(ctx context.Context, in api.ResourceCreate) (api.Envelope, error) {
	f.createdResources = append(f.createdResources, in)
	return okEnvelope("Resource created successfully"), nil
}

func (f *fakeClient) UpdateResource(ctx context.Context, resourceID uint, in api.ResourceUpdate) (api.Envelope, error) {
	f.resourceUpdates = append(f.resourceUpdates, resourceUpdateCall{id: resourceID, payload: in})
	return okEnvelope("Resource updated successfully"), nil
}

func (f *fakeClient) DeleteResource(ctx context.Context, resourceID uint) (api.Envelope, error) {
	for _, resource := range f.resources {
		if resource.ID == resourceID {
			f.deletedResources = append(f.deletedResources, resourceID)
			return okEnvelope("Resource deleted successfully"), nil
		}
	}
	return api.Envelope{Message: "Resource not found", Status: http.StatusNotFound}, nil
}

func (f *fakeClient) GetAllSections(ctx context.Context) ([]types.Section, error) {
	return f.sections, nil
}

func (f *fakeClient) GetSection(ctx context.Context, sectionID uint) (*types.Section, error) {
	for i := range f.sections {
		if f.sections[i].ID == sectionID {
			section := f.sections[i]
			return &section, nil
		}
	}
	return nil, nil
}

func (f *fakeClient) CreateSection(ctx context.Context, in api.SectionCreate) (api.Envelope, error) {
	f.createdSections = append(f.createdSections, in)
	return okEnvelope("Section created successfully"), nil
}

func (f *fakeClient) UpdateSection(ctx context.Context, sectionID uint, in api.SectionUpdate) (api.Envelope, error) {
	f.sectionUpdates = append(f.sectionUpdates, in)
	return okEnvelope("Section updated successfully"), nil
}

func (f *fakeClient) DeleteSection(ctx context.Context, sectionID uint) (api.Envelope, error) {
	for _, section := range f.sections {
		if section.ID == sectionID {
			f.deletedSections = append(f.deletedSections, sectionID)
			return okEnvelope("Section deleted successfully"), nil
		}
	}
	return api.Envelope{Message: "Section not found", Status: http.StatusNotFound}, nil
}

// fakeImageStore records saves and removals without touching disk.
type fakeImageStore struct {
	saved   []string
	logos   []string
	removed []string
}

func (f *fakeImageStore) SaveData(certDir string, up images.Upload) (string, error) {
	stored := path.Join(certDir, up.Filename)
	f.saved = append(f.saved, stored)
	return stored, nil
}

func (f *fakeImageStore) SaveLogo(up images.Upload) (string, error) {
	f.logos = append(f.logos, up.Filename)
	return up.Filename, nil
}

func (f *fakeImageStore) Remove(certDir string) error {
	f.removed = append(f.removed, certDir)
	return nil
}
