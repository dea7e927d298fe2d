package api

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cwhitfield/cert-tracker/internal/logger"
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

type fakeCertRepo struct {
	certs  []types.Cert
	nextID uint
}

func (f *fakeCertRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.Cert, error) {
	return f.certs, nil
}

func (f *fakeCertRepo) GetByID(ctx context.Context, tx *gorm.DB, certID uint) (*types.Cert, error) {
	for i := range f.certs {
		if f.certs[i].ID == certID {
			cert := f.certs[i]
			return &cert, nil
		}
	}
	return nil, nil
}

func (f *fakeCertRepo) Create(ctx context.Context, tx *gorm.DB, cert *types.Cert) (*types.Cert, error) {
	f.nextID++
	cert.ID = f.nextID
	f.certs = append(f.certs, *cert)
	return cert, nil
}

func (f *fakeCertRepo) Update(ctx context.Context, tx *gorm.DB, cert *types.Cert) error {
	for i := range f.certs {
		if f.certs[i].ID == cert.ID {
			f.certs[i] = *cert
			return nil
		}
	}
	return nil
}

func (f *fakeCertRepo) Delete(ctx context.Context, tx *gorm.DB, certID uint) (int64, error) {
	for i := range f.certs {
		if f.certs[i].ID == certID {
			f.certs = append(f.certs[:i], f.certs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeResourceRepo struct {
	resources []types.Resource
	nextID    uint
}

func (f *fakeResourceRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.Resource, error) {
	return f.resources, nil
}

func (f *fakeResourceRepo) GetByID(ctx context.Context, tx *gorm.DB, resourceID uint) (*types.Resource, error) {
	for i := range f.resources {
		if f.resources[i].ID == resourceID {
			resource := f.resources[i]
			return &resource, nil
		}
	}
	return nil, nil
}

func (f *fakeResourceRepo) Create(ctx context.Context, tx *gorm.DB, resource *types.Resource) (*types.Resource, error) {
	f.nextID++
	resource.ID = f.nextID
	f.resources = append(f.resources, *resource)
	return resource, nil
}

func (f *fakeResourceRepo) Update(ctx context.Context, tx *gorm.DB, resource *types.Resource) error {
	for i := range f.resources {
		if f.resources[i].ID == resource.ID {
			f.resources[i] = *resource
			return nil
		}
	}
	return nil
}

func (f *fakeResourceRepo) Delete(ctx context.Context, tx *gorm.DB, resourceID uint) (int64, error) {
	for i := range f.resources {
		if f.resources[i].ID == resourceID {
			f.resources = append(f.resources[:i], f.resources[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeSectionRepo struct {
	sections []types.Section
	nextID   uint
}

func (f *fakeSectionRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.Section, error) {
	return f.sections, nil
}

func (f *fakeSectionRepo) GetByID(ctx context.Context, tx *gorm.DB, sectionID uint) (*types.Section, error) {
	for i := range f.sections {
		if f.sections[i].ID == sectionID {
			section := f.sections[i]
			return &section, nil
		}
	}
	return nil, nil
}

func (f *fakeSectionRepo) Create(ctx context.Context, tx *gorm.DB, section *types.Section) (*types.Section, error) {
	f.nextID++
	section.ID = f.nextID
	f.sections = append(f.sections, *section)
	return section, nil
}

func (f *fakeSectionRepo) Update(ctx context.Context, tx *gorm.DB, section *types.Section) error {
	for i := range f.sections {
		if f.sections[i].ID == section.ID {
			f.sections[i] = *section
			return nil
		}
	}
	return nil
}

func (f *fakeSectionRepo) Delete(ctx context.Context, tx *gorm.DB, sectionID uint) (int64, error) {
	for i := range f.sections {
		if f.sections[i].ID == sectionID {
			f.sections = append(f.sections[:i], f.sections[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}
