package services

import (
  "context"
  "strings"

  "github.com/cwhitfield/cert-tracker/internal/api"
  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/types"
)

// ImportableSet splits importable resources by type for the detail
// view. Courses are excluded: duplicating section data across certs is
// not useful.
type ImportableSet struct {
  Videos    []types.Resource `json:"videos"`
  Articles  []types.Resource `json:"articles"`
  Documents []types.Resource `json:"documents"`
}

// CertDetail is everything the cert detail view renders.
type CertDetail struct {
  Cert       types.Cert       `json:"cert"`
  Courses    []types.Resource `json:"course_data"`
  Sections   []types.Section  `json:"section_data"`
  Videos     []types.Resource `json:"video_data"`
  Articles   []types.Resource `json:"article_data"`
  Documents  []types.Resource `json:"document_data"`
  Importable ImportableSet    `json:"resources"`
}

type ViewService interface {
  ListCerts(ctx context.Context) ([]types.Cert, error)
  CertDetail(ctx context.Context, certID uint) (*CertDetail, error)
  Search(ctx context.Context, query string) ([]types.Cert, error)
}

type viewService struct {
  log    *logger.Logger
  client api.Client
}

func NewViewService(baseLog *logger.Logger, client api.Client) ViewService {
  serviceLog := baseLog.With("service", "ViewService")
  return &viewService{log: serviceLog, client: client}
}

func (vs *viewService) ListCerts(ctx context.Context) ([]types.Cert, error) {
  return vs.client.GetAllCerts(ctx)
}

func (vs *viewService) CertDetail(ctx context.Context, certID uint) (*CertDetail, error) {
  cert, err := vs.client.GetCert(ctx, certID)
  if err != nil {
    return nil, err
  }
  if cert == nil {
    return nil, ErrCertNotFound
  }
  resources, err := vs.client.GetAllResources(ctx)
  if err != nil {
    return nil, err
  }
  // Sections are returned globally, not filtered by cert. Known
  // scoping quirk the detail view currently depends on.
  sections, err := vs.client.GetAllSections(ctx)
  if err != nil {
    return nil, err
  }

  importable := ImportableResources(resources, cert.ID)
  return &CertDetail{
    Cert:      *cert,
    Courses:   FilterByType(resources, cert.ID, types.ResourceTypeCourse),
    Sections:  sections,
    Videos:    FilterByType(resources, cert.ID, types.ResourceTypeVideo),
    Articles:  FilterByType(resources, cert.ID, types.ResourceTypeArticle),
    Documents: FilterByType(resources, cert.ID, types.ResourceTypeDocumentation),
    Importable: ImportableSet{
      Videos:    filterImportable(importable, types.ResourceTypeVideo),
      Articles:  filterImportable(importable, types.ResourceTypeArticle),
      Documents: filterImportable(importable, types.ResourceTypeDocumentation),
    },
  }, nil
}

// Search matches the query as a substring of name, code or tags. A
// name or code hit keeps scanning; a tag hit stops the scan (existing
// behaviour the results page relies on).
func (vs *viewService) Search(ctx context.Context, query string) ([]types.Cert, error) {
  if query == "" {
    return nil, ErrEmptySearch
  }
  certs, err := vs.client.GetAllCerts(ctx)
  if err != nil {
    return nil, err
  }
  var results []types.Cert
  for _, cert := range certs {
    if strings.Contains(cert.Name, query) {
      results = append(results, cert)
      continue
    }
    if strings.Contains(cert.Code, query) {
      results = append(results, cert)
      continue
    }
    if strings.Contains(cert.Tags, query) {
      results = append(results, cert)
      break
    }
  }
  return results, nil
}

// FilterByType returns the resources on certID with the given type.
func FilterByType(resources []types.Resource, certID uint, resourceType string) []types.Resource {
  var filtered []types.Resource
  for _, r := range resources {
    if r.CertID == certID && r.ResourceType == resourceType {
      filtered = append(filtered, r)
    }
  }
  return filtered
}

// ImportableResources computes the resources available to copy into
// certID from other certs: foreign resources de-duplicated by title
// (the later occurrence in iteration order wins), minus any title the
// cert already has. Pure; deterministic for a fixed input order.
func ImportableResources(resources []types.Resource, certID uint) []types.Resource {
  var local, foreign []types.Resource
  for _, r := range resources {
    if r.CertID == certID {
      local = append(local, r)
    } else {
      foreign = append(foreign, r)
    }
  }

  // title order tracks first sight; the index map keeps the last
  lastIdx := map[string]int{}
  var titleOrder []string
  for i, r := range foreign {
    if _, seen := lastIdx[r.Title]; !seen {
      titleOrder = append(titleOrder, r.Title)
    }
    lastIdx[r.Title] = i
  }

  localTitles := map[string]bool{}
  for _, r := range local {
    localTitles[r.Title] = true
  }

  var importable []types.Resource
  for _, title := range titleOrder {
    if localTitles[title] {
      continue
    }
    importable = append(importable, foreign[lastIdx[title]])
  }
  return importable
}

func filterImportable(resources []types.Resource, resourceType string) []types.Resource {
  var filtered []types.Resource
  for _, r := range resources {
    if r.ResourceType == resourceType {
      filtered = append(filtered, r)
    }
  }
  return filtered
}
