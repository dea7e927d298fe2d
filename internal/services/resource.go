package services

import (
  "context"
  "errors"
  "net/http"

  "github.com/cwhitfield/cert-tracker/internal/api"
  "github.com/cwhitfield/cert-tracker/internal/images"
  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/opengraph"
  "github.com/cwhitfield/cert-tracker/internal/types"
  "github.com/cwhitfield/cert-tracker/internal/utils"
)

// ResourceInput carries the submitted resource form. OGImage and
// OGSiteLogo are values carried over from a prior Open Graph
// resolution; they rank below a fresh upload and above the defaults.
type ResourceInput struct {
  CertID       uint
  ResourceType string
  URL          string
  Title        string
  SiteName     string
  Description  string
  Image        *images.Upload
  SiteLogo     *images.Upload
  OGImage      string
  OGSiteLogo   string
  HasOGData    bool
}

type ResourceService interface {
  Create(ctx context.Context, in ResourceInput) (string, error)
  ResolveOpenGraph(ctx context.Context, rawURL string) (*opengraph.Data, bool)
  Import(ctx context.Context, certID uint, resourceIDs []uint) (string, error)
  Update(ctx context.Context, resourceID uint, in ResourceInput) (string, error)
  SetComplete(ctx context.Context, resourceID uint, resourceType string, complete bool) (string, error)
  Delete(ctx context.Context, resourceID uint) (api.Envelope, error)
}

type resourceService struct {
  log        *logger.Logger
  client     api.Client
  imageStore images.Store
  og         *opengraph.Fetcher
}

func NewResourceService(
  baseLog *logger.Logger,
  client api.Client,
  imageStore images.Store,
  og *opengraph.Fetcher,
) ResourceService {
  serviceLog := baseLog.With("service", "ResourceService")
  return &resourceService{
    log:        serviceLog,
    client:     client,
    imageStore: imageStore,
    og:         og,
  }
}

// Create checks title/URL uniqueness on the target cert (title first)
// before any upload or Open Graph work happens, then posts the record.
func (rs *resourceService) Create(ctx context.Context, in ResourceInput) (string, error) {
  if err := rs.checkUnique(ctx, in.CertID, in.Title, in.URL); err != nil {
    return "", err
  }
  cert, err := rs.client.GetCert(ctx, in.CertID)
  if err != nil {
    return "", err
  }
  if cert == nil {
    return "", ErrCertNotFound
  }

  image := in.OGImage
  if in.Image != nil {
    saved, err := rs.imageStore.SaveData(utils.NormalizeCode(cert.Code), *in.Image)
    if err != nil {
      return "", err
    }
    image = saved
  }
  logo := in.OGSiteLogo
  if in.SiteLogo != nil {
    saved, err := rs.imageStore.SaveLogo(*in.SiteLogo)
    if err != nil {
      return "", err
    }
    logo = saved
  }

  envelope, err := rs.client.CreateResource(ctx, api.ResourceCreate{
    CertID:       in.CertID,
    ResourceType: in.ResourceType,
    URL:          in.URL,
    Title:        in.Title,
    Image:        image,
    Description:  in.Description,
    SiteLogo:     logo,
    SiteName:     in.SiteName,
    HasOGData:    in.HasOGData,
    Complete:     false,
  })
  if err != nil {
    return "", err
  }
  if envelope.Status != http.StatusOK {
    rs.log.Error("Create resource rejected by API", "status", envelope.Status, "message", envelope.Message)
    return "", errors.New("Create resource failed")
  }
  return envelope.Message, nil
}

// ResolveOpenGraph attempts metadata extraction for the URL. False
// means "no data": unreachable hosts, malformed URLs and pages without
// og: tags are indistinguishable to the caller.
func (rs *resourceService) ResolveOpenGraph(ctx context.Context, rawURL string) (*opengraph.Data, bool) {
  data, ok := rs.og.Resolve(ctx, rawURL)
  if !ok {
    return nil, false
  }
  return &data, true
}

// Import clones each selected resource under certID with a fresh
// identifier. A full create per resource, not a link.
func (rs *resourceService) Import(ctx context.Context, certID uint, resourceIDs []uint) (string, error) {
  if len(resourceIDs) == 0 {
    return "", ErrNoImportSelection
  }
  for _, resourceID := range resourceIDs {
    resource, err := rs.client.GetResource(ctx, resourceID)
    if err != nil {
      return "", err
    }
    if resource == nil {
      continue
    }
    if _, err := rs.client.CreateResource(ctx, api.ResourceCreate{
      CertID:       certID,
      ResourceType: resource.ResourceType,
      URL:          resource.URL,
      Title:        resource.Title,
      Image:        resource.Image,
      Description:  resource.Description,
      SiteLogo:     resource.SiteLogo,
      SiteName:     resource.SiteName,
      HasOGData:    resource.HasOGData,
      Complete:     resource.Complete,
    }); err != nil {
      return "", err
    }
  }
  return "Resources imported successfully", nil
}

// Update overlays the submitted fields on the stored record and writes
// the full merged representation back. Images are re-uploaded only
// when new files were provided.
func (rs *resourceService) Update(ctx context.Context, resourceID uint, in ResourceInput) (string, error) {
  resource, err := rs.client.GetResource(ctx, resourceID)
  if err != nil {
    return "", err
  }
  if resource == nil {
    return "", ErrResourceNotFound
  }

  image := resource.Image
  if in.Image != nil {
    cert, err := rs.client.GetCert(ctx, resource.CertID)
    if err != nil {
      return "", err
    }
    if cert == nil {
      return "", ErrCertNotFound
    }
    saved, err := rs.imageStore.SaveData(utils.NormalizeCode(cert.Code), *in.Image)
    if err != nil {
      return "", err
    }
    image = saved
  }
  logo := resource.SiteLogo
  if in.SiteLogo != nil {
    saved, err := rs.imageStore.SaveLogo(*in.SiteLogo)
    if err != nil {
      return "", err
    }
    logo = saved
  }

  envelope, err := rs.client.UpdateResource(ctx, resourceID, api.ResourceUpdate{
    ResourceType: in.ResourceType,
    URL:          in.URL,
    Title:        in.Title,
    Image:        image,
    Description:  in.Description,
    SiteLogo:     logo,
    SiteName:     in.SiteName,
    Complete:     resource.Complete,
  })
  if err != nil {
    return "", err
  }
  if envelope.Status != http.StatusOK {
    return "", errors.New(envelope.Message)
  }
  return envelope.Message, nil
}

// SetComplete flips the complete flag, allowed for course resources
// only. Other types are rejected with no data change.
func (rs *resourceService) SetComplete(ctx context.Context, resourceID uint, resourceType string, complete bool) (string, error) {
  if resourceType != types.ResourceTypeCourse {
    return "", ErrNotCourse
  }
  resource, err := rs.client.GetResource(ctx, resourceID)
  if err != nil {
    return "", err
  }
  if resource == nil {
    return "", ErrResourceNotFound
  }

  envelope, err := rs.client.UpdateResource(ctx, resourceID, api.ResourceUpdate{
    ResourceType: resource.ResourceType,
    URL:          resource.URL,
    Title:        resource.Title,
    Image:        resource.Image,
    Description:  resource.Description,
    SiteLogo:     resource.SiteLogo,
    SiteName:     resource.SiteName,
    Complete:     complete,
  })
  if err != nil {
    return "", err
  }
  if envelope.Status != http.StatusOK {
    return "", errors.New("Failed to update cert")
  }
  return envelope.Message, nil
}

// Delete removes a resource; course resources cascade to their
// sections first.
func (rs *resourceService) Delete(ctx context.Context, resourceID uint) (api.Envelope, error) {
  resource, err := rs.client.GetResource(ctx, resourceID)
  if err != nil {
    return api.Envelope{}, err
  }
  if resource != nil && resource.ResourceType == types.ResourceTypeCourse {
    sections, err := rs.client.GetAllSections(ctx)
    if err != nil {
      return api.Envelope{}, err
    }
    for _, section := range sections {
      if section.ResourceID != resourceID {
        continue
      }
      if _, err := rs.client.DeleteSection(ctx, section.ID); err != nil {
        return api.Envelope{}, err
      }
    }
  }
  return rs.client.DeleteResource(ctx, resourceID)
}

// checkUnique scans the cert's resources: title before URL.
func (rs *resourceService) checkUnique(ctx context.Context, certID uint, title, url string) error {
  resources, err := rs.client.GetAllResources(ctx)
  if err != nil {
    return err
  }
  for _, resource := range resources {
    if resource.CertID != certID {
      continue
    }
    if resource.Title == title {
      return &DuplicateError{Field: "Title"}
    }
    if resource.URL == url {
      return &DuplicateError{Field: "URL"}
    }
  }
  return nil
}
