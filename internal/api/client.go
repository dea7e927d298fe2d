package api

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "net/http"
  "time"

  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/types"
)

// requestTimeout bounds every call to the API. Timeouts and transport
// failures are fatal to the request in progress: there is no retry.
const requestTimeout = 2 * time.Second

// Client is the workflow layer's view of the internal API. The
// production implementation speaks loopback HTTP; tests substitute an
// in-memory fake.
type Client interface {
  GetAllCerts(ctx context.Context) ([]types.Cert, error)
  GetCert(ctx context.Context, certID uint) (*types.Cert, error)
  CreateCert(ctx context.Context, in CertCreate) (Envelope, error)
  UpdateCert(ctx context.Context, certID uint, in CertUpdate) (Envelope, error)
  DeleteCert(ctx context.Context, certID uint) (Envelope, error)

  GetAllResources(ctx context.Context) ([]types.Resource, error)
  GetResource(ctx context.Context, resourceID uint) (*types.Resource, error)
  CreateResource(ctx context.Context, in ResourceCreate) (Envelope, error)
  UpdateResource(ctx context.Context, resourceID uint, in ResourceUpdate) (Envelope, error)
  DeleteResource(ctx context.Context, resourceID uint) (Envelope, error)

  GetAllSections(ctx context.Context) ([]types.Section, error)
  GetSection(ctx context.Context, sectionID uint) (*types.Section, error)
  CreateSection(ctx context.Context, in SectionCreate) (Envelope, error)
  UpdateSection(ctx context.Context, sectionID uint, in SectionUpdate) (Envelope, error)
  DeleteSection(ctx context.Context, sectionID uint) (Envelope, error)
}

type httpClient struct {
  baseURL string
  http    *http.Client
  log     *logger.Logger
}

// NewClient returns a Client bound to baseURL, which already includes
// the version segment (e.g. http://127.0.0.1:8080/api/v1).
func NewClient(baseURL string, baseLog *logger.Logger) Client {
  clientLog := baseLog.With("service", "APIClient")
  return &httpClient{
    baseURL: baseURL,
    http:    &http.Client{Timeout: requestTimeout},
    log:     clientLog,
  }
}

func (hc *httpClient) get(ctx context.Context, path string, out any) error {
  req, err := http.NewRequestWithContext(ctx, http.MethodGet, hc.baseURL+path, nil)
  if err != nil {
    return fmt.Errorf("build request: %w", err)
  }
  resp, err := hc.http.Do(req)
  if err != nil {
    return fmt.Errorf("api get %s: %w", path, err)
  }
  defer resp.Body.Close()
  if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
    return fmt.Errorf("decode api response %s: %w", path, err)
  }
  return nil
}

func (hc *httpClient) send(ctx context.Context, method, path string, payload any) (Envelope, error) {
  var body *bytes.Reader
  if payload != nil {
    encoded, err := json.Marshal(payload)
    if err != nil {
      return Envelope{}, fmt.Errorf("encode api payload: %w", err)
    }
    body = bytes.NewReader(encoded)
  } else {
    body = bytes.NewReader(nil)
  }
  req, err := http.NewRequestWithContext(ctx, method, hc.baseURL+path, body)
  if err != nil {
    return Envelope{}, fmt.Errorf("build request: %w", err)
  }
  req.Header.Set("Content-Type", "application/json")
  resp, err := hc.http.Do(req)
  if err != nil {
    return Envelope{}, fmt.Errorf("api %s %s: %w", method, path, err)
  }
  defer resp.Body.Close()
  var envelope Envelope
  if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
    return Envelope{}, fmt.Errorf("decode api envelope %s: %w", path, err)
  }
  return envelope, nil
}

func (hc *httpClient) GetAllCerts(ctx context.Context) ([]types.Cert, error) {
  var certs []types.Cert
  if err := hc.get(ctx, "/cert", &certs); err != nil {
    return nil, err
  }
  return certs, nil
}

func (hc *httpClient) GetCert(ctx context.Context, certID uint) (*types.Cert, error) {
  var cert *types.Cert
  if err := hc.get(ctx, fmt.Sprintf("/cert/%d", certID), &cert); err != nil {
    return nil, err
  }
  return cert, nil
}

func (hc *httpClient) CreateCert(ctx context.Context, in CertCreate) (Envelope, error) {
  return hc.send(ctx, http.MethodPost, "/cert", in)
}

func (hc *httpClient) UpdateCert(ctx context.Context, certID uint, in CertUpdate) (Envelope, error) {
  return hc.send(ctx, http.MethodPut, fmt.Sprintf("/cert/%d", certID), in)
}

func (hc *httpClient) DeleteCert(ctx context.Context, certID uint) (Envelope, error) {
  return hc.send(ctx, http.MethodDelete, fmt.Sprintf("/cert/%d", certID), nil)
}

func (hc *httpClient) GetAllResources(ctx context.Context) ([]types.Resource, error) {
  var resources []types.Resource
  if err := hc.get(ctx, "/resource", &resources); err != nil {
    return nil, err
  }
  return resources, nil
}

func (hc *httpClient) GetResource(ctx context.Context, resourceID uint) (*types.Resource, error) {
  var resource *types.Resource
  if err := hc.get(ctx, fmt.Sprintf("/resource/%d", resourceID), &resource); err != nil {
    return nil, err
  }
  return resource, nil
}

func (hc *httpClient) CreateResource(ctx context.Context, in ResourceCreate) (Envelope, error) {
  return hc.send(ctx, http.MethodPost, "/resource", in)
}

func (hc *httpClient) UpdateResource(ctx context.Context, resourceID uint, in ResourceUpdate) (Envelope, error) {
  return hc.send(ctx, http.MethodPut, fmt.Sprintf("/resource/%d", resourceID), in)
}

func (hc *httpClient) DeleteResource(ctx context.Context, resourceID uint) (Envelope, error) {
  return hc.send(ctx, http.MethodDelete, fmt.Sprintf("/resource/%d", resourceID), nil)
}

func (hc *httpClient) GetAllSections(ctx context.Context) ([]types.Section, error) {
  var sections []types.Section
  if err := hc.get(ctx, "/section", &sections); err != nil {
    return nil, err
  }
  return sections, nil
}

func (hc *httpClient) GetSection(ctx context.Context, sectionID uint) (*types.Section, error) {
  var section *types.Section
  if err := hc.get(ctx, fmt.Sprintf("/section/%d", sectionID), &section); err != nil {
    return nil, err
  }
  return section, nil
}

func (hc *httpClient) CreateSection(ctx context.Context, in SectionCreate) (Envelope, error) {
  return hc.send(ctx, http.MethodPost, "/section", in)
}

func (hc *httpClient) UpdateSection(ctx context.Context, sectionID uint, in SectionUpdate) (Envelope, error) {
  return hc.send(ctx, http.MethodPut, fmt.Sprintf("/section/%d", sectionID), in)
}

func (hc *httpClient) DeleteSection(ctx context.Context, sectionID uint) (Envelope, error) {
  return hc.send(ctx, http.MethodDelete, fmt.Sprintf("/section/%d", sectionID), nil)
}
