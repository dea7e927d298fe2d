package services

import (
  "context"
  "encoding/json"
  "errors"
  "net/http"
  "strconv"

  "github.com/cwhitfield/cert-tracker/internal/api"
  "github.com/cwhitfield/cert-tracker/internal/logger"
)

// SectionInput carries the submitted section form fields.
type SectionInput struct {
  Number    int
  Title     string
  CardsMade bool
  Complete  bool
}

type SectionService interface {
  Create(ctx context.Context, certID, resourceID uint, number int, title string) (string, error)
  ImportJSON(ctx context.Context, certID, resourceID uint, raw string) (string, error)
  Update(ctx context.Context, sectionID uint, in SectionInput) (string, error)
  Delete(ctx context.Context, sectionID uint) (api.Envelope, error)
}

type sectionService struct {
  log    *logger.Logger
  client api.Client
}

func NewSectionService(baseLog *logger.Logger, client api.Client) SectionService {
  serviceLog := baseLog.With("service", "SectionService")
  return &sectionService{log: serviceLog, client: client}
}

func (ss *sectionService) Create(ctx context.Context, certID, resourceID uint, number int, title string) (string, error) {
  envelope, err := ss.client.CreateSection(ctx, api.SectionCreate{
    CertID:     certID,
    ResourceID: resourceID,
    Number:     number,
    Title:      title,
  })
  if err != nil {
    return "", err
  }
  if envelope.Status != http.StatusOK {
    return "", errors.New("Create section failed")
  }
  return envelope.Message, nil
}

// ImportJSON bulk-creates sections from a user-submitted document of
// the form {"sections": [{"number": 1, "title": "..."}, ...]}.
// Validation runs as a separate pre-pass over the whole array, in
// order: parse, list presence, field count, field names. Any failure
// aborts with zero sections created; partial success cannot occur.
func (ss *sectionService) ImportJSON(ctx context.Context, certID, resourceID uint, raw string) (string, error) {
  var doc map[string]any
  if err := json.Unmarshal([]byte(raw), &doc); err != nil {
    return "", ErrBadImportJSON
  }
  list, ok := doc["sections"].([]any)
  if !ok {
    return "", ErrNoSectionList
  }
  for _, element := range list {
    fields, isObject := element.(map[string]any)
    if !isObject || len(fields) != 2 {
      return "", ErrSectionFieldCount
    }
    if _, ok := fields["number"]; !ok {
      return "", ErrSectionFields
    }
    if _, ok := fields["title"]; !ok {
      return "", ErrSectionFields
    }
  }

  for _, element := range list {
    fields := element.(map[string]any)
    title, _ := fields["title"].(string)
    if _, err := ss.client.CreateSection(ctx, api.SectionCreate{
      CertID:     certID,
      ResourceID: resourceID,
      Number:     sectionNumber(fields["number"]),
      Title:      title,
    }); err != nil {
      return "", err
    }
  }
  return "JSON imported successfully", nil
}

// Update overlays the submitted fields on the stored section and
// writes the full record back.
func (ss *sectionService) Update(ctx context.Context, sectionID uint, in SectionInput) (string, error) {
  section, err := ss.client.GetSection(ctx, sectionID)
  if err != nil {
    return "", err
  }
  if section == nil {
    return "", ErrSectionNotFound
  }

  envelope, err := ss.client.UpdateSection(ctx, sectionID, api.SectionUpdate{
    Number:    in.Number,
    Title:     in.Title,
    CardsMade: in.CardsMade,
    Complete:  in.Complete,
  })
  if err != nil {
    return "", err
  }
  if envelope.Status != http.StatusOK {
    return "", errors.New(envelope.Message)
  }
  return envelope.Message, nil
}

func (ss *sectionService) Delete(ctx context.Context, sectionID uint) (api.Envelope, error) {
  return ss.client.DeleteSection(ctx, sectionID)
}

// sectionNumber tolerates the number arriving as a JSON number or a
// numeric string.
func sectionNumber(v any) int {
  switch n := v.(type) {
  case float64:
    return int(n)
  case string:
    parsed, err := strconv.Atoi(n)
    if err != nil {
      return 0
    }
    return parsed
  default:
    return 0
  }
}
