package services

import (
  "context"
  "errors"
  "net/http"
  "strings"
  "time"

  "github.com/cwhitfield/cert-tracker/internal/api"
  "github.com/cwhitfield/cert-tracker/internal/images"
  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/reminders"
  "github.com/cwhitfield/cert-tracker/internal/utils"
)

// reminderCreatedFormat stamps the reminder entry's creation date.
const reminderCreatedFormat = "02-01-2006"

// CertInput carries the submitted cert form fields. Image uploads are
// nil when the user left the file field empty.
type CertInput struct {
  Name     string
  Code     string
  Tags     string
  HeadImg  *images.Upload
  BadgeImg *images.Upload
}

type CertService interface {
  Create(ctx context.Context, in CertInput) (string, error)
  Update(ctx context.Context, certID uint, in CertInput) (string, error)
  UpdateExamDate(ctx context.Context, certID uint, examDate string) (string, error)
  SetReminder(ctx context.Context, certID uint, frequency, startingFrom string) (string, error)
  DeleteReminder(ctx context.Context, certID uint) (string, error)
  Delete(ctx context.Context, certID uint) (api.Envelope, error)
}

type certService struct {
  log        *logger.Logger
  client     api.Client
  imageStore images.Store
  reminders  *reminders.Store
}

func NewCertService(
  baseLog *logger.Logger,
  client api.Client,
  imageStore images.Store,
  reminderStore *reminders.Store,
) CertService {
  serviceLog := baseLog.With("service", "CertService")
  return &certService{
    log:        serviceLog,
    client:     client,
    imageStore: imageStore,
    reminders:  reminderStore,
  }
}

// Create validates name/code uniqueness (name checked first), saves
// any uploaded images under the cert's normalized directory and posts
// the record to the API. No image is written when uniqueness fails.
func (cs *certService) Create(ctx context.Context, in CertInput) (string, error) {
  if err := cs.checkUnique(ctx, in.Name, in.Code); err != nil {
    return "", err
  }

  certDir := utils.NormalizeCode(in.Code)
  headImg := images.DefaultHead
  if in.HeadImg != nil {
    saved, err := cs.imageStore.SaveData(certDir, *in.HeadImg)
    if err != nil {
      return "", err
    }
    headImg = saved
  }
  badgeImg := images.DefaultBadge
  if in.BadgeImg != nil {
    saved, err := cs.imageStore.SaveData(certDir, *in.BadgeImg)
    if err != nil {
      return "", err
    }
    badgeImg = saved
  }

  envelope, err := cs.client.CreateCert(ctx, api.CertCreate{
    Name:     in.Name,
    Code:     in.Code,
    HeadImg:  headImg,
    BadgeImg: badgeImg,
    Tags:     in.Tags,
  })
  if err != nil {
    return "", err
  }
  if envelope.Status != http.StatusOK {
    cs.log.Error("Create cert rejected by API", "status", envelope.Status, "message", envelope.Message)
    return "", errors.New("Create cert failed")
  }
  return envelope.Message, nil
}

// Update merges the submitted fields into the stored record.
// Uniqueness is only enforced at creation; image paths are replaced
// only when a new upload arrived.
func (cs *certService) Update(ctx context.Context, certID uint, in CertInput) (string, error) {
  cert, err := cs.client.GetCert(ctx, certID)
  if err != nil {
    return "", err
  }
  if cert == nil {
    return "", ErrCertNotFound
  }

  certDir := utils.NormalizeCode(in.Code)
  headImg := cert.HeadImg
  if in.HeadImg != nil {
    saved, err := cs.imageStore.SaveData(certDir, *in.HeadImg)
    if err != nil {
      return "", err
    }
    headImg = saved
  }
  badgeImg := cert.BadgeImg
  if in.BadgeImg != nil {
    saved, err := cs.imageStore.SaveData(certDir, *in.BadgeImg)
    if err != nil {
      return "", err
    }
    badgeImg = saved
  }

  envelope, err := cs.client.UpdateCert(ctx, certID, api.CertUpdate{
    Name:     in.Name,
    Code:     in.Code,
    HeadImg:  headImg,
    BadgeImg: badgeImg,
    ExamDate: cert.ExamDate,
    Tags:     in.Tags,
  })
  if err != nil {
    return "", err
  }
  if envelope.Status != http.StatusOK {
    return "", errors.New(envelope.Message)
  }
  return envelope.Message, nil
}

// UpdateExamDate stores the submitted yyyy-mm-dd date in the display
// order dd/mm/yyyy by reversing its segments.
func (cs *certService) UpdateExamDate(ctx context.Context, certID uint, examDate string) (string, error) {
  if examDate == "" {
    return "", ErrEmptyDate
  }
  cert, err := cs.client.GetCert(ctx, certID)
  if err != nil {
    return "", err
  }
  if cert == nil {
    return "", ErrCertNotFound
  }

  segments := strings.Split(examDate, "-")
  reverse(segments)
  envelope, err := cs.client.UpdateCert(ctx, certID, api.CertUpdate{
    Name:     cert.Name,
    Code:     cert.Code,
    HeadImg:  cert.HeadImg,
    BadgeImg: cert.BadgeImg,
    ExamDate: strings.Join(segments, "/"),
    Tags:     cert.Tags,
    Reminder: &cert.Reminder,
  })
  if err != nil {
    return "", err
  }
  if envelope.Status != http.StatusOK {
    return "", errors.New("Failed to update cert")
  }
  return envelope.Message, nil
}

// SetReminder writes (or overwrites) the reminder entry keyed by the
// cert's normalized code and mirrors the flag onto the cert record.
// The entry stores the exam date dash-separated in reversed segment
// order, intentionally distinct from the cert's slash display format.
func (cs *certService) SetReminder(ctx context.Context, certID uint, frequency, startingFrom string) (string, error) {
  if startingFrom == "" {
    return "", ErrEmptyDate
  }
  cert, err := cs.client.GetCert(ctx, certID)
  if err != nil {
    return "", err
  }
  if cert == nil {
    return "", ErrCertNotFound
  }

  code := utils.NormalizeCode(cert.Code)
  segments := strings.Split(cert.ExamDate, "/")
  reverse(segments)
  entry := reminders.Entry{
    Created:      time.Now().Format(reminderCreatedFormat),
    Name:         cert.Name,
    Code:         cert.Code,
    ExamDate:     strings.Join(segments, "-"),
    Frequency:    frequency,
    StartingFrom: startingFrom,
  }
  if err := cs.reminders.Set(code, entry); err != nil {
    return "", err
  }

  enabled := true
  if _, err := cs.client.UpdateCert(ctx, certID, api.CertUpdate{
    Name:     cert.Name,
    Code:     cert.Code,
    HeadImg:  cert.HeadImg,
    BadgeImg: cert.BadgeImg,
    ExamDate: cert.ExamDate,
    Tags:     cert.Tags,
    Reminder: &enabled,
  }); err != nil {
    return "", err
  }
  return "Email reminder set", nil
}

// DeleteReminder removes the entry and clears the cert's flag. A
// missing entry is a distinct user-facing error and leaves the flag
// untouched.
func (cs *certService) DeleteReminder(ctx context.Context, certID uint) (string, error) {
  cert, err := cs.client.GetCert(ctx, certID)
  if err != nil {
    return "", err
  }
  if cert == nil {
    return "", ErrCertNotFound
  }

  deleted, err := cs.reminders.Delete(utils.NormalizeCode(cert.Code))
  if err != nil {
    return "", err
  }
  if !deleted {
    return "", ErrReminderNotSet
  }

  disabled := false
  if _, err := cs.client.UpdateCert(ctx, certID, api.CertUpdate{
    Name:     cert.Name,
    Code:     cert.Code,
    HeadImg:  cert.HeadImg,
    BadgeImg: cert.BadgeImg,
    ExamDate: cert.ExamDate,
    Tags:     cert.Tags,
    Reminder: &disabled,
  }); err != nil {
    return "", err
  }
  return "Email reminder deleted", nil
}

// Delete cascades: the cert's sections, then its resources, then the
// uploaded image directory, then the cert itself. One API call per
// record; a failure mid-sequence leaves partial state behind.
func (cs *certService) Delete(ctx context.Context, certID uint) (api.Envelope, error) {
  cert, err := cs.client.GetCert(ctx, certID)
  if err != nil {
    return api.Envelope{}, err
  }
  if cert == nil {
    return api.Envelope{}, ErrCertNotFound
  }

  sections, err := cs.client.GetAllSections(ctx)
  if err != nil {
    return api.Envelope{}, err
  }
  for _, section := range sections {
    if section.CertID != certID {
      continue
    }
    if _, err := cs.client.DeleteSection(ctx, section.ID); err != nil {
      return api.Envelope{}, err
    }
  }

  resources, err := cs.client.GetAllResources(ctx)
  if err != nil {
    return api.Envelope{}, err
  }
  for _, resource := range resources {
    if resource.CertID != certID {
      continue
    }
    if _, err := cs.client.DeleteResource(ctx, resource.ID); err != nil {
      return api.Envelope{}, err
    }
  }

  if err := cs.imageStore.Remove(utils.NormalizeCode(cert.Code)); err != nil {
    cs.log.Warn("Failed to remove cert image dir", "cert_id", certID, "error", err)
  }

  return cs.client.DeleteCert(ctx, certID)
}

// checkUnique scans all certs the way the creation form reports
// violations: per cert, name before code.
func (cs *certService) checkUnique(ctx context.Context, name, code string) error {
  certs, err := cs.client.GetAllCerts(ctx)
  if err != nil {
    return err
  }
  for _, cert := range certs {
    if cert.Name == name {
      return &DuplicateError{Field: "Name"}
    }
    if cert.Code == code {
      return &DuplicateError{Field: "Code"}
    }
  }
  return nil
}

func reverse(segments []string) {
  for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
    segments[i], segments[j] = segments[j], segments[i]
  }
}
