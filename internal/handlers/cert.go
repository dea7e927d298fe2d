package handlers

import (
  "errors"
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/services"
)

type CertHandler struct {
  log   *logger.Logger
  views services.ViewService
  certs services.CertService
}

func NewCertHandler(log *logger.Logger, views services.ViewService, certs services.CertService) *CertHandler {
  return &CertHandler{
    log:   log.With("handler", "CertHandler"),
    views: views,
    certs: certs,
  }
}

// ListCerts serves the data behind the cert overview page.
func (h *CertHandler) ListCerts(c *gin.Context) {
  certs, err := h.views.ListCerts(c.Request.Context())
  if err != nil {
    h.log.Error("ListCerts failed", "error", err)
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondOK(c, gin.H{"certs": certs})
}

// CertDetail serves everything the detail page renders: the cert, its
// resources grouped by type, sections and the importable sets.
func (h *CertHandler) CertDetail(c *gin.Context) {
  certID, ok := formID(c.Param("cert_id"))
  if !ok {
    RespondFlashError(c, services.ErrCertNotFound, "/certs")
    return
  }
  detail, err := h.views.CertDetail(c.Request.Context(), certID)
  if err != nil {
    if errors.Is(err, services.ErrCertNotFound) {
      RespondFlashError(c, err, "/certs")
      return
    }
    h.log.Error("CertDetail failed", "error", err, "cert_id", certID)
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondOK(c, detail)
}

// Create handles the new-cert form: name/code/tags plus optional head
// and badge image uploads.
func (h *CertHandler) Create(c *gin.Context) {
  headImg, closeHead, err := formUpload(c, "head_img")
  if err != nil {
    RespondError(c, http.StatusBadRequest, err)
    return
  }
  if closeHead != nil {
    defer closeHead()
  }
  badgeImg, closeBadge, err := formUpload(c, "badge_img")
  if err != nil {
    RespondError(c, http.StatusBadRequest, err)
    return
  }
  if closeBadge != nil {
    defer closeBadge()
  }

  message, err := h.certs.Create(c.Request.Context(), services.CertInput{
    Name:     c.PostForm("name"),
    Code:     c.PostForm("code"),
    Tags:     c.PostForm("tags"),
    HeadImg:  headImg,
    BadgeImg: badgeImg,
  })
  if err != nil {
    var dup *services.DuplicateError
    if errors.As(err, &dup) {
      RespondFlashError(c, err, "")
      return
    }
    h.log.Error("Create cert failed", "error", err)
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondFlash(c, message, "/certs")
}

// Update handles the edit-cert form.
func (h *CertHandler) Update(c *gin.Context) {
  certID, ok := formID(c.Param("cert_id"))
  if !ok {
    RespondFlashError(c, services.ErrCertNotFound, "/certs")
    return
  }
  headImg, closeHead, err := formUpload(c, "head_img")
  if err != nil {
    RespondError(c, http.StatusBadRequest, err)
    return
  }
  if closeHead != nil {
    defer closeHead()
  }
  badgeImg, closeBadge, err := formUpload(c, "badge_img")
  if err != nil {
    RespondError(c, http.StatusBadRequest, err)
    return
  }
  if closeBadge != nil {
    defer closeBadge()
  }

  message, err := h.certs.Update(c.Request.Context(), certID, services.CertInput{
    Name:     c.PostForm("name"),
    Code:     c.PostForm("code"),
    Tags:     c.PostForm("tags"),
    HeadImg:  headImg,
    BadgeImg: badgeImg,
  })
  if err != nil {
    if errors.Is(err, services.ErrCertNotFound) {
      RespondFlashError(c, err, "/certs")
      return
    }
    h.log.Error("Update cert failed", "error", err, "cert_id", certID)
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondFlash(c, message, fmt.Sprintf("/certs/data/%d", certID))
}

// ExamDate handles the exam-date form on the detail page.
func (h *CertHandler) ExamDate(c *gin.Context) {
  certID, ok := formID(c.PostForm("cert_id"))
  if !ok {
    RespondFlashError(c, services.ErrCertNotFound, "/certs")
    return
  }
  redirect := fmt.Sprintf("/certs/data/%d", certID)
  message, err := h.certs.UpdateExamDate(c.Request.Context(), certID, c.PostForm("exam-date"))
  if err != nil {
    if errors.Is(err, services.ErrEmptyDate) || errors.Is(err, services.ErrCertNotFound) {
      RespondFlashError(c, err, redirect)
      return
    }
    h.log.Error("ExamDate failed", "error", err, "cert_id", certID)
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondFlash(c, message, redirect)
}

// ExamReminder sets or deletes the email reminder for a cert. The
// form's action field selects the branch; anything other than
// "delete" enables the reminder.
func (h *CertHandler) ExamReminder(c *gin.Context) {
  certID, ok := formID(c.PostForm("cert_id"))
  if !ok {
    RespondFlashError(c, services.ErrCertNotFound, "/certs")
    return
  }
  redirect := fmt.Sprintf("/certs/data/%d", certID)

  if c.PostForm("action") == "delete" {
    message, err := h.certs.DeleteReminder(c.Request.Context(), certID)
    if err != nil {
      if errors.Is(err, services.ErrReminderNotSet) || errors.Is(err, services.ErrCertNotFound) {
        RespondFlashError(c, err, redirect)
        return
      }
      h.log.Error("DeleteReminder failed", "error", err, "cert_id", certID)
      RespondError(c, http.StatusInternalServerError, err)
      return
    }
    RespondFlash(c, message, redirect)
    return
  }

  message, err := h.certs.SetReminder(c.Request.Context(), certID, c.PostForm("frequency"), c.PostForm("starting-from"))
  if err != nil {
    if errors.Is(err, services.ErrEmptyDate) || errors.Is(err, services.ErrCertNotFound) {
      RespondFlashError(c, err, redirect)
      return
    }
    h.log.Error("SetReminder failed", "error", err, "cert_id", certID)
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondFlash(c, message, redirect)
}
