package handlers

import (
  "errors"
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/cwhitfield/cert-tracker/internal/api"
  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/services"
)

// DeleteHandler serves the single delete endpoint the pages share; the
// type form field selects which record kind the id names.
type DeleteHandler struct {
  log       *logger.Logger
  certs     services.CertService
  resources services.ResourceService
  sections  services.SectionService
}

func NewDeleteHandler(
  log *logger.Logger,
  certs services.CertService,
  resources services.ResourceService,
  sections services.SectionService,
) *DeleteHandler {
  return &DeleteHandler{
    log:       log.With("handler", "DeleteHandler"),
    certs:     certs,
    resources: resources,
    sections:  sections,
  }
}

func (h *DeleteHandler) Delete(c *gin.Context) {
  id, ok := formID(c.Param("id"))
  if !ok {
    RespondFlashError(c, errors.New("Invalid id"), "/certs")
    return
  }

  recordType := c.PostForm("type")
  certID, _ := formID(c.PostForm("cert_id"))
  detail := fmt.Sprintf("/certs/data/%d", certID)

  var envelope api.Envelope
  var redirect string
  var err error
  switch recordType {
  case "cert":
    envelope, err = h.certs.Delete(c.Request.Context(), id)
    redirect = "/certs"
  case "resource":
    envelope, err = h.resources.Delete(c.Request.Context(), id)
    redirect = detail
  case "section":
    envelope, err = h.sections.Delete(c.Request.Context(), id)
    redirect = detail
  default:
    RespondFlashError(c, errors.New("Unknown record type"), "/certs")
    return
  }

  if err != nil {
    if errors.Is(err, services.ErrCertNotFound) {
      RespondFlashError(c, err, "/certs")
      return
    }
    h.log.Error("Delete failed", "error", err, "type", recordType, "id", id)
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  if envelope.Status != http.StatusOK {
    RespondFlashError(c, errors.New(envelope.Message), redirect)
    return
  }
  RespondFlash(c, envelope.Message, redirect)
}
