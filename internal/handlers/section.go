package handlers

import (
  "errors"
  "fmt"
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/services"
)

type SectionHandler struct {
  log      *logger.Logger
  sections services.SectionService
}

func NewSectionHandler(log *logger.Logger, sections services.SectionService) *SectionHandler {
  return &SectionHandler{
    log:      log.With("handler", "SectionHandler"),
    sections: sections,
  }
}

// Create handles both the single-section form and the bulk JSON
// import; a non-empty sections_json field selects the import path.
func (h *SectionHandler) Create(c *gin.Context) {
  certID, ok := formID(c.PostForm("cert_id"))
  if !ok {
    RespondFlashError(c, services.ErrCertNotFound, "/certs")
    return
  }
  resourceID, ok := formID(c.PostForm("resource_id"))
  if !ok {
    RespondFlashError(c, services.ErrResourceNotFound, "/certs")
    return
  }
  redirect := fmt.Sprintf("/certs/data/%d", certID)

  if raw := c.PostForm("sections_json"); raw != "" {
    message, err := h.sections.ImportJSON(c.Request.Context(), certID, resourceID, raw)
    if err != nil {
      if isImportValidation(err) {
        RespondFlashError(c, err, redirect)
        return
      }
      h.log.Error("ImportJSON failed", "error", err, "cert_id", certID)
      RespondError(c, http.StatusInternalServerError, err)
      return
    }
    RespondFlash(c, message, redirect)
    return
  }

  number, _ := strconv.Atoi(c.PostForm("number"))
  message, err := h.sections.Create(c.Request.Context(), certID, resourceID, number, c.PostForm("title"))
  if err != nil {
    h.log.Error("Create section failed", "error", err, "cert_id", certID)
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondFlash(c, message, redirect)
}

// Update handles both the inline toggles and the save form on the
// section table; only a full save (updated=true) flashes and
// redirects.
func (h *SectionHandler) Update(c *gin.Context) {
  sectionID, ok := formID(c.PostForm("section_id"))
  if !ok {
    RespondFlashError(c, services.ErrSectionNotFound, "/certs")
    return
  }
  certID, _ := formID(c.PostForm("cert_id"))
  redirect := fmt.Sprintf("/certs/data/%d", certID)

  number, _ := strconv.Atoi(c.PostForm("number"))
  message, err := h.sections.Update(c.Request.Context(), sectionID, services.SectionInput{
    Number:    number,
    Title:     c.PostForm("title"),
    CardsMade: c.PostForm("cards_made") == "true",
    Complete:  c.PostForm("complete") == "true",
  })
  if err != nil {
    if errors.Is(err, services.ErrSectionNotFound) {
      RespondFlashError(c, err, redirect)
      return
    }
    h.log.Error("Update section failed", "error", err, "section_id", sectionID)
    RespondError(c, http.StatusInternalServerError, err)
    return
  }

  if c.PostForm("updated") == "true" {
    RespondFlash(c, message, redirect)
    return
  }
  c.Status(http.StatusNoContent)
}

func isImportValidation(err error) bool {
  return errors.Is(err, services.ErrBadImportJSON) ||
    errors.Is(err, services.ErrNoSectionList) ||
    errors.Is(err, services.ErrSectionFieldCount) ||
    errors.Is(err, services.ErrSectionFields)
}
