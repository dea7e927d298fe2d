package handlers

import (
  "errors"
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/services"
)

type ResourceHandler struct {
  log       *logger.Logger
  resources services.ResourceService
}

func NewResourceHandler(log *logger.Logger, resources services.ResourceService) *ResourceHandler {
  return &ResourceHandler{
    log:       log.With("handler", "ResourceHandler"),
    resources: resources,
  }
}

// Preview resolves Open Graph metadata for the URL the user typed so
// the form can pre-fill. No data available is a 204, never an error.
func (h *ResourceHandler) Preview(c *gin.Context) {
  data, ok := h.resources.ResolveOpenGraph(c.Request.Context(), c.PostForm("url"))
  if !ok {
    c.Status(http.StatusNoContent)
    return
  }
  RespondOK(c, data)
}

// Create handles the new-resource form.
func (h *ResourceHandler) Create(c *gin.Context) {
  certID, ok := formID(c.PostForm("cert_id"))
  if !ok {
    RespondFlashError(c, services.ErrCertNotFound, "/certs")
    return
  }
  redirect := fmt.Sprintf("/certs/data/%d", certID)

  image, closeImage, err := formUpload(c, "image")
  if err != nil {
    RespondError(c, http.StatusBadRequest, err)
    return
  }
  if closeImage != nil {
    defer closeImage()
  }
  siteLogo, closeLogo, err := formUpload(c, "site_logo")
  if err != nil {
    RespondError(c, http.StatusBadRequest, err)
    return
  }
  if closeLogo != nil {
    defer closeLogo()
  }

  message, err := h.resources.Create(c.Request.Context(), services.ResourceInput{
    CertID:       certID,
    ResourceType: c.PostForm("resource_type"),
    URL:          c.PostForm("url"),
    Title:        c.PostForm("title"),
    SiteName:     c.PostForm("site_name"),
    Description:  c.PostForm("description"),
    Image:        image,
    SiteLogo:     siteLogo,
    OGImage:      c.PostForm("og_image"),
    OGSiteLogo:   c.PostForm("og_site_logo"),
    HasOGData:    c.PostForm("has_og_data") == "true",
  })
  if err != nil {
    var dup *services.DuplicateError
    if errors.As(err, &dup) {
      RespondFlashError(c, err, "")
      return
    }
    if errors.Is(err, services.ErrCertNotFound) {
      RespondFlashError(c, err, "/certs")
      return
    }
    h.log.Error("Create resource failed", "error", err, "cert_id", certID)
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondFlash(c, message, redirect)
}

// Import clones the selected foreign resources onto the cert.
func (h *ResourceHandler) Import(c *gin.Context) {
  certID, ok := formID(c.PostForm("cert_id"))
  if !ok {
    RespondFlashError(c, services.ErrCertNotFound, "/certs")
    return
  }
  redirect := fmt.Sprintf("/certs/data/%d", certID)

  var resourceIDs []uint
  for _, raw := range c.PostFormArray("resource_ids") {
    id, ok := formID(raw)
    if !ok {
      continue
    }
    resourceIDs = append(resourceIDs, id)
  }

  message, err := h.resources.Import(c.Request.Context(), certID, resourceIDs)
  if err != nil {
    if errors.Is(err, services.ErrNoImportSelection) {
      RespondFlashError(c, err, redirect)
      return
    }
    h.log.Error("Import resources failed", "error", err, "cert_id", certID)
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondFlash(c, message, redirect)
}

// Update handles the edit-resource form.
func (h *ResourceHandler) Update(c *gin.Context) {
  resourceID, ok := formID(c.Param("resource_id"))
  if !ok {
    RespondFlashError(c, services.ErrResourceNotFound, "/certs")
    return
  }
  certID, _ := formID(c.PostForm("cert_id"))
  redirect := fmt.Sprintf("/certs/data/%d", certID)

  image, closeImage, err := formUpload(c, "image")
  if err != nil {
    RespondError(c, http.StatusBadRequest, err)
    return
  }
  if closeImage != nil {
    defer closeImage()
  }
  siteLogo, closeLogo, err := formUpload(c, "site_logo")
  if err != nil {
    RespondError(c, http.StatusBadRequest, err)
    return
  }
  if closeLogo != nil {
    defer closeLogo()
  }

  message, err := h.resources.Update(c.Request.Context(), resourceID, services.ResourceInput{
    ResourceType: c.PostForm("resource_type"),
    URL:          c.PostForm("url"),
    Title:        c.PostForm("title"),
    SiteName:     c.PostForm("site_name"),
    Description:  c.PostForm("description"),
    Image:        image,
    SiteLogo:     siteLogo,
  })
  if err != nil {
    if errors.Is(err, services.ErrResourceNotFound) || errors.Is(err, services.ErrCertNotFound) {
      RespondFlashError(c, err, redirect)
      return
    }
    h.log.Error("Update resource failed", "error", err, "resource_id", resourceID)
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondFlash(c, message, redirect)
}

// Complete toggles a course resource's completion flag.
func (h *ResourceHandler) Complete(c *gin.Context) {
  resourceID, ok := formID(c.PostForm("resource_id"))
  if !ok {
    RespondFlashError(c, services.ErrResourceNotFound, "/certs")
    return
  }
  certID, _ := formID(c.PostForm("cert_id"))
  redirect := fmt.Sprintf("/certs/data/%d", certID)

  message, err := h.resources.SetComplete(
    c.Request.Context(),
    resourceID,
    c.PostForm("resource_type"),
    c.PostForm("complete") == "true",
  )
  if err != nil {
    if errors.Is(err, services.ErrNotCourse) || errors.Is(err, services.ErrResourceNotFound) {
      RespondFlashError(c, err, redirect)
      return
    }
    h.log.Error("Complete resource failed", "error", err, "resource_id", resourceID)
    RespondError(c, http.StatusInternalServerError, err)
    return
  }
  RespondFlash(c, message, redirect)
}
