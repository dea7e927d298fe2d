package api

import (
  "net/http"
  "strconv"
  "time"

  "github.com/gin-gonic/gin"

  "github.com/cwhitfield/cert-tracker/internal/images"
  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/repos"
  "github.com/cwhitfield/cert-tracker/internal/types"
)

// resourceStampFormat matches the original display format the
// templates expect: mm/dd/yyyy:HH:MM:SS.
const resourceStampFormat = "01/02/2006:15:04:05"

type ResourceAPI struct {
  log  *logger.Logger
  repo repos.ResourceRepo
}

func NewResourceAPI(log *logger.Logger, repo repos.ResourceRepo) *ResourceAPI {
  return &ResourceAPI{log: log.With("api", "ResourceAPI"), repo: repo}
}

func (a *ResourceAPI) GetAll(c *gin.Context) {
  resources, err := a.repo.GetAll(c.Request.Context(), nil)
  if err != nil {
    a.log.Error("GetAll resources failed", "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, resources)
}

func (a *ResourceAPI) Get(c *gin.Context) {
  resourceID, err := strconv.ParseUint(c.Param("resource_id"), 10, 32)
  if err != nil {
    c.JSON(http.StatusOK, nil)
    return
  }
  resource, err := a.repo.GetByID(c.Request.Context(), nil, uint(resourceID))
  if err != nil {
    a.log.Error("Get resource failed", "resource_id", resourceID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  if resource == nil {
    c.JSON(http.StatusOK, nil)
    return
  }
  c.JSON(http.StatusOK, resource)
}

func (a *ResourceAPI) Create(c *gin.Context) {
  var payload ResourceCreate
  if err := c.ShouldBindJSON(&payload); err != nil {
    c.JSON(http.StatusOK, Envelope{Message: "Invalid resource payload", Status: http.StatusBadRequest})
    return
  }
  // substitute default images when the client sent empty paths
  image := payload.Image
  if image == "" {
    image = images.DefaultImage
  }
  logo := payload.SiteLogo
  if logo == "" {
    logo = images.DefaultLogo
  }
  resource := &types.Resource{
    CertID:       payload.CertID,
    ResourceType: payload.ResourceType,
    URL:          payload.URL,
    Title:        payload.Title,
    Image:        image,
    Description:  payload.Description,
    SiteLogo:     logo,
    SiteName:     payload.SiteName,
    HasOGData:    payload.HasOGData,
    Complete:     payload.Complete,
    Created:      time.Now().Format(resourceStampFormat),
  }
  if _, err := a.repo.Create(c.Request.Context(), nil, resource); err != nil {
    a.log.Error("Create resource failed", "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, Envelope{Message: "Resource created successfully", Status: http.StatusOK})
}

func (a *ResourceAPI) Update(c *gin.Context) {
  resourceID, _ := strconv.ParseUint(c.Param("resource_id"), 10, 32)
  resource, err := a.repo.GetByID(c.Request.Context(), nil, uint(resourceID))
  if err != nil {
    a.log.Error("Update resource lookup failed", "resource_id", resourceID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  if resource == nil {
    c.JSON(http.StatusOK, Envelope{Message: "Resource not found", Status: http.StatusNotFound})
    return
  }
  var payload ResourceUpdate
  if err := c.ShouldBindJSON(&payload); err != nil {
    c.JSON(http.StatusOK, Envelope{Message: "Invalid resource payload", Status: http.StatusBadRequest})
    return
  }
  image := payload.Image
  if image == "" {
    image = images.DefaultImage
  }
  logo := payload.SiteLogo
  if logo == "" {
    logo = images.DefaultLogo
  }
  resource.ResourceType = payload.ResourceType
  resource.URL = payload.URL
  resource.Title = payload.Title
  resource.Image = image
  resource.Description = payload.Description
  resource.SiteLogo = logo
  resource.SiteName = payload.SiteName
  resource.Complete = payload.Complete
  resource.Updated = time.Now().Format(resourceStampFormat)
  if err := a.repo.Update(c.Request.Context(), nil, resource); err != nil {
    a.log.Error("Update resource failed", "resource_id", resourceID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, Envelope{Message: "Resource updated successfully", Status: http.StatusOK})
}

func (a *ResourceAPI) Delete(c *gin.Context) {
  resourceID, _ := strconv.ParseUint(c.Param("resource_id"), 10, 32)
  deleted, err := a.repo.Delete(c.Request.Context(), nil, uint(resourceID))
  if err != nil {
    a.log.Error("Delete resource failed", "resource_id", resourceID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  if deleted == 0 {
    c.JSON(http.StatusOK, Envelope{Message: "Resource not found", Status: http.StatusNotFound})
    return
  }
  c.JSON(http.StatusOK, Envelope{Message: "Resource deleted successfully", Status: http.StatusOK})
}
