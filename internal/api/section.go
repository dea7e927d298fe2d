package api

import (
  "net/http"
  "strconv"
  "time"

  "github.com/gin-gonic/gin"

  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/repos"
  "github.com/cwhitfield/cert-tracker/internal/types"
)

type SectionAPI struct {
  log  *logger.Logger
  repo repos.SectionRepo
}

func NewSectionAPI(log *logger.Logger, repo repos.SectionRepo) *SectionAPI {
  return &SectionAPI{log: log.With("api", "SectionAPI"), repo: repo}
}

func (a *SectionAPI) GetAll(c *gin.Context) {
  sections, err := a.repo.GetAll(c.Request.Context(), nil)
  if err != nil {
    a.log.Error("GetAll sections failed", "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, sections)
}

func (a *SectionAPI) Get(c *gin.Context) {
  sectionID, err := strconv.ParseUint(c.Param("section_id"), 10, 32)
  if err != nil {
    c.JSON(http.StatusOK, nil)
    return
  }
  section, err := a.repo.GetByID(c.Request.Context(), nil, uint(sectionID))
  if err != nil {
    a.log.Error("Get section failed", "section_id", sectionID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  if section == nil {
    c.JSON(http.StatusOK, nil)
    return
  }
  c.JSON(http.StatusOK, section)
}

func (a *SectionAPI) Create(c *gin.Context) {
  var payload SectionCreate
  if err := c.ShouldBindJSON(&payload); err != nil {
    c.JSON(http.StatusOK, Envelope{Message: "Invalid section payload", Status: http.StatusBadRequest})
    return
  }
  section := &types.Section{
    CertID:     payload.CertID,
    ResourceID: payload.ResourceID,
    Number:     payload.Number,
    Title:      payload.Title,
    Created:    time.Now().Format(resourceStampFormat),
  }
  if _, err := a.repo.Create(c.Request.Context(), nil, section); err != nil {
    a.log.Error("Create section failed", "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, Envelope{Message: "Section created successfully", Status: http.StatusOK})
}

func (a *SectionAPI) Update(c *gin.Context) {
  sectionID, _ := strconv.ParseUint(c.Param("section_id"), 10, 32)
  section, err := a.repo.GetByID(c.Request.Context(), nil, uint(sectionID))
  if err != nil {
    a.log.Error("Update section lookup failed", "section_id", sectionID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  if section == nil {
    c.JSON(http.StatusOK, Envelope{Message: "Section not found", Status: http.StatusNotFound})
    return
  }
  var payload SectionUpdate
  if err := c.ShouldBindJSON(&payload); err != nil {
    c.JSON(http.StatusOK, Envelope{Message: "Invalid section payload", Status: http.StatusBadRequest})
    return
  }
  section.Number = payload.Number
  section.Title = payload.Title
  section.CardsMade = payload.CardsMade
  section.Complete = payload.Complete
  section.Updated = time.Now().Format(resourceStampFormat)
  if err := a.repo.Update(c.Request.Context(), nil, section); err != nil {
    a.log.Error("Update section failed", "section_id", sectionID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, Envelope{Message: "Section updated successfully", Status: http.StatusOK})
}

func (a *SectionAPI) Delete(c *gin.Context) {
  sectionID, _ := strconv.ParseUint(c.Param("section_id"), 10, 32)
  deleted, err := a.repo.Delete(c.Request.Context(), nil, uint(sectionID))
  if err != nil {
    a.log.Error("Delete section failed", "section_id", sectionID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  if deleted == 0 {
    c.JSON(http.StatusOK, Envelope{Message: "Section not found", Status: http.StatusNotFound})
    return
  }
  c.JSON(http.StatusOK, Envelope{Message: "Section deleted successfully", Status: http.StatusOK})
}
