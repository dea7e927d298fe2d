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

// certCreatedFormat is the display format stamped onto new certs.
const certCreatedFormat = "02/01/2006"

type CertAPI struct {
  log  *logger.Logger
  repo repos.CertRepo
}

func NewCertAPI(log *logger.Logger, repo repos.CertRepo) *CertAPI {
  return &CertAPI{log: log.With("api", "CertAPI"), repo: repo}
}

func (a *CertAPI) GetAll(c *gin.Context) {
  certs, err := a.repo.GetAll(c.Request.Context(), nil)
  if err != nil {
    a.log.Error("GetAll certs failed", "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, certs)
}

// Get returns the cert as JSON, or a null body when the id is unknown.
// Callers check for null rather than a transport-level 404.
func (a *CertAPI) Get(c *gin.Context) {
  certID, err := strconv.ParseUint(c.Param("cert_id"), 10, 32)
  if err != nil {
    c.JSON(http.StatusOK, nil)
    return
  }
  cert, err := a.repo.GetByID(c.Request.Context(), nil, uint(certID))
  if err != nil {
    a.log.Error("Get cert failed", "cert_id", certID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  if cert == nil {
    c.JSON(http.StatusOK, nil)
    return
  }
  c.JSON(http.StatusOK, cert)
}

func (a *CertAPI) Create(c *gin.Context) {
  var payload CertCreate
  if err := c.ShouldBindJSON(&payload); err != nil {
    c.JSON(http.StatusOK, Envelope{Message: "Invalid cert payload", Status: http.StatusBadRequest})
    return
  }
  cert := &types.Cert{
    Name:     payload.Name,
    Code:     payload.Code,
    HeadImg:  payload.HeadImg,
    BadgeImg: payload.BadgeImg,
    ExamDate: payload.ExamDate,
    Reminder: false,
    Tags:     payload.Tags,
    Created:  time.Now().Format(certCreatedFormat),
  }
  if _, err := a.repo.Create(c.Request.Context(), nil, cert); err != nil {
    a.log.Error("Create cert failed", "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, Envelope{Message: "Cert created successfully", Status: http.StatusOK})
}

func (a *CertAPI) Update(c *gin.Context) {
  certID, _ := strconv.ParseUint(c.Param("cert_id"), 10, 32)
  cert, err := a.repo.GetByID(c.Request.Context(), nil, uint(certID))
  if err != nil {
    a.log.Error("Update cert lookup failed", "cert_id", certID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  if cert == nil {
    c.JSON(http.StatusOK, Envelope{Message: "Cert not found", Status: http.StatusNotFound})
    return
  }
  var payload CertUpdate
  if err := c.ShouldBindJSON(&payload); err != nil {
    c.JSON(http.StatusOK, Envelope{Message: "Invalid cert payload", Status: http.StatusBadRequest})
    return
  }
  cert.Name = payload.Name
  cert.Code = payload.Code
  cert.HeadImg = payload.HeadImg
  cert.BadgeImg = payload.BadgeImg
  cert.ExamDate = payload.ExamDate
  if payload.Reminder != nil {
    cert.Reminder = *payload.Reminder
  }
  cert.Tags = payload.Tags
  if err := a.repo.Update(c.Request.Context(), nil, cert); err != nil {
    a.log.Error("Update cert failed", "cert_id", certID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, Envelope{Message: "Cert updated successfully", Status: http.StatusOK})
}

func (a *CertAPI) Delete(c *gin.Context) {
  certID, _ := strconv.ParseUint(c.Param("cert_id"), 10, 32)
  deleted, err := a.repo.Delete(c.Request.Context(), nil, uint(certID))
  if err != nil {
    a.log.Error("Delete cert failed", "cert_id", certID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  if deleted == 0 {
    c.JSON(http.StatusOK, Envelope{Message: "Cert not found", Status: http.StatusNotFound})
    return
  }
  c.JSON(http.StatusOK, Envelope{Message: "Cert deleted successfully", Status: http.StatusOK})
}
