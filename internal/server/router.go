package server

import (
  "fmt"
  "net/http"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/cwhitfield/cert-tracker/internal/api"
  "github.com/cwhitfield/cert-tracker/internal/handlers"
  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/middleware"
)

type RouterConfig struct {
  Log             *logger.Logger
  APIVersion      int
  CertAPI         *api.CertAPI
  ResourceAPI     *api.ResourceAPI
  SectionAPI      *api.SectionAPI
  CertHandler     *handlers.CertHandler
  ResourceHandler *handlers.ResourceHandler
  SectionHandler  *handlers.SectionHandler
  DeleteHandler   *handlers.DeleteHandler
  SearchHandler   *handlers.SearchHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.New()
  router.Use(gin.Recovery())
  router.Use(middleware.RequestID(cfg.Log))
  router.Use(middleware.SecureHeaders())

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5000",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
    AllowHeaders:     []string{"Content-Type", "X-Requested-With", "X-Request-ID"},
    AllowCredentials: true,
  }))

  router.NoRoute(func(c *gin.Context) {
    c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
  })
  router.NoMethod(func(c *gin.Context) {
    c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
  })

  router.GET("/healthcheck", handlers.HealthCheck)

// ===============
// || API       ||
// ===============
  apiGroup := router.Group(fmt.Sprintf("/api/v%d", cfg.APIVersion))
  {
    apiGroup.GET("/cert", cfg.CertAPI.GetAll)
    apiGroup.GET("/cert/:cert_id", cfg.CertAPI.Get)
    apiGroup.POST("/cert", cfg.CertAPI.Create)
    apiGroup.PUT("/cert/:cert_id", cfg.CertAPI.Update)
    apiGroup.DELETE("/cert/:cert_id", cfg.CertAPI.Delete)

    apiGroup.GET("/resource", cfg.ResourceAPI.GetAll)
    apiGroup.GET("/resource/:resource_id", cfg.ResourceAPI.Get)
    apiGroup.POST("/resource", cfg.ResourceAPI.Create)
    apiGroup.PUT("/resource/:resource_id", cfg.ResourceAPI.Update)
    apiGroup.DELETE("/resource/:resource_id", cfg.ResourceAPI.Delete)

    apiGroup.GET("/section", cfg.SectionAPI.GetAll)
    apiGroup.GET("/section/:section_id", cfg.SectionAPI.Get)
    apiGroup.POST("/section", cfg.SectionAPI.Create)
    apiGroup.PUT("/section/:section_id", cfg.SectionAPI.Update)
    apiGroup.DELETE("/section/:section_id", cfg.SectionAPI.Delete)
  }

// ===============
// || Workflow  ||
// ===============
  router.GET("/certs", cfg.CertHandler.ListCerts)
  router.GET("/certs/data/:cert_id", cfg.CertHandler.CertDetail)
  router.POST("/create/cert", cfg.CertHandler.Create)
  router.POST("/update/cert/:cert_id", cfg.CertHandler.Update)
  router.POST("/update/cert/exam_date", cfg.CertHandler.ExamDate)
  router.POST("/update/cert/exam_reminder", cfg.CertHandler.ExamReminder)

  router.POST("/create/resource", cfg.ResourceHandler.Create)
  router.POST("/create/resource/preview", cfg.ResourceHandler.Preview)
  router.POST("/import/resource", cfg.ResourceHandler.Import)
  router.POST("/update/resource/:resource_id", cfg.ResourceHandler.Update)
  router.POST("/update/resource/complete", cfg.ResourceHandler.Complete)

  router.POST("/create/section", cfg.SectionHandler.Create)
  router.POST("/update/section", cfg.SectionHandler.Update)

  router.POST("/delete/:id", cfg.DeleteHandler.Delete)
  router.POST("/search", cfg.SearchHandler.Search)

  return router
}
