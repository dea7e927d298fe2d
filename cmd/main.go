package main

import (
  "fmt"
  "os"

  "github.com/joho/godotenv"

  "github.com/cwhitfield/cert-tracker/internal/api"
  "github.com/cwhitfield/cert-tracker/internal/app"
  "github.com/cwhitfield/cert-tracker/internal/db"
  "github.com/cwhitfield/cert-tracker/internal/handlers"
  "github.com/cwhitfield/cert-tracker/internal/images"
  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/opengraph"
  "github.com/cwhitfield/cert-tracker/internal/reminders"
  "github.com/cwhitfield/cert-tracker/internal/repos"
  "github.com/cwhitfield/cert-tracker/internal/server"
  "github.com/cwhitfield/cert-tracker/internal/services"
)

func main() {
  godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading configuration from main...")
  cfg := app.LoadConfig(log)

  // Database
  database, err := db.NewDatabaseService(db.Options{
    Driver:      cfg.DBDriver,
    SqlitePath:  cfg.DBPath,
    PostgresDSN: cfg.PostgresDSN,
  }, log)
  if err != nil {
    log.Fatal("Database init failed", "error", err)
  }
  if err = database.AutoMigrateAll(); err != nil {
    log.Fatal("Auto migration failed", "error", err)
  }
  theDB := database.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  certRepo := repos.NewCertRepo(theDB, log)
  resourceRepo := repos.NewResourceRepo(theDB, log)
  sectionRepo := repos.NewSectionRepo(theDB, log)

  // API layer
  log.Info("Setting up API layer from main...")
  certAPI := api.NewCertAPI(log, certRepo)
  resourceAPI := api.NewResourceAPI(log, resourceRepo)
  sectionAPI := api.NewSectionAPI(log, sectionRepo)
  client := api.NewClient(cfg.APIBaseURL, log)

  // Stores
  imageStore := images.NewFileStore(cfg.ImageRoot, log)
  reminderStore := reminders.NewStore(cfg.ReminderFile, log)
  ogFetcher := opengraph.NewFetcher(log)

  // Services
  log.Info("Setting up Services from main...")
  viewService := services.NewViewService(log, client)
  certService := services.NewCertService(log, client, imageStore, reminderStore)
  resourceService := services.NewResourceService(log, client, imageStore, ogFetcher)
  sectionService := services.NewSectionService(log, client)

  // Handlers
  log.Info("Setting up Handlers from main...")
  certHandler := handlers.NewCertHandler(log, viewService, certService)
  resourceHandler := handlers.NewResourceHandler(log, resourceService)
  sectionHandler := handlers.NewSectionHandler(log, sectionService)
  deleteHandler := handlers.NewDeleteHandler(log, certService, resourceService, sectionService)
  searchHandler := handlers.NewSearchHandler(log, viewService)

  // Router
  router := server.NewRouter(server.RouterConfig{
    Log:             log,
    APIVersion:      cfg.APIVersion,
    CertAPI:         certAPI,
    ResourceAPI:     resourceAPI,
    SectionAPI:      sectionAPI,
    CertHandler:     certHandler,
    ResourceHandler: resourceHandler,
    SectionHandler:  sectionHandler,
    DeleteHandler:   deleteHandler,
    SearchHandler:   searchHandler,
  })

  log.Info("Starting server", "port", cfg.Port)
  if err := router.Run(":" + cfg.Port); err != nil {
    log.Fatal("Server exited", "error", err)
  }
}
