package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"

  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/types"
)

// DatabaseService owns the gorm handle. Sqlite is the default for a
// single-user install; DB_DRIVER=postgres switches to the postgres DSN.
type DatabaseService struct {
  db  *gorm.DB
  log *logger.Logger
}

type Options struct {
  Driver      string
  SqlitePath  string
  PostgresDSN string
}

func NewDatabaseService(opts Options, log *logger.Logger) (*DatabaseService, error) {
  serviceLog := log.With("service", "DatabaseService")

  var dialector gorm.Dialector
  switch opts.Driver {
  case "postgres":
    serviceLog.Info("Connecting to Postgres...")
    dialector = postgres.Open(opts.PostgresDSN)
  default:
    serviceLog.Info("Opening sqlite database...", "path", opts.SqlitePath)
    dialector = sqlite.Open(opts.SqlitePath)
  }

  db, err := gorm.Open(dialector, &gorm.Config{})
  if err != nil {
    serviceLog.Error("Failed to open database", "driver", opts.Driver, "error", err)
    return nil, fmt.Errorf("open database: %w", err)
  }

  return &DatabaseService{db: db, log: serviceLog}, nil
}

func (s *DatabaseService) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  err := s.db.AutoMigrate(
    &types.Cert{},
    &types.Resource{},
    &types.Section{},
  )
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  return nil
}

func (s *DatabaseService) DB() *gorm.DB {
  return s.db
}
