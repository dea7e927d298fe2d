package repos

import (
  "context"
  "errors"

  "gorm.io/gorm"

  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/types"
)

type CertRepo interface {
  GetAll(ctx context.Context, tx *gorm.DB) ([]types.Cert, error)
  GetByID(ctx context.Context, tx *gorm.DB, certID uint) (*types.Cert, error)
  Create(ctx context.Context, tx *gorm.DB, cert *types.Cert) (*types.Cert, error)
  Update(ctx context.Context, tx *gorm.DB, cert *types.Cert) error
  Delete(ctx context.Context, tx *gorm.DB, certID uint) (int64, error)
}

type certRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCertRepo(db *gorm.DB, baseLog *logger.Logger) CertRepo {
  repoLog := baseLog.With("repo", "CertRepo")
  return &certRepo{db: db, log: repoLog}
}

func (cr *certRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.Cert, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []types.Cert
  if err := transaction.WithContext(ctx).
    Order("id").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *certRepo) GetByID(ctx context.Context, tx *gorm.DB, certID uint) (*types.Cert, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var result types.Cert
  err := transaction.WithContext(ctx).
    Where("id = ?", certID).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (cr *certRepo) Create(ctx context.Context, tx *gorm.DB, cert *types.Cert) (*types.Cert, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if err := transaction.WithContext(ctx).Create(cert).Error; err != nil {
    return nil, err
  }
  return cert, nil
}

func (cr *certRepo) Update(ctx context.Context, tx *gorm.DB, cert *types.Cert) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  return transaction.WithContext(ctx).Save(cert).Error
}

func (cr *certRepo) Delete(ctx context.Context, tx *gorm.DB, certID uint) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  result := transaction.WithContext(ctx).
    Where("id = ?", certID).
    Delete(&types.Cert{})
  return result.RowsAffected, result.Error
}
