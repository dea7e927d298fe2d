package repos

import (
  "context"
  "errors"

  "gorm.io/gorm"

  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/types"
)

type ResourceRepo interface {
  GetAll(ctx context.Context, tx *gorm.DB) ([]types.Resource, error)
  GetByID(ctx context.Context, tx *gorm.DB, resourceID uint) (*types.Resource, error)
  Create(ctx context.Context, tx *gorm.DB, resource *types.Resource) (*types.Resource, error)
  Update(ctx context.Context, tx *gorm.DB, resource *types.Resource) error
  Delete(ctx context.Context, tx *gorm.DB, resourceID uint) (int64, error)
}

type resourceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
  repoLog := baseLog.With("repo", "ResourceRepo")
  return &resourceRepo{db: db, log: repoLog}
}

func (rr *resourceRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.Resource, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var results []types.Resource
  if err := transaction.WithContext(ctx).
    Order("id").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *resourceRepo) GetByID(ctx context.Context, tx *gorm.DB, resourceID uint) (*types.Resource, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var result types.Resource
  err := transaction.WithContext(ctx).
    Where("id = ?", resourceID).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (rr *resourceRepo) Create(ctx context.Context, tx *gorm.DB, resource *types.Resource) (*types.Resource, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  if err := transaction.WithContext(ctx).Create(resource).Error; err != nil {
    return nil, err
  }
  return resource, nil
}

func (rr *resourceRepo) Update(ctx context.Context, tx *gorm.DB, resource *types.Resource) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  return transaction.WithContext(ctx).Save(resource).Error
}

func (rr *resourceRepo) Delete(ctx context.Context, tx *gorm.DB, resourceID uint) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  result := transaction.WithContext(ctx).
    Where("id = ?", resourceID).
    Delete(&types.Resource{})
  return result.RowsAffected, result.Error
}
