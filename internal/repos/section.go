package repos

import (
  "context"
  "errors"

  "gorm.io/gorm"

  "github.com/cwhitfield/cert-tracker/internal/logger"
  "github.com/cwhitfield/cert-tracker/internal/types"
)

type SectionRepo interface {
  GetAll(ctx context.Context, tx *gorm.DB) ([]types.Section, error)
  GetByID(ctx context.Context, tx *gorm.DB, sectionID uint) (*types.Section, error)
  Create(ctx context.Context, tx *gorm.DB, section *types.Section) (*types.Section, error)
  Update(ctx context.Context, tx *gorm.DB, section *types.Section) error
  Delete(ctx context.Context, tx *gorm.DB, sectionID uint) (int64, error)
}

type sectionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSectionRepo(db *gorm.DB, baseLog *logger.Logger) SectionRepo {
  repoLog := baseLog.With("repo", "SectionRepo")
  return &sectionRepo{db: db, log: repoLog}
}

func (sr *sectionRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.Section, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  var results []types.Section
  if err := transaction.WithContext(ctx).
    Order("id").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (sr *sectionRepo) GetByID(ctx context.Context, tx *gorm.DB, sectionID uint) (*types.Section, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  var result types.Section
  err := transaction.WithContext(ctx).
    Where("id = ?", sectionID).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (sr *sectionRepo) Create(ctx context.Context, tx *gorm.DB, section *types.Section) (*types.Section, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  if err := transaction.WithContext(ctx).Create(section).Error; err != nil {
    return nil, err
  }
  return section, nil
}

func (sr *sectionRepo) Update(ctx context.Context, tx *gorm.DB, section *types.Section) error {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  return transaction.WithContext(ctx).Save(section).Error
}

func (sr *sectionRepo) Delete(ctx context.Context, tx *gorm.DB, sectionID uint) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  result := transaction.WithContext(ctx).
    Where("id = ?", sectionID).
    Delete(&types.Section{})
  return result.RowsAffected, result.Error
}
