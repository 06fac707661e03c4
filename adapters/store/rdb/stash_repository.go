package rdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/viktor-dev-tools/devcli/domain"
	"github.com/viktor-dev-tools/devcli/domain/model"
	"gorm.io/gorm"
)

// StashRepository is a GORM-backed implementation of domain.StashRepository.
type StashRepository struct {
	db *gorm.DB
}

func NewStashRepository(db *gorm.DB) *StashRepository {
	return &StashRepository{db: db}
}

func toRecord(s *model.Stash) *StashRecord {
	return &StashRecord{
		ID:          s.ID,
		Name:        s.Name,
		Subdomain:   s.Subdomain,
		WorkspaceID: s.WorkspaceID,
		Path:        s.Path,
		EntityCount: s.EntityCount,
		CreatedAt:   s.CreatedAt,
	}
}

func toModel(r *StashRecord) *model.Stash {
	return &model.Stash{
		ID:          r.ID,
		Name:        r.Name,
		Subdomain:   r.Subdomain,
		WorkspaceID: r.WorkspaceID,
		Path:        r.Path,
		EntityCount: r.EntityCount,
		CreatedAt:   r.CreatedAt,
	}
}

func (r *StashRepository) Create(ctx context.Context, s *model.Stash) error {
	rec := toRecord(s)
	if rec.ID == "" {
		rec.ID = "stash-" + uuid.NewString()
		s.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *StashRepository) Get(ctx context.Context, id string) (*model.Stash, error) {
	var rec StashRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrStashNotFound
		}
		return nil, err
	}
	return toModel(&rec), nil
}

func (r *StashRepository) List(ctx context.Context) ([]*model.Stash, error) {
	var recs []StashRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Stash, 0, len(recs))
	for i := range recs {
		out = append(out, toModel(&recs[i]))
	}
	return out, nil
}

func (r *StashRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&StashRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrStashNotFound
	}
	return nil
}

// Ensure interface satisfaction.
var _ domain.StashRepository = (*StashRepository)(nil)
