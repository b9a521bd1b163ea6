package campaigns

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/enums"
)

// Repository exposes campaign persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a campaigns repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new campaign row.
func (r *Repository) Create(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

// FindByID loads a campaign by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.WithContext(ctx).First(&campaign, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// Exists reports whether a campaign with the given id is stored.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// List returns one page of campaigns plus the unpaginated total. Search
// matches title and description case-insensitively.
func (r *Repository) List(ctx context.Context, query ListQuery) ([]models.Campaign, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Campaign{})

	if query.Status != nil {
		base = base.Where("status = ?", query.Status.String())
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		base = base.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []models.Campaign
	err := base.
		Order("created_at DESC").
		Offset(query.Pagination.Offset()).
		Limit(query.Pagination.Limit).
		Find(&campaigns).Error
	if err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// Recent returns the latest campaigns by creation time.
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&campaigns).Error
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

// UpdateFields applies a partial column update.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes the campaign row. Donations cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Campaign{}, "id = ?", id).Error
}

// CountByStatus counts campaigns in the given status.
func (r *Repository) CountByStatus(ctx context.Context, status enums.CampaignStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("status = ?", status.String()).
		Count(&count).Error
	return count, err
}
