package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/enums"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/money"
)

// Campaign is the fundraising aggregate. RaisedCents is only ever mutated by
// the ledger service and always equals the sum of all appended donations.
type Campaign struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string               `gorm:"column:title;not null"`
	Description string               `gorm:"column:description;not null"`
	Category    string               `gorm:"column:category;not null"`
	GoalCents   money.Cents          `gorm:"column:goal_cents;not null"`
	RaisedCents money.Cents          `gorm:"column:raised_cents;not null;default:0"`
	Status      enums.CampaignStatus `gorm:"column:status;type:text;not null;default:active"`
	EndDate     *time.Time           `gorm:"column:end_date"`
	ImageURL    *string              `gorm:"column:image_url"`
	ImageObject *string              `gorm:"column:image_object"`
	CreatorID   uuid.UUID            `gorm:"column:creator_id;type:uuid;not null;index:campaigns_creator_id_idx"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
