package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedCampaign links a user to a bookmarked campaign.
type SavedCampaign struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:saved_campaigns_user_id_idx;uniqueIndex:saved_campaigns_pair_key"`
	CampaignID uuid.UUID `gorm:"column:campaign_id;type:uuid;not null;uniqueIndex:saved_campaigns_pair_key"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
