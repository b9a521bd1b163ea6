package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/money"
)

// Donation is one immutable contribution entry. Position is the per-campaign
// append sequence and fixes the externally observable display order.
type Donation struct {
	ID          uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CampaignID  uuid.UUID   `gorm:"column:campaign_id;type:uuid;not null;index:donations_campaign_id_idx;uniqueIndex:donations_campaign_position_key"`
	Position    int         `gorm:"column:position;not null;uniqueIndex:donations_campaign_position_key"`
	AmountCents money.Cents `gorm:"column:amount_cents;not null"`
	Message     string      `gorm:"column:message;not null;default:''"`
	Anonymous   bool        `gorm:"column:anonymous;not null;default:false"`
	DonorID     *uuid.UUID  `gorm:"column:donor_id;type:uuid"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime"`
}
