package models

import (
	"time"

	"github.com/google/uuid"
)

// UserFollow records one follower → followee edge. Both directions of the
// social graph are derived from this single table so the two sides can never
// disagree.
type UserFollow struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FollowerID uuid.UUID `gorm:"column:follower_id;type:uuid;not null;index:user_follows_follower_id_idx;uniqueIndex:user_follows_pair_key"`
	FolloweeID uuid.UUID `gorm:"column:followee_id;type:uuid;not null;index:user_follows_followee_id_idx;uniqueIndex:user_follows_pair_key"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
