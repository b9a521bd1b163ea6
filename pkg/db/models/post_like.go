package models

import (
	"time"

	"github.com/google/uuid"
)

// PostLike links a user to a liked post.
type PostLike struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:post_likes_user_post_key"`
	PostID    uuid.UUID `gorm:"column:post_id;type:uuid;not null;index:post_likes_post_id_idx;uniqueIndex:post_likes_user_post_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
