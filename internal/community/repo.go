package community

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
)

// PostWithMeta pairs a post with its author name and like count.
type PostWithMeta struct {
	Post       models.Post
	AuthorName string
	Likes      int64
}

// Repository exposes community persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a community repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListMembers returns community members. With top set, members are ranked by
// contribution count; otherwise alphabetically. Search matches the name
// case-insensitively.
func (r *Repository) ListMembers(ctx context.Context, search string, top bool, limit int) ([]models.User, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})

	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if top {
		q = q.Order("contributions DESC")
	} else {
		q = q.Order("name ASC")
	}

	var members []models.User
	if err := q.Limit(limit).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CreatePost inserts a new feed entry.
func (r *Repository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// PostExists reports whether a post with the given id is stored.
func (r *Repository) PostExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// ListPosts returns the latest posts with author names and like counts.
func (r *Repository) ListPosts(ctx context.Context, limit int) ([]PostWithMeta, error) {
	type row struct {
		models.Post
		AuthorName string
		Likes      int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.*, users.name AS author_name, COUNT(post_likes.id) AS likes").
		Joins("JOIN users ON users.id = posts.author_id").
		Joins("LEFT JOIN post_likes ON post_likes.post_id = posts.id").
		Group("posts.id, users.name").
		Order("posts.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]PostWithMeta, 0, len(rows))
	for _, r := range rows {
		out = append(out, PostWithMeta{Post: r.Post, AuthorName: r.AuthorName, Likes: r.Likes})
	}
	return out, nil
}

// LikeExists reports whether the user already liked the post.
func (r *Repository) LikeExists(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// CreateLike inserts the like edge.
func (r *Repository) CreateLike(ctx context.Context, userID, postID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&models.PostLike{
		ID:     uuid.New(),
		UserID: userID,
		PostID: postID,
	}).Error
}

// DeleteLike removes the like edge.
func (r *Repository) DeleteLike(ctx context.Context, userID, postID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.PostLike{}).Error
}

// CountLikes returns the number of likes on a post.
func (r *Repository) CountLikes(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
