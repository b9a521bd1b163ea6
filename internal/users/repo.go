package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastSeen refreshes the user's last_seen_at timestamp.
func (r *Repository) UpdateLastSeen(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_seen_at", at).Error
}

// IncrementContributions bumps the contribution counter atomically in SQL.
func (r *Repository) IncrementContributions(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("contributions", gorm.Expr("contributions + 1")).Error
}

// UpdateAvatar overwrites the user's avatar URL.
func (r *Repository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL *string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("avatar_url", avatarURL).Error
}

// FollowExists reports whether follower already follows followee.
func (r *Repository) FollowExists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserFollow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

// CreateFollow inserts the follow edge.
func (r *Repository) CreateFollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&models.UserFollow{
		ID:         uuid.New(),
		FollowerID: followerID,
		FolloweeID: followeeID,
	}).Error
}

// DeleteFollow removes the follow edge. Deleting a missing edge is a no-op.
func (r *Repository) DeleteFollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.UserFollow{}).Error
}

// CountFollowers returns how many users follow the given user.
func (r *Repository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserFollow{}).
		Where("followee_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountFollowing returns how many users the given user follows.
func (r *Repository) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserFollow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

// SavedExists reports whether the user already saved the campaign.
func (r *Repository) SavedExists(ctx context.Context, userID, campaignID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SavedCampaign{}).
		Where("user_id = ? AND campaign_id = ?", userID, campaignID).
		Count(&count).Error
	return count > 0, err
}

// CreateSaved inserts the saved-campaign edge.
func (r *Repository) CreateSaved(ctx context.Context, userID, campaignID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&models.SavedCampaign{
		ID:         uuid.New(),
		UserID:     userID,
		CampaignID: campaignID,
	}).Error
}

// DeleteSaved removes the saved-campaign edge.
func (r *Repository) DeleteSaved(ctx context.Context, userID, campaignID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND campaign_id = ?", userID, campaignID).
		Delete(&models.SavedCampaign{}).Error
}
