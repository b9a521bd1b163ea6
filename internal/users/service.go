package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
)

// Service defines the user profile and social graph operations.
type Service interface {
	Profile(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	ToggleFollow(ctx context.Context, followerID, followeeID uuid.UUID) (*FollowToggleResult, error)
	ToggleSave(ctx context.Context, userID, campaignID uuid.UUID) (*SaveToggleResult, error)
}

// FollowToggleResult reports the state after a follow toggle.
type FollowToggleResult struct {
	Following bool  `json:"following"`
	Followers int64 `json:"followers"`
}

// SaveToggleResult reports the state after a save-campaign toggle.
type SaveToggleResult struct {
	Saved bool `json:"saved"`
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FollowExists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	CreateFollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	DeleteFollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	SavedExists(ctx context.Context, userID, campaignID uuid.UUID) (bool, error)
	CreateSaved(ctx context.Context, userID, campaignID uuid.UUID) error
	DeleteSaved(ctx context.Context, userID, campaignID uuid.UUID) error
}

type campaignFinder interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	users     userRepository
	campaigns campaignFinder
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	UserRepo     userRepository
	CampaignRepo campaignFinder
}

// NewService constructs a users service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.CampaignRepo == nil {
		return nil, fmt.Errorf("campaign repository is required")
	}
	return &service{users: params.UserRepo, campaigns: params.CampaignRepo}, nil
}

func (s *service) Profile(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return FromModel(user), nil
}

// ToggleFollow flips the follower → followee edge. Both graph directions are
// views over the same edge row, so they toggle together. A concurrent insert
// losing to the unique pair index is treated as the follow already existing.
func (s *service) ToggleFollow(ctx context.Context, followerID, followeeID uuid.UUID) (*FollowToggleResult, error) {
	if followerID == followeeID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot follow yourself")
	}

	if _, err := s.users.FindByID(ctx, followeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup followee")
	}

	exists, err := s.users.FollowExists(ctx, followerID, followeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check follow edge")
	}

	following := !exists
	if exists {
		if err := s.users.DeleteFollow(ctx, followerID, followeeID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete follow edge")
		}
	} else {
		if err := s.users.CreateFollow(ctx, followerID, followeeID); err != nil {
			if !db.IsUniqueViolation(err, "user_follows_pair_key") {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create follow edge")
			}
		}
	}

	followers, err := s.users.CountFollowers(ctx, followeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count followers")
	}
	return &FollowToggleResult{Following: following, Followers: followers}, nil
}

// ToggleSave flips the user's saved-campaign bookmark.
func (s *service) ToggleSave(ctx context.Context, userID, campaignID uuid.UUID) (*SaveToggleResult, error) {
	found, err := s.campaigns.Exists(ctx, campaignID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup campaign")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
	}

	exists, err := s.users.SavedExists(ctx, userID, campaignID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check saved campaign")
	}

	saved := !exists
	if exists {
		if err := s.users.DeleteSaved(ctx, userID, campaignID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete saved campaign")
		}
	} else {
		if err := s.users.CreateSaved(ctx, userID, campaignID); err != nil {
			if !db.IsUniqueViolation(err, "saved_campaigns_pair_key") {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create saved campaign")
			}
		}
	}

	return &SaveToggleResult{Saved: saved}, nil
}
