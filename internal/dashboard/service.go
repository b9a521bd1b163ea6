package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/enums"
	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
)

// Cards summarizes the signed-in user's dashboard. Contributions is read
// from the users table at query time; the ledger's post-commit counter bump
// is a separate measure and the two are not reconciled.
type Cards struct {
	ActiveCampaigns int64 `json:"active_campaigns"`
	Contributions   int   `json:"contributions"`
	Following       int64 `json:"following"`
	Followers       int64 `json:"followers"`
}

// Service computes dashboard summaries.
type Service interface {
	Cards(ctx context.Context, actorID uuid.UUID) (*Cards, error)
}

type campaignCounter interface {
	CountByStatus(ctx context.Context, status enums.CampaignStatus) (int64, error)
}

type userReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	campaigns campaignCounter
	users     userReader
}

// ServiceParams bundles the dependencies required to build a dashboard service.
type ServiceParams struct {
	CampaignRepo campaignCounter
	UserRepo     userReader
}

// NewService constructs a dashboard service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CampaignRepo == nil {
		return nil, fmt.Errorf("campaign repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{campaigns: params.CampaignRepo, users: params.UserRepo}, nil
}

func (s *service) Cards(ctx context.Context, actorID uuid.UUID) (*Cards, error) {
	user, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	active, err := s.campaigns.CountByStatus(ctx, enums.CampaignStatusActive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count active campaigns")
	}

	following, err := s.users.CountFollowing(ctx, actorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count following")
	}
	followers, err := s.users.CountFollowers(ctx, actorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count followers")
	}

	return &Cards{
		ActiveCampaigns: active,
		Contributions:   user.Contributions,
		Following:       following,
		Followers:       followers,
	}, nil
}
