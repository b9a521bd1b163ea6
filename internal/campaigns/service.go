package campaigns

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Developer-Chandan-Dev/fund-raising/internal/ledger"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/enums"
	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/logger"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/money"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/pagination"
)

const anonymousDonorName = "Anonymous"

// RecentLimit caps the recent-campaigns listing.
const RecentLimit = 6

// Actor identifies the authenticated caller for authorization checks.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// Service defines the campaign lifecycle operations.
type Service interface {
	Create(ctx context.Context, actor Actor, input CreateCampaignInput) (*CampaignDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CampaignDetailDTO, error)
	List(ctx context.Context, query ListQuery) (*CampaignListResult, error)
	Recent(ctx context.Context) ([]CampaignDTO, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateCampaignInput) (*CampaignDTO, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type campaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	List(ctx context.Context, query ListQuery) ([]models.Campaign, int64, error)
	Recent(ctx context.Context, limit int) ([]models.Campaign, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type donationLister interface {
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]ledger.DonationWithDonor, error)
}

type imageStore interface {
	Delete(ctx context.Context, objectKey string) error
}

type service struct {
	repo      campaignRepository
	donations donationLister
	images    imageStore
	logg      *logger.Logger
}

// ServiceParams bundles the dependencies required to build a campaigns service.
type ServiceParams struct {
	Repo         campaignRepository
	DonationRepo donationLister
	ImageStore   imageStore
	Logger       *logger.Logger
}

// NewService constructs a campaigns service with the provided dependencies.
// ImageStore may be nil when media storage is not configured.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("campaign repository is required")
	}
	if params.DonationRepo == nil {
		return nil, fmt.Errorf("donation repository is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:      params.Repo,
		donations: params.DonationRepo,
		images:    params.ImageStore,
		logg:      params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, actor Actor, input CreateCampaignInput) (*CampaignDTO, error) {
	goal, err := money.ParseAmount(input.GoalAmount)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	campaign := &models.Campaign{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    input.Category,
		GoalCents:   goal,
		Status:      enums.CampaignStatusActive,
		EndDate:     input.EndDate,
		ImageURL:    input.ImageURL,
		ImageObject: input.ImageObject,
		CreatorID:   actor.ID,
	}
	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create campaign")
	}

	dto := FromModel(campaign)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CampaignDetailDTO, error) {
	campaign, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.donations.ListByCampaign(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list donations")
	}

	donors := make([]DonorDTO, 0, len(rows))
	for _, row := range rows {
		name := anonymousDonorName
		if !row.Donation.Anonymous && row.DonorName != nil {
			name = *row.DonorName
		}
		donors = append(donors, DonorDTO{
			Name:      name,
			Amount:    row.Donation.AmountCents,
			Message:   row.Donation.Message,
			Anonymous: row.Donation.Anonymous,
			CreatedAt: row.Donation.CreatedAt,
		})
	}

	return &CampaignDetailDTO{CampaignDTO: FromModel(campaign), Donors: donors}, nil
}

func (s *service) List(ctx context.Context, query ListQuery) (*CampaignListResult, error) {
	query.Pagination = pagination.Normalize(query.Pagination)

	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list campaigns")
	}

	campaigns := make([]CampaignDTO, 0, len(rows))
	for i := range rows {
		campaigns = append(campaigns, FromModel(&rows[i]))
	}
	return &CampaignListResult{
		Campaigns: campaigns,
		Page:      pagination.Build(query.Pagination, total),
	}, nil
}

func (s *service) Recent(ctx context.Context) ([]CampaignDTO, error) {
	rows, err := s.repo.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recent campaigns")
	}
	campaigns := make([]CampaignDTO, 0, len(rows))
	for i := range rows {
		campaigns = append(campaigns, FromModel(&rows[i]))
	}
	return campaigns, nil
}

func (s *service) Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateCampaignInput) (*CampaignDTO, error) {
	campaign, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, campaign); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		fields["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Category != nil {
		fields["category"] = *input.Category
	}
	if input.GoalAmount != nil {
		goal, err := money.ParseAmount(*input.GoalAmount)
		if err != nil {
			return nil, err
		}
		fields["goal_cents"] = int64(goal)
	}
	if input.Status != nil {
		status, err := enums.ParseCampaignStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid campaign status")
		}
		fields["status"] = status.String()
	}
	if input.EndDate != nil {
		fields["end_date"] = *input.EndDate
	}
	if input.ImageURL != nil {
		fields["image_url"] = *input.ImageURL
		if input.ImageObject != nil {
			fields["image_object"] = *input.ImageObject
		} else {
			// the old key is deleted below, keeping it would leave the
			// row pointing at a gone object
			fields["image_object"] = nil
		}
		s.deleteImage(ctx, campaign)
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update campaign")
	}

	updated, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(updated)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	campaign, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, campaign); err != nil {
		return err
	}

	s.deleteImage(ctx, campaign)

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete campaign")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup campaign")
	}
	return campaign, nil
}

// deleteImage drops the stored image object best-effort. Cleanup failures
// are logged and never block the calling operation.
func (s *service) deleteImage(ctx context.Context, campaign *models.Campaign) {
	if s.images == nil || campaign.ImageObject == nil || *campaign.ImageObject == "" {
		return
	}
	if err := s.images.Delete(ctx, *campaign.ImageObject); err != nil {
		warnCtx := s.logg.WithFields(ctx, map[string]any{
			"campaign_id": campaign.ID.String(),
			"object":      *campaign.ImageObject,
			"error":       err.Error(),
		})
		s.logg.Warn(warnCtx, "campaign image cleanup failed")
	}
}

func authorize(actor Actor, campaign *models.Campaign) error {
	if actor.ID == campaign.CreatorID || actor.Role == enums.UserRoleAdmin {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to modify this campaign")
}
