package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/logger"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/money"
)

// Service records contributions against campaigns.
type Service interface {
	Contribute(ctx context.Context, campaignID uuid.UUID, actor *uuid.UUID, input ContributeInput) (*ContributionResult, error)
}

// ContributeInput is the raw contribution payload. Amount decodes from a
// JSON number or numeric string and stays raw until money.ParseAmount has
// accepted it.
type ContributeInput struct {
	Amount    json.Number `json:"amount" validate:"required"`
	Message   string      `json:"message" validate:"max=500"`
	Anonymous bool        `json:"anonymous"`
}

// DonationDTO is the public shape of a recorded donation.
type DonationDTO struct {
	ID         uuid.UUID   `json:"id"`
	CampaignID uuid.UUID   `json:"campaign_id"`
	Position   int         `json:"position"`
	Amount     money.Cents `json:"amount"`
	Message    string      `json:"message,omitempty"`
	Anonymous  bool        `json:"anonymous"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ContributionResult reports the appended donation and the campaign totals
// observed by the same transaction.
type ContributionResult struct {
	Donation     DonationDTO `json:"donation"`
	RaisedAmount money.Cents `json:"raised_amount"`
	Progress     float64     `json:"progress"`
}

type campaignFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
}

type contributionCounter interface {
	IncrementContributions(ctx context.Context, id uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo      Repository
	campaigns campaignFinder
	counters  contributionCounter
	tx        txRunner
	logg      *logger.Logger
}

// ServiceParams bundles the dependencies required to build a ledger service.
type ServiceParams struct {
	Repo         Repository
	CampaignRepo campaignFinder
	UserRepo     contributionCounter
	Tx           txRunner
	Logger       *logger.Logger
}

// NewService wires a ledger service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("ledger repository is required")
	}
	if params.CampaignRepo == nil {
		return nil, fmt.Errorf("campaign repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:      params.Repo,
		campaigns: params.CampaignRepo,
		counters:  params.UserRepo,
		tx:        params.Tx,
		logg:      params.Logger,
	}, nil
}

// Contribute validates and appends one donation. The raised total and the
// donation row commit or roll back together; the donor's contribution
// counter is bumped after commit and its failure never unwinds the donation.
func (s *service) Contribute(ctx context.Context, campaignID uuid.UUID, actor *uuid.UUID, input ContributeInput) (*ContributionResult, error) {
	amount, err := money.ParseAmount(input.Amount.String())
	if err != nil {
		return nil, err
	}
	if !input.Anonymous && actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "authentication required for public contributions")
	}

	campaign, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup campaign")
	}

	var (
		donation *models.Donation
		raised   money.Cents
	)
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		newRaised, err := repo.IncrementRaised(ctx, campaignID, amount)
		if err != nil {
			return err
		}

		position, err := repo.NextPosition(ctx, campaignID)
		if err != nil {
			return err
		}

		// anonymous donations never reference the donor, even when
		// the caller is authenticated
		donorID := actor
		if input.Anonymous {
			donorID = nil
		}
		row := &models.Donation{
			ID:          uuid.New(),
			CampaignID:  campaignID,
			Position:    position,
			AmountCents: amount,
			Message:     input.Message,
			Anonymous:   input.Anonymous,
			DonorID:     donorID,
		}
		if err := repo.CreateDonation(ctx, row); err != nil {
			return err
		}

		donation = row
		raised = newRaised
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record contribution")
	}

	if !input.Anonymous && actor != nil {
		if err := s.counters.IncrementContributions(ctx, *actor); err != nil {
			warnCtx := s.logg.WithFields(ctx, map[string]any{
				"donor_id": actor.String(),
				"error":    err.Error(),
			})
			s.logg.Warn(warnCtx, "contribution counter increment failed")
		}
	}

	return &ContributionResult{
		Donation: DonationDTO{
			ID:         donation.ID,
			CampaignID: donation.CampaignID,
			Position:   donation.Position,
			Amount:     donation.AmountCents,
			Message:    donation.Message,
			Anonymous:  donation.Anonymous,
			CreatedAt:  donation.CreatedAt,
		},
		RaisedAmount: raised,
		Progress:     money.Progress(raised, campaign.GoalCents),
	}, nil
}
