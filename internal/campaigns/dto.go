package campaigns

import (
	"time"

	"github.com/google/uuid"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/enums"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/money"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/pagination"
)

// CampaignDTO is the public representation of a campaign.
type CampaignDTO struct {
	ID           uuid.UUID            `json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Category     string               `json:"category"`
	GoalAmount   money.Cents          `json:"goal_amount"`
	RaisedAmount money.Cents          `json:"raised_amount"`
	Progress     float64              `json:"progress"`
	Status       enums.CampaignStatus `json:"status"`
	EndDate      *time.Time           `json:"end_date,omitempty"`
	ImageURL     *string              `json:"image_url,omitempty"`
	CreatorID    uuid.UUID            `json:"creator_id"`
	CreatedAt    time.Time            `json:"created_at"`
}

// DonorDTO is one entry of a campaign's ordered donor list. Name is masked
// for anonymous donations.
type DonorDTO struct {
	Name      string      `json:"name"`
	Amount    money.Cents `json:"amount"`
	Message   string      `json:"message,omitempty"`
	Anonymous bool        `json:"anonymous"`
	CreatedAt time.Time   `json:"created_at"`
}

// CampaignDetailDTO extends the campaign with its donor list in append order.
type CampaignDetailDTO struct {
	CampaignDTO
	Donors []DonorDTO `json:"donors"`
}

// CampaignListResult is a page of campaigns with pagination metadata.
type CampaignListResult struct {
	Campaigns []CampaignDTO   `json:"campaigns"`
	Page      pagination.Page `json:"page"`
}

// FromModel maps a persisted campaign to its public DTO.
func FromModel(c *models.Campaign) CampaignDTO {
	return CampaignDTO{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		GoalAmount:   c.GoalCents,
		RaisedAmount: c.RaisedCents,
		Progress:     money.Progress(c.RaisedCents, c.GoalCents),
		Status:       c.Status,
		EndDate:      c.EndDate,
		ImageURL:     c.ImageURL,
		CreatorID:    c.CreatorID,
		CreatedAt:    c.CreatedAt,
	}
}

// CreateCampaignInput carries the fields accepted when opening a campaign.
type CreateCampaignInput struct {
	Title       string `validate:"required,min=3,max=200"`
	Description string `validate:"required"`
	Category    string `validate:"required"`
	GoalAmount  string `validate:"required"`
	EndDate     *time.Time
	ImageURL    *string
	ImageObject *string
}

// UpdateCampaignInput carries the optional fields of a partial update. Nil
// fields keep their stored value.
type UpdateCampaignInput struct {
	Title       *string
	Description *string
	Category    *string
	GoalAmount  *string
	Status      *string
	EndDate     *time.Time
	ImageURL    *string
	ImageObject *string
}

// ListQuery filters and paginates the public campaign listing.
type ListQuery struct {
	Pagination pagination.Params
	Status     *enums.CampaignStatus
	Search     string
}
