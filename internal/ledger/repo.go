package ledger

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/money"
)

// DonationWithDonor pairs a donation with its resolved donor name. DonorName
// is nil for unauthenticated contributions.
type DonationWithDonor struct {
	Donation  models.Donation
	DonorName *string
}

// Repository manages persistence for the donation ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateDonation(ctx context.Context, donation *models.Donation) error
	NextPosition(ctx context.Context, campaignID uuid.UUID) (int, error)
	IncrementRaised(ctx context.Context, campaignID uuid.UUID, amount money.Cents) (money.Cents, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]DonationWithDonor, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateDonation(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

// NextPosition returns the next append index for the campaign. Callers must
// hold the campaign row lock (IncrementRaised takes it) so two transactions
// cannot read the same tail.
func (r *repository) NextPosition(ctx context.Context, campaignID uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("campaign_id = ?", campaignID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// IncrementRaised adds amount to the stored total as a single SQL update and
// returns the new total. The read-modify-write happens inside the database,
// never in Go, so concurrent contributions cannot drop each other.
func (r *repository) IncrementRaised(ctx context.Context, campaignID uuid.UUID, amount money.Cents) (money.Cents, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ?", campaignID).
		UpdateColumn("raised_cents", gorm.Expr("raised_cents + ?", int64(amount)))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var raised int64
	err := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ?", campaignID).
		Select("raised_cents").
		Scan(&raised).Error
	if err != nil {
		return 0, err
	}
	return money.Cents(raised), nil
}

func (r *repository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]DonationWithDonor, error) {
	type row struct {
		models.Donation
		DonorName *string
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Select("donations.*, users.name AS donor_name").
		Joins("LEFT JOIN users ON users.id = donations.donor_id").
		Where("donations.campaign_id = ?", campaignID).
		Order("donations.position ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]DonationWithDonor, 0, len(rows))
	for _, r := range rows {
		out = append(out, DonationWithDonor{Donation: r.Donation, DonorName: r.DonorName})
	}
	return out, nil
}
