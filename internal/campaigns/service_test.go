package campaigns

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Developer-Chandan-Dev/fund-raising/internal/ledger"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/enums"
	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/logger"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/money"
)

type fakeCampaignRepo struct {
	campaigns map[uuid.UUID]*models.Campaign
	deleted   []uuid.UUID
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: map[uuid.UUID]*models.Campaign{}}
}

func (f *fakeCampaignRepo) Create(_ context.Context, c *models.Campaign) error {
	f.campaigns[c.ID] = c
	return nil
}

func (f *fakeCampaignRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCampaignRepo) List(_ context.Context, _ ListQuery) ([]models.Campaign, int64, error) {
	var out []models.Campaign
	for _, c := range f.campaigns {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCampaignRepo) Recent(_ context.Context, limit int) ([]models.Campaign, error) {
	var out []models.Campaign
	for _, c := range f.campaigns {
		if len(out) >= limit {
			break
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCampaignRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) error {
	c, ok := f.campaigns[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if title, ok := fields["title"].(string); ok {
		c.Title = title
	}
	if goal, ok := fields["goal_cents"].(int64); ok {
		c.GoalCents = money.Cents(goal)
	}
	if status, ok := fields["status"].(string); ok {
		c.Status = enums.CampaignStatus(status)
	}
	if imageURL, ok := fields["image_url"].(string); ok {
		c.ImageURL = &imageURL
	}
	if raw, ok := fields["image_object"]; ok {
		if imageObject, ok := raw.(string); ok {
			c.ImageObject = &imageObject
		} else {
			c.ImageObject = nil
		}
	}
	return nil
}

func (f *fakeCampaignRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.campaigns, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeDonationLister struct {
	rows map[uuid.UUID][]ledger.DonationWithDonor
}

func (f *fakeDonationLister) ListByCampaign(_ context.Context, id uuid.UUID) ([]ledger.DonationWithDonor, error) {
	return f.rows[id], nil
}

type fakeImageStore struct {
	deleted []string
	err     error
}

func (f *fakeImageStore) Delete(_ context.Context, objectKey string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func buildCampaignService(t *testing.T, repo *fakeCampaignRepo, donations *fakeDonationLister, images *fakeImageStore) Service {
	t.Helper()
	if donations == nil {
		donations = &fakeDonationLister{rows: map[uuid.UUID][]ledger.DonationWithDonor{}}
	}
	params := ServiceParams{
		Repo:         repo,
		DonationRepo: donations,
		Logger:       logger.New(logger.Options{ServiceName: "campaigns-test"}),
	}
	if images != nil {
		params.ImageStore = images
	}
	svc, err := NewService(params)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestCreateCampaignValidatesGoal(t *testing.T) {
	repo := newFakeCampaignRepo()
	svc := buildCampaignService(t, repo, nil, nil)
	actor := Actor{ID: uuid.New(), Role: enums.UserRoleMember}

	created, err := svc.Create(context.Background(), actor, CreateCampaignInput{
		Title:       "Laptop fund",
		Description: "A laptop for the internship",
		Category:    "education",
		GoalAmount:  "1200",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.GoalAmount != money.Cents(120000) {
		t.Fatalf("unexpected goal %d", created.GoalAmount)
	}
	if created.Status != enums.CampaignStatusActive {
		t.Fatalf("new campaigns start active, got %s", created.Status)
	}
	if created.CreatorID != actor.ID {
		t.Fatalf("creator not recorded")
	}

	for _, goal := range []string{"0", "-10", "abc"} {
		_, err := svc.Create(context.Background(), actor, CreateCampaignInput{
			Title:       "x",
			Description: "y",
			Category:    "z",
			GoalAmount:  goal,
		})
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
			t.Errorf("goal %q: expected validation error, got %v", goal, err)
		}
	}
}

func TestGetResolvesDonorNamesInOrder(t *testing.T) {
	repo := newFakeCampaignRepo()
	campaign := &models.Campaign{
		ID:        uuid.New(),
		Title:     "Books",
		GoalCents: money.Cents(10000),
	}
	repo.campaigns[campaign.ID] = campaign

	name := "Priya"
	donations := &fakeDonationLister{rows: map[uuid.UUID][]ledger.DonationWithDonor{
		campaign.ID: {
			{Donation: models.Donation{Position: 1, AmountCents: 500}, DonorName: &name},
			{Donation: models.Donation{Position: 2, AmountCents: 700, Anonymous: true}, DonorName: &name},
			{Donation: models.Donation{Position: 3, AmountCents: 300}},
		},
	}}
	svc := buildCampaignService(t, repo, donations, nil)

	detail, err := svc.Get(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Donors) != 3 {
		t.Fatalf("expected 3 donors, got %d", len(detail.Donors))
	}
	if detail.Donors[0].Name != "Priya" {
		t.Fatalf("expected resolved donor name, got %q", detail.Donors[0].Name)
	}
	if detail.Donors[1].Name != anonymousDonorName {
		t.Fatalf("anonymous donation must mask the donor name, got %q", detail.Donors[1].Name)
	}
	if detail.Donors[2].Name != anonymousDonorName {
		t.Fatalf("donorless donation falls back to the anonymous label, got %q", detail.Donors[2].Name)
	}
}

func TestUpdateRequiresCreatorOrAdmin(t *testing.T) {
	repo := newFakeCampaignRepo()
	creator := uuid.New()
	campaign := &models.Campaign{ID: uuid.New(), Title: "Old", GoalCents: 100, CreatorID: creator}
	repo.campaigns[campaign.ID] = campaign
	svc := buildCampaignService(t, repo, nil, nil)
	ctx := context.Background()

	newTitle := "New title"

	_, err := svc.Update(ctx, Actor{ID: uuid.New(), Role: enums.UserRoleMember}, campaign.ID, UpdateCampaignInput{Title: &newTitle})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}

	updated, err := svc.Update(ctx, Actor{ID: creator, Role: enums.UserRoleMember}, campaign.ID, UpdateCampaignInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("creator update: %v", err)
	}
	if updated.Title != newTitle {
		t.Fatalf("title not updated: %q", updated.Title)
	}

	adminTitle := "Admin title"
	updated, err = svc.Update(ctx, Actor{ID: uuid.New(), Role: enums.UserRoleAdmin}, campaign.ID, UpdateCampaignInput{Title: &adminTitle})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Title != adminTitle {
		t.Fatalf("admin title not updated: %q", updated.Title)
	}
}

func TestUpdateImageReplacesAndCleansUpOldObject(t *testing.T) {
	repo := newFakeCampaignRepo()
	creator := uuid.New()
	oldObject := "campaigns/old.png"
	campaign := &models.Campaign{
		ID:          uuid.New(),
		Title:       "Pics",
		GoalCents:   100,
		CreatorID:   creator,
		ImageObject: &oldObject,
	}
	repo.campaigns[campaign.ID] = campaign
	images := &fakeImageStore{}
	svc := buildCampaignService(t, repo, nil, images)

	url := "https://storage.googleapis.com/b/campaigns/new.png"
	object := "campaigns/new.png"
	_, err := svc.Update(context.Background(), Actor{ID: creator}, campaign.ID, UpdateCampaignInput{
		ImageURL:    &url,
		ImageObject: &object,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(images.deleted) != 1 || images.deleted[0] != oldObject {
		t.Fatalf("expected old object cleanup, got %v", images.deleted)
	}
}

func TestUpdateImageURLWithoutObjectClearsStaleKey(t *testing.T) {
	repo := newFakeCampaignRepo()
	creator := uuid.New()
	oldObject := "campaigns/old.png"
	campaign := &models.Campaign{
		ID:          uuid.New(),
		Title:       "Pics",
		GoalCents:   100,
		CreatorID:   creator,
		ImageObject: &oldObject,
	}
	repo.campaigns[campaign.ID] = campaign
	images := &fakeImageStore{}
	svc := buildCampaignService(t, repo, nil, images)

	url := "https://cdn.example.com/external.png"
	_, err := svc.Update(context.Background(), Actor{ID: creator}, campaign.ID, UpdateCampaignInput{
		ImageURL: &url,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(images.deleted) != 1 || images.deleted[0] != oldObject {
		t.Fatalf("expected old object cleanup, got %v", images.deleted)
	}
	if repo.campaigns[campaign.ID].ImageObject != nil {
		t.Fatalf("stale object key %q must be cleared", *repo.campaigns[campaign.ID].ImageObject)
	}
}

func TestDeleteSurvivesImageCleanupFailure(t *testing.T) {
	repo := newFakeCampaignRepo()
	creator := uuid.New()
	object := "campaigns/stuck.png"
	campaign := &models.Campaign{ID: uuid.New(), GoalCents: 100, CreatorID: creator, ImageObject: &object}
	repo.campaigns[campaign.ID] = campaign
	images := &fakeImageStore{err: context.DeadlineExceeded}
	svc := buildCampaignService(t, repo, nil, images)

	if err := svc.Delete(context.Background(), Actor{ID: creator}, campaign.ID); err != nil {
		t.Fatalf("cleanup failure must not block delete: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("campaign row not deleted")
	}
}
