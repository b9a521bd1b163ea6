package dashboard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/enums"
	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
)

type fakeCampaignCounter struct {
	byStatus map[enums.CampaignStatus]int64
}

func (f *fakeCampaignCounter) CountByStatus(_ context.Context, status enums.CampaignStatus) (int64, error) {
	return f.byStatus[status], nil
}

type fakeUserReader struct {
	users     map[uuid.UUID]*models.User
	following int64
	followers int64
}

func (f *fakeUserReader) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserReader) CountFollowers(context.Context, uuid.UUID) (int64, error) {
	return f.followers, nil
}

func (f *fakeUserReader) CountFollowing(context.Context, uuid.UUID) (int64, error) {
	return f.following, nil
}

func TestCardsReadsCountsAtQueryTime(t *testing.T) {
	actor := &models.User{ID: uuid.New(), Name: "Priya", Contributions: 7}
	users := &fakeUserReader{
		users:     map[uuid.UUID]*models.User{actor.ID: actor},
		following: 3,
		followers: 9,
	}
	campaigns := &fakeCampaignCounter{byStatus: map[enums.CampaignStatus]int64{
		enums.CampaignStatusActive: 4,
	}}

	svc, err := NewService(ServiceParams{CampaignRepo: campaigns, UserRepo: users})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	cards, err := svc.Cards(context.Background(), actor.ID)
	if err != nil {
		t.Fatalf("cards: %v", err)
	}
	if cards.ActiveCampaigns != 4 || cards.Contributions != 7 || cards.Following != 3 || cards.Followers != 9 {
		t.Fatalf("unexpected cards %+v", cards)
	}

	// the column is read fresh on every call
	actor.Contributions = 8
	cards, err = svc.Cards(context.Background(), actor.ID)
	if err != nil {
		t.Fatalf("cards: %v", err)
	}
	if cards.Contributions != 8 {
		t.Fatalf("expected query-time contribution count, got %d", cards.Contributions)
	}
}

func TestCardsUnknownActorIsUnauthorized(t *testing.T) {
	svc, err := NewService(ServiceParams{
		CampaignRepo: &fakeCampaignCounter{byStatus: map[enums.CampaignStatus]int64{}},
		UserRepo:     &fakeUserReader{users: map[uuid.UUID]*models.User{}},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Cards(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
