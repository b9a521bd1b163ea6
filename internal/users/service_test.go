package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
)

type edge struct {
	a uuid.UUID
	b uuid.UUID
}

type fakeUserRepo struct {
	users   map[uuid.UUID]*models.User
	follows map[edge]bool
	saved   map[edge]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   map[uuid.UUID]*models.User{},
		follows: map[edge]bool{},
		saved:   map[edge]bool{},
	}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FollowExists(_ context.Context, follower, followee uuid.UUID) (bool, error) {
	return f.follows[edge{follower, followee}], nil
}

func (f *fakeUserRepo) CreateFollow(_ context.Context, follower, followee uuid.UUID) error {
	f.follows[edge{follower, followee}] = true
	return nil
}

func (f *fakeUserRepo) DeleteFollow(_ context.Context, follower, followee uuid.UUID) error {
	delete(f.follows, edge{follower, followee})
	return nil
}

func (f *fakeUserRepo) CountFollowers(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for e := range f.follows {
		if e.b == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) SavedExists(_ context.Context, userID, campaignID uuid.UUID) (bool, error) {
	return f.saved[edge{userID, campaignID}], nil
}

func (f *fakeUserRepo) CreateSaved(_ context.Context, userID, campaignID uuid.UUID) error {
	f.saved[edge{userID, campaignID}] = true
	return nil
}

func (f *fakeUserRepo) DeleteSaved(_ context.Context, userID, campaignID uuid.UUID) error {
	delete(f.saved, edge{userID, campaignID})
	return nil
}

type fakeCampaignFinder struct {
	known map[uuid.UUID]bool
}

func (f *fakeCampaignFinder) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.known[id], nil
}

func buildUsersService(t *testing.T, repo *fakeUserRepo, campaigns *fakeCampaignFinder) Service {
	t.Helper()
	if campaigns == nil {
		campaigns = &fakeCampaignFinder{known: map[uuid.UUID]bool{}}
	}
	svc, err := NewService(ServiceParams{UserRepo: repo, CampaignRepo: campaigns})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestToggleFollowIsIdempotentPair(t *testing.T) {
	repo := newFakeUserRepo()
	alice := &models.User{ID: uuid.New(), Name: "Alice"}
	bob := &models.User{ID: uuid.New(), Name: "Bob"}
	repo.users[alice.ID] = alice
	repo.users[bob.ID] = bob

	svc := buildUsersService(t, repo, nil)
	ctx := context.Background()

	res, err := svc.ToggleFollow(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !res.Following || res.Followers != 1 {
		t.Fatalf("expected following with one follower, got %+v", res)
	}

	res, err = svc.ToggleFollow(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if res.Following || res.Followers != 0 {
		t.Fatalf("expected toggle back to original state, got %+v", res)
	}
}

func TestToggleFollowRejectsSelfFollow(t *testing.T) {
	repo := newFakeUserRepo()
	alice := &models.User{ID: uuid.New(), Name: "Alice"}
	repo.users[alice.ID] = alice

	svc := buildUsersService(t, repo, nil)

	_, err := svc.ToggleFollow(context.Background(), alice.ID, alice.ID)
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestToggleFollowUnknownFolloweeIsNotFound(t *testing.T) {
	repo := newFakeUserRepo()
	alice := &models.User{ID: uuid.New(), Name: "Alice"}
	repo.users[alice.ID] = alice

	svc := buildUsersService(t, repo, nil)

	_, err := svc.ToggleFollow(context.Background(), alice.ID, uuid.New())
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestToggleSaveRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	user := &models.User{ID: uuid.New(), Name: "Saver"}
	repo.users[user.ID] = user
	campaignID := uuid.New()
	campaigns := &fakeCampaignFinder{known: map[uuid.UUID]bool{campaignID: true}}

	svc := buildUsersService(t, repo, campaigns)
	ctx := context.Background()

	res, err := svc.ToggleSave(ctx, user.ID, campaignID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !res.Saved {
		t.Fatalf("expected saved after first toggle")
	}

	res, err = svc.ToggleSave(ctx, user.ID, campaignID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if res.Saved {
		t.Fatalf("expected unsaved after second toggle")
	}

	_, err = svc.ToggleSave(ctx, user.ID, uuid.New())
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown campaign, got %v", err)
	}
}
