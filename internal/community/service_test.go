package community

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
)

type likeKey struct {
	user uuid.UUID
	post uuid.UUID
}

type fakeCommunityRepo struct {
	members []models.User
	posts   []PostWithMeta
	likes   map[likeKey]bool
}

func newFakeCommunityRepo() *fakeCommunityRepo {
	return &fakeCommunityRepo{likes: map[likeKey]bool{}}
}

func (f *fakeCommunityRepo) ListMembers(_ context.Context, search string, _ bool, limit int) ([]models.User, error) {
	var out []models.User
	for _, m := range f.members {
		if search != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(search)) {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeCommunityRepo) CreatePost(_ context.Context, post *models.Post) error {
	f.posts = append(f.posts, PostWithMeta{Post: *post})
	return nil
}

func (f *fakeCommunityRepo) PostExists(_ context.Context, id uuid.UUID) (bool, error) {
	for _, p := range f.posts {
		if p.Post.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCommunityRepo) ListPosts(_ context.Context, limit int) ([]PostWithMeta, error) {
	if len(f.posts) > limit {
		return f.posts[:limit], nil
	}
	return f.posts, nil
}

func (f *fakeCommunityRepo) LikeExists(_ context.Context, userID, postID uuid.UUID) (bool, error) {
	return f.likes[likeKey{userID, postID}], nil
}

func (f *fakeCommunityRepo) CreateLike(_ context.Context, userID, postID uuid.UUID) error {
	f.likes[likeKey{userID, postID}] = true
	return nil
}

func (f *fakeCommunityRepo) DeleteLike(_ context.Context, userID, postID uuid.UUID) error {
	delete(f.likes, likeKey{userID, postID})
	return nil
}

func (f *fakeCommunityRepo) CountLikes(_ context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	for k := range f.likes {
		if k.post == postID {
			count++
		}
	}
	return count, nil
}

type fakeAuthorResolver struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeAuthorResolver) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func buildCommunityService(t *testing.T, repo *fakeCommunityRepo, users *fakeAuthorResolver) Service {
	t.Helper()
	if users == nil {
		users = &fakeAuthorResolver{users: map[uuid.UUID]*models.User{}}
	}
	svc, err := NewService(ServiceParams{Repo: repo, UserRepo: users})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestCreatePostValidatesContent(t *testing.T) {
	repo := newFakeCommunityRepo()
	author := &models.User{ID: uuid.New(), Name: "Priya"}
	users := &fakeAuthorResolver{users: map[uuid.UUID]*models.User{author.ID: author}}
	svc := buildCommunityService(t, repo, users)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, author.ID, "  first update!  ")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.Content != "first update!" {
		t.Fatalf("content not trimmed: %q", post.Content)
	}
	if post.AuthorName != "Priya" {
		t.Fatalf("author not resolved: %q", post.AuthorName)
	}

	for _, content := range []string{"", "   ", strings.Repeat("x", maxPostLength+1)} {
		_, err := svc.CreatePost(ctx, author.ID, content)
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
			t.Errorf("content %q: expected validation error, got %v", content[:min(10, len(content))], err)
		}
	}
}

func TestToggleLikeRoundTrip(t *testing.T) {
	repo := newFakeCommunityRepo()
	author := &models.User{ID: uuid.New(), Name: "Priya"}
	users := &fakeAuthorResolver{users: map[uuid.UUID]*models.User{author.ID: author}}
	svc := buildCommunityService(t, repo, users)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, author.ID, "like me")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	liker := uuid.New()

	res, err := svc.ToggleLike(ctx, liker, post.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !res.Liked || res.Likes != 1 {
		t.Fatalf("expected liked with one like, got %+v", res)
	}

	res, err = svc.ToggleLike(ctx, liker, post.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if res.Liked || res.Likes != 0 {
		t.Fatalf("expected original state restored, got %+v", res)
	}

	_, err = svc.ToggleLike(ctx, liker, uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown post, got %v", err)
	}
}

func TestListMembersSearch(t *testing.T) {
	repo := newFakeCommunityRepo()
	repo.members = []models.User{
		{ID: uuid.New(), Name: "Priya", Contributions: 5},
		{ID: uuid.New(), Name: "Rahul", Contributions: 2},
	}
	svc := buildCommunityService(t, repo, nil)

	members, err := svc.ListMembers(context.Background(), MembersQuery{Search: "pri"})
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 1 || members[0].Name != "Priya" {
		t.Fatalf("unexpected members %+v", members)
	}
}
