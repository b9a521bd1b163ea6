package community

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/db/models"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/enums"
	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
)

const (
	// MembersLimit caps the community members listing.
	MembersLimit = 50
	// PostsLimit caps the community feed listing.
	PostsLimit = 20
	// maxPostLength bounds post content.
	maxPostLength = 2000
)

// MemberDTO is the public shape of a community member.
type MemberDTO struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Role          enums.UserRole `json:"role"`
	AvatarURL     *string        `json:"avatar_url,omitempty"`
	Contributions int            `json:"contributions"`
}

// PostDTO is the public shape of a feed entry.
type PostDTO struct {
	ID         uuid.UUID `json:"id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	Likes      int64     `json:"likes"`
	CreatedAt  time.Time `json:"created_at"`
}

// LikeToggleResult reports the state after a like toggle.
type LikeToggleResult struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// MembersQuery filters the members listing.
type MembersQuery struct {
	Search string
	Top    bool
}

// Service defines the community feed operations.
type Service interface {
	ListMembers(ctx context.Context, query MembersQuery) ([]MemberDTO, error)
	ListPosts(ctx context.Context) ([]PostDTO, error)
	CreatePost(ctx context.Context, authorID uuid.UUID, content string) (*PostDTO, error)
	ToggleLike(ctx context.Context, userID, postID uuid.UUID) (*LikeToggleResult, error)
}

type communityRepository interface {
	ListMembers(ctx context.Context, search string, top bool, limit int) ([]models.User, error)
	CreatePost(ctx context.Context, post *models.Post) error
	PostExists(ctx context.Context, id uuid.UUID) (bool, error)
	ListPosts(ctx context.Context, limit int) ([]PostWithMeta, error)
	LikeExists(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	CreateLike(ctx context.Context, userID, postID uuid.UUID) error
	DeleteLike(ctx context.Context, userID, postID uuid.UUID) error
	CountLikes(ctx context.Context, postID uuid.UUID) (int64, error)
}

type authorResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	repo  communityRepository
	users authorResolver
}

// ServiceParams bundles the dependencies required to build a community service.
type ServiceParams struct {
	Repo     communityRepository
	UserRepo authorResolver
}

// NewService constructs a community service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("community repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{repo: params.Repo, users: params.UserRepo}, nil
}

func (s *service) ListMembers(ctx context.Context, query MembersQuery) ([]MemberDTO, error) {
	members, err := s.repo.ListMembers(ctx, query.Search, query.Top, MembersLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list members")
	}

	out := make([]MemberDTO, 0, len(members))
	for _, m := range members {
		out = append(out, MemberDTO{
			ID:            m.ID,
			Name:          m.Name,
			Role:          m.Role,
			AvatarURL:     m.AvatarURL,
			Contributions: m.Contributions,
		})
	}
	return out, nil
}

func (s *service) ListPosts(ctx context.Context) ([]PostDTO, error) {
	rows, err := s.repo.ListPosts(ctx, PostsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list posts")
	}

	out := make([]PostDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, PostDTO{
			ID:         row.Post.ID,
			AuthorID:   row.Post.AuthorID,
			AuthorName: row.AuthorName,
			Content:    row.Post.Content,
			Likes:      row.Likes,
			CreatedAt:  row.Post.CreatedAt,
		})
	}
	return out, nil
}

func (s *service) CreatePost(ctx context.Context, authorID uuid.UUID, content string) (*PostDTO, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "post content is required")
	}
	if len(content) > maxPostLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "post content is too long")
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup author")
	}

	post := &models.Post{
		ID:       uuid.New(),
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create post")
	}

	return &PostDTO{
		ID:         post.ID,
		AuthorID:   post.AuthorID,
		AuthorName: author.Name,
		Content:    post.Content,
		CreatedAt:  post.CreatedAt,
	}, nil
}

// ToggleLike flips the user's like on a post. Calling it twice restores the
// original state.
func (s *service) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (*LikeToggleResult, error) {
	found, err := s.repo.PostExists(ctx, postID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup post")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	}

	exists, err := s.repo.LikeExists(ctx, userID, postID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check like")
	}

	liked := !exists
	if exists {
		if err := s.repo.DeleteLike(ctx, userID, postID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete like")
		}
	} else {
		if err := s.repo.CreateLike(ctx, userID, postID); err != nil {
			if !db.IsUniqueViolation(err, "post_likes_user_post_key") {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create like")
			}
		}
	}

	likes, err := s.repo.CountLikes(ctx, postID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count likes")
	}
	return &LikeToggleResult{Liked: liked, Likes: likes}, nil
}
