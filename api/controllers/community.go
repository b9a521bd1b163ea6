package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Developer-Chandan-Dev/fund-raising/api/middleware"
	"github.com/Developer-Chandan-Dev/fund-raising/api/responses"
	"github.com/Developer-Chandan-Dev/fund-raising/api/validators"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/community"
	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/logger"
)

// CommunityMembers lists members, searchable by name and sortable by
// contribution count via ?top=true.
func CommunityMembers(svc community.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := community.MembersQuery{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Top:    strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("top")), "true"),
		}

		members, err := svc.ListMembers(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"members": members})
	}
}

// CommunityPosts lists the latest posts with author and like counts.
func CommunityPosts(svc community.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.ListPosts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"posts": posts})
	}
}

type createPostRequest struct {
	Content string `json:"content" validate:"required"`
}

// CommunityCreatePost publishes a post authored by the actor.
func CommunityCreatePost(svc community.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var body createPostRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		post, err := svc.CreatePost(r.Context(), userID, body.Content)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, post)
	}
}

// CommunityLikeToggle flips the actor's like on a post.
func CommunityLikeToggle(svc community.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		postID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ToggleLike(r.Context(), userID, postID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
