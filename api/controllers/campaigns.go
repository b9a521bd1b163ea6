package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Developer-Chandan-Dev/fund-raising/api/middleware"
	"github.com/Developer-Chandan-Dev/fund-raising/api/responses"
	"github.com/Developer-Chandan-Dev/fund-raising/api/validators"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/campaigns"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/ledger"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/media"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/users"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/enums"
	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/logger"
)

// multipartMemoryLimit caps how much of a campaign form is buffered in
// memory before spilling to disk.
const multipartMemoryLimit = 8 << 20

func actorFromContext(r *http.Request) (campaigns.Actor, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return campaigns.Actor{}, false
	}
	role, _ := middleware.RoleFromContext(r.Context())
	return campaigns.Actor{ID: userID, Role: role}, true
}

func parseEndDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid end_date").WithDetails(map[string]any{"field": "end_date"})
}

// CampaignsList serves the public paginated listing.
func CampaignsList(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := campaigns.ListQuery{
			Pagination: params,
			Search:     strings.TrimSpace(r.URL.Query().Get("search")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseCampaignStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").WithDetails(map[string]any{"field": "status"}))
				return
			}
			query.Status = &status
		}

		result, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CampaignsGet serves one campaign with its ordered donor list.
func CampaignsGet(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// CampaignsRecent serves the latest campaigns for the authed home section.
func CampaignsRecent(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recent, err := svc.Recent(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"campaigns": recent})
	}
}

// CampaignsCreate accepts a multipart form with an optional image file.
func CampaignsCreate(svc campaigns.Service, mediaSvc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromContext(r)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		endDate, err := parseEndDate(r.FormValue("end_date"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := campaigns.CreateCampaignInput{
			Title:       strings.TrimSpace(r.FormValue("title")),
			Description: strings.TrimSpace(r.FormValue("description")),
			Category:    strings.TrimSpace(r.FormValue("category")),
			GoalAmount:  strings.TrimSpace(r.FormValue("goal_amount")),
			EndDate:     endDate,
		}

		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			if mediaSvc == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "image storage unavailable"))
				return
			}
			uploaded, err := mediaSvc.Upload(r.Context(), media.UploadInput{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Body:        file,
			})
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.ImageURL = &uploaded.URL
			input.ImageObject = &uploaded.ObjectKey
		}

		created, err := svc.Create(r.Context(), actor, input)
		if err != nil {
			// the row never landed, drop the orphaned object
			if mediaSvc != nil && input.ImageObject != nil {
				if cleanupErr := mediaSvc.Delete(r.Context(), *input.ImageObject); cleanupErr != nil && logg != nil {
					logg.Error(r.Context(), "campaign image orphan cleanup failed", cleanupErr)
				}
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

type campaignUpdateRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Category    *string      `json:"category"`
	GoalAmount  *json.Number `json:"goal_amount"`
	Status      *string      `json:"status"`
	EndDate     *string      `json:"end_date"`
	ImageURL    *string      `json:"image_url"`
	ImageObject *string      `json:"image_object"`
}

// CampaignsUpdate applies a partial update on behalf of the creator or an admin.
func CampaignsUpdate(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromContext(r)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body campaignUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := campaigns.UpdateCampaignInput{
			Title:       body.Title,
			Description: body.Description,
			Category:    body.Category,
			Status:      body.Status,
			ImageURL:    body.ImageURL,
			ImageObject: body.ImageObject,
		}
		if body.GoalAmount != nil {
			goal := body.GoalAmount.String()
			input.GoalAmount = &goal
		}
		if body.EndDate != nil {
			endDate, err := parseEndDate(*body.EndDate)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.EndDate = endDate
		}

		updated, err := svc.Update(r.Context(), actor, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// CampaignsDelete removes a campaign and its donations.
func CampaignsDelete(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromContext(r)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CampaignsContribute appends a donation. The route runs behind optional
// auth so an absent token means an anonymous-capable request.
func CampaignsContribute(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body ledger.ContributeInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var actor *uuid.UUID
		if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
			actor = &userID
		}

		result, err := svc.Contribute(r.Context(), id, actor, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// CampaignsSaveToggle flips the saved state of a campaign for the actor.
func CampaignsSaveToggle(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ToggleSave(r.Context(), userID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
