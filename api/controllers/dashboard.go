package controllers

import (
	"net/http"

	"github.com/Developer-Chandan-Dev/fund-raising/api/middleware"
	"github.com/Developer-Chandan-Dev/fund-raising/api/responses"
	"github.com/Developer-Chandan-Dev/fund-raising/internal/dashboard"
	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
	"github.com/Developer-Chandan-Dev/fund-raising/pkg/logger"
)

// DashboardCards serves the actor's stat cards.
func DashboardCards(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		cards, err := svc.Cards(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cards)
	}
}
