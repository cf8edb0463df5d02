package pickup

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/parceldesk/mailroom/internal/auth"
	"github.com/parceldesk/mailroom/internal/transport"
	"github.com/parceldesk/mailroom/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(service *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreatePickup(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreatePickup: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreatePickupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreatePickup: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.CreatePickup(r.Context(), user.OrganizationID, user.ID, dto)
	if err != nil {
		h.Logger.Error("CreatePickup: service error", "error", err, "mail_item_id", dto.MailItemID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) ListPickups(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	mailItemIDStr := r.URL.Query().Get("mailItemId")
	mailItemID, err := strconv.ParseInt(mailItemIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "mailItemId query parameter is required")
		return
	}

	pickups, err := h.Service.ListByMailItem(user.OrganizationID, mailItemID)
	if err != nil {
		h.Logger.Error("ListPickups: service error", "error", err, "mail_item_id", mailItemID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"pickups": pickups,
	})
}
