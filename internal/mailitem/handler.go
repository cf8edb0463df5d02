package mailitem

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/parceldesk/mailroom/internal/auth"
	"github.com/parceldesk/mailroom/internal/transport"
	"github.com/parceldesk/mailroom/pkg/logger"
)

type ServiceAPI interface {
	RecordIntake(ctx context.Context, orgID, processedByID int64, dto IntakeDTO) (*MailItem, error)
	GetMailItem(orgID, id int64) (*MailItem, error)
	ListPending(orgID int64, query ListPendingQuery) (*Page, error)
	ListByStatus(orgID int64, status string, limit, offset int) ([]*MailItem, error)
	MarkReturned(orgID, id int64) (*MailItem, error)
	MarkLost(orgID, id int64) (*MailItem, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateMailItem(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateMailItem: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto IntakeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateMailItem: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.RecordIntake(r.Context(), user.OrganizationID, user.ID, dto)
	if err != nil {
		h.Logger.Error("CreateMailItem: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) GetPendingMailItems(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	query := ListPendingQuery{
		Search: r.URL.Query().Get("search"),
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil {
			query.Page = p
		}
	}
	if sizeStr := r.URL.Query().Get("pageSize"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil {
			query.PageSize = s
		}
	}
	if roomStr := r.URL.Query().Get("mailRoomId"); roomStr != "" {
		if id, err := strconv.ParseInt(roomStr, 10, 64); err == nil {
			query.MailRoomID = &id
		}
	}

	page, err := h.Service.ListPending(user.OrganizationID, query)
	if err != nil {
		h.Logger.Error("GetPendingMailItems: service error", "error", err, "org_id", user.OrganizationID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) GetMailItem(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid mail item ID")
		return
	}

	item, err := h.Service.GetMailItem(user.OrganizationID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) MarkReturned(w http.ResponseWriter, r *http.Request) {
	h.closeItem(w, r, "returned")
}

func (h *Handler) MarkLost(w http.ResponseWriter, r *http.Request) {
	h.closeItem(w, r, "lost")
}

func (h *Handler) closeItem(w http.ResponseWriter, r *http.Request, action string) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid mail item ID")
		return
	}

	var item *MailItem
	if action == "returned" {
		item, err = h.Service.MarkReturned(user.OrganizationID, id)
	} else {
		item, err = h.Service.MarkLost(user.OrganizationID, id)
	}
	if err != nil {
		h.Logger.Error("closeItem: service error", "error", err, "mail_item_id", id, "action", action)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
