package insights

import (
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

func (h *Handler) filterFromRequest(r *http.Request) (Filter, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		return Filter{}, false
	}

	f := Filter{OrganizationID: user.OrganizationID}
	if raw := r.URL.Query().Get("mailRoomId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.MailRoomID = &id
		}
	}
	return f, true
}

func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	f, ok := h.filterFromRequest(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.Service.DashboardStats(r.Context(), f)
	if err != nil {
		h.Logger.Error("GetDashboardStats: service error", "error", err, "org_id", f.OrganizationID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	f, ok := h.filterFromRequest(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	distribution, err := h.Service.Distribution(r.Context(), f)
	if err != nil {
		h.Logger.Error("GetDistribution: service error", "error", err, "org_id", f.OrganizationID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"distribution": distribution,
	})
}

func (h *Handler) GetBusiestPeriods(w http.ResponseWriter, r *http.Request) {
	f, ok := h.filterFromRequest(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	periods, err := h.Service.BusiestPeriods(r.Context(), f)
	if err != nil {
		h.Logger.Error("GetBusiestPeriods: service error", "error", err, "org_id", f.OrganizationID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, periods)
}
