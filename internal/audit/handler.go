package audit

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

func (h *Handler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.Service.ListByOrganization(user.OrganizationID, limit)
	if err != nil {
		h.Logger.Error("ListAuditLogs: service error", "error", err, "org_id", user.OrganizationID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"audit_logs": entries,
	})
}
