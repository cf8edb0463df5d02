package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/parceldesk/mailroom/internal/audit"
	"github.com/parceldesk/mailroom/internal/auth"
	"github.com/parceldesk/mailroom/internal/insights"
	"github.com/parceldesk/mailroom/internal/integration"
	"github.com/parceldesk/mailroom/internal/mailitem"
	"github.com/parceldesk/mailroom/internal/notification"
	"github.com/parceldesk/mailroom/internal/organization"
	"github.com/parceldesk/mailroom/internal/pickup"
	"github.com/parceldesk/mailroom/internal/recipient"
	"github.com/parceldesk/mailroom/internal/transport/middleware"
	"github.com/parceldesk/mailroom/internal/transport/swagger"
)

type Handlers struct {
	Auth         *auth.Handler
	Organization *organization.Handler
	Recipient    *recipient.Handler
	MailItem     *mailitem.Handler
	Pickup       *pickup.Handler
	Notification *notification.Handler
	Insights     *insights.Handler
	Audit        *audit.Handler
	Integration  *integration.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec and swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.Auth.GetCurrentUser)

			pr.Route("/organizations", func(or chi.Router) {
				or.Get("/", h.Organization.GetOrganization)

				or.Group(func(mr chi.Router) {
					mr.Use(auth.RequirePermission(auth.PermManageOrganization, logger))
					mr.Post("/", h.Organization.CreateOrganization)
					mr.Patch("/", h.Organization.UpdateOrganization)
				})
			})

			pr.Route("/mailrooms", func(mr chi.Router) {
				mr.Get("/", h.Organization.ListMailRooms)
				mr.Get("/{id}", h.Organization.GetMailRoom)

				mr.Group(func(ar chi.Router) {
					ar.Use(auth.RequirePermission(auth.PermManageOrganization, logger))
					ar.Post("/", h.Organization.CreateMailRoom)
					ar.Patch("/{id}", h.Organization.UpdateMailRoom)
					ar.Delete("/{id}", h.Organization.DeactivateMailRoom)
				})
			})

			pr.Route("/recipients", func(rr chi.Router) {
				rr.Get("/", h.Recipient.ListProfiles)
				rr.Get("/{id}", h.Recipient.GetProfile)

				rr.Group(func(ar chi.Router) {
					ar.Use(auth.RequirePermission(auth.PermManageOrganization, logger))
					ar.Post("/", h.Recipient.CreateProfile)
					ar.Patch("/{id}", h.Recipient.UpdateProfile)
				})
			})

			pr.Route("/external-people", func(er chi.Router) {
				er.Get("/", h.Recipient.ListExternalPeople)
				er.Get("/{id}", h.Recipient.GetExternalPerson)

				er.Group(func(ir chi.Router) {
					ir.Use(auth.RequirePermission(auth.PermRecordIntake, logger))
					ir.Post("/", h.Recipient.CreateExternalPerson)
				})
			})

			pr.Route("/mail-items", func(mr chi.Router) {
				mr.Get("/pending", h.MailItem.GetPendingMailItems)
				mr.Get("/{id}", h.MailItem.GetMailItem)
				mr.Get("/{id}/notifications", h.Notification.ListNotifications)

				mr.Group(func(ir chi.Router) {
					ir.Use(auth.RequirePermission(auth.PermRecordIntake, logger))
					ir.Post("/", h.MailItem.CreateMailItem)
				})

				mr.Group(func(cr chi.Router) {
					cr.Use(auth.RequirePermission(auth.PermRecordPickup, logger))
					cr.Patch("/{id}/return", h.MailItem.MarkReturned)
					cr.Patch("/{id}/lost", h.MailItem.MarkLost)
				})
			})

			pr.Route("/pickups", func(kr chi.Router) {
				kr.Get("/", h.Pickup.ListPickups)

				kr.Group(func(wr chi.Router) {
					wr.Use(auth.RequirePermission(auth.PermRecordPickup, logger))
					wr.Post("/", h.Pickup.CreatePickup)
				})
			})

			pr.Group(func(nr chi.Router) {
				nr.Use(auth.RequirePermission(auth.PermSendNotifications, logger))
				nr.Post("/notifications", h.Notification.CreateNotification)
			})

			pr.Route("/insights", func(ir chi.Router) {
				ir.Use(auth.RequirePermission(auth.PermViewInsights, logger))
				ir.Get("/dashboard", h.Insights.GetDashboardStats)
				ir.Get("/distribution", h.Insights.GetDistribution)
				ir.Get("/busiest-periods", h.Insights.GetBusiestPeriods)
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(auth.RequirePermission(auth.PermViewAuditLogs, logger))
				ar.Get("/audit-logs", h.Audit.ListAuditLogs)
			})

			pr.Route("/integrations", func(ir chi.Router) {
				ir.Use(auth.RequirePermission(auth.PermManageIntegrations, logger))
				ir.Post("/", h.Integration.CreateIntegration)
				ir.Get("/", h.Integration.ListIntegrations)
				ir.Get("/{id}", h.Integration.GetIntegration)
				ir.Patch("/{id}", h.Integration.UpdateIntegration)
				ir.Delete("/{id}", h.Integration.DeleteIntegration)
			})
		})
	})
}
