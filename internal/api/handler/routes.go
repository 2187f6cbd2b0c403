package handler

import (
	"net/http"

	"github.com/vfg2006/bizhub-api/internal/api/handler/router"
	"github.com/vfg2006/bizhub-api/internal/usecases/authenticating"
	"github.com/vfg2006/bizhub-api/internal/usecases/campaigns"
	"github.com/vfg2006/bizhub-api/internal/usecases/contacts"
	"github.com/vfg2006/bizhub-api/internal/usecases/dashboards"
	"github.com/vfg2006/bizhub-api/internal/usecases/escrow"
	"github.com/vfg2006/bizhub-api/internal/usecases/ticketing"
	"github.com/vfg2006/bizhub-api/internal/usecases/workspaces"
	"github.com/vfg2006/bizhub-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Workspaces(service workspaces.WorkspaceService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/workspaces",
			Method:      http.MethodPost,
			Handler:     CreateWorkspace(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/workspaces/me",
			Method:      http.MethodGet,
			Handler:     GetMyWorkspace(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Contacts(service contacts.ContactService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/contacts",
			Method:      http.MethodPost,
			Handler:     CreateContact(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/contacts",
			Method:      http.MethodGet,
			Handler:     ListContacts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/contacts/:id",
			Method:      http.MethodGet,
			Handler:     GetContact(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/contacts/:id",
			Method:      http.MethodDelete,
			Handler:     DeactivateContact(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/contact-lists",
			Method:      http.MethodPost,
			Handler:     CreateContactList(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/contact-lists",
			Method:      http.MethodGet,
			Handler:     ListContactLists(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/contact-lists/:id/members",
			Method:      http.MethodPost,
			Handler:     AddContactToList(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Campaigns(service campaigns.CampaignService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodPost,
			Handler:     CreateCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id",
			Method:      http.MethodGet,
			Handler:     GetCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/status",
			Method:      http.MethodPut,
			Handler:     UpdateCampaignStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/send",
			Method:      http.MethodPost,
			Handler:     SendCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Tickets(service ticketing.TicketService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/tickets",
			Method:      http.MethodPost,
			Handler:     CreateTicket(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/tickets",
			Method:      http.MethodGet,
			Handler:     ListTickets(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/tickets/:id",
			Method:      http.MethodGet,
			Handler:     GetTicket(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/tickets/:id/status",
			Method:      http.MethodPut,
			Handler:     UpdateTicketStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Escrow(service escrow.EscrowService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/escrow",
			Method:      http.MethodPost,
			Handler:     CreateEscrowTransaction(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/escrow",
			Method:      http.MethodGet,
			Handler:     ListEscrowTransactions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/escrow/:id",
			Method:      http.MethodGet,
			Handler:     GetEscrowTransaction(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/escrow/:id/status",
			Method:      http.MethodPut,
			Handler:     UpdateEscrowStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Dashboards(service dashboards.DashboardService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboardOverview(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/marketing",
			Method:      http.MethodGet,
			Handler:     GetMarketingDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/support",
			Method:      http.MethodGet,
			Handler:     GetSupportDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/escrow",
			Method:      http.MethodGet,
			Handler:     GetEscrowDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/activities",
			Method:      http.MethodPost,
			Handler:     LogActivity(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
