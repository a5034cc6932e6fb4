package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/jirehclean/portal/internal/http/v1/appointments"
	"github.com/jirehclean/portal/internal/http/v1/preferences"
	sessionhandler "github.com/jirehclean/portal/internal/http/v1/session"
	"github.com/jirehclean/portal/internal/platform/auth"
	accountsvc "github.com/jirehclean/portal/internal/service/account"
	apptsvc "github.com/jirehclean/portal/internal/service/appointment"
	prefsvc "github.com/jirehclean/portal/internal/service/preferences"
)

// Register wires all HTTP routes into the provided API router. adminEmail is
// the distinguished operator address; empty disables the operator surface.
func Register(
	api huma.API,
	verifier auth.Verifier,
	accountService accountsvc.Service,
	appointmentService apptsvc.Service,
	preferenceService prefsvc.Service,
	adminEmail string,
) {
	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	sessionhandler.Register(api, accountService, adminEmail)
	appointments.Register(api, appointmentService, adminEmail)
	preferences.Register(api, preferenceService)
}
