package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Browsing endpoints are public; everything that mutates state requires a
// Bearer token.
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	attendeeController *controllers.AttendeeController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("GET /auth/me", requireAuth(authController.Me))

	// Events
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("PATCH /events/{eventID}", requireAuth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.DeleteEvent))

	// RSVP (always for the caller's own identity)
	mux.HandleFunc("POST /events/{eventID}/rsvp", requireAuth(attendeeController.RSVP))
	mux.HandleFunc("DELETE /events/{eventID}/rsvp", requireAuth(attendeeController.CancelRSVP))
	mux.HandleFunc("GET /events/me/rsvps", requireAuth(attendeeController.ListMyEvents))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
