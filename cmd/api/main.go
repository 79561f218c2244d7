package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"eventhub/config"
	_ "eventhub/docs"
	"eventhub/internal/adapters/auth"
	delivery "eventhub/internal/delivery/http"
	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/repository/postgres"
	"eventhub/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title EventHub API
// @version 1.0
// @description Event-hosting platform with capacity-bounded, race-safe RSVPs.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	eventRepo := postgres.NewEventRepository(db)
	attendeeRepo := postgres.NewAttendeeRepository(db)
	userRepo := postgres.NewUserRepository(db)

	hasher := auth.NewBcryptHasher(10)
	jwtCodec := auth.NewJWTCodec(cfg.JWTSecret)

	authService := services.NewAuthService(userRepo, hasher, jwtCodec, cfg.JWTExpiry)
	eventService := services.NewEventService(eventRepo, serviceTimeout)
	attendeeService := services.NewAttendeeService(eventRepo, attendeeRepo, serviceTimeout)

	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService, authService)
	attendeeController := controllers.NewAttendeeController(logger, attendeeService)

	mux := delivery.NewRouter(authController, eventController, attendeeController, jwtCodec)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.Logging(logger, mux))

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
