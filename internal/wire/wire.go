// internal/wire/wire.go
package wire

import (
	"net/http"

	"room-booking/internal/adaptor"
	"room-booking/internal/data/repository"
	"room-booking/internal/notify"
	"room-booking/internal/usecase"
	"room-booking/pkg/middleware"
	"room-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired dependencies.
type App struct {
	Router     *chi.Mux
	Dispatcher *notify.Dispatcher
}

// Wiring initializes services, handlers and the notification pipeline.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	lineClient := notify.NewLineClient(config.Line, logger)
	dispatcher := notify.NewDispatcher(repo.User, lineClient, config.Notify.BufferSize, logger)

	service := usecase.NewService(repo, dispatcher, logger)
	handler := adaptor.NewHandler(service, lineClient, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router:     router,
		Dispatcher: dispatcher,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(middleware.NewHTTPMetrics()))

	// Apply routes
	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireRoom(r, handler.Room, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wireVerification(r, handler.Verification, repo, logger)
	wireFeedback(r, handler.Feedback, repo, logger)
	wireWebhook(r, handler.Webhook)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
