package server

import (
	"github.com/aslanbek/stayhub/internal/auth"
	"github.com/aslanbek/stayhub/internal/booking"
	"github.com/aslanbek/stayhub/internal/config"
	"github.com/aslanbek/stayhub/internal/event"
	"github.com/aslanbek/stayhub/internal/logger"
	"github.com/aslanbek/stayhub/internal/media"
	"github.com/aslanbek/stayhub/internal/metrics"
	"github.com/aslanbek/stayhub/internal/room"
	"github.com/aslanbek/stayhub/internal/selection"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config         config.Config
	Logger         *zap.Logger
	DB             *pgxpool.Pool
	ObjectStore    *minio.Client
	AuthService    *auth.Service
	Classifier     *media.Classifier
	Ingestor       *media.Ingestor
	MediaStore     *media.Store
	Selections     *selection.Registry
	RoomService    *room.Service
	EventService   *event.Service
	BookingService *booking.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if deps.Logger != nil {
		router.Use(logger.Middleware(deps.Logger))
	}
	metrics.InitMetrics()
	router.Use(metrics.Middleware())

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	api := router.Group("/v1")
	if deps.AuthService != nil {
		auth.RegisterRoutes(api, deps.AuthService)

		protected := api.Group("/")
		protected.Use(auth.Middleware(deps.AuthService))

		auth.RegisterAdminRoutes(protected, deps.AuthService)

		if deps.Classifier != nil && deps.Ingestor != nil && deps.MediaStore != nil {
			media.RegisterRoutes(protected, deps.Classifier, deps.Ingestor, deps.MediaStore, deps.Selections)
		}
		if deps.Selections != nil {
			selection.RegisterRoutes(protected, deps.Selections)
		}
		if deps.RoomService != nil {
			room.RegisterRoutes(protected, deps.RoomService)
		}
		if deps.EventService != nil {
			event.RegisterRoutes(protected, deps.EventService)
		}
		if deps.BookingService != nil {
			booking.RegisterRoutes(protected, deps.BookingService)
		}
	}

	return router
}
