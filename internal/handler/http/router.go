package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/coffeetree-vn/attendance-sync-go/internal/handler/http/middleware"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/jwt"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	m *metrics.Metrics,
	authHandler AuthHandler,
	deviceHandler DeviceHandler,
	syncHandler SyncHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-sync"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/devices", func(r chi.Router) {
				r.Get("/", deviceHandler.List)
				r.Post("/", deviceHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", deviceHandler.Get)
					r.Put("/", deviceHandler.Update)
					r.Delete("/", deviceHandler.Delete)

					r.Post("/check", deviceHandler.CheckConnection)
					r.Post("/clock", deviceHandler.SetClock)
					r.Post("/sync", syncHandler.Trigger)
					r.Get("/runs", deviceHandler.ListRuns)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
			})
		})
	})
	return r
}
