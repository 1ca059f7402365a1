package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/ppob-wallet/internal/api/handlers"
	"github.com/baharkarakas/ppob-wallet/internal/api/httpx"
	"github.com/baharkarakas/ppob-wallet/internal/metrics"
	"github.com/baharkarakas/ppob-wallet/internal/middleware"
	"github.com/baharkarakas/ppob-wallet/internal/services"
)

type RouterDeps struct {
	Log            *slog.Logger
	Codec          middleware.Verifier
	RateRPS        int
	MaxUploadBytes int64
	// UploadDir is served under /uploads when set (local image storage).
	UploadDir string

	UserSvc    *services.UserService
	CatalogSvc *services.CatalogService
	BalanceSvc *services.BalanceService
	TxnSvc     *services.TransactionService
}

func NewRouter(d RouterDeps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, middleware.Recover(log), middleware.HTTPMetrics, middleware.RateLimit(d.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusNotFound, httpx.ClientError{Status: http.StatusNotFound, Message: "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusMethodNotAllowed, httpx.ClientError{Status: http.StatusMethodNotAllowed, Message: "Method Not Allowed"})
	})

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())
	if d.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadDir))))
	}

	members := handlers.NewMembershipHandler(d.UserSvc, d.MaxUploadBytes, log)
	info := handlers.NewInformationHandler(d.CatalogSvc, log)
	txns := handlers.NewTransactionHandler(d.BalanceSvc, d.TxnSvc, log)
	gate := middleware.NewAuthMiddleware(d.Codec)

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- public ----------
		r.Post("/registration", members.Register)
		r.Post("/login", members.Login)
		r.Get("/services", info.Services)
		r.Get("/banner", info.Banners)

		// ---------- behind the gate ----------
		r.Group(func(r chi.Router) {
			r.Use(gate.Auth)

			r.Get("/profile", members.Profile)
			r.Put("/profile/update", members.UpdateProfile)
			r.Put("/profile/image", members.UpdateProfileImage)

			r.Get("/balance", txns.Balance)
			r.Post("/topup", txns.TopUp)
			r.Post("/transaction", txns.Pay)
			r.Get("/transaction/history", txns.History)
		})
	})

	return r
}
