package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/nikolayk812/gomarketplace-cart/internal/cart"
)

// NewRouter serves the cart held by store.
func NewRouter(store *cart.Store, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", healthHandler)

	r.Route("/cart", func(r chi.Router) {
		r.Use(Provide(store))
		mountCart(r)
	})

	return r
}

// CartRoutes serves the cart endpoints without a provider; requests must
// already carry a store in their context.
func CartRoutes() chi.Router {
	r := chi.NewRouter()
	mountCart(r)
	return r
}

func mountCart(r chi.Router) {
	h := cartHandler{}

	r.Get("/", h.GetCart)
	r.Post("/items", h.AddItem)
	r.Post("/items/{id}/increment", h.Increment)
	r.Post("/items/{id}/decrement", h.Decrement)
}

// Provide installs store as the cart provider for every request below it.
func Provide(store *cart.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(cart.NewContext(r.Context(), store)))
		})
	}
}

// requestID keeps an incoming X-Request-Id or mints a UUID, and exposes it
// through middleware.GetReqID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
