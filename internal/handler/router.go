package handler

import (
	"net/http"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	JWTSecret      string
	AllowedOrigin  string
	RequestTimeout time.Duration
}

type Handlers struct {
	Orders *OrderHandler
	Carts  *CartHandler
	Stores *StoreHandler
}

func NewRouter(cfg RouterConfig, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(chimw.Timeout(cfg.RequestTimeout))
		}
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit)
		r.Use(middleware.RequireUser)

		r.Post("/orders", h.Orders.PlaceOrder)
		r.Get("/orders", h.Orders.ListOrders)

		r.Get("/cart", h.Carts.GetCart)
		r.Post("/cart", h.Carts.SaveCart)
		r.Post("/cart/items", h.Carts.AddItem)
		r.Delete("/cart/items/{key}", h.Carts.RemoveItem)

		r.Post("/store/stock-toggle", h.Stores.ToggleStock)
		r.Put("/store/products/{id}/variants", h.Stores.UpdateVariants)
	})

	return r
}
