package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	cartctrl "farmfresh/internal/cart/controller"
	"farmfresh/internal/notification"
	orderctrl "farmfresh/internal/order/controller"
	wishlistctrl "farmfresh/internal/wishlist/controller"
)

func NewRouter(
	orders *orderctrl.OrderController,
	carts *cartctrl.CartController,
	wishlists *wishlistctrl.WishlistController,
	notifications *notification.Controller,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orders.Create)
			r.Get("/{orderId}", orders.Get)
			r.Post("/{orderId}/cancel", orders.Cancel)
			r.Get("/customer/{customerId}", orders.ListByCustomer)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Post("/", carts.Add)
			r.Post("/remove", carts.Remove)
			r.Get("/{customerId}", carts.List)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Post("/", wishlists.Add)
			r.Post("/remove", wishlists.Remove)
			r.Get("/{customerId}", wishlists.List)
		})

		r.Get("/notifications/{recipientId}", notifications.ListByRecipient)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
