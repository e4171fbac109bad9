package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paoquentinho/storefront/api/controllers"
	cartcontrollers "github.com/paoquentinho/storefront/api/controllers/cart"
	ordercontrollers "github.com/paoquentinho/storefront/api/controllers/orders"
	"github.com/paoquentinho/storefront/api/middleware"
	"github.com/paoquentinho/storefront/internal/app"
	"github.com/paoquentinho/storefront/pkg/config"
	"github.com/paoquentinho/storefront/pkg/logger"
)

const tracingService = "paoquentinho-api"

func NewRouter(cfg *config.Config, logg *logger.Logger, a *app.App) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Tracing(tracingService),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Session(a.Auth, logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, a, logg))
	})
	if a.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(a.Products, logg))
			r.Get("/{productId}", controllers.ProductDetail(a.Products, logg))
		})
		r.Get("/categories", controllers.CategoryList(a.Products, logg))
		r.Get("/custom-cake/options", controllers.CustomCakeOptions(a.Products, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(a.Cart, logg))
			r.Delete("/", cartcontrollers.CartClear(a.Cart, logg))
			r.Post("/items", cartcontrollers.CartAddItem(a.Cart, a.Products, logg))
			r.Patch("/items/{productId}", cartcontrollers.CartUpdateProduct(a.Cart, logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemoveProduct(a.Cart, logg))
			r.Patch("/lines/{lineId}", cartcontrollers.CartUpdateLine(a.Cart, logg))
			r.Delete("/lines/{lineId}", cartcontrollers.CartRemoveLine(a.Cart, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(a.Auth, logg))
			r.Post("/register", controllers.AuthRegister(a.Auth, logg))
			r.Post("/google", controllers.AuthGoogle(a.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(a.Auth, logg))
		})
		r.Get("/profile", controllers.ProfileGet(a.Auth, logg))
		r.Patch("/profile", controllers.ProfileUpdate(a.Auth, logg))

		r.Post("/checkout", controllers.CheckoutSubmit(a.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordercontrollers.OrderList(a.Orders, a.Auth, logg))
			r.Get("/{orderId}", ordercontrollers.OrderDetail(a.Orders, logg))
			r.Post("/{orderId}/status", ordercontrollers.OrderUpdateStatus(a.Orders, logg))
		})
	})

	return r
}
