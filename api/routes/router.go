package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tiopelotte/storefront-api/api/controllers"
	"github.com/tiopelotte/storefront-api/api/middleware"
	cartsvc "github.com/tiopelotte/storefront-api/internal/cart"
	"github.com/tiopelotte/storefront-api/internal/catalog"
	checkoutsvc "github.com/tiopelotte/storefront-api/internal/checkout"
	ordersvc "github.com/tiopelotte/storefront-api/internal/orders"
	sessionsvc "github.com/tiopelotte/storefront-api/internal/session"
	"github.com/tiopelotte/storefront-api/pkg/cms"
	"github.com/tiopelotte/storefront-api/pkg/config"
	"github.com/tiopelotte/storefront-api/pkg/logger"
	"github.com/tiopelotte/storefront-api/pkg/redis"
)

// RouterParams carries everything the HTTP surface needs. The CMS client is
// passed whole for the admin proxy endpoints; storefront routes only see the
// domain services.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	Redis    *redis.Client
	CMS      *cms.Client
	Catalog  catalog.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   ordersvc.Service
	Sessions sessionsvc.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/health", func(r chi.Router) {
			r.Get("/live", controllers.HealthLive(cfg))
			r.Get("/ready", controllers.HealthReady(cfg, p.Redis, p.CMS, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(p.Catalog, logg))
			r.Get("/featured", controllers.FeaturedProducts(p.Catalog, logg))
			r.Get("/offers", controllers.OfferProducts(p.Catalog, logg))
			r.Get("/{slug}", controllers.GetProduct(p.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(p.Cart, logg))
			r.Delete("/", controllers.ClearCart(p.Cart, logg))
			r.Post("/items", controllers.AddCartItem(p.Cart, logg))
			r.Delete("/items/{productID}", controllers.RemoveCartItem(p.Cart, logg))
		})

		// Checkout is open to guests. Auth runs in soft mode so a logged-in
		// buyer gets their pedido linked to the account, and idempotency
		// protects the order-creating calls against double submits.
		r.Route("/checkout", func(r chi.Router) {
			r.Use(middleware.AuthOptional(cfg.JWT, logg))
			r.Use(middleware.Idempotency(p.Redis, logg))
			r.Post("/", controllers.StartCheckout(p.Checkout, logg))
			r.Post("/confirm", controllers.ConfirmCheckout(p.Checkout, logg))
			r.Get("/{pedidoToken}", controllers.CheckoutState(p.Checkout, logg))
		})

		r.Get("/orders/lookup", controllers.LookupOrder(p.Orders, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.Login(p.Sessions, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Get("/me", controllers.Me(p.Sessions, logg))
				r.Post("/logout", controllers.Logout(p.Sessions, logg))
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireRole("admin", p.Sessions, logg))
			r.Use(middleware.Idempotency(p.Redis, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(p.CMS, logg))
				r.Post("/", controllers.AdminCreateProduct(p.CMS, logg))
				r.Put("/{productID}", controllers.AdminUpdateProduct(p.CMS, logg))
				r.Delete("/{productID}", controllers.AdminDeleteProduct(p.CMS, logg))
			})
			r.Route("/ingredients", func(r chi.Router) {
				r.Get("/", controllers.AdminListIngredients(p.CMS, logg))
				r.Put("/{ingredientID}", controllers.AdminUpdateIngredient(p.CMS, logg))
			})
			r.Get("/users", controllers.AdminListUsers(p.CMS, logg))
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(p.Orders, logg))
				r.Post("/{orderID}/estado", controllers.AdminUpdateOrderEstado(p.Orders, logg))
			})
		})
	})

	return r
}
