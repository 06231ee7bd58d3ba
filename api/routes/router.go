package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/karibu-retail/storefront-gateway/api/controllers"
	"github.com/karibu-retail/storefront-gateway/api/middleware"
	cartsvc "github.com/karibu-retail/storefront-gateway/internal/cart"
	catalogsvc "github.com/karibu-retail/storefront-gateway/internal/catalog"
	checkoutsvc "github.com/karibu-retail/storefront-gateway/internal/checkout"
	dashsvc "github.com/karibu-retail/storefront-gateway/internal/dashboard"
	salesvc "github.com/karibu-retail/storefront-gateway/internal/manualsale"
	"github.com/karibu-retail/storefront-gateway/pkg/config"
	"github.com/karibu-retail/storefront-gateway/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	Pingers   map[string]controllers.Pinger
	Registry  *prometheus.Registry
	Catalog   catalogsvc.Service
	Cart      cartsvc.Service
	Checkout  checkoutsvc.Service
	Sale      salesvc.Service
	Dashboard dashsvc.Service
	Snapshots controllers.SnapshotSource
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Config))
		r.Get("/ready", controllers.HealthReady(d.Config, d.Logger, d.Pingers))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ClientSession(d.Logger))

		r.Get("/products", controllers.SearchProducts(d.Catalog, d.Logger))
		r.Get("/testimonials", controllers.ListTestimonials(d.Catalog, d.Logger))
		r.Get("/faqs", controllers.ListFAQs(d.Catalog, d.Logger))
		r.Post("/contact", controllers.SubmitContact(d.Catalog, d.Logger))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(d.Cart, d.Logger))
			r.Post("/items", controllers.AddCartItem(d.Cart, d.Logger))
			r.Patch("/items/{variantID}", controllers.AdjustCartItem(d.Cart, d.Logger))
			r.Delete("/items/{variantID}", controllers.RemoveCartItem(d.Cart, d.Logger))
		})

		r.Post("/orders/direct", controllers.DirectOrder(d.Checkout, d.Logger))
		r.Post("/checkout", controllers.Checkout(d.Checkout, d.Logger))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminAuth(d.Config.AdminJWT, d.Logger))

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", controllers.GetDashboard(d.Snapshots, d.Dashboard, d.Logger))
			r.Get("/{section}", controllers.GetDashboardSection(d.Dashboard, d.Logger))
		})

		r.Route("/manual-sale", func(r chi.Router) {
			r.Get("/", controllers.GetSaleSession(d.Sale, d.Logger))
			r.Delete("/", controllers.AbandonSale(d.Sale, d.Logger))
			r.Post("/search", controllers.SearchSaleProducts(d.Catalog, d.Logger))
			r.Post("/items", controllers.AddSaleItem(d.Sale, d.Logger))
			r.Delete("/items/{variantID}", controllers.RemoveSaleItem(d.Sale, d.Logger))
			r.Put("/payment", controllers.SetSalePayment(d.Sale, d.Logger))
			r.Post("/complete", controllers.CompleteSale(d.Sale, d.Logger))
		})
	})

	return r
}
