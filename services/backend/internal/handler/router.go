package backend_handler_http

import (
	"net/http"

	"github.com/gorilla/mux"

	backend_controller "store-admin/services/backend/internal/controller"
)

type Handlers struct {
	Products  *Handler_Products
	Suppliers *Handler_Suppliers
	Orders    *Handler_Orders
	Inventory *Handler_Inventory
	Auth      *Handler_Auth
}

type RouterOptions struct {
	ServiceName string
	// RequireAuth guards every mutating resource route with the session cookie.
	RequireAuth bool
	// Limiter, when set, throttles signup and login.
	Limiter *RateLimiter
}

// NewRouter mounts the REST API under /api and the health check at /health.
func NewRouter(h Handlers, opts RouterOptions) *mux.Router {
	r := mux.NewRouter()
	r.Use(LogRequests, AddCORSHeaders)

	// CORS preflight (OPTIONS) requests for all endpoints
	r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Health check endpoint
	r.Handle("/health", Health(opts.ServiceName)).Methods(http.MethodGet)

	guard := func(next http.HandlerFunc) http.Handler {
		if !opts.RequireAuth {
			return next
		}
		return RequireSession(h.Auth.controller)(next)
	}
	throttle := func(next http.HandlerFunc) http.Handler {
		if opts.Limiter == nil {
			return next
		}
		return opts.Limiter.Middleware(next)
	}

	api := r.PathPrefix("/api").Subrouter()

	// products
	api.HandleFunc("/products", h.Products.Get_All).Methods(http.MethodGet)
	api.Handle("/products", guard(h.Products.Create_Product)).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", h.Products.Get_ByProductID).Methods(http.MethodGet)
	api.Handle("/products/{id}", guard(h.Products.Update_Product)).Methods(http.MethodPut)
	api.Handle("/products/{id}", guard(h.Products.Delete_Product)).Methods(http.MethodDelete)
	api.HandleFunc("/products/{id}/image", h.Products.Get_Image).Methods(http.MethodGet)

	// suppliers
	api.HandleFunc("/suppliers", h.Suppliers.Get_All).Methods(http.MethodGet)
	api.Handle("/suppliers", guard(h.Suppliers.Create_Supplier)).Methods(http.MethodPost)
	api.HandleFunc("/suppliers/{id}", h.Suppliers.Get_BySupplierID).Methods(http.MethodGet)
	api.Handle("/suppliers/{id}", guard(h.Suppliers.Update_Supplier)).Methods(http.MethodPut)
	api.Handle("/suppliers/{id}", guard(h.Suppliers.Delete_Supplier)).Methods(http.MethodDelete)

	// orders
	api.HandleFunc("/orders", h.Orders.Get_All).Methods(http.MethodGet)
	api.Handle("/orders", guard(h.Orders.Create_Order)).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}", h.Orders.Get_ByOrderID).Methods(http.MethodGet)
	api.Handle("/orders/{id}", guard(h.Orders.Update_Order)).Methods(http.MethodPut)
	api.Handle("/orders/{id}", guard(h.Orders.Delete_Order)).Methods(http.MethodDelete)

	// inventory
	api.HandleFunc("/inventory", h.Inventory.Get_All).Methods(http.MethodGet)
	api.Handle("/inventory", guard(h.Inventory.Create_Item)).Methods(http.MethodPost)
	api.HandleFunc("/inventory/{productId}", h.Inventory.Get_ByProductID).Methods(http.MethodGet)
	api.Handle("/inventory/{productId}", guard(h.Inventory.Update_Stock)).Methods(http.MethodPut)
	api.Handle("/inventory/{productId}", guard(h.Inventory.Delete_Item)).Methods(http.MethodDelete)

	// auth
	api.Handle("/auth/signup", throttle(h.Auth.Signup)).Methods(http.MethodPost)
	api.Handle("/auth/login", throttle(h.Auth.Login)).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/status", h.Auth.Status).Methods(http.MethodGet)

	return r
}

// NewHandlers wires one handler per resource on top of the controllers.
func NewHandlers(c backend_controller.Controllers, uploadMaxBytes int64, secureCookie bool) Handlers {
	return Handlers{
		Products:  NewProducts(c.Products, uploadMaxBytes),
		Suppliers: NewSuppliers(c.Suppliers),
		Orders:    NewOrders(c.Orders),
		Inventory: NewInventory(c.Inventory),
		Auth:      NewAuth(c.Auth, secureCookie),
	}
}
