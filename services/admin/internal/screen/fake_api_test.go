package screen

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"store-admin/pkg/dmodel"
	"store-admin/services/admin/internal/gateway"
)

// fakeAPI is an in-memory stand-in for the store REST API.
type fakeAPI struct {
	mu        sync.Mutex
	seq       int
	products  []dmodel.Product
	suppliers []dmodel.Supplier
	orders    []dmodel.Order
	inventory []dmodel.InventoryItem
	users     map[string]string

	// fail forces a status for "METHOD /template" routes
	fail  map[string]int
	calls map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		products: []dmodel.Product{
			{ID: "prod1", Name: "Laptop", Price: 999.99, SupplierID: "sup1"},
			{ID: "prod2", Name: "Monitor", Price: 299.99, SupplierID: "sup2"},
		},
		suppliers: []dmodel.Supplier{
			{ID: "sup1", Name: "Tech Supplies Inc.", Email: "contact@techsupplies.com"},
			{ID: "sup2", Name: "Global Electronics", Email: "sales@globalelectronics.com"},
		},
		orders: []dmodel.Order{
			{ID: "ord1", CustomerID: "cust1", Status: dmodel.StatusSuccess, Items: []dmodel.OrderItem{
				{ProductID: "prod1", Quantity: 2, UnitPrice: 10},
				{ProductID: "prod2", Quantity: 1, UnitPrice: 15},
			}},
			{ID: "ord2", CustomerID: "cust2", Status: dmodel.StatusPending, Items: []dmodel.OrderItem{
				{ProductID: "prod1", Quantity: 3, UnitPrice: 10},
				{ProductID: "prod9", Quantity: 2, UnitPrice: 20},
			}},
		},
		inventory: []dmodel.InventoryItem{
			{ProductID: "prod1", Quantity: 50, Location: "Warehouse A"},
			{ProductID: "prod2", Quantity: 3, Location: "Warehouse B"},
		},
		users: map[string]string{},
		fail:  map[string]int{},
		calls: map[string]int{},
	}
}

// serve starts the fake and returns a gateway client pointed at it.
func (f *fakeAPI) serve(t *testing.T) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(f.router())
	t.Cleanup(srv.Close)

	c, err := gateway.New(srv.URL+"/api", gateway.WithLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)
	return c
}

func (f *fakeAPI) failWith(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[route] = status
}

func (f *fakeAPI) count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

func (f *fakeAPI) router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(f.intercept)

	api.HandleFunc("/products", f.listProducts).Methods(http.MethodGet)
	api.HandleFunc("/products", f.createProduct).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", f.updateProduct).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", f.deleteProduct).Methods(http.MethodDelete)

	api.HandleFunc("/suppliers", f.listSuppliers).Methods(http.MethodGet)
	api.HandleFunc("/suppliers", f.createSupplier).Methods(http.MethodPost)
	api.HandleFunc("/suppliers/{id}", f.deleteSupplier).Methods(http.MethodDelete)

	api.HandleFunc("/orders", f.listOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders", f.createOrder).Methods(http.MethodPost)

	api.HandleFunc("/inventory", f.listInventory).Methods(http.MethodGet)
	api.HandleFunc("/inventory/{productId}", f.updateInventory).Methods(http.MethodPut)

	api.HandleFunc("/auth/signup", f.signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", f.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", f.logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/status", f.status).Methods(http.MethodGet)
	return r
}

func (f *fakeAPI) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tmpl, _ := mux.CurrentRoute(r).GetPathTemplate()
		key := r.Method + " " + tmpl

		f.mu.Lock()
		f.calls[key]++
		status := f.fail[key]
		f.mu.Unlock()

		if status != 0 {
			writeJSON(w, status, dmodel.Message{Message: fmt.Sprintf("forced %d", status)})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, 100+f.seq)
}

func (f *fakeAPI) listProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, f.products)
}

func (f *fakeAPI) createProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, dmodel.Message{Message: err.Error()})
		return
	}
	var p dmodel.Product
	if err := json.Unmarshal([]byte(r.FormValue("product")), &p); err != nil {
		writeJSON(w, http.StatusBadRequest, dmodel.Message{Message: err.Error()})
		return
	}
	p.ID = f.nextID("prod")
	if _, _, err := r.FormFile("image"); err == nil {
		p.ImageURL = "/api/products/" + p.ID + "/image"
	}
	f.products = append(f.products, p)
	writeJSON(w, http.StatusCreated, p)
}

func (f *fakeAPI) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, dmodel.Message{Message: err.Error()})
		return
	}
	var p dmodel.Product
	json.Unmarshal([]byte(r.FormValue("product")), &p)
	for i := range f.products {
		if f.products[i].ID == id {
			p.ID = id
			f.products[i] = p
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, dmodel.Message{Message: "Product not found"})
}

func (f *fakeAPI) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, dmodel.Message{Message: "Product not found"})
}

func (f *fakeAPI) listSuppliers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, f.suppliers)
}

func (f *fakeAPI) createSupplier(w http.ResponseWriter, r *http.Request) {
	var s dmodel.Supplier
	json.NewDecoder(r.Body).Decode(&s)
	s.ID = f.nextID("sup")
	f.suppliers = append(f.suppliers, s)
	writeJSON(w, http.StatusCreated, s)
}

func (f *fakeAPI) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	for i := range f.suppliers {
		if f.suppliers[i].ID == id {
			f.suppliers = append(f.suppliers[:i], f.suppliers[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, dmodel.Message{Message: "Supplier not found"})
}

func (f *fakeAPI) listOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, f.orders)
}

func (f *fakeAPI) createOrder(w http.ResponseWriter, r *http.Request) {
	var o dmodel.Order
	json.NewDecoder(r.Body).Decode(&o)
	o.ID = f.nextID("ord")
	if o.Status == "" {
		o.Status = dmodel.StatusPending
	}
	f.orders = append(f.orders, o)
	writeJSON(w, http.StatusCreated, o)
}

func (f *fakeAPI) listInventory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, f.inventory)
}

func (f *fakeAPI) updateInventory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["productId"]
	var u dmodel.InventoryUpdate
	json.NewDecoder(r.Body).Decode(&u)
	for i := range f.inventory {
		if f.inventory[i].ProductID == id {
			f.inventory[i].Quantity = u.Quantity
			f.inventory[i].Location = u.Location
			writeJSON(w, http.StatusOK, f.inventory[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, dmodel.Message{Message: "Inventory item not found"})
}

func (f *fakeAPI) signup(w http.ResponseWriter, r *http.Request) {
	var req dmodel.SignupRequest
	json.NewDecoder(r.Body).Decode(&req)
	if _, ok := f.users[req.Email]; ok {
		writeJSON(w, http.StatusBadRequest, dmodel.Message{Message: "Error: Email is already in use!"})
		return
	}
	f.users[req.Email] = req.Password
	writeJSON(w, http.StatusOK, dmodel.Message{Message: "User registered successfully!"})
}

func (f *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var req dmodel.LoginRequest
	json.NewDecoder(r.Body).Decode(&req)
	if pw, ok := f.users[req.Email]; !ok || pw != req.Password {
		writeJSON(w, http.StatusUnauthorized, dmodel.Message{Message: "Invalid email or password"})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "session", Value: req.Email, Path: "/"})
	writeJSON(w, http.StatusOK, dmodel.LoginResponse{ID: "u-" + req.Email, Email: req.Email, Role: "USER"})
}

func (f *fakeAPI) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, dmodel.Message{Message: "Logged out successfully"})
}

func (f *fakeAPI) status(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session")
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusOK, dmodel.SessionStatus{})
		return
	}
	writeJSON(w, http.StatusOK, dmodel.SessionStatus{
		Authenticated: true,
		User:          &dmodel.User{ID: "u-" + cookie.Value, Email: cookie.Value, Role: "USER"},
	})
}
