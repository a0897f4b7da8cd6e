package backend_repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"store-admin/pkg/dmodel"
	"store-admin/services/backend/internal"
)

// -------------------------------------------------------------------
// dtypes
// -------------------------------------------------------------------

// table keeps rows keyed by id and remembers insertion order so lists are stable.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) list() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) insert(id string, row T) {
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) replace(id string, row T) bool {
	if _, exists := t.rows[id]; !exists {
		return false
	}
	t.rows[id] = row
	return true
}

func (t *table[T]) remove(id string) bool {
	if _, exists := t.rows[id]; !exists {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// DataRepo_Memory
// holds volatile data and a mutex for concurrency
type DataRepo_Memory struct {
	mu        sync.RWMutex
	products  *table[dmodel.Product]
	images    map[string]dmodel.ProductImage
	suppliers *table[dmodel.Supplier]
	inventory *table[dmodel.InventoryItem]
	orders    *table[dmodel.Order]
	users     *table[dmodel.User]
	now       func() time.Time
	newID     func() string
}

// NewMemory creates an empty store, optionally filled with the demo catalogue.
func NewMemory(seed bool) *DataRepo_Memory {
	datarepo := &DataRepo_Memory{
		products:  newTable[dmodel.Product](),
		images:    make(map[string]dmodel.ProductImage),
		suppliers: newTable[dmodel.Supplier](),
		inventory: newTable[dmodel.InventoryItem](),
		orders:    newTable[dmodel.Order](),
		users:     newTable[dmodel.User](),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	if seed {
		datarepo.addSampleData()
	}
	return datarepo
}

// adding some sample data
func (dr *DataRepo_Memory) addSampleData() {
	now := dr.now()

	suppliers := []dmodel.Supplier{
		{ID: "sup1", Name: "Acme Corp", Email: "contact@acme.com", Phone: "+1 555 0100", Address: "123 Main St"},
		{ID: "sup2", Name: "Globex", Email: "sales@globex.com", Phone: "+1 555 0200", Address: "456 Oak Ave"},
	}
	for _, s := range suppliers {
		dr.suppliers.insert(s.ID, s)
	}

	products := []dmodel.Product{
		{ID: "prod1", Name: "Laptop", Description: "High performance laptop", Price: 999.99, SupplierID: "sup1"},
		{ID: "prod2", Name: "Monitor", Description: `27" 4K monitor`, Price: 299.99, SupplierID: "sup1"},
		{ID: "prod3", Name: "Keyboard", Description: "Mechanical keyboard", Price: 89.99, SupplierID: "sup2"},
	}
	for _, p := range products {
		dr.products.insert(p.ID, p)
	}

	stock := []dmodel.InventoryItem{
		{ProductID: "prod1", Quantity: 50, Location: "Warehouse A", LastUpdated: now},
		{ProductID: "prod2", Quantity: 100, Location: "Warehouse B", LastUpdated: now},
		{ProductID: "prod3", Quantity: 200, Location: "Warehouse C", LastUpdated: now},
	}
	for _, item := range stock {
		dr.inventory.insert(item.ProductID, item)
	}

	orders := []dmodel.Order{
		{
			ID: "ord1", CustomerID: "cust1", Status: dmodel.StatusPending,
			CustomerName: "Alice Johnson", CustomerEmail: "alice@example.com", ShippingAddress: "1 Elm St",
			OrderDate: now,
			Items: []dmodel.OrderItem{
				{ProductID: "prod1", Quantity: 1, UnitPrice: 999.99},
				{ProductID: "prod2", Quantity: 2, UnitPrice: 299.99},
			},
		},
		{
			ID: "ord2", CustomerID: "cust2", Status: dmodel.StatusSuccess,
			CustomerName: "Bob Smith", CustomerEmail: "bob@example.com", ShippingAddress: "2 Pine Rd",
			OrderDate: now,
			Items: []dmodel.OrderItem{
				{ProductID: "prod3", Quantity: 3, UnitPrice: 89.99},
			},
		},
	}
	for _, o := range orders {
		dr.orders.insert(o.ID, o)
	}
}

// -------------------------------------------------------------------

// -------------------------------------------------------------------
// products
// -------------------------------------------------------------------

// retrieving all products
func (dr *DataRepo_Memory) ListProducts(_ context.Context) ([]dmodel.Product, error) {
	dr.mu.RLock()
	defer dr.mu.RUnlock()

	return dr.products.list(), nil
}

// retrieving product by ID
func (dr *DataRepo_Memory) GetProduct(_ context.Context, id string) (*dmodel.Product, error) {
	dr.mu.RLock()
	defer dr.mu.RUnlock()

	product, exists := dr.products.get(id)
	if !exists {
		return nil, internal.ErrItemNotFound
	}
	return &product, nil
}

// creating a new product
func (dr *DataRepo_Memory) CreateProduct(_ context.Context, product dmodel.Product) (*dmodel.Product, error) {
	dr.mu.Lock()
	defer dr.mu.Unlock()

	product.ID = dr.newID()
	dr.products.insert(product.ID, product)

	return &product, nil
}

func (dr *DataRepo_Memory) UpdateProduct(_ context.Context, product dmodel.Product) (*dmodel.Product, error) {
	dr.mu.Lock()
	defer dr.mu.Unlock()

	if !dr.products.replace(product.ID, product) {
		return nil, internal.ErrItemNotFound
	}
	return &product, nil
}

func (dr *DataRepo_Memory) DeleteProduct(_ context.Context, id string) error {
	dr.mu.Lock()
	defer dr.mu.Unlock()

	if !dr.products.remove(id) {
		return internal.ErrItemNotFound
	}
	delete(dr.images, id)
	return nil
}

func (dr *DataRepo_Memory) SaveProductImage(_ context.Context, productID string, image dmodel.ProductImage) error {
	dr.mu.Lock()
	defer dr.mu.Unlock()

	if _, exists := dr.products.get(productID); !exists {
		return internal.ErrItemNotFound
	}
	dr.images[productID] = image
	return nil
}

func (dr *DataRepo_Memory) GetProductImage(_ context.Context, productID string) (*dmodel.ProductImage, error) {
	dr.mu.RLock()
	defer dr.mu.RUnlock()

	image, exists := dr.images[productID]
	if !exists {
		return nil, internal.ErrItemNotFound
	}
	return &image, nil
}

// -------------------------------------------------------------------
// suppliers
// -------------------------------------------------------------------

func (dr *DataRepo_Memory) ListSuppliers(_ context.Context) ([]dmodel.Supplier, error) {
	dr.mu.RLock()
	defer dr.mu.RUnlock()

	return dr.suppliers.list(), nil
}

func (dr *DataRepo_Memory) GetSupplier(_ context.Context, id string) (*dmodel.Supplier, error) {
	dr.mu.RLock()
	defer dr.mu.RUnlock()

	supplier, exists := dr.suppliers.get(id)
	if !exists {
		return nil, internal.ErrItemNotFound
	}
	return &supplier, nil
}

func (dr *DataRepo_Memory) CreateSupplier(_ context.Context, supplier dmodel.Supplier) (*dmodel.Supplier, error) {
	dr.mu.Lock()
	defer dr.mu.Unlock()

	supplier.ID = dr.newID()
	dr.suppliers.insert(supplier.ID, supplier)
	return &supplier, nil
}

func (dr *DataRepo_Memory) UpdateSupplier(_ context.Context, supplier dmodel.Supplier) (*dmodel.Supplier, error) {
	dr.mu.Lock()
	defer dr.mu.Unlock()

	if !dr.suppliers.replace(supplier.ID, supplier) {
		return nil, internal.ErrItemNotFound
	}
	return &supplier, nil
}

func (dr *DataRepo_Memory) DeleteSupplier(_ context.Context, id string) error {
	dr.mu.Lock()
	defer dr.mu.Unlock()

	if !dr.suppliers.remove(id) {
		return internal.ErrItemNotFound
	}
	return nil
}

// -------------------------------------------------------------------
// inventory
// -------------------------------------------------------------------

func (dr *DataRepo_Memory) ListInventory(_ context.Context) ([]dmodel.InventoryItem, error) {
	dr.mu.RLock()
	defer dr.mu.RUnlock()

	return dr.inventory.list(), nil
}

// retrieving item by product ID
func (dr *DataRepo_Memory) GetInventory(_ context.Context, productID string) (*dmodel.InventoryItem, error) {
	dr.mu.RLock()
	defer dr.mu.RUnlock()

	item, exists := dr.inventory.get(productID)
	if !exists {
		return nil, internal.ErrItemNotFound
	}
	return &item, nil
}

// SaveInventory inserts or replaces the stock row of item.ProductID.
func (dr *DataRepo_Memory) SaveInventory(_ context.Context, item dmodel.InventoryItem) (*dmodel.InventoryItem, error) {
	dr.mu.Lock()
	defer dr.mu.Unlock()

	item.LastUpdated = dr.now()
	dr.inventory.insert(item.ProductID, item)
	return &item, nil
}

func (dr *DataRepo_Memory) DeleteInventory(_ context.Context, productID string) error {
	dr.mu.Lock()
	defer dr.mu.Unlock()

	if !dr.inventory.remove(productID) {
		return internal.ErrItemNotFound
	}
	return nil
}

// -------------------------------------------------------------------
// orders
// -------------------------------------------------------------------

func (dr *DataRepo_Memory) ListOrders(_ context.Context) ([]dmodel.Order, error) {
	dr.mu.RLock()
	defer dr.mu.RUnlock()

	orders := dr.orders.list()
	for i := range orders {
		orders[i].Items = cloneItems(orders[i].Items)
	}
	return orders, nil
}

func (dr *DataRepo_Memory) GetOrder(_ context.Context, id string) (*dmodel.Order, error) {
	dr.mu.RLock()
	defer dr.mu.RUnlock()

	order, exists := dr.orders.get(id)
	if !exists {
		return nil, internal.ErrItemNotFound
	}
	order.Items = cloneItems(order.Items)
	return &order, nil
}

func (dr *DataRepo_Memory) CreateOrder(_ context.Context, order dmodel.Order) (*dmodel.Order, error) {
	dr.mu.Lock()
	defer dr.mu.Unlock()

	order.ID = dr.newID()
	order.Items = cloneItems(order.Items)
	dr.orders.insert(order.ID, order)
	return &order, nil
}

func (dr *DataRepo_Memory) UpdateOrder(_ context.Context, order dmodel.Order) (*dmodel.Order, error) {
	dr.mu.Lock()
	defer dr.mu.Unlock()

	order.Items = cloneItems(order.Items)
	if !dr.orders.replace(order.ID, order) {
		return nil, internal.ErrItemNotFound
	}
	return &order, nil
}

func (dr *DataRepo_Memory) DeleteOrder(_ context.Context, id string) error {
	dr.mu.Lock()
	defer dr.mu.Unlock()

	if !dr.orders.remove(id) {
		return internal.ErrItemNotFound
	}
	return nil
}

func cloneItems(items []dmodel.OrderItem) []dmodel.OrderItem {
	if items == nil {
		return []dmodel.OrderItem{}
	}
	return append([]dmodel.OrderItem(nil), items...)
}

// -------------------------------------------------------------------
// users
// -------------------------------------------------------------------

func (dr *DataRepo_Memory) CreateUser(_ context.Context, user dmodel.User) (*dmodel.User, error) {
	dr.mu.Lock()
	defer dr.mu.Unlock()

	for _, u := range dr.users.rows {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, internal.ErrEmailInUse
		}
	}
	user.ID = dr.newID()
	dr.users.insert(user.ID, user)
	return &user, nil
}

func (dr *DataRepo_Memory) GetUserByEmail(_ context.Context, email string) (*dmodel.User, error) {
	dr.mu.RLock()
	defer dr.mu.RUnlock()

	for _, u := range dr.users.rows {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, internal.ErrItemNotFound
}

func (dr *DataRepo_Memory) GetUser(_ context.Context, id string) (*dmodel.User, error) {
	dr.mu.RLock()
	defer dr.mu.RUnlock()

	user, exists := dr.users.get(id)
	if !exists {
		return nil, internal.ErrItemNotFound
	}
	return &user, nil
}

// -------------------------------------------------------------------
