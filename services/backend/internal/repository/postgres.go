package backend_repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"store-admin/pkg/dmodel"
	"store-admin/services/backend/internal"
)

const pqUniqueViolation = "23505"

// -------------------------------------------------------------------
// dtypes
// -------------------------------------------------------------------

// DataRepo_Postgres
// data in PostgreSQL, accessed through lib/pq
type DataRepo_Postgres struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

func NewPostgres(db *sql.DB) *DataRepo_Postgres {
	return &DataRepo_Postgres{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// -------------------------------------------------------------------

// -------------------------------------------------------------------
// products
// -------------------------------------------------------------------

func (dr *DataRepo_Postgres) ListProducts(ctx context.Context) ([]dmodel.Product, error) {
	query := `SELECT id, name, description, price, supplier_id, image_url FROM products ORDER BY created_at, id`
	rows, err := dr.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []dmodel.Product{}
	for rows.Next() {
		var p dmodel.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.SupplierID, &p.ImageURL); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (dr *DataRepo_Postgres) GetProduct(ctx context.Context, id string) (*dmodel.Product, error) {
	query := `SELECT id, name, description, price, supplier_id, image_url FROM products WHERE id = $1`
	var p dmodel.Product

	err := dr.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.SupplierID, &p.ImageURL)
	if err == sql.ErrNoRows {
		return nil, internal.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (dr *DataRepo_Postgres) CreateProduct(ctx context.Context, product dmodel.Product) (*dmodel.Product, error) {
	product.ID = dr.newID()

	query := `INSERT INTO products (id, name, description, price, supplier_id, image_url, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := dr.db.ExecContext(ctx, query, product.ID, product.Name, product.Description, product.Price, product.SupplierID, product.ImageURL, dr.now())
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (dr *DataRepo_Postgres) UpdateProduct(ctx context.Context, product dmodel.Product) (*dmodel.Product, error) {
	query := `UPDATE products SET name = $1, description = $2, price = $3, supplier_id = $4, image_url = $5 WHERE id = $6`
	result, err := dr.db.ExecContext(ctx, query, product.Name, product.Description, product.Price, product.SupplierID, product.ImageURL, product.ID)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(result); err != nil {
		return nil, err
	}

	return &product, nil
}

func (dr *DataRepo_Postgres) DeleteProduct(ctx context.Context, id string) error {
	result, err := dr.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (dr *DataRepo_Postgres) SaveProductImage(ctx context.Context, productID string, image dmodel.ProductImage) error {
	query := `INSERT INTO product_images (product_id, content_type, data) VALUES ($1, $2, $3)
		ON CONFLICT (product_id) DO UPDATE SET content_type = EXCLUDED.content_type, data = EXCLUDED.data`
	_, err := dr.db.ExecContext(ctx, query, productID, image.ContentType, image.Data)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
		return internal.ErrItemNotFound
	}
	return err
}

func (dr *DataRepo_Postgres) GetProductImage(ctx context.Context, productID string) (*dmodel.ProductImage, error) {
	var image dmodel.ProductImage
	err := dr.db.QueryRowContext(ctx, `SELECT content_type, data FROM product_images WHERE product_id = $1`, productID).
		Scan(&image.ContentType, &image.Data)
	if err == sql.ErrNoRows {
		return nil, internal.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// -------------------------------------------------------------------
// suppliers
// -------------------------------------------------------------------

func (dr *DataRepo_Postgres) ListSuppliers(ctx context.Context) ([]dmodel.Supplier, error) {
	rows, err := dr.db.QueryContext(ctx, `SELECT id, name, email, phone, address FROM suppliers ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suppliers := []dmodel.Supplier{}
	for rows.Next() {
		var s dmodel.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}

	return suppliers, rows.Err()
}

func (dr *DataRepo_Postgres) GetSupplier(ctx context.Context, id string) (*dmodel.Supplier, error) {
	var s dmodel.Supplier
	err := dr.db.QueryRowContext(ctx, `SELECT id, name, email, phone, address FROM suppliers WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address)
	if err == sql.ErrNoRows {
		return nil, internal.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (dr *DataRepo_Postgres) CreateSupplier(ctx context.Context, supplier dmodel.Supplier) (*dmodel.Supplier, error) {
	supplier.ID = dr.newID()

	query := `INSERT INTO suppliers (id, name, email, phone, address, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := dr.db.ExecContext(ctx, query, supplier.ID, supplier.Name, supplier.Email, supplier.Phone, supplier.Address, dr.now())
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (dr *DataRepo_Postgres) UpdateSupplier(ctx context.Context, supplier dmodel.Supplier) (*dmodel.Supplier, error) {
	query := `UPDATE suppliers SET name = $1, email = $2, phone = $3, address = $4 WHERE id = $5`
	result, err := dr.db.ExecContext(ctx, query, supplier.Name, supplier.Email, supplier.Phone, supplier.Address, supplier.ID)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(result); err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (dr *DataRepo_Postgres) DeleteSupplier(ctx context.Context, id string) error {
	result, err := dr.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// -------------------------------------------------------------------
// inventory
// -------------------------------------------------------------------

func (dr *DataRepo_Postgres) ListInventory(ctx context.Context) ([]dmodel.InventoryItem, error) {
	query := `SELECT product_id, quantity, location, updated_at FROM inventory ORDER BY product_id`
	rows, err := dr.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []dmodel.InventoryItem{}
	for rows.Next() {
		var item dmodel.InventoryItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Location, &item.LastUpdated); err != nil {
			return nil, err
		}
		item.LastUpdated = item.LastUpdated.UTC()
		items = append(items, item)
	}

	return items, rows.Err()
}

// retrieving item by product ID
func (dr *DataRepo_Postgres) GetInventory(ctx context.Context, productID string) (*dmodel.InventoryItem, error) {
	query := `SELECT product_id, quantity, location, updated_at FROM inventory WHERE product_id = $1`
	var item dmodel.InventoryItem

	err := dr.db.QueryRowContext(ctx, query, productID).Scan(&item.ProductID, &item.Quantity, &item.Location, &item.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, internal.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	item.LastUpdated = item.LastUpdated.UTC()
	return &item, nil
}

// SaveInventory inserts or replaces the stock row of item.ProductID.
func (dr *DataRepo_Postgres) SaveInventory(ctx context.Context, item dmodel.InventoryItem) (*dmodel.InventoryItem, error) {
	item.LastUpdated = dr.now()

	query := `INSERT INTO inventory (product_id, quantity, location, updated_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id) DO UPDATE SET quantity = EXCLUDED.quantity, location = EXCLUDED.location, updated_at = EXCLUDED.updated_at`
	_, err := dr.db.ExecContext(ctx, query, item.ProductID, item.Quantity, item.Location, item.LastUpdated)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (dr *DataRepo_Postgres) DeleteInventory(ctx context.Context, productID string) error {
	result, err := dr.db.ExecContext(ctx, `DELETE FROM inventory WHERE product_id = $1`, productID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// -------------------------------------------------------------------
// orders
// -------------------------------------------------------------------

const orderColumns = `id, customer_id, status, customer_name, customer_email, shipping_address, order_date`

func scanOrder(scan func(dest ...any) error) (dmodel.Order, error) {
	var o dmodel.Order
	var status string
	err := scan(&o.ID, &o.CustomerID, &status, &o.CustomerName, &o.CustomerEmail, &o.ShippingAddress, &o.OrderDate)
	o.Status = dmodel.OrderStatus(status)
	o.OrderDate = o.OrderDate.UTC()
	return o, err
}

func (dr *DataRepo_Postgres) ListOrders(ctx context.Context) ([]dmodel.Order, error) {
	rows, err := dr.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY order_date DESC, id`)
	if err != nil {
		return nil, err
	}

	orders := []dmodel.Order{}
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// load order items
	for i := range orders {
		items, err := dr.getOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (dr *DataRepo_Postgres) GetOrder(ctx context.Context, id string) (*dmodel.Order, error) {
	o, err := scanOrder(dr.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id).Scan)
	if err == sql.ErrNoRows {
		return nil, internal.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := dr.getOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (dr *DataRepo_Postgres) getOrderItems(ctx context.Context, orderID string) ([]dmodel.OrderItem, error) {
	query := `SELECT product_id, quantity, unit_price FROM order_items WHERE order_id = $1 ORDER BY position`
	rows, err := dr.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []dmodel.OrderItem{}
	for rows.Next() {
		var item dmodel.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func insertOrderItems(ctx context.Context, tx *sql.Tx, order dmodel.Order) error {
	itemQuery := `INSERT INTO order_items (order_id, position, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4, $5)`
	for i, item := range order.Items {
		if _, err := tx.ExecContext(ctx, itemQuery, order.ID, i, item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return err
		}
	}
	return nil
}

func (dr *DataRepo_Postgres) CreateOrder(ctx context.Context, order dmodel.Order) (*dmodel.Order, error) {
	tx, err := dr.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	order.ID = dr.newID()

	query := `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = tx.ExecContext(ctx, query, order.ID, order.CustomerID, string(order.Status), order.CustomerName,
		order.CustomerEmail, order.ShippingAddress, order.OrderDate)
	if err != nil {
		return nil, err
	}

	if err := insertOrderItems(ctx, tx, order); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	if order.Items == nil {
		order.Items = []dmodel.OrderItem{}
	}
	return &order, nil
}

func (dr *DataRepo_Postgres) UpdateOrder(ctx context.Context, order dmodel.Order) (*dmodel.Order, error) {
	tx, err := dr.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `UPDATE orders SET customer_id = $1, status = $2, customer_name = $3, customer_email = $4,
		shipping_address = $5, order_date = $6 WHERE id = $7`
	result, err := tx.ExecContext(ctx, query, order.CustomerID, string(order.Status), order.CustomerName,
		order.CustomerEmail, order.ShippingAddress, order.OrderDate, order.ID)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(result); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return nil, err
	}
	if err := insertOrderItems(ctx, tx, order); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	if order.Items == nil {
		order.Items = []dmodel.OrderItem{}
	}
	return &order, nil
}

// order_items rows go with the order (ON DELETE CASCADE)
func (dr *DataRepo_Postgres) DeleteOrder(ctx context.Context, id string) error {
	result, err := dr.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// -------------------------------------------------------------------
// users
// -------------------------------------------------------------------

func (dr *DataRepo_Postgres) CreateUser(ctx context.Context, user dmodel.User) (*dmodel.User, error) {
	user.ID = dr.newID()

	query := `INSERT INTO users (id, name, email, role, password_hash) VALUES ($1, $2, $3, $4, $5)`
	_, err := dr.db.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.Role, user.PasswordHash)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return nil, internal.ErrEmailInUse
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (dr *DataRepo_Postgres) getUser(ctx context.Context, where string, arg string) (*dmodel.User, error) {
	var u dmodel.User
	err := dr.db.QueryRowContext(ctx, `SELECT id, name, email, role, password_hash FROM users WHERE `+where, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, internal.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (dr *DataRepo_Postgres) GetUserByEmail(ctx context.Context, email string) (*dmodel.User, error) {
	return dr.getUser(ctx, "lower(email) = lower($1)", email)
}

func (dr *DataRepo_Postgres) GetUser(ctx context.Context, id string) (*dmodel.User, error) {
	return dr.getUser(ctx, "id = $1", id)
}

// -------------------------------------------------------------------

func requireAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if rows == 0 {
		return internal.ErrItemNotFound
	}
	return nil
}
