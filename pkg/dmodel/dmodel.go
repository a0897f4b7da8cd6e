package dmodel

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending  OrderStatus = "pending"
	StatusSuccess  OrderStatus = "success"
	StatusDeclined OrderStatus = "declined"
)

// Valid reports whether s is one of the three known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusDeclined:
		return true
	}
	return false
}

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	SupplierID  string  `json:"supplierId" validate:"required"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Address string `json:"address"`
}

type InventoryItem struct {
	ProductID   string    `json:"productId" validate:"required"`
	Quantity    int       `json:"quantity" validate:"gte=0"`
	Location    string    `json:"location"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// InventoryUpdate is the body of PUT /inventory/{productId}.
type InventoryUpdate struct {
	Quantity int    `json:"quantity" validate:"gte=0"`
	Location string `json:"location"`
}

type OrderItem struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}

type Order struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customerId" validate:"required"`
	Status          OrderStatus `json:"status" validate:"omitempty,oneof=pending success declined"`
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail" validate:"omitempty,email"`
	ShippingAddress string      `json:"shippingAddress"`
	OrderDate       time.Time   `json:"orderDate"`
	Items           []OrderItem `json:"items" validate:"min=1,dive"`
}

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionStatus is returned by GET /auth/status.
type SessionStatus struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// Message is the generic {"message": "..."} envelope used for acknowledgements and errors.
type Message struct {
	Message string `json:"message"`
}

// ProductImage is the binary attachment stored for a product.
type ProductImage struct {
	ContentType string
	Data        []byte
}
