package backend_controller

// Repository is the full method set served by both the volatile and the PostgreSQL store.
type Repository interface {
	if_repo_products
	if_repo_suppliers
	if_repo_orders
	if_repo_inventory
	if_repo_users
}

type Controllers struct {
	Products  *Controller_Products
	Suppliers *Controller_Suppliers
	Orders    *Controller_Orders
	Inventory *Controller_Inventory
	Auth      *Controller_Auth
}

func New(repo Repository, sessionSecret string) Controllers {
	return Controllers{
		Products:  NewProducts(repo),
		Suppliers: NewSuppliers(repo),
		Orders:    NewOrders(repo),
		Inventory: NewInventory(repo),
		Auth:      NewAuth(repo, sessionSecret),
	}
}
