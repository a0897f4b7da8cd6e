package backend_repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-admin/pkg/dmodel"
	"store-admin/services/backend/internal"
)

func TestMemory_SeedData(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(true)

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, []string{"prod1", "prod2", "prod3"}, []string{products[0].ID, products[1].ID, products[2].ID})

	suppliers, err := repo.ListSuppliers(ctx)
	require.NoError(t, err)
	assert.Len(t, suppliers, 2)

	orders, err := repo.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Len(t, orders[0].Items, 2)

	empty := NewMemory(false)
	products, err = empty.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NotNil(t, products)
}

func TestMemory_ProductLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(false)

	created, err := repo.CreateProduct(ctx, dmodel.Product{Name: "Mouse", Price: 29.99, SupplierID: "sup1"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mouse", got.Name)

	created.Price = 24.99
	updated, err := repo.UpdateProduct(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, 24.99, updated.Price)

	require.NoError(t, repo.SaveProductImage(ctx, created.ID, dmodel.ProductImage{ContentType: "image/png", Data: []byte{1, 2}}))
	image, err := repo.GetProductImage(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", image.ContentType)

	require.NoError(t, repo.DeleteProduct(ctx, created.ID))
	_, err = repo.GetProduct(ctx, created.ID)
	assert.ErrorIs(t, err, internal.ErrItemNotFound)
	_, err = repo.GetProductImage(ctx, created.ID)
	assert.ErrorIs(t, err, internal.ErrItemNotFound)

	assert.ErrorIs(t, repo.DeleteProduct(ctx, created.ID), internal.ErrItemNotFound)
	_, err = repo.UpdateProduct(ctx, dmodel.Product{ID: "missing"})
	assert.ErrorIs(t, err, internal.ErrItemNotFound)
	assert.ErrorIs(t, repo.SaveProductImage(ctx, "missing", dmodel.ProductImage{}), internal.ErrItemNotFound)
}

func TestMemory_DeleteSupplierRemovesFromList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(true)

	require.NoError(t, repo.DeleteSupplier(ctx, "sup1"))

	suppliers, err := repo.ListSuppliers(ctx)
	require.NoError(t, err)
	for _, s := range suppliers {
		assert.NotEqual(t, "sup1", s.ID)
	}
	assert.ErrorIs(t, repo.DeleteSupplier(ctx, "sup1"), internal.ErrItemNotFound)
}

func TestMemory_SaveInventoryUpserts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(false)

	item, err := repo.SaveInventory(ctx, dmodel.InventoryItem{ProductID: "p1", Quantity: 4, Location: "A"})
	require.NoError(t, err)
	assert.False(t, item.LastUpdated.IsZero())

	_, err = repo.SaveInventory(ctx, dmodel.InventoryItem{ProductID: "p1", Quantity: 9, Location: "B"})
	require.NoError(t, err)

	items, err := repo.ListInventory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 9, items[0].Quantity)
	assert.Equal(t, "B", items[0].Location)

	require.NoError(t, repo.DeleteInventory(ctx, "p1"))
	_, err = repo.GetInventory(ctx, "p1")
	assert.ErrorIs(t, err, internal.ErrItemNotFound)
}

func TestMemory_OrdersAreCopied(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(false)

	items := []dmodel.OrderItem{{ProductID: "p1", Quantity: 1, UnitPrice: 10}}
	created, err := repo.CreateOrder(ctx, dmodel.Order{CustomerID: "c1", Status: dmodel.StatusPending, Items: items})
	require.NoError(t, err)

	items[0].Quantity = 99
	got, err := repo.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Items[0].Quantity)

	got.Items[0].Quantity = 50
	again, err := repo.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)

	got.Status = dmodel.StatusDeclined
	_, err = repo.UpdateOrder(ctx, *got)
	require.NoError(t, err)
	orders, err := repo.ListOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, dmodel.StatusDeclined, orders[0].Status)

	require.NoError(t, repo.DeleteOrder(ctx, created.ID))
	assert.ErrorIs(t, repo.DeleteOrder(ctx, created.ID), internal.ErrItemNotFound)
}

func TestMemory_Users(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(false)

	user, err := repo.CreateUser(ctx, dmodel.User{Name: "Ann", Email: "ann@example.com", Role: "USER"})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, dmodel.User{Name: "Ann 2", Email: "ANN@example.com"})
	assert.ErrorIs(t, err, internal.ErrEmailInUse)

	byEmail, err := repo.GetUserByEmail(ctx, "Ann@Example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", byID.Email)

	_, err = repo.GetUser(ctx, "nope")
	assert.ErrorIs(t, err, internal.ErrItemNotFound)
}
