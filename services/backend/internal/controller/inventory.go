package backend_controller

import (
	"context"
	"fmt"

	"store-admin/pkg/dmodel"
	"store-admin/pkg/validation"
)

type if_repo_inventory interface {
	ListInventory(_ context.Context) ([]dmodel.InventoryItem, error)
	GetInventory(_ context.Context, productID string) (*dmodel.InventoryItem, error)
	SaveInventory(_ context.Context, item dmodel.InventoryItem) (*dmodel.InventoryItem, error)
	DeleteInventory(_ context.Context, productID string) error
}

type Controller_Inventory struct {
	repo if_repo_inventory
}

func NewInventory(repo if_repo_inventory) *Controller_Inventory {
	return &Controller_Inventory{
		repo: repo,
	}
}

func (c *Controller_Inventory) Get_All(ctx context.Context) ([]dmodel.InventoryItem, error) {
	res, err := c.repo.ListInventory(ctx)

	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}

	return res, nil
}

func (c *Controller_Inventory) Get_ByProductID(ctx context.Context, productID string) (*dmodel.InventoryItem, error) {
	res, err := c.repo.GetInventory(ctx, productID)

	if err != nil {
		return nil, fmt.Errorf("getting inventory of %s: %w", productID, err)
	}

	return res, nil
}

// Create_Item starts tracking stock for a product, replacing any previous row.
func (c *Controller_Inventory) Create_Item(ctx context.Context, item dmodel.InventoryItem) (*dmodel.InventoryItem, error) {
	if err := validation.Struct(item); err != nil {
		return nil, err
	}

	res, err := c.repo.SaveInventory(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("saving inventory of %s: %w", item.ProductID, err)
	}

	return res, nil
}

// Update_Stock replaces quantity and location of a tracked product.
func (c *Controller_Inventory) Update_Stock(ctx context.Context, productID string, update dmodel.InventoryUpdate) (*dmodel.InventoryItem, error) {
	if err := validation.Struct(update); err != nil {
		return nil, err
	}

	if _, err := c.repo.GetInventory(ctx, productID); err != nil {
		return nil, fmt.Errorf("getting inventory of %s: %w", productID, err)
	}

	res, err := c.repo.SaveInventory(ctx, dmodel.InventoryItem{
		ProductID: productID,
		Quantity:  update.Quantity,
		Location:  update.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("saving inventory of %s: %w", productID, err)
	}

	return res, nil
}

func (c *Controller_Inventory) Delete_Item(ctx context.Context, productID string) error {
	err := c.repo.DeleteInventory(ctx, productID)

	if err != nil {
		return fmt.Errorf("deleting inventory of %s: %w", productID, err)
	}

	return nil
}
