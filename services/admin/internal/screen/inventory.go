package screen

import (
	"context"

	"store-admin/pkg/dmodel"
)

type InventoryAPI interface {
	ListInventory(ctx context.Context) ([]dmodel.InventoryItem, error)
	UpdateInventory(ctx context.Context, productID string, update dmodel.InventoryUpdate) (*dmodel.InventoryItem, error)
}

type InventoryScreen struct {
	state
	api   InventoryAPI
	Items []dmodel.InventoryItem
}

func NewInventory(api InventoryAPI) *InventoryScreen {
	return &InventoryScreen{api: api}
}

func (s *InventoryScreen) Load(ctx context.Context) error {
	return s.load(func() error {
		items, err := s.api.ListInventory(ctx)
		if err != nil {
			return err
		}
		s.Items = items
		return nil
	})
}

// Update sets the stock level and location of productID.
func (s *InventoryScreen) Update(ctx context.Context, productID string, update dmodel.InventoryUpdate) error {
	return s.mutate(ctx, update, requireID("productId", productID), func() error {
		_, err := s.api.UpdateInventory(ctx, productID, update)
		return err
	}, s.Load)
}

// LowStock returns the loaded items whose quantity is below threshold.
func (s *InventoryScreen) LowStock(threshold int) []dmodel.InventoryItem {
	var low []dmodel.InventoryItem
	for _, item := range s.Items {
		if item.Quantity < threshold {
			low = append(low, item)
		}
	}
	return low
}
