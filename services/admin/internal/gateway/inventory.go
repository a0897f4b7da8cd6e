package gateway

import (
	"context"
	"net/http"

	"store-admin/pkg/dmodel"
)

var (
	opListInventory   = operation{action: "fetching inventory", fallback: "Failed to fetch inventory"}
	opUpdateInventory = operation{action: "updating inventory", fallback: "Failed to update inventory"}
)

func (c *Client) ListInventory(ctx context.Context) ([]dmodel.InventoryItem, error) {
	var items []dmodel.InventoryItem
	if err := c.do(ctx, opListInventory, request{method: http.MethodGet, path: "/inventory"}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateInventory replaces quantity and location of productID's stock row.
func (c *Client) UpdateInventory(ctx context.Context, productID string, update dmodel.InventoryUpdate) (*dmodel.InventoryItem, error) {
	return sendJSON[dmodel.InventoryItem](ctx, c, opUpdateInventory, http.MethodPut, "/inventory/"+escape(productID), update)
}
