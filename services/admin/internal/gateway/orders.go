package gateway

import (
	"context"
	"net/http"

	"store-admin/pkg/dmodel"
)

var (
	opListOrders  = operation{action: "fetching orders", fallback: "Failed to fetch orders"}
	opCreateOrder = operation{action: "creating order", fallback: "Failed to create order"}
	opUpdateOrder = operation{action: "updating order", fallback: "Failed to update order"}
	opDeleteOrder = operation{action: "deleting order", fallback: "Failed to delete order"}
)

func (c *Client) ListOrders(ctx context.Context) ([]dmodel.Order, error) {
	var orders []dmodel.Order
	if err := c.do(ctx, opListOrders, request{method: http.MethodGet, path: "/orders"}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) CreateOrder(ctx context.Context, order dmodel.Order) (*dmodel.Order, error) {
	return sendJSON[dmodel.Order](ctx, c, opCreateOrder, http.MethodPost, "/orders", order)
}

func (c *Client) UpdateOrder(ctx context.Context, id string, order dmodel.Order) (*dmodel.Order, error) {
	return sendJSON[dmodel.Order](ctx, c, opUpdateOrder, http.MethodPut, "/orders/"+escape(id), order)
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, opDeleteOrder, request{method: http.MethodDelete, path: "/orders/" + escape(id)}, nil)
}
