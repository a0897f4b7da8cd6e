package gateway

import (
	"context"
	"net/http"

	"store-admin/pkg/dmodel"
)

var (
	opListSuppliers  = operation{action: "fetching suppliers", fallback: "Failed to fetch suppliers"}
	opCreateSupplier = operation{action: "creating supplier", fallback: "Failed to create supplier"}
	opUpdateSupplier = operation{action: "updating supplier", fallback: "Failed to update supplier"}
	opDeleteSupplier = operation{action: "deleting supplier", fallback: "Failed to delete supplier"}
)

func (c *Client) ListSuppliers(ctx context.Context) ([]dmodel.Supplier, error) {
	var suppliers []dmodel.Supplier
	if err := c.do(ctx, opListSuppliers, request{method: http.MethodGet, path: "/suppliers"}, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (c *Client) CreateSupplier(ctx context.Context, supplier dmodel.Supplier) (*dmodel.Supplier, error) {
	return sendJSON[dmodel.Supplier](ctx, c, opCreateSupplier, http.MethodPost, "/suppliers", supplier)
}

func (c *Client) UpdateSupplier(ctx context.Context, id string, supplier dmodel.Supplier) (*dmodel.Supplier, error) {
	return sendJSON[dmodel.Supplier](ctx, c, opUpdateSupplier, http.MethodPut, "/suppliers/"+escape(id), supplier)
}

func (c *Client) DeleteSupplier(ctx context.Context, id string) error {
	return c.do(ctx, opDeleteSupplier, request{method: http.MethodDelete, path: "/suppliers/" + escape(id)}, nil)
}

// sendJSON posts or puts v as JSON and decodes the response into a T.
func sendJSON[T any](ctx context.Context, c *Client, op operation, method, path string, v any) (*T, error) {
	req, err := jsonRequest(method, path, v)
	if err != nil {
		return nil, c.fail(op, &RequestError{Op: op.action, Message: op.fallback, Err: err})
	}

	var out T
	if err := c.do(ctx, op, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
