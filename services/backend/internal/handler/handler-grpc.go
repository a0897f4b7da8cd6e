package backend_handler_http

import (
	"context"
	"errors"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"store-admin/pkg/dmodel"
	"store-admin/pkg/validation"
	"store-admin/services/backend/internal"
	backend_controller "store-admin/services/backend/internal/controller"
	"store-admin/services/backend/internal/rpc"
)

type Handler_Inventory_GRPC struct {
	controller *backend_controller.Controller_Inventory
}

func NewGRPC(controller *backend_controller.Controller_Inventory) *Handler_Inventory_GRPC {
	return &Handler_Inventory_GRPC{
		controller: controller,
	}
}

func (h *Handler_Inventory_GRPC) ListInventory(ctx context.Context, _ *rpc.ListInventoryRequest) (*rpc.ListInventoryResponse, error) {
	items, err := h.controller.Get_All(ctx)
	if err != nil {
		log.Printf("Error listing inventory over gRPC: %v", err)
		return nil, status.Errorf(codes.Internal, "internal server error")
	}

	return &rpc.ListInventoryResponse{Items: items}, nil
}

func (h *Handler_Inventory_GRPC) GetInventory(ctx context.Context, req *rpc.GetInventoryRequest) (*rpc.GetInventoryResponse, error) {
	if req.ProductID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "productId is required")
	}

	item, err := h.controller.Get_ByProductID(ctx, req.ProductID)
	if err != nil {
		return nil, grpcError(err)
	}

	return &rpc.GetInventoryResponse{Item: *item}, nil
}

func (h *Handler_Inventory_GRPC) UpdateStock(ctx context.Context, req *rpc.UpdateStockRequest) (*rpc.UpdateStockResponse, error) {
	if req.ProductID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "productId is required")
	}

	item, err := h.controller.Update_Stock(ctx, req.ProductID, dmodel.InventoryUpdate{
		Quantity: req.Quantity,
		Location: req.Location,
	})
	if err != nil {
		return nil, grpcError(err)
	}

	return &rpc.UpdateStockResponse{Item: *item}, nil
}

func grpcError(err error) error {
	switch {
	case errors.Is(err, internal.ErrItemNotFound):
		return status.Errorf(codes.NotFound, "inventory not found")
	case validation.IsValidation(err):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	}
	log.Printf("Error serving inventory over gRPC: %v", err)
	return status.Errorf(codes.Internal, "internal server error")
}
