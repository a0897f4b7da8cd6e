package rpc

import (
	"context"

	"google.golang.org/grpc"

	"store-admin/pkg/dmodel"
)

const inventoryServiceName = "storeadmin.inventory.InventoryService"

// -------------------------------------------------------------------
// messages
// -------------------------------------------------------------------

type ListInventoryRequest struct{}

type ListInventoryResponse struct {
	Items []dmodel.InventoryItem `json:"items"`
}

type GetInventoryRequest struct {
	ProductID string `json:"productId"`
}

type GetInventoryResponse struct {
	Item dmodel.InventoryItem `json:"item"`
}

type UpdateStockRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Location  string `json:"location"`
}

type UpdateStockResponse struct {
	Item dmodel.InventoryItem `json:"item"`
}

// -------------------------------------------------------------------
// server
// -------------------------------------------------------------------

type InventoryServiceServer interface {
	ListInventory(context.Context, *ListInventoryRequest) (*ListInventoryResponse, error)
	GetInventory(context.Context, *GetInventoryRequest) (*GetInventoryResponse, error)
	UpdateStock(context.Context, *UpdateStockRequest) (*UpdateStockResponse, error)
}

func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&InventoryService_ServiceDesc, srv)
}

var InventoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: inventoryServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListInventory", Handler: listInventoryHandler},
		{MethodName: "GetInventory", Handler: getInventoryHandler},
		{MethodName: "UpdateStock", Handler: updateStockHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "inventory",
}

func listInventoryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListInventoryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryServiceServer).ListInventory(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + inventoryServiceName + "/ListInventory"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InventoryServiceServer).ListInventory(ctx, req.(*ListInventoryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getInventoryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetInventoryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryServiceServer).GetInventory(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + inventoryServiceName + "/GetInventory"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InventoryServiceServer).GetInventory(ctx, req.(*GetInventoryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func updateStockHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpdateStockRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryServiceServer).UpdateStock(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + inventoryServiceName + "/UpdateStock"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InventoryServiceServer).UpdateStock(ctx, req.(*UpdateStockRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// -------------------------------------------------------------------
// client
// -------------------------------------------------------------------

type InventoryClient struct {
	cc grpc.ClientConnInterface
}

func NewInventoryClient(cc grpc.ClientConnInterface) *InventoryClient {
	return &InventoryClient{cc: cc}
}

func (c *InventoryClient) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+inventoryServiceName+"/"+method, in, out, opts...)
}

func (c *InventoryClient) ListInventory(ctx context.Context, in *ListInventoryRequest, opts ...grpc.CallOption) (*ListInventoryResponse, error) {
	out := new(ListInventoryResponse)
	if err := c.invoke(ctx, "ListInventory", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) GetInventory(ctx context.Context, in *GetInventoryRequest, opts ...grpc.CallOption) (*GetInventoryResponse, error) {
	out := new(GetInventoryResponse)
	if err := c.invoke(ctx, "GetInventory", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) UpdateStock(ctx context.Context, in *UpdateStockRequest, opts ...grpc.CallOption) (*UpdateStockResponse, error) {
	out := new(UpdateStockResponse)
	if err := c.invoke(ctx, "UpdateStock", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
