package screen

import (
	"context"

	"store-admin/pkg/dmodel"
	"store-admin/services/admin/internal/dashboard"
)

type OrdersAPI interface {
	ListOrders(ctx context.Context) ([]dmodel.Order, error)
	CreateOrder(ctx context.Context, order dmodel.Order) (*dmodel.Order, error)
	UpdateOrder(ctx context.Context, id string, order dmodel.Order) (*dmodel.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type OrdersScreen struct {
	state
	api    OrdersAPI
	Orders []dmodel.Order
}

func NewOrders(api OrdersAPI) *OrdersScreen {
	return &OrdersScreen{api: api}
}

func (s *OrdersScreen) Load(ctx context.Context) error {
	return s.load(func() error {
		orders, err := s.api.ListOrders(ctx)
		if err != nil {
			return err
		}
		s.Orders = orders
		return nil
	})
}

// Create submits order. The server assigns the id and defaults status and date.
func (s *OrdersScreen) Create(ctx context.Context, order dmodel.Order) error {
	return s.mutate(ctx, order, nil, func() error {
		_, err := s.api.CreateOrder(ctx, order)
		return err
	}, s.Load)
}

func (s *OrdersScreen) Update(ctx context.Context, id string, order dmodel.Order) error {
	return s.mutate(ctx, order, requireID("id", id), func() error {
		_, err := s.api.UpdateOrder(ctx, id, order)
		return err
	}, s.Load)
}

func (s *OrdersScreen) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, nil, requireID("id", id), func() error {
		return s.api.DeleteOrder(ctx, id)
	}, s.Load)
}

// OrderTotal is the value of order, unitPrice x quantity over its items.
func OrderTotal(order dmodel.Order) float64 {
	return dashboard.OrderRevenue(order)
}
