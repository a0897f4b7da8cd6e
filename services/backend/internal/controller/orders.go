package backend_controller

import (
	"context"
	"fmt"
	"time"

	"store-admin/pkg/dmodel"
	"store-admin/pkg/validation"
)

type if_repo_orders interface {
	ListOrders(_ context.Context) ([]dmodel.Order, error)
	GetOrder(_ context.Context, id string) (*dmodel.Order, error)
	CreateOrder(_ context.Context, order dmodel.Order) (*dmodel.Order, error)
	UpdateOrder(_ context.Context, order dmodel.Order) (*dmodel.Order, error)
	DeleteOrder(_ context.Context, id string) error
}

type Controller_Orders struct {
	repo if_repo_orders
	now  func() time.Time
}

func NewOrders(repo if_repo_orders) *Controller_Orders {
	return &Controller_Orders{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (c *Controller_Orders) Get_All(ctx context.Context) ([]dmodel.Order, error) {
	res, err := c.repo.ListOrders(ctx)

	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	return res, nil
}

func (c *Controller_Orders) Get_ByOrderID(ctx context.Context, id string) (*dmodel.Order, error) {
	res, err := c.repo.GetOrder(ctx, id)

	if err != nil {
		return nil, fmt.Errorf("getting order %s: %w", id, err)
	}

	return res, nil
}

// Create_Order fills in status pending and the current time when the client left them out.
func (c *Controller_Orders) Create_Order(ctx context.Context, order dmodel.Order) (*dmodel.Order, error) {
	if order.Status == "" {
		order.Status = dmodel.StatusPending
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = c.now()
	}
	if err := validation.Struct(order); err != nil {
		return nil, err
	}

	res, err := c.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	return res, nil
}

// Update_Order replaces status, customer fields, date and items. Empty status and date keep
// the stored values.
func (c *Controller_Orders) Update_Order(ctx context.Context, id string, order dmodel.Order) (*dmodel.Order, error) {
	existing, err := c.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %s: %w", id, err)
	}

	order.ID = id
	if order.Status == "" {
		order.Status = existing.Status
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = existing.OrderDate
	}
	if err := validation.Struct(order); err != nil {
		return nil, err
	}

	res, err := c.repo.UpdateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("updating order %s: %w", id, err)
	}

	return res, nil
}

func (c *Controller_Orders) Delete_Order(ctx context.Context, id string) error {
	err := c.repo.DeleteOrder(ctx, id)

	if err != nil {
		return fmt.Errorf("deleting order %s: %w", id, err)
	}

	return nil
}
