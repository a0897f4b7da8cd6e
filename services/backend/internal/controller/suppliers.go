package backend_controller

import (
	"context"
	"fmt"

	"store-admin/pkg/dmodel"
	"store-admin/pkg/validation"
)

type if_repo_suppliers interface {
	ListSuppliers(_ context.Context) ([]dmodel.Supplier, error)
	GetSupplier(_ context.Context, id string) (*dmodel.Supplier, error)
	CreateSupplier(_ context.Context, supplier dmodel.Supplier) (*dmodel.Supplier, error)
	UpdateSupplier(_ context.Context, supplier dmodel.Supplier) (*dmodel.Supplier, error)
	DeleteSupplier(_ context.Context, id string) error
}

type Controller_Suppliers struct {
	repo if_repo_suppliers
}

func NewSuppliers(repo if_repo_suppliers) *Controller_Suppliers {
	return &Controller_Suppliers{
		repo: repo,
	}
}

func (c *Controller_Suppliers) Get_All(ctx context.Context) ([]dmodel.Supplier, error) {
	res, err := c.repo.ListSuppliers(ctx)

	if err != nil {
		return nil, fmt.Errorf("listing suppliers: %w", err)
	}

	return res, nil
}

func (c *Controller_Suppliers) Get_BySupplierID(ctx context.Context, id string) (*dmodel.Supplier, error) {
	res, err := c.repo.GetSupplier(ctx, id)

	if err != nil {
		return nil, fmt.Errorf("getting supplier %s: %w", id, err)
	}

	return res, nil
}

func (c *Controller_Suppliers) Create_Supplier(ctx context.Context, supplier dmodel.Supplier) (*dmodel.Supplier, error) {
	if err := validation.Struct(supplier); err != nil {
		return nil, err
	}

	res, err := c.repo.CreateSupplier(ctx, supplier)
	if err != nil {
		return nil, fmt.Errorf("creating supplier: %w", err)
	}

	return res, nil
}

func (c *Controller_Suppliers) Update_Supplier(ctx context.Context, id string, supplier dmodel.Supplier) (*dmodel.Supplier, error) {
	supplier.ID = id
	if err := validation.Struct(supplier); err != nil {
		return nil, err
	}

	res, err := c.repo.UpdateSupplier(ctx, supplier)
	if err != nil {
		return nil, fmt.Errorf("updating supplier %s: %w", id, err)
	}

	return res, nil
}

func (c *Controller_Suppliers) Delete_Supplier(ctx context.Context, id string) error {
	err := c.repo.DeleteSupplier(ctx, id)

	if err != nil {
		return fmt.Errorf("deleting supplier %s: %w", id, err)
	}

	return nil
}
