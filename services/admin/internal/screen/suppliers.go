package screen

import (
	"context"

	"store-admin/pkg/dmodel"
)

type SuppliersAPI interface {
	ListSuppliers(ctx context.Context) ([]dmodel.Supplier, error)
	CreateSupplier(ctx context.Context, supplier dmodel.Supplier) (*dmodel.Supplier, error)
	UpdateSupplier(ctx context.Context, id string, supplier dmodel.Supplier) (*dmodel.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
}

type SuppliersScreen struct {
	state
	api       SuppliersAPI
	Suppliers []dmodel.Supplier
}

func NewSuppliers(api SuppliersAPI) *SuppliersScreen {
	return &SuppliersScreen{api: api}
}

func (s *SuppliersScreen) Load(ctx context.Context) error {
	return s.load(func() error {
		suppliers, err := s.api.ListSuppliers(ctx)
		if err != nil {
			return err
		}
		s.Suppliers = suppliers
		return nil
	})
}

func (s *SuppliersScreen) Create(ctx context.Context, supplier dmodel.Supplier) error {
	return s.mutate(ctx, supplier, nil, func() error {
		_, err := s.api.CreateSupplier(ctx, supplier)
		return err
	}, s.Load)
}

func (s *SuppliersScreen) Update(ctx context.Context, id string, supplier dmodel.Supplier) error {
	return s.mutate(ctx, supplier, requireID("id", id), func() error {
		_, err := s.api.UpdateSupplier(ctx, id, supplier)
		return err
	}, s.Load)
}

func (s *SuppliersScreen) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, nil, requireID("id", id), func() error {
		return s.api.DeleteSupplier(ctx, id)
	}, s.Load)
}
