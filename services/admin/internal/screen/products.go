package screen

import (
	"context"

	"store-admin/pkg/dmodel"
	"store-admin/services/admin/internal/dashboard"
	"store-admin/services/admin/internal/gateway"
)

type ProductsAPI interface {
	ListProducts(ctx context.Context) ([]dmodel.Product, error)
	CreateProduct(ctx context.Context, product dmodel.Product, image *gateway.Attachment) (*dmodel.Product, error)
	UpdateProduct(ctx context.Context, id string, product dmodel.Product, image *gateway.Attachment) (*dmodel.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type ProductsScreen struct {
	state
	api      ProductsAPI
	Products []dmodel.Product
}

func NewProducts(api ProductsAPI) *ProductsScreen {
	return &ProductsScreen{api: api}
}

func (s *ProductsScreen) Load(ctx context.Context) error {
	return s.load(func() error {
		products, err := s.api.ListProducts(ctx)
		if err != nil {
			return err
		}
		s.Products = products
		return nil
	})
}

// Create uploads product with an optional image, then reloads the list.
func (s *ProductsScreen) Create(ctx context.Context, product dmodel.Product, image *gateway.Attachment) error {
	return s.mutate(ctx, product, nil, func() error {
		_, err := s.api.CreateProduct(ctx, product, image)
		return err
	}, s.Load)
}

// Update replaces product id. A nil image keeps the stored one.
func (s *ProductsScreen) Update(ctx context.Context, id string, product dmodel.Product, image *gateway.Attachment) error {
	return s.mutate(ctx, product, requireID("id", id), func() error {
		_, err := s.api.UpdateProduct(ctx, id, product, image)
		return err
	}, s.Load)
}

func (s *ProductsScreen) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, nil, requireID("id", id), func() error {
		return s.api.DeleteProduct(ctx, id)
	}, s.Load)
}

// Label is the display name of productID among the loaded products.
func (s *ProductsScreen) Label(productID string) string {
	names := make(map[string]string, len(s.Products))
	for _, p := range s.Products {
		names[p.ID] = p.Name
	}
	return dashboard.Label(names, productID)
}
