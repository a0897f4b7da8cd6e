package backend_controller

import (
	"context"
	"fmt"
	"log"

	"store-admin/pkg/dmodel"
	"store-admin/pkg/validation"
)

type if_repo_products interface {
	ListProducts(_ context.Context) ([]dmodel.Product, error)
	GetProduct(_ context.Context, id string) (*dmodel.Product, error)
	CreateProduct(_ context.Context, product dmodel.Product) (*dmodel.Product, error)
	UpdateProduct(_ context.Context, product dmodel.Product) (*dmodel.Product, error)
	DeleteProduct(_ context.Context, id string) error
	SaveProductImage(_ context.Context, productID string, image dmodel.ProductImage) error
	GetProductImage(_ context.Context, productID string) (*dmodel.ProductImage, error)
}

type Controller_Products struct {
	repo if_repo_products
}

func NewProducts(repo if_repo_products) *Controller_Products {
	return &Controller_Products{
		repo: repo,
	}
}

// ImageURL is where the backend serves the stored image of a product.
func ImageURL(productID string) string {
	return "/api/products/" + productID + "/image"
}

func (c *Controller_Products) Get_All(ctx context.Context) ([]dmodel.Product, error) {
	res, err := c.repo.ListProducts(ctx)

	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	return res, nil
}

func (c *Controller_Products) Get_ByProductID(ctx context.Context, id string) (*dmodel.Product, error) {
	res, err := c.repo.GetProduct(ctx, id)

	if err != nil {
		return nil, fmt.Errorf("getting product %s: %w", id, err)
	}

	return res, nil
}

// Create_Product stores the product and, when given, its image. The image URL is assigned
// by the server.
func (c *Controller_Products) Create_Product(ctx context.Context, product dmodel.Product, image *dmodel.ProductImage) (*dmodel.Product, error) {
	if err := validation.Struct(product); err != nil {
		return nil, err
	}

	product.ImageURL = ""
	res, err := c.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	if image == nil {
		return res, nil
	}

	withImage, err := c.attachImage(ctx, *res, *image)
	if err != nil {
		// a failed create must not leave the product behind
		if delErr := c.repo.DeleteProduct(ctx, res.ID); delErr != nil {
			log.Printf("Error removing product %s after failed image upload: %v", res.ID, delErr)
		}
		return nil, err
	}
	return withImage, nil
}

// Update_Product replaces the product fields. Without a new image the stored one is kept.
func (c *Controller_Products) Update_Product(ctx context.Context, id string, product dmodel.Product, image *dmodel.ProductImage) (*dmodel.Product, error) {
	product.ID = id
	if err := validation.Struct(product); err != nil {
		return nil, err
	}

	existing, err := c.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting product %s: %w", id, err)
	}
	product.ImageURL = existing.ImageURL

	if image != nil {
		return c.attachImage(ctx, product, *image)
	}

	res, err := c.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("updating product %s: %w", id, err)
	}
	return res, nil
}

func (c *Controller_Products) attachImage(ctx context.Context, product dmodel.Product, image dmodel.ProductImage) (*dmodel.Product, error) {
	if err := c.repo.SaveProductImage(ctx, product.ID, image); err != nil {
		return nil, fmt.Errorf("saving image of product %s: %w", product.ID, err)
	}

	product.ImageURL = ImageURL(product.ID)
	res, err := c.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("updating product %s: %w", product.ID, err)
	}
	return res, nil
}

func (c *Controller_Products) Delete_Product(ctx context.Context, id string) error {
	err := c.repo.DeleteProduct(ctx, id)

	if err != nil {
		return fmt.Errorf("deleting product %s: %w", id, err)
	}

	return nil
}

func (c *Controller_Products) Get_Image(ctx context.Context, id string) (*dmodel.ProductImage, error) {
	res, err := c.repo.GetProductImage(ctx, id)

	if err != nil {
		return nil, fmt.Errorf("getting image of product %s: %w", id, err)
	}

	return res, nil
}
