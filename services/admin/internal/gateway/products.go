package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"store-admin/pkg/dmodel"
)

var (
	opListProducts  = operation{action: "fetching products", fallback: "Failed to fetch products"}
	opCreateProduct = operation{action: "creating product", fallback: "Failed to create product"}
	opUpdateProduct = operation{action: "updating product", fallback: "Failed to update product"}
	opDeleteProduct = operation{action: "deleting product", fallback: "Failed to delete product"}
)

// Attachment is an image uploaded with a product.
type Attachment struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

func (c *Client) ListProducts(ctx context.Context) ([]dmodel.Product, error) {
	var products []dmodel.Product
	if err := c.do(ctx, opListProducts, request{method: http.MethodGet, path: "/products"}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct sends the product as multipart form data with an optional image part.
func (c *Client) CreateProduct(ctx context.Context, product dmodel.Product, image *Attachment) (*dmodel.Product, error) {
	req, err := productRequest(http.MethodPost, "/products", product, image)
	if err != nil {
		return nil, c.fail(opCreateProduct, &RequestError{Op: opCreateProduct.action, Message: opCreateProduct.fallback, Err: err})
	}

	var created dmodel.Product
	if err := c.do(ctx, opCreateProduct, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, product dmodel.Product, image *Attachment) (*dmodel.Product, error) {
	req, err := productRequest(http.MethodPut, "/products/"+escape(id), product, image)
	if err != nil {
		return nil, c.fail(opUpdateProduct, &RequestError{Op: opUpdateProduct.action, Message: opUpdateProduct.fallback, Err: err})
	}

	var updated dmodel.Product
	if err := c.do(ctx, opUpdateProduct, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, opDeleteProduct, request{method: http.MethodDelete, path: "/products/" + escape(id)}, nil)
}

func productRequest(method, path string, product dmodel.Product, image *Attachment) (request, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	meta, err := json.Marshal(product)
	if err != nil {
		return request{}, err
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="product"`)
	header.Set("Content-Type", "application/json")
	part, err := mw.CreatePart(header)
	if err != nil {
		return request{}, err
	}
	if _, err := part.Write(meta); err != nil {
		return request{}, err
	}

	if image != nil && image.Body != nil {
		filename := image.Filename
		if filename == "" {
			filename = "image"
		}
		contentType := image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, quoteEscaper.Replace(filename)))
		header.Set("Content-Type", contentType)
		part, err := mw.CreatePart(header)
		if err != nil {
			return request{}, err
		}
		if _, err := io.Copy(part, image.Body); err != nil {
			return request{}, fmt.Errorf("reading image: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return request{}, err
	}
	return request{method: method, path: path, body: &buf, contentType: mw.FormDataContentType()}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
