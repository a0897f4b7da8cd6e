package backend_handler_http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"store-admin/pkg/dmodel"
	backend_controller "store-admin/services/backend/internal/controller"
)

// DefaultUploadMaxBytes caps multipart product bodies.
const DefaultUploadMaxBytes = 10 << 20

type Handler_Products struct {
	controller *backend_controller.Controller_Products
	maxUpload  int64
}

func NewProducts(controller *backend_controller.Controller_Products, maxUpload int64) *Handler_Products {
	if maxUpload <= 0 {
		maxUpload = DefaultUploadMaxBytes
	}
	return &Handler_Products{
		controller: controller,
		maxUpload:  maxUpload,
	}
}

func (h *Handler_Products) Get_All(w http.ResponseWriter, r *http.Request) {
	// getting the controller's response
	items, err := h.controller.Get_All(r.Context())
	if err != nil {
		writeError(w, err, "Product", "listing products")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handler_Products) Get_ByProductID(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	item, err := h.controller.Get_ByProductID(r.Context(), productID)
	if err != nil {
		writeError(w, err, "Product", "getting product")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *Handler_Products) Create_Product(w http.ResponseWriter, r *http.Request) {
	product, image, err := h.readProduct(w, r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	createdItem, err := h.controller.Create_Product(r.Context(), product, image)
	if err != nil {
		writeError(w, err, "Product", "creating product")
		return
	}

	writeJSON(w, http.StatusCreated, createdItem)
}

func (h *Handler_Products) Update_Product(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	product, image, err := h.readProduct(w, r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	updatedItem, err := h.controller.Update_Product(r.Context(), productID, product, image)
	if err != nil {
		writeError(w, err, "Product", "updating product")
		return
	}

	writeJSON(w, http.StatusOK, updatedItem)
}

func (h *Handler_Products) Delete_Product(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	if err := h.controller.Delete_Product(r.Context(), productID); err != nil {
		writeError(w, err, "Product", "deleting product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler_Products) Get_Image(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	image, err := h.controller.Get_Image(r.Context(), productID)
	if err != nil {
		writeError(w, err, "Product image", "getting product image")
		return
	}

	w.Header().Set("Content-Type", image.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(image.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(image.Data)
}

// readProduct accepts either a JSON body or multipart/form-data with a "product" JSON part
// and an optional "image" file part.
func (h *Handler_Products) readProduct(w http.ResponseWriter, r *http.Request) (dmodel.Product, *dmodel.ProductImage, error) {
	var product dmodel.Product

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if err := decodeJSON(r, &product); err != nil {
			return product, nil, err
		}
		return product, nil, nil
	}

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return product, nil, fmt.Errorf("invalid multipart body: %w", err)
	}

	meta, err := productPart(r.MultipartForm)
	if err != nil {
		return product, nil, err
	}
	if err := json.Unmarshal(meta, &product); err != nil {
		return product, nil, fmt.Errorf("invalid JSON: %w", err)
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return product, nil, nil
	}
	if err != nil {
		return product, nil, fmt.Errorf("invalid image part: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return product, nil, fmt.Errorf("reading image: %w", err)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return product, &dmodel.ProductImage{ContentType: contentType, Data: data}, nil
}

// productPart returns the "product" part whether it was sent as a field or as a file.
func productPart(form *multipart.Form) ([]byte, error) {
	if values := form.Value["product"]; len(values) > 0 {
		return []byte(values[0]), nil
	}
	if files := form.File["product"]; len(files) > 0 {
		f, err := files[0].Open()
		if err != nil {
			return nil, fmt.Errorf("invalid product part: %w", err)
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return nil, errors.New("missing product part")
}
