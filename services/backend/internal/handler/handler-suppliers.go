package backend_handler_http

import (
	"net/http"

	"github.com/gorilla/mux"

	"store-admin/pkg/dmodel"
	backend_controller "store-admin/services/backend/internal/controller"
)

type Handler_Suppliers struct {
	controller *backend_controller.Controller_Suppliers
}

func NewSuppliers(controller *backend_controller.Controller_Suppliers) *Handler_Suppliers {
	return &Handler_Suppliers{
		controller: controller,
	}
}

func (h *Handler_Suppliers) Get_All(w http.ResponseWriter, r *http.Request) {
	items, err := h.controller.Get_All(r.Context())
	if err != nil {
		writeError(w, err, "Supplier", "listing suppliers")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handler_Suppliers) Get_BySupplierID(w http.ResponseWriter, r *http.Request) {
	item, err := h.controller.Get_BySupplierID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Supplier", "getting supplier")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *Handler_Suppliers) Create_Supplier(w http.ResponseWriter, r *http.Request) {
	var supplier dmodel.Supplier
	if err := decodeJSON(r, &supplier); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	createdItem, err := h.controller.Create_Supplier(r.Context(), supplier)
	if err != nil {
		writeError(w, err, "Supplier", "creating supplier")
		return
	}

	writeJSON(w, http.StatusCreated, createdItem)
}

func (h *Handler_Suppliers) Update_Supplier(w http.ResponseWriter, r *http.Request) {
	var supplier dmodel.Supplier
	if err := decodeJSON(r, &supplier); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	updatedItem, err := h.controller.Update_Supplier(r.Context(), mux.Vars(r)["id"], supplier)
	if err != nil {
		writeError(w, err, "Supplier", "updating supplier")
		return
	}

	writeJSON(w, http.StatusOK, updatedItem)
}

func (h *Handler_Suppliers) Delete_Supplier(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Delete_Supplier(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Supplier", "deleting supplier")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
