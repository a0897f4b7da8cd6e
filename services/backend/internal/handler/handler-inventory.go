package backend_handler_http

import (
	"net/http"

	"github.com/gorilla/mux"

	"store-admin/pkg/dmodel"
	backend_controller "store-admin/services/backend/internal/controller"
)

type Handler_Inventory struct {
	controller *backend_controller.Controller_Inventory
}

func NewInventory(controller *backend_controller.Controller_Inventory) *Handler_Inventory {
	return &Handler_Inventory{
		controller: controller,
	}
}

func (h *Handler_Inventory) Get_All(w http.ResponseWriter, r *http.Request) {
	items, err := h.controller.Get_All(r.Context())
	if err != nil {
		writeError(w, err, "Inventory", "listing inventory")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handler_Inventory) Get_ByProductID(w http.ResponseWriter, r *http.Request) {
	item, err := h.controller.Get_ByProductID(r.Context(), mux.Vars(r)["productId"])
	if err != nil {
		writeError(w, err, "Inventory", "getting inventory")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *Handler_Inventory) Create_Item(w http.ResponseWriter, r *http.Request) {
	var item dmodel.InventoryItem
	if err := decodeJSON(r, &item); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	createdItem, err := h.controller.Create_Item(r.Context(), item)
	if err != nil {
		writeError(w, err, "Inventory", "creating inventory")
		return
	}

	writeJSON(w, http.StatusCreated, createdItem)
}

func (h *Handler_Inventory) Update_Stock(w http.ResponseWriter, r *http.Request) {
	var update dmodel.InventoryUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	updatedItem, err := h.controller.Update_Stock(r.Context(), mux.Vars(r)["productId"], update)
	if err != nil {
		writeError(w, err, "Inventory", "updating inventory")
		return
	}

	writeJSON(w, http.StatusOK, updatedItem)
}

func (h *Handler_Inventory) Delete_Item(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Delete_Item(r.Context(), mux.Vars(r)["productId"]); err != nil {
		writeError(w, err, "Inventory", "deleting inventory")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
