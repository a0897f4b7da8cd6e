package backend_handler_http

import (
	"net/http"

	"github.com/gorilla/mux"

	"store-admin/pkg/dmodel"
	backend_controller "store-admin/services/backend/internal/controller"
)

type Handler_Orders struct {
	controller *backend_controller.Controller_Orders
}

func NewOrders(controller *backend_controller.Controller_Orders) *Handler_Orders {
	return &Handler_Orders{
		controller: controller,
	}
}

func (h *Handler_Orders) Get_All(w http.ResponseWriter, r *http.Request) {
	items, err := h.controller.Get_All(r.Context())
	if err != nil {
		writeError(w, err, "Order", "listing orders")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handler_Orders) Get_ByOrderID(w http.ResponseWriter, r *http.Request) {
	item, err := h.controller.Get_ByOrderID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Order", "getting order")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *Handler_Orders) Create_Order(w http.ResponseWriter, r *http.Request) {
	var order dmodel.Order
	if err := decodeJSON(r, &order); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	createdItem, err := h.controller.Create_Order(r.Context(), order)
	if err != nil {
		writeError(w, err, "Order", "creating order")
		return
	}

	writeJSON(w, http.StatusCreated, createdItem)
}

func (h *Handler_Orders) Update_Order(w http.ResponseWriter, r *http.Request) {
	var order dmodel.Order
	if err := decodeJSON(r, &order); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	updatedItem, err := h.controller.Update_Order(r.Context(), mux.Vars(r)["id"], order)
	if err != nil {
		writeError(w, err, "Order", "updating order")
		return
	}

	writeJSON(w, http.StatusOK, updatedItem)
}

func (h *Handler_Orders) Delete_Order(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Delete_Order(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Order", "deleting order")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
