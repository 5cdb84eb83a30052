package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront-be/internal/checkout"
	"storefront-be/internal/order"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	checkout checkout.Service
	orders   order.Service
}

func NewOrderHandler(c checkout.Service, o order.Service) *OrderHandler {
	return &OrderHandler{checkout: c, orders: o}
}

type placeOrderResponse struct {
	Message  string          `json:"message"`
	OrderIDs []string        `json:"orderIds"`
	Total    decimal.Decimal `json:"total"`
}

// POST /api/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req checkout.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONErrorCode(w, "missing order details", checkout.CodeMissingOrderDetails, http.StatusBadRequest)
		return
	}
	req.UserID = userID

	res, err := h.checkout.Checkout(r.Context(), req)
	if err != nil {
		var ce *checkout.Error
		if errors.As(err, &ce) {
			utils.WriteJSONErrorCode(w, ce.Message, ce.Code, ce.Kind.HTTPStatus())
			return
		}
		utils.WriteJSONError(w, "failed to place order", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, placeOrderResponse{
		Message:  "Orders Placed Successfully",
		OrderIDs: res.OrderIDs,
		Total:    res.Total,
	})
}

// GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.orders.ListOrders(r.Context(), userID)
	if err != nil {
		if errors.Is(err, order.ErrUserRequired) {
			utils.WriteJSONError(w, "not authorized", http.StatusUnauthorized)
			return
		}
		utils.WriteJSONError(w, "failed to list orders", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"orders": order.ToOrderResponses(orders)})
}
