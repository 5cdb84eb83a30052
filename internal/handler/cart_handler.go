package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	carts cart.Service
}

func NewCartHandler(s cart.Service) *CartHandler {
	return &CartHandler{carts: s}
}

type cartPayload struct {
	Cart cart.Cart `json:"cart"`
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
}

func (req cartItemRequest) variant() cart.Variant {
	if req.Size == "" {
		return cart.NoVariant
	}
	return cart.ParseVariant(req.Size)
}

// GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	c, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		writeCartError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cartPayload{Cart: c})
}

// POST /api/cart replaces the whole cart.
func (h *CartHandler) SaveCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var body cartPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	c, err := h.carts.SaveCart(r.Context(), userID, body.Cart)
	if err != nil {
		writeCartError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"message": "Cart updated", "cart": c})
}

// POST /api/cart/items adds one unit.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	c, err := h.carts.AddItem(r.Context(), cart.AddItemParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Variant:   req.variant(),
	})
	if err != nil {
		writeCartError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cartPayload{Cart: c})
}

// DELETE /api/cart/items/{key} removes one unit, or the whole line with ?all=true.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	productID, variant := cart.DecodeKey(chi.URLParam(r, "key"))
	params := cart.RemoveItemParams{UserID: userID, ProductID: productID, Variant: variant}

	var (
		c   cart.Cart
		err error
	)
	if r.URL.Query().Get("all") == "true" {
		c, err = h.carts.DeleteItem(r.Context(), params)
	} else {
		c, err = h.carts.RemoveItem(r.Context(), params)
	}
	if err != nil {
		writeCartError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cartPayload{Cart: c})
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrUserNotAuthenticated):
		utils.WriteJSONError(w, "not authorized", http.StatusUnauthorized)
	case errors.Is(err, cart.ErrInvalidProductID), errors.Is(err, cart.ErrInvalidQuantity):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, cart.ErrCartItemNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	default:
		utils.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}
