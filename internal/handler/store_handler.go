package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront-be/internal/product"
	"storefront-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type StoreHandler struct {
	products product.Service
}

func NewStoreHandler(s product.Service) *StoreHandler {
	return &StoreHandler{products: s}
}

// POST /api/store/stock-toggle
func (h *StoreHandler) ToggleStock(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var body struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductID == "" {
		utils.WriteJSONError(w, "missing details: productId", http.StatusBadRequest)
		return
	}

	inStock, err := h.products.ToggleStock(r.Context(), userID, body.ProductID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "product stock updated successfully",
		"inStock": inStock,
	})
}

// PUT /api/store/products/{id}/variants
func (h *StoreHandler) UpdateVariants(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var body struct {
		Variants []product.Variant `json:"sizes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	productID := chi.URLParam(r, "id")
	if err := h.products.UpdateVariants(r.Context(), userID, productID, body.Variants); err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"message": "sizes updated", "sizes": body.Variants})
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, product.ErrNotSeller):
		utils.WriteJSONError(w, "not authorized", http.StatusForbidden)
	case errors.Is(err, product.ErrProductNotFound):
		utils.WriteJSONError(w, "no product found", http.StatusNotFound)
	case errors.Is(err, product.ErrInvalidVariants):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		utils.WriteJSONError(w, "failed to update product", http.StatusInternalServerError)
	}
}
