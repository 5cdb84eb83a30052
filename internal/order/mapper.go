package order

import (
	"time"

	"storefront-be/internal/address"
	"storefront-be/internal/coupon"

	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	ID            string              `json:"id"`
	StoreID       string              `json:"storeId"`
	AddressID     string              `json:"addressId"`
	Address       *address.Response   `json:"address"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod PaymentMethod       `json:"paymentMethod"`
	IsPaid        bool                `json:"isPaid"`
	IsCouponUsed  bool                `json:"isCouponUsed"`
	Coupon        *coupon.Snapshot    `json:"coupon"`
	CreatedAt     time.Time           `json:"createdAt"`
	Items         []OrderItemResponse `json:"orderItems"`
}

type OrderItemResponse struct {
	ProductID string               `json:"productId"`
	Size      string               `json:"size"`
	Quantity  int                  `json:"quantity"`
	Price     decimal.Decimal      `json:"price"`
	Product   *ItemProductResponse `json:"product"`
}

type ItemProductResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	MRP   decimal.Decimal `json:"mrp"`
}

func ToOrderResponse(o *Order) *OrderResponse {
	if o == nil {
		return nil
	}

	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Size:      item.Variant.String(),
			Quantity:  item.Quantity,
			Price:     item.Price,
			Product:   toItemProductResponse(item.Product),
		})
	}

	return &OrderResponse{
		ID:            o.ID.String(),
		StoreID:       o.StoreID,
		AddressID:     o.AddressID,
		Address:       address.ToResponse(o.Address),
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		IsPaid:        o.IsPaid,
		IsCouponUsed:  o.IsCouponUsed,
		Coupon:        o.Coupon,
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}
}

func toItemProductResponse(p *ItemProduct) *ItemProductResponse {
	if p == nil {
		return nil
	}
	return &ItemProductResponse{ID: p.ID, Name: p.Name, Price: p.Price, MRP: p.MRP}
}

func ToOrderResponses(orders []*Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out
}
