package order

import (
	"time"

	"commerce/domain/order"
)

// PlaceOrderRequest place-order request DTO.
type PlaceOrderRequest struct {
	Customer        CustomerInfoRequest `json:"customer" binding:"required"`
	ShippingAddress AddressRequest      `json:"shipping_address" binding:"required"`
	Items           []OrderItemRequest  `json:"items" binding:"required,min=1"`
}

// CustomerInfoRequest customer part of a place-order request.
type CustomerInfoRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
}

// AddressRequest shipping address part of a place-order request.
type AddressRequest struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

// OrderItemRequest one (product, quantity) pair of a place-order request.
// Name and price are not accepted from the caller; they are back-filled from
// the catalog's authoritative snapshot during reservation.
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CancelOrderRequest cancel request DTO.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// UpdateStatusRequest status-transition request DTO.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse order response DTO.
type OrderResponse struct {
	ID              string              `json:"id"`
	Customer        CustomerInfoResult  `json:"customer"`
	Items           []OrderItemResponse `json:"items"`
	ShippingAddress AddressResult       `json:"shipping_address"`
	Status          string              `json:"status"`
	TotalAmount     string              `json:"total_amount"`
	Currency        string              `json:"currency"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	ConfirmedAt     *time.Time          `json:"confirmed_at,omitempty"`
}

// CustomerInfoResult customer snapshot in responses.
type CustomerInfoResult struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// AddressResult address snapshot in responses.
type AddressResult struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// OrderItemResponse order line in responses.
type OrderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
	Currency    string `json:"currency"`
}

func toOrderResponse(o *order.Order) *OrderResponse {
	items := o.Items()
	itemResponses := make([]OrderItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = OrderItemResponse{
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity().Value(),
			UnitPrice:   item.UnitPrice().Amount().StringFixed(2),
			Subtotal:    item.Subtotal().Amount().StringFixed(2),
			Currency:    item.UnitPrice().Currency(),
		}
	}

	customer := o.Customer()
	address := o.ShippingAddress()

	return &OrderResponse{
		ID: o.ID(),
		Customer: CustomerInfoResult{
			CustomerID: customer.CustomerID(),
			Name:       customer.Name(),
			Email:      customer.Email(),
			Phone:      customer.Phone(),
		},
		Items: itemResponses,
		ShippingAddress: AddressResult{
			Street:     address.Street(),
			City:       address.City(),
			State:      address.State(),
			PostalCode: address.PostalCode(),
			Country:    address.Country(),
		},
		Status:      string(o.Status()),
		TotalAmount: o.TotalAmount().Amount().StringFixed(2),
		Currency:    o.TotalAmount().Currency(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		ConfirmedAt: o.ConfirmedAt(),
	}
}
