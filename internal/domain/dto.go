package domain

// CreateOrderItemInput carries the client's view of a line item. Price is
// optional and only cross-checked against the menu; the server never trusts
// it for the total.
type CreateOrderItemInput struct {
	MenuItemID   string  `json:"menu_item_id"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price,omitempty"`
	Instructions string  `json:"special_instructions,omitempty"`
}

type CreateOrderRequest struct {
	TableNumber   *string                `json:"table_id,omitempty"`
	OrderType     OrderType              `json:"order_type"`
	Items         []CreateOrderItemInput `json:"items"`
	CustomerName  string                 `json:"customer_name,omitempty"`
	CustomerPhone string                 `json:"customer_phone,omitempty"`
}

type UpdateStatusRequest struct {
	Status OrderStatus `json:"status"`
}

type RecordPaymentRequest struct {
	OrderNumber string        `json:"order_id"`
	Amount      float64       `json:"amount"`
	Method      PaymentMethod `json:"method"`
}

type UpdateTableRequest struct {
	Status TableStatus `json:"status"`
}

type RegisterCustomerRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// TableView is a Table plus the display-only cleanliness tier derived from
// the time elapsed since the last cleaning.
type TableView struct {
	Table
	Cleanliness string `json:"cleanliness"`
}
