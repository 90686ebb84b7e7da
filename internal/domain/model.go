package domain

import "time"

type Order struct {
	ID            int64          `json:"id"`
	Number        string         `json:"order_number"`
	Type          OrderType      `json:"order_type"`
	TableNumber   *string        `json:"table_number,omitempty"`
	CustomerName  *string        `json:"customer_name,omitempty"`
	CustomerPhone *string        `json:"customer_phone,omitempty"`
	Items         []OrderItem    `json:"items,omitempty"`
	TotalAmount   float64        `json:"total_amount"`
	Status        OrderStatus    `json:"status"`
	PaymentStatus PaymentStatus  `json:"payment_status"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
}

// OrderItem is a snapshot taken at order time: name and unit price are
// copied from the menu and never change when the menu does.
type OrderItem struct {
	ID           int64   `json:"id"`
	OrderID      int64   `json:"order_id"`
	MenuItemID   string  `json:"menu_item_id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Instructions *string `json:"special_instructions,omitempty"`
}

type Table struct {
	Number        string      `json:"number"`
	Capacity      int         `json:"capacity"`
	Status        TableStatus `json:"status"`
	CurrentOrder  *string     `json:"current_order,omitempty"`
	LastCleanedAt time.Time   `json:"last_cleaned_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Customer is a loyalty record keyed by normalized phone number.
type Customer struct {
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Payment struct {
	ID          string        `json:"id"`
	OrderNumber string        `json:"order_number"`
	Amount      float64       `json:"amount"`
	Method      PaymentMethod `json:"method"`
	PaidAt      time.Time     `json:"paid_at"`
}

type MenuItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}
