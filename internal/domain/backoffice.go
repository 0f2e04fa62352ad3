package domain

import "time"

// ContactMessage is a message sent through the storefront contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMessagePage is one page of contact messages from the remote API.
type ContactMessagePage struct {
	Items []ContactMessage `json:"items"`
	Meta  PageMeta         `json:"meta"`
}

// Order is the summary of a customer order as listed by the remote orders API.
type Order struct {
	ID            string    `json:"id"`
	OrderNumber   string    `json:"order_number"`
	CustomerEmail string    `json:"customer_email"`
	Status        string    `json:"status"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

// OrderPage is one page of orders from the remote API.
type OrderPage struct {
	Items []Order  `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// ListParams are the shared pagination/status parameters of the back-office lists.
type ListParams struct {
	Page   int
	Limit  int
	Status string
}
