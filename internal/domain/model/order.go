package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. Transitions are guarded in the order service:
// cancel is allowed only before delivery, return only after.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderReturned   = "returned"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	OrderPending, OrderProcessing, OrderShipped,
	OrderDelivered, OrderCancelled, OrderReturned,
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// ShippingAddress is the delivery address embedded in orders and users.
type ShippingAddress struct {
	Name    string `bson:"name,omitempty" json:"name,omitempty"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	Town    string `bson:"town,omitempty" json:"town,omitempty"`
	Zip     string `bson:"zip,omitempty" json:"zip,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// Order represents a customer order.
type Order struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID             primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items              []OrderItem        `bson:"items" json:"items"`
	ShippingAddress    ShippingAddress    `bson:"shipping_address" json:"shipping_address"`
	TotalAmount        float64            `bson:"total_amount" json:"total_amount"`
	TransactionID      string             `bson:"transaction_id" json:"transaction_id"`
	PaymentMethod      string             `bson:"payment_method" json:"payment_method"`
	OrderStatus        string             `bson:"order_status" json:"order_status"`
	TrackingNumber     string             `bson:"tracking_number,omitempty" json:"tracking_number,omitempty"`
	ShippedDate        *time.Time         `bson:"shipped_date,omitempty" json:"shipped_date,omitempty"`
	DeliveredDate      *time.Time         `bson:"delivered_date,omitempty" json:"delivered_date,omitempty"`
	CancellationDate   *time.Time         `bson:"cancellation_date,omitempty" json:"cancellation_date,omitempty"`
	CancellationReason string             `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	IsReturned         bool               `bson:"is_returned" json:"is_returned"`
	ReturnDate         *time.Time         `bson:"return_date,omitempty" json:"return_date,omitempty"`
	ReturnReason       string             `bson:"return_reason,omitempty" json:"return_reason,omitempty"`
	RefundAmount       float64            `bson:"refund_amount,omitempty" json:"refund_amount,omitempty"`
	RefundStatus       string             `bson:"refund_status,omitempty" json:"refund_status,omitempty"`
	IsActive           bool               `bson:"is_active" json:"is_active"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}

// OrderFields is the projection whitelist for orders.
var OrderFields = NewFieldSet(
	"user_id", "items", "shipping_address", "total_amount",
	"transaction_id", "payment_method", "order_status",
	"tracking_number", "shipped_date", "delivered_date",
	"cancellation_date", "cancellation_reason", "is_returned",
	"return_date", "return_reason", "refund_amount", "refund_status",
	"is_active", "created_at", "updated_at",
)
