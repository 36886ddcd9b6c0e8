package dto

import (
	"time"

	"github.com/guttosm/commerce-service/internal/domain/model"
)

// OrderListQuery holds order list filters.
type OrderListQuery struct {
	ListQuery
	UserID      string `form:"user_id"`
	OrderStatus string `form:"order_status"`
}

// Validate checks the status enum when present.
func (q *OrderListQuery) Validate(fields model.FieldSet) error {
	if err := q.ListQuery.Validate(fields); err != nil {
		return err
	}
	if q.OrderStatus != "" && !model.ValidOrderStatus(q.OrderStatus) {
		return &ValidationError{Fields: []FieldError{
			{Path: "order_status", Message: "unknown order status"},
		}}
	}
	return nil
}

// OrderItemInput is one order line in a create request.
type OrderItemInput struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gte=1"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

// CreateOrderRequest creates an order for the authenticated user.
type CreateOrderRequest struct {
	Items           []OrderItemInput      `json:"items" binding:"required,min=1,dive"`
	ShippingAddress model.ShippingAddress `json:"shipping_address" binding:"required"`
	TotalAmount     float64               `json:"total_amount" binding:"required,gt=0"`
	TransactionID   string                `json:"transaction_id" binding:"required"`
	PaymentMethod   string                `json:"payment_method" binding:"required"`
}

// UpdateOrderRequest updates mutable order fields.
type UpdateOrderRequest struct {
	ShippingAddress *model.ShippingAddress `json:"shipping_address"`
	PaymentMethod   *string                `json:"payment_method"`
	IsActive        *bool                  `json:"is_active"`
}

// UpdateOrderStatusRequest moves an order to a new status.
type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"order_status" binding:"required"`
}

// Validate checks the status enum.
func (r *UpdateOrderStatusRequest) Validate() error {
	if !model.ValidOrderStatus(r.OrderStatus) {
		return &ValidationError{Fields: []FieldError{
			{Path: "order_status", Message: "unknown order status"},
		}}
	}
	return nil
}

// CancelOrderRequest cancels an order with a reason.
type CancelOrderRequest struct {
	CancellationReason string `json:"cancellation_reason" binding:"required"`
}

// ReturnOrderRequest returns a delivered order.
type ReturnOrderRequest struct {
	ReturnReason string `json:"return_reason" binding:"required"`
}

// RefundOrderRequest records a refund on a cancelled or returned order.
type RefundOrderRequest struct {
	RefundAmount float64 `json:"refund_amount" binding:"required,gt=0"`
	RefundStatus string  `json:"refund_status" binding:"required"`
}

// UpdateTrackingRequest sets the shipment tracking number.
type UpdateTrackingRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

// OrderStatsQuery bounds the order stats aggregation.
type OrderStatsQuery struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// OrderStats summarizes order counts and revenue.
type OrderStats struct {
	TotalOrders      int64   `bson:"totalOrders" json:"total_orders"`
	TotalRevenue     float64 `bson:"totalRevenue" json:"total_revenue"`
	PendingOrders    int64   `bson:"pendingOrders" json:"pending_orders"`
	ProcessingOrders int64   `bson:"processingOrders" json:"processing_orders"`
	ShippedOrders    int64   `bson:"shippedOrders" json:"shipped_orders"`
	DeliveredOrders  int64   `bson:"deliveredOrders" json:"delivered_orders"`
	CancelledOrders  int64   `bson:"cancelledOrders" json:"cancelled_orders"`
	ReturnedOrders   int64   `bson:"returnedOrders" json:"returned_orders"`
}

// WishlistQuery controls wishlist retrieval.
type WishlistQuery struct {
	Fields string `form:"fields"`
}

// AddWishlistItemRequest adds a product to the wishlist.
type AddWishlistItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// AddCartItemRequest adds a product to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

// UpdateCartItemRequest changes the quantity of a cart line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

// UserListQuery holds admin user list filters.
type UserListQuery struct {
	ListQuery
	Role     string    `form:"role"`
	Verified BoolParam `form:"is_verified"`
}

// UpdateUserRequest is the admin-side user update.
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Avatar     *string `json:"avatar"`
	Role       *string `json:"role"`
	IsVerified *bool   `json:"is_verified"`
}

// ChangeUserStatusRequest toggles a user's verified flag.
type ChangeUserStatusRequest struct {
	IsVerified *bool `json:"is_verified" binding:"required"`
}

// Validate checks the role enum when present.
func (r *UpdateUserRequest) Validate() error {
	if r.Role != nil {
		switch *r.Role {
		case model.RoleUser, model.RoleAdmin, model.RoleSuperAdmin:
		default:
			return &ValidationError{Fields: []FieldError{
				{Path: "role", Message: "unknown role"},
			}}
		}
	}
	return nil
}
