package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/commerce-service/internal/cache"
	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/domain/model"
	"github.com/guttosm/commerce-service/internal/metrics"
	"github.com/guttosm/commerce-service/internal/repository"
)

// OrderService provides order lifecycle operations. Status moves are
// guarded: cancellation is blocked once an order is delivered or
// already terminal, returns require delivery, refunds require a
// cancelled or returned order.
type OrderService interface {
	List(ctx context.Context, q *dto.OrderListQuery) (*dto.ListResult[model.Order], error)
	ListForUser(ctx context.Context, userID string, q *dto.OrderListQuery) (*dto.ListResult[model.Order], error)
	GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Order, error)
	Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error)
	Update(ctx context.Context, id string, req *dto.UpdateOrderRequest) (*model.Order, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateOrderStatusRequest) (*model.Order, error)
	Cancel(ctx context.Context, id string, req *dto.CancelOrderRequest) (*model.Order, error)
	Return(ctx context.Context, id string, req *dto.ReturnOrderRequest) (*model.Order, error)
	Refund(ctx context.Context, id string, req *dto.RefundOrderRequest) (*model.Order, error)
	UpdateTracking(ctx context.Context, id string, req *dto.UpdateTrackingRequest) (*model.Order, error)
	GetByTracking(ctx context.Context, trackingNumber string) (*model.Order, error)
	Stats(ctx context.Context, q *dto.OrderStatsQuery) (*dto.OrderStats, error)
	Delete(ctx context.Context, id string) error
}

type orderService struct {
	resource *Resource[model.Order]
	repo     repository.ResourceRepository[model.Order]
	store    cache.Store
	ttl      time.Duration
	now      func() time.Time
}

// NewOrderService creates an order service.
func NewOrderService(repo repository.ResourceRepository[model.Order], store cache.Store, ttl time.Duration) OrderService {
	return &orderService{
		resource: NewResource(model.ResourceOrders, "order", repo, store, ttl),
		repo:     repo,
		store:    store,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *orderService) List(ctx context.Context, q *dto.OrderListQuery) (*dto.ListResult[model.Order], error) {
	q.Normalize("created_at")
	if q.SortBy == "created_at" && q.SortOrder == "asc" {
		// Newest orders first unless the caller sorts explicitly.
		q.SortOrder = "desc"
	}
	if err := q.Validate(model.OrderFields); err != nil {
		return nil, err
	}

	filter := bson.M{}
	boolFilter(filter, "is_active", q.IsActive)
	searchFilter(filter, "transaction_id", q.Search)
	if q.OrderStatus != "" {
		filter["order_status"] = q.OrderStatus
	}
	if err := idFilter(filter, "user_id", q.UserID, "user"); err != nil {
		return nil, err
	}

	cacheQuery := baseCacheQuery(q.ListQuery)
	cacheQuery["user_id"] = q.UserID
	cacheQuery["order_status"] = q.OrderStatus

	return s.resource.List(ctx, cacheQuery, repository.FindOptions{
		Filter: filter,
		Sort:   sortFor(q.ListQuery),
		Fields: q.FieldList(),
		Page:   q.Page,
		Limit:  q.Limit,
	})
}

// ListForUser scopes the list to the authenticated user regardless of
// any user_id filter in the query.
func (s *orderService) ListForUser(ctx context.Context, userID string, q *dto.OrderListQuery) (*dto.ListResult[model.Order], error) {
	q.UserID = userID
	return s.List(ctx, q)
}

func (s *orderService) GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Order, error) {
	if err := q.Validate(model.OrderFields); err != nil {
		return nil, err
	}
	return s.resource.GetByID(ctx, id, q.FieldList())
}

func (s *orderService) Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidIDError("user")
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		productOID, err := primitive.ObjectIDFromHex(in.ProductID)
		if err != nil {
			return nil, InvalidIDError("product")
		}
		items = append(items, model.OrderItem{
			ProductID: productOID,
			Name:      in.Name,
			Quantity:  in.Quantity,
			Price:     in.Price,
		})
	}

	taken, err := s.repo.Exists(ctx, bson.M{"transaction_id": req.TransactionID})
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ConflictError("order", "transaction_id")
	}

	now := s.now()
	order := &model.Order{
		ID:              primitive.NewObjectID(),
		UserID:          userOID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     req.TotalAmount,
		TransactionID:   req.TransactionID,
		PaymentMethod:   req.PaymentMethod,
		OrderStatus:     model.OrderPending,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.resource.Create(ctx, order); err != nil {
		return nil, s.resource.MapWriteError(err, "transaction_id")
	}
	s.invalidateStats(ctx)
	metrics.RecordOrderStatus(model.OrderPending)
	return order, nil
}

func (s *orderService) Update(ctx context.Context, id string, req *dto.UpdateOrderRequest) (*model.Order, error) {
	set := bson.M{}
	setField(set, "shipping_address", req.ShippingAddress)
	setField(set, "payment_method", req.PaymentMethod)
	setField(set, "is_active", req.IsActive)
	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(set)})
}

// UpdateStatus moves an order along the fulfillment path. Terminal
// orders never move again, and a delivered order can only change
// through the return operation.
func (s *orderService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateOrderStatusRequest) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	switch order.OrderStatus {
	case model.OrderCancelled, model.OrderReturned:
		return nil, InvalidStateError("order is in a terminal state")
	case model.OrderDelivered:
		return nil, InvalidStateError("delivered orders can only be returned")
	}
	switch req.OrderStatus {
	case model.OrderCancelled:
		return nil, InvalidStateError("use the cancel operation to cancel an order")
	case model.OrderReturned:
		return nil, InvalidStateError("use the return operation to return an order")
	}

	set := bson.M{"order_status": req.OrderStatus}
	now := s.now()
	switch req.OrderStatus {
	case model.OrderShipped:
		set["shipped_date"] = now
	case model.OrderDelivered:
		set["delivered_date"] = now
	}

	updated, err := s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(set)})
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	metrics.RecordOrderStatus(req.OrderStatus)
	return updated, nil
}

// Cancel rejects delivered and terminal orders.
func (s *orderService) Cancel(ctx context.Context, id string, req *dto.CancelOrderRequest) (*model.Order, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	switch order.OrderStatus {
	case model.OrderDelivered:
		return nil, InvalidStateError("delivered orders cannot be cancelled")
	case model.OrderCancelled:
		return nil, InvalidStateError("order is already cancelled")
	case model.OrderReturned:
		return nil, InvalidStateError("returned orders cannot be cancelled")
	}

	set := bson.M{
		"order_status":        model.OrderCancelled,
		"cancellation_date":   s.now(),
		"cancellation_reason": req.CancellationReason,
	}
	updated, err := s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(set)})
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	metrics.RecordOrderStatus(model.OrderCancelled)
	return updated, nil
}

// Return requires a delivered order that has not been returned yet.
func (s *orderService) Return(ctx context.Context, id string, req *dto.ReturnOrderRequest) (*model.Order, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsReturned {
		return nil, InvalidStateError("order is already returned")
	}
	if order.OrderStatus != model.OrderDelivered {
		return nil, InvalidStateError("only delivered orders can be returned")
	}

	set := bson.M{
		"order_status":  model.OrderReturned,
		"is_returned":   true,
		"return_date":   s.now(),
		"return_reason": req.ReturnReason,
	}
	updated, err := s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(set)})
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	metrics.RecordOrderStatus(model.OrderReturned)
	return updated, nil
}

// Refund requires a cancelled or returned order and caps the refund at
// the order total.
func (s *orderService) Refund(ctx context.Context, id string, req *dto.RefundOrderRequest) (*model.Order, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.OrderStatus != model.OrderCancelled && order.OrderStatus != model.OrderReturned {
		return nil, InvalidStateError("only cancelled or returned orders can be refunded")
	}
	if req.RefundAmount > order.TotalAmount {
		return nil, BadRequestError("refund amount exceeds order total")
	}

	set := bson.M{
		"refund_amount": req.RefundAmount,
		"refund_status": req.RefundStatus,
	}
	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(set)})
}

func (s *orderService) UpdateTracking(ctx context.Context, id string, req *dto.UpdateTrackingRequest) (*model.Order, error) {
	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(bson.M{
		"tracking_number": req.TrackingNumber,
	})})
}

// GetByTracking looks an order up by its carrier tracking number.
func (s *orderService) GetByTracking(ctx context.Context, trackingNumber string) (*model.Order, error) {
	if trackingNumber == "" {
		return nil, BadRequestError("tracking number is required")
	}
	order, err := s.repo.FindOne(ctx, bson.M{"tracking_number": trackingNumber})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, NotFoundError("order")
	}
	return order, nil
}

// Stats aggregates order counts and revenue, optionally bounded by a
// creation date range. Revenue excludes cancelled and returned orders.
func (s *orderService) Stats(ctx context.Context, q *dto.OrderStatsQuery) (*dto.OrderStats, error) {
	cacheQuery := map[string]any{}
	if q.StartDate != nil {
		cacheQuery["start_date"] = q.StartDate.Format("2006-01-02")
	}
	if q.EndDate != nil {
		cacheQuery["end_date"] = q.EndDate.Format("2006-01-02")
	}
	key := cache.BuildKey(model.ResourceOrders+":stats", cacheQuery)
	if hit, ok := cache.GetJSON[dto.OrderStats](ctx, s.store, key); ok {
		return hit, nil
	}

	match := bson.M{}
	created := bson.M{}
	if q.StartDate != nil {
		created["$gte"] = *q.StartDate
	}
	if q.EndDate != nil {
		created["$lt"] = q.EndDate.AddDate(0, 0, 1)
	}
	if len(created) > 0 {
		match["created_at"] = created
	}

	statusCount := func(status string) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$order_status", status}}, 1, 0,
		}}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"totalOrders": bson.M{"$sum": 1},
			"totalRevenue": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{"$order_status", bson.A{
					model.OrderCancelled, model.OrderReturned,
				}}}, 0, "$total_amount",
			}}},
			"pendingOrders":    statusCount(model.OrderPending),
			"processingOrders": statusCount(model.OrderProcessing),
			"shippedOrders":    statusCount(model.OrderShipped),
			"deliveredOrders":  statusCount(model.OrderDelivered),
			"cancelledOrders":  statusCount(model.OrderCancelled),
			"returnedOrders":   statusCount(model.OrderReturned),
		}}},
	}

	var results []dto.OrderStats
	if err := s.repo.Aggregate(ctx, pipeline, &results); err != nil {
		return nil, err
	}
	stats := &dto.OrderStats{}
	if len(results) > 0 {
		stats = &results[0]
	}
	cache.SetJSON(ctx, s.store, key, stats, s.ttl)
	return stats, nil
}

func (s *orderService) Delete(ctx context.Context, id string) error {
	if err := s.resource.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

// loadOrder reads the current document for a status guard. The read
// bypasses the cache so the guard sees the latest state.
func (s *orderService) loadOrder(ctx context.Context, id string) (*model.Order, error) {
	oid, err := s.resource.ParseID(id)
	if err != nil {
		return nil, err
	}
	order, err := s.repo.FindByID(ctx, oid, nil)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, NotFoundError("order")
	}
	return order, nil
}

// invalidateStats drops the cached aggregations, which the generic
// resource invalidation does not cover.
func (s *orderService) invalidateStats(ctx context.Context) {
	cache.Invalidate(ctx, s.store, model.ResourceOrders+":stats"+cache.KeySeparator+"*")
}
