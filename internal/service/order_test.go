package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/commerce-service/internal/cache"
	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/domain/model"
)

func newOrderService(repo *fakeRepo[model.Order]) OrderService {
	return NewOrderService(repo, cache.NewMemoryStore(100), time.Minute)
}

func orderInStatus(status string) *model.Order {
	return &model.Order{
		ID:          primitive.NewObjectID(),
		UserID:      primitive.NewObjectID(),
		OrderStatus: status,
		TotalAmount: 100,
		IsReturned:  status == model.OrderReturned,
	}
}

func orderRepoWith(order *model.Order) *fakeRepo[model.Order] {
	return &fakeRepo[model.Order]{
		findByIDFn: func(context.Context, primitive.ObjectID, []string) (*model.Order, error) {
			return order, nil
		},
		updateFn: func(_ context.Context, _ primitive.ObjectID, update bson.M) (*model.Order, error) {
			updated := *order
			if set, ok := update["$set"].(bson.M); ok {
				if status, ok := set["order_status"].(string); ok {
					updated.OrderStatus = status
				}
			}
			return &updated, nil
		},
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		current string
		target  string
		wantErr error
	}{
		{name: "pending to processing", current: model.OrderPending, target: model.OrderProcessing},
		{name: "processing to shipped", current: model.OrderProcessing, target: model.OrderShipped},
		{name: "shipped to delivered", current: model.OrderShipped, target: model.OrderDelivered},
		{name: "cancelled never moves", current: model.OrderCancelled, target: model.OrderProcessing, wantErr: ErrInvalidState},
		{name: "returned never moves", current: model.OrderReturned, target: model.OrderProcessing, wantErr: ErrInvalidState},
		{name: "delivered only changes through return", current: model.OrderDelivered, target: model.OrderShipped, wantErr: ErrInvalidState},
		{name: "cancel target rejected", current: model.OrderPending, target: model.OrderCancelled, wantErr: ErrInvalidState},
		{name: "return target rejected", current: model.OrderDelivered, target: model.OrderReturned, wantErr: ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := orderInStatus(tt.current)
			svc := newOrderService(orderRepoWith(order))

			updated, err := svc.UpdateStatus(ctx, order.ID.Hex(), &dto.UpdateOrderStatusRequest{OrderStatus: tt.target})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, updated.OrderStatus)
		})
	}
}

func TestOrderService_Cancel(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		current string
		wantErr bool
	}{
		{name: "pending can cancel", current: model.OrderPending},
		{name: "processing can cancel", current: model.OrderProcessing},
		{name: "shipped can cancel", current: model.OrderShipped},
		{name: "delivered cannot cancel", current: model.OrderDelivered, wantErr: true},
		{name: "already cancelled", current: model.OrderCancelled, wantErr: true},
		{name: "returned cannot cancel", current: model.OrderReturned, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := orderInStatus(tt.current)
			svc := newOrderService(orderRepoWith(order))

			updated, err := svc.Cancel(ctx, order.ID.Hex(), &dto.CancelOrderRequest{CancellationReason: "changed my mind"})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidState)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.OrderCancelled, updated.OrderStatus)
		})
	}
}

func TestOrderService_Return(t *testing.T) {
	ctx := context.Background()

	t.Run("delivered order returns", func(t *testing.T) {
		order := orderInStatus(model.OrderDelivered)
		svc := newOrderService(orderRepoWith(order))

		updated, err := svc.Return(ctx, order.ID.Hex(), &dto.ReturnOrderRequest{ReturnReason: "damaged"})
		require.NoError(t, err)
		assert.Equal(t, model.OrderReturned, updated.OrderStatus)
	})

	t.Run("undelivered order rejected", func(t *testing.T) {
		order := orderInStatus(model.OrderShipped)
		svc := newOrderService(orderRepoWith(order))

		_, err := svc.Return(ctx, order.ID.Hex(), &dto.ReturnOrderRequest{})
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("already returned rejected", func(t *testing.T) {
		order := orderInStatus(model.OrderDelivered)
		order.IsReturned = true
		svc := newOrderService(orderRepoWith(order))

		_, err := svc.Return(ctx, order.ID.Hex(), &dto.ReturnOrderRequest{})
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestOrderService_Refund(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelled order refunds", func(t *testing.T) {
		order := orderInStatus(model.OrderCancelled)
		svc := newOrderService(orderRepoWith(order))

		_, err := svc.Refund(ctx, order.ID.Hex(), &dto.RefundOrderRequest{RefundAmount: 50})
		assert.NoError(t, err)
	})

	t.Run("active order rejected", func(t *testing.T) {
		order := orderInStatus(model.OrderProcessing)
		svc := newOrderService(orderRepoWith(order))

		_, err := svc.Refund(ctx, order.ID.Hex(), &dto.RefundOrderRequest{RefundAmount: 50})
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("refund capped at order total", func(t *testing.T) {
		order := orderInStatus(model.OrderReturned)
		svc := newOrderService(orderRepoWith(order))

		_, err := svc.Refund(ctx, order.ID.Hex(), &dto.RefundOrderRequest{RefundAmount: 150})
		assert.ErrorIs(t, err, ErrBadRequest)
	})
}

func TestOrderService_Stats_InvalidatedOnWrite(t *testing.T) {
	ctx := context.Background()
	aggregateCalls := 0
	repo := &fakeRepo[model.Order]{
		aggregateFn: func(_ context.Context, _ mongo.Pipeline, results any) error {
			aggregateCalls++
			*(results.(*[]dto.OrderStats)) = []dto.OrderStats{{TotalOrders: int64(aggregateCalls)}}
			return nil
		},
	}
	svc := newOrderService(repo)

	stats, err := svc.Stats(ctx, &dto.OrderStatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalOrders)

	// Unfiltered stats are the cached default view.
	_, err = svc.Stats(ctx, &dto.OrderStatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, aggregateCalls)

	_, err = svc.Create(ctx, primitive.NewObjectID().Hex(), &dto.CreateOrderRequest{
		Items:         []dto.OrderItemInput{{ProductID: primitive.NewObjectID().Hex(), Name: "Thing", Quantity: 1, Price: 10}},
		TotalAmount:   10,
		TransactionID: "txn-stats",
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	stats, err = svc.Stats(ctx, &dto.OrderStatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, aggregateCalls)
	assert.Equal(t, int64(2), stats.TotalOrders)
}

func TestOrderService_GetByTracking(t *testing.T) {
	ctx := context.Background()

	t.Run("finds order by tracking number", func(t *testing.T) {
		order := orderInStatus(model.OrderShipped)
		order.TrackingNumber = "TRK-123"
		repo := &fakeRepo[model.Order]{
			findOneFn: func(_ context.Context, filter bson.M) (*model.Order, error) {
				assert.Equal(t, "TRK-123", filter["tracking_number"])
				return order, nil
			},
		}
		svc := newOrderService(repo)

		found, err := svc.GetByTracking(ctx, "TRK-123")
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
	})

	t.Run("empty tracking number rejected", func(t *testing.T) {
		svc := newOrderService(&fakeRepo[model.Order]{})

		_, err := svc.GetByTracking(ctx, "")
		assert.ErrorIs(t, err, ErrBadRequest)
	})

	t.Run("unknown tracking number", func(t *testing.T) {
		repo := &fakeRepo[model.Order]{
			findOneFn: func(context.Context, bson.M) (*model.Order, error) { return nil, nil },
		}
		svc := newOrderService(repo)

		_, err := svc.GetByTracking(ctx, "TRK-404")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	req := &dto.CreateOrderRequest{
		Items: []dto.OrderItemInput{
			{ProductID: primitive.NewObjectID().Hex(), Name: "Thing", Quantity: 2, Price: 50},
		},
		TotalAmount:   100,
		TransactionID: "txn-1",
		PaymentMethod: "card",
	}

	t.Run("creates pending order", func(t *testing.T) {
		repo := &fakeRepo[model.Order]{}
		svc := newOrderService(repo)

		order, err := svc.Create(ctx, userID.Hex(), req)
		require.NoError(t, err)
		assert.Equal(t, model.OrderPending, order.OrderStatus)
		assert.Equal(t, userID, order.UserID)
		assert.True(t, order.IsActive)
		assert.Equal(t, 1, repo.insertCalls)
	})

	t.Run("duplicate transaction rejected", func(t *testing.T) {
		repo := &fakeRepo[model.Order]{
			existsFn: func(context.Context, bson.M) (bool, error) { return true, nil },
		}
		svc := newOrderService(repo)

		_, err := svc.Create(ctx, userID.Hex(), req)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("malformed user id rejected", func(t *testing.T) {
		svc := newOrderService(&fakeRepo[model.Order]{})

		_, err := svc.Create(ctx, "nope", req)
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}
