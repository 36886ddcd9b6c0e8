package service

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/commerce-service/internal/cache"
	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/domain/model"
	"github.com/guttosm/commerce-service/internal/repository"
)

// AnalyticsService aggregates cross-resource reporting views: the
// admin dashboard and revenue/order time series.
type AnalyticsService interface {
	Dashboard(ctx context.Context) (*dto.DashboardStats, error)
	SalesSeries(ctx context.Context, q *dto.TimeSeriesQuery) ([]dto.TimeSeriesPoint, error)
	OrderSeries(ctx context.Context, q *dto.TimeSeriesQuery) ([]dto.OrderSeriesPoint, error)
	TopProducts(ctx context.Context, q *dto.TopProductsQuery) ([]dto.TopProduct, error)
	LowStock(ctx context.Context, q *dto.LowStockQuery) ([]dto.LowStockProduct, error)
	SalesByCategory(ctx context.Context, q *dto.DateRangeQuery) ([]dto.CategorySales, error)
	RevenueComparison(ctx context.Context) (*dto.RevenueComparison, error)
}

type analyticsService struct {
	orders     repository.ResourceRepository[model.Order]
	products   repository.ResourceRepository[model.Product]
	brands     repository.ResourceRepository[model.Brand]
	categories repository.ResourceRepository[model.Category]
	users      repository.ResourceRepository[model.User]
	orderStats OrderService
	store      cache.Store
	ttl        time.Duration
	now        func() time.Time
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(
	repos *repository.Repositories,
	orderStats OrderService,
	store cache.Store,
	ttl time.Duration,
) AnalyticsService {
	return &analyticsService{
		orders:     repos.Orders,
		products:   repos.Products,
		brands:     repos.Brands,
		categories: repos.Categories,
		users:      repos.Users,
		orderStats: orderStats,
		store:      store,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Dashboard returns catalog counts and the order summary. The counts
// run concurrently against their collections.
func (s *analyticsService) Dashboard(ctx context.Context) (*dto.DashboardStats, error) {
	key := cache.BuildKey("analytics:dashboard", nil)
	if hit, ok := cache.GetJSON[dto.DashboardStats](ctx, s.store, key); ok {
		return hit, nil
	}

	var stats dto.DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.TotalProducts, err = s.products.Count(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalBrands, err = s.brands.Count(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalCategories, err = s.categories.Count(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalUsers, err = s.users.Count(gctx, nil)
		return err
	})
	g.Go(func() error {
		orderStats, err := s.orderStats.Stats(gctx, &dto.OrderStatsQuery{})
		if err != nil {
			return err
		}
		stats.Orders = *orderStats
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cache.SetJSON(ctx, s.store, key, &stats, s.ttl)
	return &stats, nil
}

// periodFormat maps a grouping period to a $dateToString format.
func periodFormat(period string) string {
	switch period {
	case dto.PeriodDaily:
		return "%Y-%m-%d"
	case dto.PeriodWeekly:
		return "%Y-W%V"
	case dto.PeriodYearly:
		return "%Y"
	default:
		return "%Y-%m"
	}
}

// SalesSeries buckets revenue and order counts by period. Cancelled
// and returned orders are excluded.
func (s *analyticsService) SalesSeries(ctx context.Context, q *dto.TimeSeriesQuery) ([]dto.TimeSeriesPoint, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	key := cache.BuildKey("analytics:sales", seriesCacheQuery(q))
	if hit, ok := cache.GetJSON[[]dto.TimeSeriesPoint](ctx, s.store, key); ok {
		return *hit, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: activeOrderMatch(q.StartDate, q.EndDate)}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": periodFormat(q.Period),
				"date":   "$created_at",
			}},
			"revenue": bson.M{"$sum": "$total_amount"},
			"orders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	var points []dto.TimeSeriesPoint
	if err := s.orders.Aggregate(ctx, pipeline, &points); err != nil {
		return nil, err
	}
	if points == nil {
		points = []dto.TimeSeriesPoint{}
	}
	cache.SetJSON(ctx, s.store, key, points, s.ttl)
	return points, nil
}

// OrderSeries buckets order counts by period with a per-status
// breakdown. Unlike SalesSeries, cancelled and returned orders count.
func (s *analyticsService) OrderSeries(ctx context.Context, q *dto.TimeSeriesQuery) ([]dto.OrderSeriesPoint, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	key := cache.BuildKey("analytics:orders", seriesCacheQuery(q))
	if hit, ok := cache.GetJSON[[]dto.OrderSeriesPoint](ctx, s.store, key); ok {
		return *hit, nil
	}

	match := bson.M{}
	applyCreatedWindow(match, q.StartDate, q.EndDate)

	group := bson.M{
		"_id": bson.M{"$dateToString": bson.M{
			"format": periodFormat(q.Period),
			"date":   "$created_at",
		}},
		"orders": bson.M{"$sum": 1},
	}
	for _, status := range model.OrderStatuses {
		group[status] = bson.M{"$sum": bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$order_status", status}}, 1, 0,
		}}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: group}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	var points []dto.OrderSeriesPoint
	if err := s.orders.Aggregate(ctx, pipeline, &points); err != nil {
		return nil, err
	}
	if points == nil {
		points = []dto.OrderSeriesPoint{}
	}
	cache.SetJSON(ctx, s.store, key, points, s.ttl)
	return points, nil
}

// applyCreatedWindow narrows match to the given date range. The end
// bound is inclusive of its whole day.
func applyCreatedWindow(match bson.M, start, end *time.Time) {
	created := bson.M{}
	if start != nil {
		created["$gte"] = *start
	}
	if end != nil {
		created["$lt"] = end.AddDate(0, 0, 1)
	}
	if len(created) > 0 {
		match["created_at"] = created
	}
}

// activeOrderMatch filters to orders that count toward revenue:
// cancelled and returned ones are excluded.
func activeOrderMatch(start, end *time.Time) bson.M {
	match := bson.M{
		"order_status": bson.M{"$nin": bson.A{model.OrderCancelled, model.OrderReturned}},
	}
	applyCreatedWindow(match, start, end)
	return match
}

func dateRangeCacheQuery(cacheQuery map[string]any, start, end *time.Time) map[string]any {
	if start != nil {
		cacheQuery["start_date"] = start.Format("2006-01-02")
	}
	if end != nil {
		cacheQuery["end_date"] = end.Format("2006-01-02")
	}
	return cacheQuery
}

func seriesCacheQuery(q *dto.TimeSeriesQuery) map[string]any {
	return dateRangeCacheQuery(map[string]any{"period": q.Period}, q.StartDate, q.EndDate)
}

// TopProducts ranks products by units sold across non-cancelled orders
// in the window, joining product names in.
func (s *analyticsService) TopProducts(ctx context.Context, q *dto.TopProductsQuery) ([]dto.TopProduct, error) {
	q.Normalize()

	key := cache.BuildKey("analytics:top-products",
		dateRangeCacheQuery(map[string]any{"limit": q.Limit}, q.StartDate, q.EndDate))
	if hit, ok := cache.GetJSON[[]dto.TopProduct](ctx, s.store, key); ok {
		return *hit, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: activeOrderMatch(q.StartDate, q.EndDate)}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$items.product_id",
			"total_sold": bson.M{"$sum": "$items.quantity"},
			"revenue":    bson.M{"$sum": bson.M{"$multiply": bson.A{"$items.price", "$items.quantity"}}},
		}}},
		{{Key: "$sort", Value: bson.M{"total_sold": -1}}},
		{{Key: "$limit", Value: q.Limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         model.ResourceProducts,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "product",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$product", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$addFields", Value: bson.M{"name": "$product.name"}}},
	}

	var rows []dto.TopProduct
	if err := s.orders.Aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.TopProduct{}
	}
	cache.SetJSON(ctx, s.store, key, rows, s.ttl)
	return rows, nil
}

// LowStock lists active products at or below the stock threshold,
// lowest first.
func (s *analyticsService) LowStock(ctx context.Context, q *dto.LowStockQuery) ([]dto.LowStockProduct, error) {
	q.Normalize()

	key := cache.BuildKey("analytics:low-stock", map[string]any{"threshold": q.Threshold})
	if hit, ok := cache.GetJSON[[]dto.LowStockProduct](ctx, s.store, key); ok {
		return *hit, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"is_active": true,
			"stock":     bson.M{"$lte": q.Threshold},
		}}},
		{{Key: "$project", Value: bson.M{"name": 1, "sku": 1, "stock": 1}}},
		{{Key: "$sort", Value: bson.M{"stock": 1}}},
		{{Key: "$limit", Value: lowStockLimit}},
	}

	var rows []dto.LowStockProduct
	if err := s.products.Aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.LowStockProduct{}
	}
	cache.SetJSON(ctx, s.store, key, rows, s.ttl)
	return rows, nil
}

const lowStockLimit = 20

// SalesByCategory totals units and revenue per product category across
// non-cancelled orders in the window.
func (s *analyticsService) SalesByCategory(ctx context.Context, q *dto.DateRangeQuery) ([]dto.CategorySales, error) {
	key := cache.BuildKey("analytics:by-category",
		dateRangeCacheQuery(map[string]any{}, q.StartDate, q.EndDate))
	if hit, ok := cache.GetJSON[[]dto.CategorySales](ctx, s.store, key); ok {
		return *hit, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: activeOrderMatch(q.StartDate, q.EndDate)}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         model.ResourceProducts,
			"localField":   "items.product_id",
			"foreignField": "_id",
			"as":           "product",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$product", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$product.category_id",
			"count":       bson.M{"$sum": "$items.quantity"},
			"total_sales": bson.M{"$sum": bson.M{"$multiply": bson.A{"$items.price", "$items.quantity"}}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         model.ResourceCategories,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "category",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$category", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$addFields", Value: bson.M{"category_name": "$category.name"}}},
		{{Key: "$sort", Value: bson.M{"total_sales": -1}}},
	}

	var rows []dto.CategorySales
	if err := s.orders.Aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.CategorySales{}
	}
	cache.SetJSON(ctx, s.store, key, rows, s.ttl)
	return rows, nil
}

// RevenueComparison contrasts the current calendar month and week
// against the previous ones. Weeks start on Sunday.
func (s *analyticsService) RevenueComparison(ctx context.Context) (*dto.RevenueComparison, error) {
	key := cache.BuildKey("analytics:revenue", nil)
	if hit, ok := cache.GetJSON[dto.RevenueComparison](ctx, s.store, key); ok {
		return hit, nil
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := dayStart.AddDate(0, 0, -int(now.Weekday()))
	prevWeekStart := weekStart.AddDate(0, 0, -7)

	var cmp dto.RevenueComparison
	g, gctx := errgroup.WithContext(ctx)
	windows := []struct {
		start, end time.Time
		dst        *dto.RevenueWindow
		current    bool
	}{
		{monthStart, now, &cmp.Monthly, true},
		{prevMonthStart, monthStart, &cmp.Monthly, false},
		{weekStart, now, &cmp.Weekly, true},
		{prevWeekStart, weekStart, &cmp.Weekly, false},
	}
	for _, w := range windows {
		g.Go(func() error {
			total, orders, err := s.windowTotals(gctx, w.start, w.end)
			if err != nil {
				return err
			}
			if w.current {
				w.dst.Current, w.dst.CurrentOrders = total, orders
			} else {
				w.dst.Previous, w.dst.PreviousOrders = total, orders
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cmp.Monthly.Change = percentChange(cmp.Monthly.Current, cmp.Monthly.Previous)
	cmp.Weekly.Change = percentChange(cmp.Weekly.Current, cmp.Weekly.Previous)

	cache.SetJSON(ctx, s.store, key, &cmp, s.ttl)
	return &cmp, nil
}

// windowTotals sums revenue and counts orders in [start, end),
// excluding cancelled and returned orders.
func (s *analyticsService) windowTotals(ctx context.Context, start, end time.Time) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"created_at":   bson.M{"$gte": start, "$lt": end},
			"order_status": bson.M{"$nin": bson.A{model.OrderCancelled, model.OrderReturned}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"total":  bson.M{"$sum": "$total_amount"},
			"orders": bson.M{"$sum": 1},
		}}},
	}

	var rows []struct {
		Total  float64 `bson:"total"`
		Orders int64   `bson:"orders"`
	}
	if err := s.orders.Aggregate(ctx, pipeline, &rows); err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Total, rows[0].Orders, nil
}

// percentChange is the rounded percentage delta from previous to
// current, 0 when there is no baseline.
func percentChange(current, previous float64) int {
	if previous <= 0 {
		return 0
	}
	return int(math.Round((current - previous) / previous * 100))
}
