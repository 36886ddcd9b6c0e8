package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Time series grouping periods.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// TimeSeriesQuery bounds and groups a sales or order time series.
type TimeSeriesQuery struct {
	Period    string     `form:"period"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// Validate checks the period enum, defaulting to monthly.
func (q *TimeSeriesQuery) Validate() error {
	if q.Period == "" {
		q.Period = PeriodMonthly
	}
	switch q.Period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return nil
	default:
		return &ValidationError{Fields: []FieldError{
			{Path: "period", Message: "must be daily, weekly, monthly or yearly"},
		}}
	}
}

// TimeSeriesPoint is one bucket of a revenue/order time series.
type TimeSeriesPoint struct {
	Period  string  `bson:"_id" json:"period"`
	Revenue float64 `bson:"revenue" json:"revenue"`
	Orders  int64   `bson:"orders" json:"orders"`
}

// DateRangeQuery bounds a report without period bucketing.
type DateRangeQuery struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// TopProductsQuery bounds and sizes the top sellers report.
type TopProductsQuery struct {
	DateRangeQuery
	Limit int `form:"limit"`
}

// Normalize applies the default and cap on the result size.
func (q *TopProductsQuery) Normalize() {
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

// TopProduct is one row of the top sellers report.
type TopProduct struct {
	ProductID primitive.ObjectID `bson:"_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	TotalSold int64              `bson:"total_sold" json:"total_sold"`
	Revenue   float64            `bson:"revenue" json:"revenue"`
}

// LowStockQuery sets the stock threshold for the low stock report.
type LowStockQuery struct {
	Threshold int `form:"threshold"`
}

// Normalize applies the default threshold.
func (q *LowStockQuery) Normalize() {
	if q.Threshold < 1 {
		q.Threshold = 10
	}
}

// LowStockProduct is one row of the low stock report.
type LowStockProduct struct {
	ProductID primitive.ObjectID `bson:"_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	SKU       string             `bson:"sku" json:"sku"`
	Stock     int                `bson:"stock" json:"stock"`
}

// CategorySales is one row of the sales-by-category report. CategoryID
// is nil for order lines whose product no longer resolves.
type CategorySales struct {
	CategoryID   *primitive.ObjectID `bson:"_id" json:"category_id"`
	CategoryName string              `bson:"category_name" json:"category_name"`
	Count        int64               `bson:"count" json:"count"`
	TotalSales   float64             `bson:"total_sales" json:"total_sales"`
}

// RevenueWindow compares one calendar window with the one before it.
// Change is a whole percentage, zero when the previous window is empty.
type RevenueWindow struct {
	Current        float64 `json:"current"`
	Previous       float64 `json:"previous"`
	Change         int     `json:"change"`
	CurrentOrders  int64   `json:"current_orders"`
	PreviousOrders int64   `json:"previous_orders"`
}

// RevenueComparison holds the month-over-month and week-over-week
// revenue windows.
type RevenueComparison struct {
	Monthly RevenueWindow `json:"monthly"`
	Weekly  RevenueWindow `json:"weekly"`
}

// OrderSeriesPoint is one bucket of the order time series with a
// per-status breakdown.
type OrderSeriesPoint struct {
	Period     string `bson:"_id" json:"period"`
	Orders     int64  `bson:"orders" json:"orders"`
	Pending    int64  `bson:"pending" json:"pending"`
	Processing int64  `bson:"processing" json:"processing"`
	Shipped    int64  `bson:"shipped" json:"shipped"`
	Delivered  int64  `bson:"delivered" json:"delivered"`
	Cancelled  int64  `bson:"cancelled" json:"cancelled"`
	Returned   int64  `bson:"returned" json:"returned"`
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalProducts   int64      `json:"total_products"`
	TotalBrands     int64      `json:"total_brands"`
	TotalCategories int64      `json:"total_categories"`
	TotalUsers      int64      `json:"total_users"`
	Orders          OrderStats `json:"orders"`
}
