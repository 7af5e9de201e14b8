package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/optimizer"
	"github.com/aims-retail/aims-backend/internal/repository"
	"github.com/shopspring/decimal"
)

// stockoutHorizonCap marks items with no measurable consumption.
const stockoutHorizonCap = 999

// StockPrediction projects where one SKU's stock is heading based on
// its recorded sales.
type StockPrediction struct {
	SKU               string `json:"sku"`
	CurrentStock      int    `json:"current_stock"`
	PredictedStock    int    `json:"predicted_stock"`
	DaysUntilStockout int    `json:"days_until_stockout"`
	Trend             string `json:"trend"`
	RecommendedAction string `json:"recommended_action"`
}

// DemandForecast is the projected consumption for one SKU over the
// coming week and month.
type DemandForecast struct {
	SKU                 string                    `json:"sku"`
	AvgDailyConsumption float64                   `json:"avg_daily_consumption"`
	NextWeekDemand      int                       `json:"next_week_demand"`
	NextMonthDemand     int                       `json:"next_month_demand"`
	Volatility          string                    `json:"volatility"`
	Daily               []optimizer.DailyForecast `json:"daily"`
}

// AnalyticsSummary aggregates inventory health into dashboard numbers.
type AnalyticsSummary struct {
	TotalItems        int                   `json:"total_items"`
	TotalValue        decimal.Decimal       `json:"total_value"`
	StockoutRisk      int                   `json:"stockout_risk"`
	OverstockCount    int                   `json:"overstock_count"`
	OptimizationScore int                   `json:"optimization_score"`
	StatusCounts      []domain.StockSummary `json:"status_counts"`
}

// AnalyticsReport is the full analytics payload.
type AnalyticsReport struct {
	Summary     AnalyticsSummary  `json:"summary"`
	Predictions []StockPrediction `json:"predictions"`
	Forecasts   []DemandForecast  `json:"forecasts"`
	Insights    []string          `json:"insights"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// AnalyticsService builds stock predictions from sales history and
// demand forecasts from the optimizer's daily projection.
type AnalyticsService struct {
	inventory repository.InventoryRepository
	sales     repository.SalesRepository
	now       func() time.Time
}

func NewAnalyticsService(inventory repository.InventoryRepository, sales repository.SalesRepository) *AnalyticsService {
	return &AnalyticsService{
		inventory: inventory,
		sales:     sales,
		now:       time.Now,
	}
}

// Overview assembles the analytics report for the whole inventory.
func (s *AnalyticsService) Overview(ctx context.Context) (*AnalyticsReport, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	report := &AnalyticsReport{
		Predictions: make([]StockPrediction, 0, len(items)),
		Forecasts:   make([]DemandForecast, 0, len(items)),
		GeneratedAt: now,
	}

	totalValue := decimal.Zero
	totalRisk := 0.0
	overstock := 0
	stockoutSoon := 0
	highVolatility := 0

	for _, item := range items {
		sold30, err := s.sales.TotalSoldSince(ctx, item.SKU, now.AddDate(0, 0, -30))
		if err != nil {
			return nil, fmt.Errorf("error loading 30-day sales for %s: %w", item.SKU, err)
		}
		sold7, err := s.sales.TotalSoldSince(ctx, item.SKU, now.AddDate(0, 0, -7))
		if err != nil {
			return nil, fmt.Errorf("error loading 7-day sales for %s: %w", item.SKU, err)
		}

		prediction := predictStock(item, float64(sold30)/30, float64(sold7)/7)
		if prediction.DaysUntilStockout < 7 {
			stockoutSoon++
		}
		report.Predictions = append(report.Predictions, prediction)

		forecast := forecastDemand(item, now)
		if forecast.Volatility == "high" {
			highVolatility++
		}
		report.Forecasts = append(report.Forecasts, forecast)

		totalValue = totalValue.Add(item.Price.Mul(decimal.NewFromInt(int64(item.CurrentStock))))
		if item.OptimalStock > 0 {
			ratio := float64(item.CurrentStock) / float64(item.OptimalStock)
			switch {
			case ratio < 0.3:
				totalRisk += 30
			case ratio < 0.5:
				totalRisk += 15
			case ratio < 0.7:
				totalRisk += 5
			}
			if ratio > 1.5 {
				overstock++
			}
		}
	}

	avgRisk := 0
	if len(items) > 0 {
		avgRisk = int(math.Round(totalRisk / float64(len(items))))
	}
	score := 100 - avgRisk - overstock*10
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	report.Summary = AnalyticsSummary{
		TotalItems:        len(items),
		TotalValue:        totalValue,
		StockoutRisk:      avgRisk,
		OverstockCount:    overstock,
		OptimizationScore: score,
		StatusCounts:      countStatuses(items, now),
	}
	report.Insights = buildInsights(stockoutSoon, overstock, highVolatility, score)

	return report, nil
}

// predictStock extrapolates the 30-day consumption rate and compares
// it against the last week to label the trend.
func predictStock(item domain.InventoryItem, avgDaily, avgRecent float64) StockPrediction {
	days := stockoutHorizonCap
	if avgDaily > 0 {
		days = int(float64(item.CurrentStock) / avgDaily)
		if days > stockoutHorizonCap {
			days = stockoutHorizonCap
		}
	}

	predicted := item.CurrentStock - int(math.Round(avgDaily*7))
	if predicted < 0 {
		predicted = 0
	}

	trend := "stable"
	switch {
	case avgRecent > avgDaily*1.1:
		trend = "increasing"
	case avgRecent < avgDaily*0.9:
		trend = "decreasing"
	}

	deficit := item.OptimalStock - item.CurrentStock
	var action string
	switch {
	case days < 7:
		action = fmt.Sprintf("URGENT: Order %d units immediately", deficit)
	case days < 14:
		action = fmt.Sprintf("Plan to order %d units within 5 days", deficit)
	case float64(item.CurrentStock) > float64(item.OptimalStock)*1.5:
		action = "Reduce ordering - overstock detected"
	default:
		action = "Stock levels optimal - maintain current rate"
	}

	return StockPrediction{
		SKU:               item.SKU,
		CurrentStock:      item.CurrentStock,
		PredictedStock:    predicted,
		DaysUntilStockout: days,
		Trend:             trend,
		RecommendedAction: action,
	}
}

// forecastDemand rolls the optimizer's 7-day projection into weekly and
// monthly demand, labelling volatility by the coefficient of variation
// across the projected days.
func forecastDemand(item domain.InventoryItem, now time.Time) DemandForecast {
	series := optimizer.Forecast(item, now, 7)

	weekTotal := 0
	for _, day := range series {
		weekTotal += day.Units
	}

	mean := 0.0
	if len(series) > 0 {
		mean = float64(weekTotal) / float64(len(series))
	}

	variance := 0.0
	for _, day := range series {
		diff := float64(day.Units) - mean
		variance += diff * diff
	}
	if len(series) > 0 {
		variance /= float64(len(series))
	}

	volatility := "low"
	if mean > 0 {
		switch cv := math.Sqrt(variance) / mean; {
		case cv >= 0.5:
			volatility = "high"
		case cv >= 0.2:
			volatility = "medium"
		}
	}

	return DemandForecast{
		SKU:                 item.SKU,
		AvgDailyConsumption: math.Round(mean*10) / 10,
		NextWeekDemand:      weekTotal,
		NextMonthDemand:     int(math.Round(mean * 30)),
		Volatility:          volatility,
		Daily:               series,
	}
}

// countStatuses tallies items per optimizer status band.
func countStatuses(items []domain.InventoryItem, now time.Time) []domain.StockSummary {
	counts := make(map[string]int, len(items))
	for _, result := range optimizer.OptimizeBatch(items, now) {
		counts[result.Result.Status]++
	}

	order := []string{
		optimizer.StatusCritical,
		optimizer.StatusLow,
		optimizer.StatusWarning,
		optimizer.StatusOptimal,
		optimizer.StatusExcess,
	}
	summaries := make([]domain.StockSummary, 0, len(order))
	for _, status := range order {
		summaries = append(summaries, domain.StockSummary{Status: status, Count: counts[status]})
	}

	return summaries
}

func buildInsights(stockoutSoon, overstock, highVolatility, score int) []string {
	var insights []string

	if stockoutSoon > 0 {
		insights = append(insights, fmt.Sprintf("%d item(s) approaching stockout within 7 days", stockoutSoon))
	}
	if overstock > 0 {
		insights = append(insights, fmt.Sprintf("%d item(s) overstocked - consider reducing orders", overstock))
	}

	switch {
	case score >= 90:
		insights = append(insights, fmt.Sprintf("Excellent inventory optimization (%d/100)", score))
	case score >= 70:
		insights = append(insights, fmt.Sprintf("Good inventory health (%d/100)", score))
	default:
		insights = append(insights, fmt.Sprintf("Optimization needed (%d/100)", score))
	}

	if highVolatility > 0 {
		insights = append(insights, fmt.Sprintf("%d item(s) with high demand volatility - monitor closely", highVolatility))
	}

	return insights
}
