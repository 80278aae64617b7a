package service

import (
	"context"
	"sort"
	"time"

	"github.com/The-Charles-Factor/pos22/internal/errors"
	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/The-Charles-Factor/pos22/internal/pricing"
	repository "github.com/The-Charles-Factor/pos22/internal/repositories"
)

const topProductLimit = 5

// ReportService aggregates the sales log into summaries for the analytics
// views. Everything is recomputed from stored sales on each request.
type ReportService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

func NewReportService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) *ReportService {
	return &ReportService{saleRepo: saleRepo, productRepo: productRepo}
}

func rangeStart(rangeName string, now time.Time) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch rangeName {
	case "", "today":
		return today, nil
	case "7days":
		return today.AddDate(0, 0, -6), nil
	case "30days":
		return today.AddDate(0, 0, -29), nil
	case "alltime":
		return time.Time{}, nil
	default:
		return time.Time{}, errors.ValidationError("Unknown report range, expected today, 7days, 30days or alltime")
	}
}

// Summary builds the sales summary for a named range.
func (s *ReportService) Summary(ctx context.Context, rangeName string) (*models.SalesSummary, error) {
	now := time.Now().UTC()

	since, err := rangeStart(rangeName, now)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.ListSalesSince(ctx, since)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch sales for summary").WithError(err)
	}

	if rangeName == "" {
		rangeName = "today"
	}

	summary := &models.SalesSummary{
		Range:       rangeName,
		TopProducts: []models.ProductPerformance{},
		DailyTrend:  s.dailyTrend(sales, now),
	}

	byProduct := map[string]*models.ProductPerformance{}

	for _, sale := range sales {
		summary.TotalRevenue += sale.TotalAmount
		summary.TotalProfit += sale.TotalProfit
		summary.TotalTransactions++

		for _, item := range sale.Items {
			perf, ok := byProduct[item.ProductID]
			if !ok {
				perf = &models.ProductPerformance{ProductID: item.ProductID, Name: item.Name}
				byProduct[item.ProductID] = perf
			}

			perf.Quantity += item.Quantity
			perf.Revenue = pricing.RoundCents(perf.Revenue + item.TotalPrice)
			perf.Profit = pricing.RoundCents(perf.Profit + item.Profit)
		}
	}

	summary.TotalRevenue = pricing.RoundCents(summary.TotalRevenue)
	summary.TotalProfit = pricing.RoundCents(summary.TotalProfit)

	if summary.TotalTransactions > 0 {
		summary.AverageSale = pricing.RoundCents(summary.TotalRevenue / float64(summary.TotalTransactions))
	}

	perfs := make([]models.ProductPerformance, 0, len(byProduct))
	for _, p := range byProduct {
		perfs = append(perfs, *p)
	}

	sort.Slice(perfs, func(i, j int) bool {
		if perfs[i].Quantity != perfs[j].Quantity {
			return perfs[i].Quantity > perfs[j].Quantity
		}

		return perfs[i].Revenue > perfs[j].Revenue
	})

	if len(perfs) > topProductLimit {
		perfs = perfs[:topProductLimit]
	}

	summary.TopProducts = perfs
	summary.TopCategory = s.topCategory(ctx, byProduct)

	return summary, nil
}

// topCategory maps sold products back to their catalog categories and picks
// the one with the highest unit volume. Products deleted since the sale are
// ignored.
func (s *ReportService) topCategory(ctx context.Context, byProduct map[string]*models.ProductPerformance) string {
	volume := map[string]int{}

	for id, perf := range byProduct {
		product, err := s.productRepo.GetProductByID(ctx, id)
		if err != nil {
			continue
		}

		volume[product.Category] += perf.Quantity
	}

	var (
		top  string
		best int
	)

	for category, qty := range volume {
		if qty > best || (qty == best && category < top) {
			top = category
			best = qty
		}
	}

	return top
}

// dailyTrend buckets the sales of the last seven days by calendar date,
// oldest day first. Days without sales appear with zeroes.
func (s *ReportService) dailyTrend(sales []*models.Sale, now time.Time) []models.DailyTrendPoint {
	const days = 7

	points := make([]models.DailyTrendPoint, days)
	index := map[string]int{}

	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i-days+1).Format("2006-01-02")
		points[i] = models.DailyTrendPoint{Date: date}
		index[date] = i
	}

	for _, sale := range sales {
		i, ok := index[sale.CreatedAt.Format("2006-01-02")]
		if !ok {
			continue
		}

		points[i].Revenue = pricing.RoundCents(points[i].Revenue + sale.TotalAmount)
		points[i].Profit = pricing.RoundCents(points[i].Profit + sale.TotalProfit)
		points[i].Count++
	}

	return points
}

// Dashboard returns the stat cards for the landing view.
func (s *ReportService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sales, err := s.saleRepo.ListSalesSince(ctx, today)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch today's sales").WithError(err)
	}

	stats := &models.DashboardStats{}
	byProduct := map[string]int{}
	names := map[string]string{}

	for _, sale := range sales {
		stats.TodayRevenue += sale.TotalAmount
		stats.TodayProfit += sale.TotalProfit
		stats.TodaySales++

		for _, item := range sale.Items {
			byProduct[item.ProductID] += item.Quantity
			names[item.ProductID] = item.Name
		}
	}

	stats.TodayRevenue = pricing.RoundCents(stats.TodayRevenue)
	stats.TodayProfit = pricing.RoundCents(stats.TodayProfit)

	best := 0

	for id, qty := range byProduct {
		if qty > best {
			best = qty
			stats.TopProductToday = names[id]
		}
	}

	low, out, active, err := s.productRepo.StockCounts(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch stock counts").WithError(err)
	}

	stats.LowStockCount = low
	stats.OutOfStockCount = out
	stats.ActiveProducts = active

	return stats, nil
}
