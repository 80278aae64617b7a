package models

type ProductPerformance struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
}

type DailyTrendPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Count   int     `json:"count"`
}

type SalesSummary struct {
	Range             string               `json:"range"`
	TotalRevenue      float64              `json:"total_revenue"`
	TotalProfit       float64              `json:"total_profit"`
	TotalTransactions int                  `json:"total_transactions"`
	AverageSale       float64              `json:"average_sale"`
	TopProducts       []ProductPerformance `json:"top_products"`
	TopCategory       string               `json:"top_category,omitempty"`
	DailyTrend        []DailyTrendPoint    `json:"daily_trend"`
}

type DashboardStats struct {
	TodayRevenue    float64 `json:"today_revenue"`
	TodayProfit     float64 `json:"today_profit"`
	TodaySales      int     `json:"today_sales"`
	LowStockCount   int     `json:"low_stock_count"`
	OutOfStockCount int     `json:"out_of_stock_count"`
	ActiveProducts  int     `json:"active_products"`
	TopProductToday string  `json:"top_product_today,omitempty"`
}
