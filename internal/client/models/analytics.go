package models

// DayCount is one point of the orders chart.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// OrdersChart is /analytics/orders-chart.
type OrdersChart struct {
	Data        []DayCount `json:"data"`
	TotalOrders int64      `json:"total_orders"`
	TotalSales  float64    `json:"total_sales"`
}

// Product is one row of /analytics/products.
type Product struct {
	NmID           int64   `json:"nmid"`
	VendorCode     string  `json:"vendorcode"`
	Brand          string  `json:"brand"`
	Title          string  `json:"title"`
	SubjectName    string  `json:"subjectname"`
	Orders         int64   `json:"orders"`
	Quantity       int64   `json:"quantity"`
	OrdersPerDay7d float64 `json:"orders_per_day_7d"`
}

type Products struct {
	Products []Product `json:"products"`
}

// Stocks is /analytics/stocks.
type Stocks struct {
	TotalStocks int64 `json:"total_stocks"`
}
