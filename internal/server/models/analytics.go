package models

import "time"

// Order is one marketplace order line (table orders). It is unique per
// (lk_id, nmid, srid).
type Order struct {
	LkID            int64      `json:"lk_id"`
	SrID            string     `json:"srid"`
	NmID            int64      `json:"nmid"`
	Date            time.Time  `json:"date"`
	LastChangeDate  time.Time  `json:"last_change_date"`
	WarehouseName   string     `json:"warehouse_name"`
	RegionName      string     `json:"region_name"`
	SupplierArticle string     `json:"supplier_article"`
	Barcode         *int64     `json:"barcode,omitempty"`
	Category        string     `json:"category"`
	Subject         string     `json:"subject"`
	Brand           string     `json:"brand"`
	TechSize        string     `json:"tech_size"`
	TotalPrice      float64    `json:"total_price"`
	DiscountPercent int        `json:"discount_percent"`
	FinishedPrice   float64    `json:"finished_price"`
	PriceWithDisc   float64    `json:"price_with_disc"`
	IsCancel        bool       `json:"is_cancel"`
	CancelDate      *time.Time `json:"cancel_date,omitempty"`
}

// Stock is the quantity of one article at one warehouse (table stocks),
// unique per (lk_id, nmid, supplier_article, warehouse_name).
type Stock struct {
	LkID            int64     `json:"lk_id"`
	NmID            int64     `json:"nmid"`
	SupplierArticle string    `json:"supplier_article"`
	WarehouseName   string    `json:"warehouse_name"`
	Barcode         *int64    `json:"barcode,omitempty"`
	Quantity        int64     `json:"quantity"`
	InWayToClient   int64     `json:"in_way_to_client"`
	InWayFromClient int64     `json:"in_way_from_client"`
	QuantityFull    int64     `json:"quantity_full"`
	Category        string    `json:"category"`
	Subject         string    `json:"subject"`
	Brand           string    `json:"brand"`
	TechSize        string    `json:"tech_size"`
	LastChangeDate  time.Time `json:"last_change_date"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// OrdersChart is the /analytics/orders-chart response; Data has one entry
// per day of the range.
type OrdersChart struct {
	Data        []DayCount `json:"data"`
	TotalOrders int64      `json:"total_orders"`
	TotalSales  float64    `json:"total_sales"`
}

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
