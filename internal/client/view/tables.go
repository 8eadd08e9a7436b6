package view

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/wbdash/wbdash/internal/client/models"
)

// RenderProducts prints the products table.
func RenderProducts(products []models.Product) string {
	if len(products) == 0 {
		return "Нет данных\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "nmID\tАртикул\tБренд\tНазвание\tЗаказы\tОстаток\tЗаказов/день (7д)")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%.2f\n",
			p.NmID, p.VendorCode, p.Brand, p.Title, p.Orders, p.Quantity, p.OrdersPerDay7d)
	}
	_ = w.Flush()
	return b.String()
}

// RenderOrdersChart prints one bar per day scaled to width characters.
func RenderOrdersChart(chart models.OrdersChart, width int) string {
	var max int64
	for _, p := range chart.Data {
		if p.Count > max {
			max = p.Count
		}
	}

	var b strings.Builder
	for _, p := range chart.Data {
		n := 0
		if max > 0 {
			n = int(p.Count * int64(width) / max)
		}
		fmt.Fprintf(&b, "%s %s %d\n", p.Date, strings.Repeat("█", n), p.Count)
	}
	fmt.Fprintf(&b, "Всего заказов: %d, выручка: %s\n", chart.TotalOrders, FormatRUB(chart.TotalSales))
	return b.String()
}

// RenderAccounts lists linked accounts, marking selected and owned ones.
func RenderAccounts(accounts []models.LinkedAccount, selected func(id int64) bool) string {
	if len(accounts) == 0 {
		return "Нет подключённых кабинетов\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tНазвание\tВладелец")
	for _, a := range accounts {
		mark := "[ ]"
		if selected != nil && selected(a.ID) {
			mark = "[x]"
		}
		owner := "доступ"
		if a.IsOwner {
			owner = "вы"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", mark, a.ID, a.Name, owner)
	}
	_ = w.Flush()
	return b.String()
}

// RenderGrantees lists users with access to an account.
func RenderGrantees(users []models.Grantee) string {
	var b strings.Builder
	for _, u := range users {
		line := fmt.Sprintf("%d  %s (%s)", u.ID, u.Nickname, u.Email)
		if u.IsOwner {
			line += "  владелец"
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
