package dashboard

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"store-admin/pkg/dmodel"
)

// TopN is how many products the dashboard ranks.
const TopN = 4

// ErrMalformedInput is returned by Build when a list is missing altogether.
var ErrMalformedInput = errors.New("dashboard: malformed input")

type StatusCounts struct {
	Pending  int `json:"pending"`
	Success  int `json:"success"`
	Declined int `json:"declined"`
}

// Total is the number of orders with a recognised status.
func (s StatusCounts) Total() int {
	return s.Pending + s.Success + s.Declined
}

type ProductSales struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

type MonthlyTotal struct {
	Month   time.Time `json:"month"`
	Revenue float64   `json:"revenue"`
}

type Summary struct {
	Statuses             StatusCounts   `json:"statuses"`
	TopProducts          []ProductSales `json:"topProducts"`
	TotalRevenue         float64        `json:"totalRevenue"`
	DistinctCustomers    int            `json:"distinctCustomers"`
	CustomerSatisfaction int            `json:"customerSatisfaction"`
	MonthlySales         []MonthlyTotal `json:"monthlySales"`
}

func StatusBreakdown(orders []dmodel.Order) StatusCounts {
	var counts StatusCounts
	for _, o := range orders {
		switch o.Status {
		case dmodel.StatusPending:
			counts.Pending++
		case dmodel.StatusSuccess:
			counts.Success++
		case dmodel.StatusDeclined:
			counts.Declined++
		}
	}
	return counts
}

// TopProducts ranks products by quantity ordered and keeps the first n. Names come from
// products; ids without a match are labelled "Product <id>".
func TopProducts(orders []dmodel.Order, products []dmodel.Product, n int) []ProductSales {
	totals := make(map[string]int)
	var seen []string
	for _, o := range orders {
		for _, item := range o.Items {
			if _, ok := totals[item.ProductID]; !ok {
				seen = append(seen, item.ProductID)
			}
			totals[item.ProductID] += item.Quantity
		}
	}

	ranked := make([]ProductSales, 0, len(seen))
	for _, id := range seen {
		ranked = append(ranked, ProductSales{ProductID: id, Quantity: totals[id]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Quantity > ranked[j].Quantity
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	for i := range ranked {
		ranked[i].Name = Label(names, ranked[i].ProductID)
	}
	return ranked
}

// Label resolves a product name, falling back to "Product <id>".
func Label(names map[string]string, productID string) string {
	if name, ok := names[productID]; ok && name != "" {
		return name
	}
	return "Product " + productID
}

func orderRevenue(o dmodel.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// OrderRevenue is the value of one order, unitPrice x quantity over its items.
func OrderRevenue(o dmodel.Order) float64 {
	return orderRevenue(o).InexactFloat64()
}

// TotalRevenue is the sum over all items of unitPrice x quantity.
func TotalRevenue(orders []dmodel.Order) float64 {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(orderRevenue(o))
	}
	return sum.InexactFloat64()
}

func DistinctCustomers(orders []dmodel.Order) int {
	customers := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		customers[o.CustomerID] = struct{}{}
	}
	return len(customers)
}

// CustomerSatisfaction is the rounded percentage of successful orders, 0 without orders.
func CustomerSatisfaction(orders []dmodel.Order) int {
	if len(orders) == 0 {
		return 0
	}
	success := 0
	for _, o := range orders {
		if o.Status == dmodel.StatusSuccess {
			success++
		}
	}
	return int(math.Round(float64(success) / float64(len(orders)) * 100))
}

// MonthlySales groups revenue by the UTC calendar month of each order, oldest first.
// Orders without a date belong to no month and are left out.
func MonthlySales(orders []dmodel.Order) []MonthlyTotal {
	byMonth := make(map[time.Time]decimal.Decimal)
	for _, o := range orders {
		if o.OrderDate.IsZero() {
			continue
		}
		d := o.OrderDate.UTC()
		month := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		byMonth[month] = byMonth[month].Add(orderRevenue(o))
	}

	out := make([]MonthlyTotal, 0, len(byMonth))
	for month, revenue := range byMonth {
		out = append(out, MonthlyTotal{Month: month, Revenue: revenue.InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month.Before(out[j].Month)
	})
	return out
}

// Build computes every dashboard figure. A nil list means the caller never obtained it and
// is reported as ErrMalformedInput; empty lists are fine.
func Build(orders []dmodel.Order, products []dmodel.Product) (Summary, error) {
	if orders == nil || products == nil {
		return Summary{}, ErrMalformedInput
	}

	return Summary{
		Statuses:             StatusBreakdown(orders),
		TopProducts:          TopProducts(orders, products, TopN),
		TotalRevenue:         TotalRevenue(orders),
		DistinctCustomers:    DistinctCustomers(orders),
		CustomerSatisfaction: CustomerSatisfaction(orders),
		MonthlySales:         MonthlySales(orders),
	}, nil
}
