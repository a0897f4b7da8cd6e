package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-admin/pkg/dmodel"
)

func order(id, customer string, status dmodel.OrderStatus, items ...dmodel.OrderItem) dmodel.Order {
	return dmodel.Order{ID: id, CustomerID: customer, Status: status, Items: items}
}

func item(productID string, qty int, price float64) dmodel.OrderItem {
	return dmodel.OrderItem{ProductID: productID, Quantity: qty, UnitPrice: price}
}

func TestStatusBreakdown(t *testing.T) {
	tests := []struct {
		name   string
		orders []dmodel.Order
		want   StatusCounts
	}{
		{"empty", nil, StatusCounts{}},
		{
			"all known",
			[]dmodel.Order{order("1", "a", "pending"), order("2", "a", "success"), order("3", "b", "success"), order("4", "c", "declined")},
			StatusCounts{Pending: 1, Success: 2, Declined: 1},
		},
		{
			"unknown and differently cased statuses are dropped",
			[]dmodel.Order{order("1", "a", "shipped"), order("2", "a", "Success"), order("3", "a", "pending")},
			StatusCounts{Pending: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusBreakdown(tt.orders)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got.Total(), len(tt.orders))
		})
	}
}

func TestTotalRevenue(t *testing.T) {
	orders := []dmodel.Order{
		order("1", "a", "success", item("p1", 2, 10), item("p2", 1, 15)),
		order("2", "b", "pending", item("p1", 3, 10), item("p3", 2, 20)),
		order("3", "c", "pending"),
	}
	assert.Equal(t, 105.0, TotalRevenue(orders))
	assert.Equal(t, 0.0, TotalRevenue(nil))

	// decimal sum avoids float drift
	cents := []dmodel.Order{order("1", "a", "success", item("p", 1, 0.1), item("q", 1, 0.2))}
	assert.Equal(t, 0.3, TotalRevenue(cents))
}

func TestCustomerSatisfaction(t *testing.T) {
	assert.Equal(t, 0, CustomerSatisfaction(nil))
	assert.Equal(t, 67, CustomerSatisfaction([]dmodel.Order{
		order("1", "a", "success"), order("2", "b", "success"), order("3", "c", "declined"),
	}))
	assert.Equal(t, 100, CustomerSatisfaction([]dmodel.Order{order("1", "a", "success")}))
	assert.Equal(t, 50, CustomerSatisfaction([]dmodel.Order{order("1", "a", "success"), order("2", "a", "bogus")}))
}

func TestDistinctCustomers(t *testing.T) {
	orders := []dmodel.Order{order("1", "a", "success"), order("2", "b", "pending"), order("3", "a", "declined")}
	assert.Equal(t, 2, DistinctCustomers(orders))
	assert.Equal(t, 0, DistinctCustomers(nil))
}

func TestTopProducts(t *testing.T) {
	products := []dmodel.Product{{ID: "p1", Name: "Laptop"}, {ID: "p2", Name: "Monitor"}, {ID: "p3", Name: "Keyboard"}}
	orders := []dmodel.Order{
		order("1", "a", "success", item("p1", 1, 0), item("p2", 5, 0)),
		order("2", "b", "pending", item("p3", 2, 0), item("ghost", 9, 0), item("p1", 1, 0)),
		order("3", "c", "pending", item("p5", 1, 0)),
	}

	got := TopProducts(orders, products, TopN)
	assert.Equal(t, []ProductSales{
		{ProductID: "ghost", Name: "Product ghost", Quantity: 9},
		{ProductID: "p2", Name: "Monitor", Quantity: 5},
		{ProductID: "p1", Name: "Laptop", Quantity: 2},
		{ProductID: "p3", Name: "Keyboard", Quantity: 2},
	}, got)
}

func TestTopProducts_TiesKeepFirstEncounter(t *testing.T) {
	orders := []dmodel.Order{
		order("1", "a", "success", item("c", 3, 0), item("a", 3, 0)),
		order("2", "a", "success", item("b", 3, 0)),
	}

	got := TopProducts(orders, nil, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ProductID)
	assert.Equal(t, "a", got[1].ProductID)
}

func TestTopProducts_ReorderingOrdersKeepsRanking(t *testing.T) {
	products := []dmodel.Product{{ID: "p1", Name: "Laptop"}}
	orders := []dmodel.Order{
		order("1", "a", "success", item("p1", 4, 0), item("p2", 1, 0)),
		order("2", "b", "success", item("p3", 7, 0)),
		order("3", "c", "success", item("p2", 1, 0), item("p4", 3, 0)),
		order("4", "d", "success", item("p5", 10, 0)),
	}
	reversed := make([]dmodel.Order, len(orders))
	for i, o := range orders {
		reversed[len(orders)-1-i] = o
	}

	assert.Equal(t, TopProducts(orders, products, TopN), TopProducts(reversed, products, TopN))
}

func TestMonthlySales(t *testing.T) {
	jan := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 30, 0, 0, time.FixedZone("CET", 3600)) // still January in UTC
	mar := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	orders := []dmodel.Order{
		{ID: "3", OrderDate: mar, Items: []dmodel.OrderItem{item("p", 1, 5)}},
		{ID: "1", OrderDate: jan, Items: []dmodel.OrderItem{item("p", 2, 10)}},
		{ID: "2", OrderDate: feb, Items: []dmodel.OrderItem{item("p", 1, 1.5)}},
	}

	got := MonthlySales(orders)
	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got[0].Month)
	assert.Equal(t, 21.5, got[0].Revenue)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got[1].Month)
	assert.Equal(t, 5.0, got[1].Revenue)
}

func TestMonthlySales_SkipsUndatedOrders(t *testing.T) {
	jan := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	orders := []dmodel.Order{
		{ID: "1", OrderDate: jan, Items: []dmodel.OrderItem{item("p", 1, 10)}},
		{ID: "2", Items: []dmodel.OrderItem{item("p", 1, 99)}},
	}

	got := MonthlySales(orders)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got[0].Month)
	assert.Equal(t, 10.0, got[0].Revenue)

	assert.Empty(t, MonthlySales([]dmodel.Order{{ID: "3", Items: []dmodel.OrderItem{item("p", 1, 1)}}}))
}

func TestOrderRevenue(t *testing.T) {
	o := dmodel.Order{Items: []dmodel.OrderItem{item("a", 1, 0.1), item("b", 1, 0.2)}}
	assert.Equal(t, 0.3, OrderRevenue(o))
	assert.Equal(t, 0.0, OrderRevenue(dmodel.Order{}))
}

func TestBuild(t *testing.T) {
	_, err := Build(nil, []dmodel.Product{})
	assert.ErrorIs(t, err, ErrMalformedInput)
	_, err = Build([]dmodel.Order{}, nil)
	assert.ErrorIs(t, err, ErrMalformedInput)

	empty, err := Build([]dmodel.Order{}, []dmodel.Product{})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.CustomerSatisfaction)
	assert.Empty(t, empty.TopProducts)

	summary, err := Build([]dmodel.Order{
		order("1", "a", "success", item("p1", 2, 10), item("p2", 1, 15)),
		order("2", "b", "pending", item("p1", 3, 10), item("p3", 2, 20)),
		order("3", "a", "declined"),
	}, []dmodel.Product{{ID: "p1", Name: "Laptop"}})
	require.NoError(t, err)
	assert.Equal(t, StatusCounts{Pending: 1, Success: 1, Declined: 1}, summary.Statuses)
	assert.Equal(t, 105.0, summary.TotalRevenue)
	assert.Equal(t, 2, summary.DistinctCustomers)
	assert.Equal(t, 33, summary.CustomerSatisfaction)
	require.Len(t, summary.TopProducts, 3)
	assert.Equal(t, "Laptop", summary.TopProducts[0].Name)
	assert.Equal(t, "Product p3", summary.TopProducts[1].Name)
}
