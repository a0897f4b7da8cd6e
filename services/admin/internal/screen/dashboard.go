package screen

import (
	"context"

	"golang.org/x/sync/errgroup"

	"store-admin/pkg/dmodel"
	"store-admin/services/admin/internal/dashboard"
)

type DashboardAPI interface {
	ListOrders(ctx context.Context) ([]dmodel.Order, error)
	ListProducts(ctx context.Context) ([]dmodel.Product, error)
}

type DashboardScreen struct {
	state
	api     DashboardAPI
	Summary dashboard.Summary
	// Ready is set once a summary has been built.
	Ready bool
}

func NewDashboard(api DashboardAPI) *DashboardScreen {
	return &DashboardScreen{api: api}
}

// Load fetches orders and products concurrently and rebuilds the summary. The first failing
// fetch cancels the other and its message becomes Error; the previous summary is kept.
func (s *DashboardScreen) Load(ctx context.Context) error {
	return s.load(func() error {
		var (
			orders   []dmodel.Order
			products []dmodel.Product
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			orders, err = s.api.ListOrders(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			products, err = s.api.ListProducts(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		summary, err := dashboard.Build(orders, products)
		if err != nil {
			return err
		}
		s.Summary = summary
		s.Ready = true
		return nil
	})
}
