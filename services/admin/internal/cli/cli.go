package admin_cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/davecgh/go-spew/spew"

	"store-admin/pkg/consul"
	"store-admin/pkg/dmodel"
	"store-admin/pkg/validation"
	admin_config "store-admin/services/admin/internal/config"
	"store-admin/services/admin/internal/dashboard"
	"store-admin/services/admin/internal/gateway"
	"store-admin/services/admin/internal/screen"
)

// ErrUsage is returned for unknown commands and wrong arguments.
var ErrUsage = errors.New("usage")

const usage = `Usage: store-admin [-config file] [-env development|production] [-dump] <command> [args]

Commands:
  dashboard                                  order, revenue and product figures
  products | suppliers | orders | inventory  list records
  add-product <name> <price> <supplierId> [image]
  add-supplier <name> <email> [phone] [address]
  set-stock <productId> <quantity> [location]
  delete-product <id>
  delete-supplier <id>
  delete-order <id>
  signup <name> <email> <password> <confirm>
  login <email> <password>
  status
`

type command struct {
	args int
	run  func(a *app, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"dashboard":       {0, (*app).dashboard},
	"products":        {0, (*app).products},
	"suppliers":       {0, (*app).suppliers},
	"orders":          {0, (*app).orders},
	"inventory":       {0, (*app).inventory},
	"add-product":     {3, (*app).addProduct},
	"add-supplier":    {2, (*app).addSupplier},
	"set-stock":       {2, (*app).setStock},
	"delete-product":  {1, (*app).deleteProduct},
	"delete-supplier": {1, (*app).deleteSupplier},
	"delete-order":    {1, (*app).deleteOrder},
	"signup":          {4, (*app).signup},
	"login":           {2, (*app).login},
	"status":          {0, (*app).status},
}

type app struct {
	client   *gateway.Client
	out      io.Writer
	dump     bool
	lowStock int
}

// Run parses args (without the program name), resolves the API and executes one command.
func Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("store-admin", flag.ContinueOnError)
	fs.SetOutput(stdout)
	configPath := fs.String("config", "", "YAML config file")
	env := fs.String("env", "", "development or production")
	dump := fs.Bool("dump", false, "dump the raw records after the listing")
	fs.Usage = func() { fmt.Fprint(stdout, usage) }
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return ErrUsage
	}
	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok || len(rest) < cmd.args {
		fs.Usage()
		return ErrUsage
	}

	cfg, err := admin_config.Load(*configPath, *env)
	if err != nil {
		return err
	}

	var discoverer admin_config.Discoverer
	if cfg.NeedsDiscovery() {
		registry, err := consul.NewClient(consul.Config{Address: cfg.ConsulHost})
		if err != nil {
			return err
		}
		discoverer = registry
	}
	baseURL, err := cfg.BaseURL(discoverer)
	if err != nil {
		return err
	}

	client, err := gateway.New(baseURL, gateway.WithLogger(logger))
	if err != nil {
		return err
	}
	a := &app{client: client, out: stdout, dump: *dump, lowStock: cfg.LowStockThreshold}

	if cfg.HasCredentials() && name != "login" && name != "signup" {
		auth := screen.NewAuth(client)
		if err := auth.Login(ctx, cfg.Email, cfg.Password); err != nil {
			return screenError(auth.FieldErrors, auth.Error, err)
		}
	}

	return cmd.run(a, ctx, rest)
}

// screenError prefers field errors, then the screen's message.
func screenError(fe validation.FieldErrors, msg string, err error) error {
	if len(fe) > 0 {
		return fe
	}
	if msg != "" {
		return errors.New(msg)
	}
	return err
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *app) dumpRecords(v any) {
	if a.dump {
		spew.Fdump(a.out, v)
	}
}

func (a *app) dashboard(ctx context.Context, _ []string) error {
	s := screen.NewDashboard(a.client)
	if err := s.Load(ctx); err != nil {
		return screenError(nil, s.Error, err)
	}
	printSummary(a.out, s.Summary)
	a.dumpRecords(s.Summary)
	return nil
}

func printSummary(out io.Writer, sum dashboard.Summary) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Orders\tpending %d\tsuccess %d\tdeclined %d\n", sum.Statuses.Pending, sum.Statuses.Success, sum.Statuses.Declined)
	fmt.Fprintf(tw, "Total revenue\t%.2f\n", sum.TotalRevenue)
	fmt.Fprintf(tw, "Customers\t%d\n", sum.DistinctCustomers)
	fmt.Fprintf(tw, "Satisfaction\t%d%%\n", sum.CustomerSatisfaction)
	tw.Flush()

	fmt.Fprintln(out, "\nTop products")
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, p := range sum.TopProducts {
		fmt.Fprintf(tw, "  %d.\t%s\t%d\n", i+1, p.Name, p.Quantity)
	}
	tw.Flush()

	if len(sum.MonthlySales) > 0 {
		fmt.Fprintln(out, "\nMonthly sales")
		tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, m := range sum.MonthlySales {
			fmt.Fprintf(tw, "  %s\t%.2f\n", m.Month.Format("2006-01"), m.Revenue)
		}
		tw.Flush()
	}
}

func (a *app) products(ctx context.Context, _ []string) error {
	s := screen.NewProducts(a.client)
	if err := s.Load(ctx); err != nil {
		return screenError(nil, s.Error, err)
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSUPPLIER\tIMAGE")
	for _, p := range s.Products {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\n", p.ID, p.Name, p.Price, p.SupplierID, p.ImageURL)
	}
	tw.Flush()
	a.dumpRecords(s.Products)
	return nil
}

func (a *app) suppliers(ctx context.Context, _ []string) error {
	s := screen.NewSuppliers(a.client)
	if err := s.Load(ctx); err != nil {
		return screenError(nil, s.Error, err)
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tADDRESS")
	for _, sup := range s.Suppliers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", sup.ID, sup.Name, sup.Email, sup.Phone, sup.Address)
	}
	tw.Flush()
	a.dumpRecords(s.Suppliers)
	return nil
}

func (a *app) orders(ctx context.Context, _ []string) error {
	s := screen.NewOrders(a.client)
	if err := s.Load(ctx); err != nil {
		return screenError(nil, s.Error, err)
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tCUSTOMER\tSTATUS\tITEMS\tTOTAL\tDATE")
	for _, o := range s.Orders {
		customer := o.CustomerName
		if customer == "" {
			customer = o.CustomerID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\t%s\n", o.ID, customer, o.Status, len(o.Items), screen.OrderTotal(o), formatDate(o.OrderDate))
	}
	tw.Flush()
	a.dumpRecords(s.Orders)
	return nil
}

func (a *app) inventory(ctx context.Context, _ []string) error {
	s := screen.NewInventory(a.client)
	if err := s.Load(ctx); err != nil {
		return screenError(nil, s.Error, err)
	}
	low := make(map[string]bool)
	for _, item := range s.LowStock(a.lowStock) {
		low[item.ProductID] = true
	}

	items := append([]dmodel.InventoryItem(nil), s.Items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	tw := a.table()
	fmt.Fprintln(tw, "PRODUCT\tQUANTITY\tLOCATION\tUPDATED\t")
	for _, item := range items {
		mark := ""
		if low[item.ProductID] {
			mark = "LOW"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", item.ProductID, item.Quantity, item.Location, formatDate(item.LastUpdated), mark)
	}
	tw.Flush()
	a.dumpRecords(s.Items)
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func (a *app) addProduct(ctx context.Context, args []string) error {
	price, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("price must be a number: %w", err)
	}
	product := dmodel.Product{Name: args[0], Price: price, SupplierID: args[2]}

	var image *gateway.Attachment
	if len(args) > 3 {
		f, err := os.Open(args[3])
		if err != nil {
			return err
		}
		defer f.Close()
		image = &gateway.Attachment{
			Filename:    filepath.Base(args[3]),
			ContentType: mime.TypeByExtension(filepath.Ext(args[3])),
			Body:        f,
		}
	}

	s := screen.NewProducts(a.client)
	if err := s.Create(ctx, product, image); err != nil {
		return screenError(s.FieldErrors, s.Error, err)
	}
	fmt.Fprintf(a.out, "Product %q created, %d products\n", product.Name, len(s.Products))
	return nil
}

func (a *app) addSupplier(ctx context.Context, args []string) error {
	supplier := dmodel.Supplier{Name: args[0], Email: args[1]}
	if len(args) > 2 {
		supplier.Phone = args[2]
	}
	if len(args) > 3 {
		supplier.Address = strings.Join(args[3:], " ")
	}

	s := screen.NewSuppliers(a.client)
	if err := s.Create(ctx, supplier); err != nil {
		return screenError(s.FieldErrors, s.Error, err)
	}
	fmt.Fprintf(a.out, "Supplier %q created, %d suppliers\n", supplier.Name, len(s.Suppliers))
	return nil
}

func (a *app) setStock(ctx context.Context, args []string) error {
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("quantity must be an integer: %w", err)
	}
	update := dmodel.InventoryUpdate{Quantity: quantity}
	if len(args) > 2 {
		update.Location = strings.Join(args[2:], " ")
	}

	s := screen.NewInventory(a.client)
	if err := s.Update(ctx, args[0], update); err != nil {
		return screenError(s.FieldErrors, s.Error, err)
	}
	fmt.Fprintf(a.out, "Stock of %s set to %d\n", args[0], quantity)
	return nil
}

func (a *app) deleteProduct(ctx context.Context, args []string) error {
	s := screen.NewProducts(a.client)
	if err := s.Delete(ctx, args[0]); err != nil {
		return screenError(s.FieldErrors, s.Error, err)
	}
	fmt.Fprintf(a.out, "Product %s deleted, %d left\n", args[0], len(s.Products))
	return nil
}

func (a *app) deleteSupplier(ctx context.Context, args []string) error {
	s := screen.NewSuppliers(a.client)
	if err := s.Delete(ctx, args[0]); err != nil {
		return screenError(s.FieldErrors, s.Error, err)
	}
	fmt.Fprintf(a.out, "Supplier %s deleted, %d left\n", args[0], len(s.Suppliers))
	return nil
}

func (a *app) deleteOrder(ctx context.Context, args []string) error {
	s := screen.NewOrders(a.client)
	if err := s.Delete(ctx, args[0]); err != nil {
		return screenError(s.FieldErrors, s.Error, err)
	}
	fmt.Fprintf(a.out, "Order %s deleted, %d left\n", args[0], len(s.Orders))
	return nil
}

func (a *app) signup(ctx context.Context, args []string) error {
	s := screen.NewAuth(a.client)
	form := screen.SignupForm{Name: args[0], Email: args[1], Password: args[2], ConfirmPassword: args[3]}
	if err := s.Signup(ctx, form); err != nil {
		return screenError(s.FieldErrors, s.Error, err)
	}
	fmt.Fprintln(a.out, s.Notice)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	s := screen.NewAuth(a.client)
	if err := s.Login(ctx, args[0], args[1]); err != nil {
		return screenError(s.FieldErrors, s.Error, err)
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", s.User.Email, s.User.Role)
	return nil
}

func (a *app) status(ctx context.Context, _ []string) error {
	s := screen.NewAuth(a.client)
	if err := s.Refresh(ctx); err != nil {
		return screenError(nil, s.Error, err)
	}
	if !s.Authenticated || s.User == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", s.User.Email, s.User.Role)
	return nil
}
