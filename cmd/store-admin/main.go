// Command store-admin is the operator console for the points store: it
// manages the catalog and the students' orders through the two services.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/MikeMC777/tienda-puntos/internal/admin"
	"github.com/MikeMC777/tienda-puntos/internal/config"
	"github.com/MikeMC777/tienda-puntos/internal/health"
	"github.com/MikeMC777/tienda-puntos/internal/order"
	"github.com/MikeMC777/tienda-puntos/internal/storeclient"
)

const usage = `usage: store-admin [-yes] <command> [flags]

commands:
  catalog                                   list categories and products
  add-product -name N -price P -category ID [-image FILE]
  add-category -name N
  delete-product ID
  delete-category ID                        also deletes its products
  orders [-delivered]                       list pending (or delivered) orders
  deliver ID
  deliver-all
  delete-order ID
  delete-orders [-delivered]                delete every order in the list
  health                                    probe both services
`

func main() {
	log.SetOutput(io.Discard)
	cfg := config.Load()
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, cfg, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// consoleConfirmer asks y/N on the terminal unless -yes was given.
type consoleConfirmer struct {
	yes bool
	in  *bufio.Reader
	out io.Writer
}

func (c *consoleConfirmer) Confirm(prompt string) bool {
	if c.yes {
		return true
	}
	fmt.Fprintf(c.out, "%s [y/N] ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

type consoleNotifier struct{ out io.Writer }

func (n consoleNotifier) Alert(msg string) { fmt.Fprintln(n.out, msg) }

type app struct {
	cfg     config.Config
	stdout  io.Writer
	stderr  io.Writer
	mgmt    *admin.StoreManagement
	orders  *admin.StoreOrders
	checker func(ctx context.Context, addr, service string) (string, error)
}

func run(ctx context.Context, cfg config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("store-admin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	yes := fs.Bool("yes", false, "answer yes to every confirmation")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	client := storeclient.New(cfg.ProductSvcBaseURL, cfg.OrderSvcBaseURL, cfg.PublicBaseURL, cfg.HTTPClientTimeout)
	confirm := &consoleConfirmer{yes: *yes, in: bufio.NewReader(stdin), out: stdout}
	notify := consoleNotifier{out: stderr}
	a := &app{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		mgmt:   admin.NewStoreManagement(client, client, confirm, notify),
		orders: admin.NewStoreOrders(client, client, confirm, notify),
		checker: func(ctx context.Context, addr, service string) (string, error) {
			return health.Check(ctx, addr, service)
		},
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	var err error
	switch cmd {
	case "catalog":
		err = a.catalog(ctx)
	case "add-product":
		err = a.addProduct(ctx, rest)
	case "add-category":
		err = a.addCategory(ctx, rest)
	case "delete-product":
		err = withID(rest, func(id string) error { return a.mgmt.DeleteProduct(ctx, id) })
	case "delete-category":
		err = withID(rest, func(id string) error { return a.mgmt.DeleteCategory(ctx, id) })
	case "orders":
		err = a.listOrders(ctx, rest)
	case "deliver":
		err = withID(rest, func(id string) error { return a.orders.MarkDelivered(ctx, id) })
	case "deliver-all":
		if err = a.orders.LoadOrders(ctx); err == nil {
			err = a.orders.MarkAllDelivered(ctx)
		}
	case "delete-order":
		err = withID(rest, func(id string) error { return a.orders.DeleteOrder(ctx, id) })
	case "delete-orders":
		err = a.deleteOrders(ctx, rest)
	case "health":
		err = a.health(ctx)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		fs.Usage()
		return 2
	}
	return exitCode(err, stderr)
}

// exitCode prints errors the views did not already alert.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var f *admin.Failure
	if !errors.As(err, &f) || errors.Is(err, admin.ErrBusy) {
		fmt.Fprintln(stderr, "error:", err)
	}
	if errors.Is(err, errUsage) {
		return 2
	}
	return 1
}

var errUsage = errors.New("bad usage")

func withID(args []string, fn func(id string) error) error {
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("%w: expected exactly one id", errUsage)
	}
	return fn(args[0])
}

func (a *app) catalog(ctx context.Context) error {
	if err := a.mgmt.LoadCatalog(ctx); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY ID\tNAME")
	for _, c := range a.mgmt.Categories() {
		fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.Name)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "PRODUCT ID\tNAME\tPRICE\tCATEGORY\tIMAGE")
	for _, p := range a.mgmt.Products() {
		img := "-"
		if p.ImageURL != nil {
			img = *p.ImageURL
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Price.String(), p.CategoryID, img)
	}
	return tw.Flush()
}

func (a *app) addProduct(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-product", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	name := fs.String("name", "", "product name")
	price := fs.String("price", "", "price in points")
	category := fs.String("category", "", "category id")
	image := fs.String("image", "", "image file to upload")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	form := admin.ProductForm{Name: *name, Price: *price, CategoryID: *category}
	if *image != "" {
		data, err := os.ReadFile(*image)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		form.Image = &admin.ImageFile{Name: filepath.Base(*image), Data: data}
	}
	return a.mgmt.AddProduct(ctx, form)
}

func (a *app) addCategory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-category", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	name := fs.String("name", "", "category name")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return a.mgmt.AddCategory(ctx, *name)
}

func (a *app) loadTab(ctx context.Context, name string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	delivered := fs.Bool("delivered", false, "use the delivered list")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	a.orders.SetShowDelivered(*delivered)
	return a.orders.LoadOrders(ctx)
}

func (a *app) listOrders(ctx context.Context, args []string) error {
	if err := a.loadTab(ctx, "orders", args); err != nil {
		return err
	}
	printOrders(a.stdout, a.orders.Visible())
	return nil
}

func (a *app) deleteOrders(ctx context.Context, args []string) error {
	if err := a.loadTab(ctx, "delete-orders", args); err != nil {
		return err
	}
	if len(a.orders.Visible()) == 0 {
		fmt.Fprintln(a.stdout, "no orders to delete")
		return nil
	}
	return a.orders.DeleteAllOrders(ctx)
}

func printOrders(w io.Writer, orders []order.Order) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER ID\tSTUDENT\tPRODUCT\tDATE")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.ID, o.StudentName, o.ProductName, o.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}

func (a *app) health(ctx context.Context) error {
	targets := []struct{ name, addr, service string }{
		{"product-service", dialAddr(a.cfg.ProductHealthAddr), "store.product"},
		{"order-service", dialAddr(a.cfg.OrderHealthAddr), "store.order"},
	}
	var errs []error
	for _, t := range targets {
		status, err := a.checker(ctx, t.addr, t.service)
		if err != nil {
			fmt.Fprintf(a.stdout, "%-16s %s  UNREACHABLE\n", t.name, t.addr)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(a.stdout, "%-16s %s  %s\n", t.name, t.addr, status)
		if status != "SERVING" {
			errs = append(errs, fmt.Errorf("%s is %s", t.name, status))
		}
	}
	return errors.Join(errs...)
}

// dialAddr turns a listen address like ":50061" into one a client can dial.
func dialAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
