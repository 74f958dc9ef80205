package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Darkingtail/mall4r/internal/adminclient"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func (rt *runtime) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "login",
			Usage:  "log in and save the session",
			Action: rt.login,
		},
		{
			Name:   "logout",
			Usage:  "revoke the session",
			Action: rt.logout,
		},
		{
			Name:   "refresh",
			Usage:  "rotate the saved token pair",
			Action: rt.refresh,
		},
		{
			Name:   "whoami",
			Usage:  "show the logged in operator",
			Action: rt.whoami,
		},
		{
			Name:   "nav",
			Usage:  "show the operator's pages and permissions",
			Action: rt.nav,
		},
		{
			Name:  "password",
			Usage: "change the operator's password",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "old", Required: true},
				&cli.StringFlag{Name: "new", Required: true},
			},
			Action: rt.changePassword,
		},
		{
			Name:      "list",
			Usage:     "list one page of a resource",
			ArgsUsage: "<resource>",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "page", Value: 1},
				&cli.IntFlag{Name: "size", Value: adminclient.DefaultPageSize},
				&cli.StringSliceFlag{Name: "filter", Aliases: []string{"f"}, Usage: "filter as key=value, repeatable"},
			},
			Action: rt.list,
		},
		{
			Name:      "get",
			Usage:     "show one record",
			ArgsUsage: "<resource> <id>",
			Action:    rt.get,
		},
		{
			Name:      "delete",
			Usage:     "delete records",
			ArgsUsage: "<resource> <id>...",
			Action:    rt.remove,
		},
		{
			Name:      "area-path",
			Usage:     "show the full name of an area",
			ArgsUsage: "<areaId>",
			Action:    rt.areaPath,
		},
		{
			Name:   "couriers",
			Usage:  "list the delivery companies",
			Action: rt.couriers,
		},
		{
			Name:  "ship",
			Usage: "ship an order",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "order", Required: true, Usage: "order number"},
				&cli.Int64Flag{Name: "dvy-id", Required: true, Usage: "delivery company id"},
				&cli.StringFlag{Name: "flow-id", Required: true, Usage: "tracking number"},
			},
			Action: rt.ship,
		},
		{
			Name:  "fee",
			Usage: "estimate the freight of a shipment",
			Flags: []cli.Flag{
				&cli.Int64Flag{Name: "transport", Required: true},
				&cli.Int64Flag{Name: "city", Required: true},
				&cli.StringFlag{Name: "count", Value: "1", Usage: "pieces or weight"},
				&cli.StringFlag{Name: "amount", Value: "0", Usage: "order amount"},
			},
			Action: rt.fee,
		},
		{
			Name:      "prod-status",
			Usage:     "put a product on (1) or off (0) sale",
			ArgsUsage: "<prodId> <status>",
			Action:    rt.prodStatus,
		},
		{
			Name:  "reply",
			Usage: "answer and moderate a review",
			Flags: []cli.Flag{
				&cli.Int64Flag{Name: "id", Required: true},
				&cli.StringFlag{Name: "content"},
				&cli.IntFlag{Name: "status", Value: 1, Usage: "-1 rejected, 0 pending, 1 approved"},
			},
			Action: rt.reply,
		},
		{
			Name:      "upload",
			Usage:     "upload an image and print its object key",
			ArgsUsage: "<file>",
			Action:    rt.upload,
		},
		seedCommand(rt),
	}
}

func (rt *runtime) login(c *cli.Context) error {
	if rt.cfg.Password == "" {
		return errors.New("password is required (--password or MALLCTL_PASSWORD)")
	}
	if _, err := rt.client.Login(c.Context, rt.cfg.Username, rt.cfg.Password); err != nil {
		return err
	}
	if err := rt.saveSession(); err != nil {
		return err
	}
	rt.log.Info("Logged in", zap.String("username", rt.cfg.Username), zap.String("url", rt.cfg.BaseURL))
	fmt.Fprintf(rt.out, "logged in as %s\n", rt.cfg.Username)
	return nil
}

func (rt *runtime) logout(c *cli.Context) error {
	err := rt.client.Logout(c.Context)
	if rmErr := removeSession(rt.cfg.TokenFile); rmErr != nil {
		return rmErr
	}
	if err != nil && !adminclient.IsUnauthorized(err) {
		return err
	}
	fmt.Fprintln(rt.out, "logged out")
	return nil
}

func (rt *runtime) refresh(c *cli.Context) error {
	if _, err := rt.client.Refresh(c.Context); err != nil {
		return err
	}
	return rt.saveSession()
}

func (rt *runtime) whoami(c *cli.Context) error {
	u, err := rt.api.SysUser.Current(c.Context)
	if err != nil {
		return err
	}
	return writeJSON(rt.out, u)
}

func (rt *runtime) nav(c *cli.Context) error {
	g := adminclient.NewGuard(rt.client, rt.api, rt.log)
	if err := g.LoadSession(c.Context); err != nil {
		return err
	}
	return writeJSON(rt.out, map[string]any{
		"user":   g.User(),
		"routes": adminclient.BuildRoutes(g.Menus()),
	})
}

func (rt *runtime) changePassword(c *cli.Context) error {
	if err := rt.api.SysUser.ChangePassword(c.Context, c.String("old"), c.String("new")); err != nil {
		return err
	}
	fmt.Fprintln(rt.out, "password changed, log in again")
	return removeSession(rt.cfg.TokenFile)
}

func (rt *runtime) list(c *cli.Context) error {
	ops, err := lookupResource(resourceRegistry(rt.api), c.Args().First())
	if err != nil {
		return err
	}
	filters, err := parseFilters(c.StringSlice("filter"))
	if err != nil {
		return err
	}
	page, err := ops.page(c.Context, adminclient.PageRequest{Current: c.Int("page"), Size: c.Int("size")}, filters)
	if err != nil {
		return err
	}
	return writeJSON(rt.out, page)
}

func (rt *runtime) get(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("usage: get <resource> <id>")
	}
	ops, err := lookupResource(resourceRegistry(rt.api), c.Args().Get(0))
	if err != nil {
		return err
	}
	v, err := ops.get(c.Context, c.Args().Get(1))
	if err != nil {
		return err
	}
	return writeJSON(rt.out, v)
}

func (rt *runtime) remove(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("usage: delete <resource> <id>...")
	}
	name := c.Args().First()
	ops, err := lookupResource(resourceRegistry(rt.api), name)
	if err != nil {
		return err
	}
	if ops.remove == nil {
		return fmt.Errorf("%s records cannot be deleted", name)
	}
	keys := c.Args().Tail()
	if err := ops.remove(c.Context, keys); err != nil {
		return err
	}
	fmt.Fprintf(rt.out, "deleted %d %s record(s)\n", len(keys), name)
	return nil
}

func (rt *runtime) areaPath(c *cli.Context) error {
	id, err := parseID(c.Args().First())
	if err != nil {
		return err
	}

	// walk up to the province, then open the cascader along that path
	var ancestors []int64
	for next := id; next != 0; {
		area, err := rt.api.Area.GetByID(c.Context, next)
		if err != nil {
			return err
		}
		ancestors = append([]int64{area.AreaID}, ancestors...)
		next = area.ParentID
	}

	cascader := adminclient.NewAreaCascader(rt.api)
	if err := cascader.Load(c.Context); err != nil {
		return err
	}
	path, err := cascader.PreloadPath(c.Context, ancestors)
	if err != nil {
		return err
	}
	fmt.Fprintln(rt.out, strings.Join(cascader.Labels(path), " / "))
	return nil
}

func (rt *runtime) couriers(c *cli.Context) error {
	list, err := rt.api.Order.Couriers(c.Context)
	if err != nil {
		return err
	}
	return writeJSON(rt.out, list)
}

func (rt *runtime) ship(c *cli.Context) error {
	o, err := rt.api.Order.Delivery(c.Context, adminclient.DeliveryRequest{
		OrderNumber: c.String("order"),
		DvyID:       c.Int64("dvy-id"),
		DvyFlowID:   c.String("flow-id"),
	})
	if err != nil {
		return err
	}
	tag := adminclient.OrderStatusTag(o.Status)
	fmt.Fprintf(rt.out, "order %s is now %s\n", o.OrderNumber, tag.Text)
	return nil
}

func (rt *runtime) fee(c *cli.Context) error {
	count, err := decimal.NewFromString(c.String("count"))
	if err != nil {
		return fmt.Errorf("invalid count: %w", err)
	}
	amount, err := decimal.NewFromString(c.String("amount"))
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	fee, err := rt.api.Transport.Fee(c.Context, adminclient.FeeQuote{
		TransportID: c.Int64("transport"),
		CityID:      c.Int64("city"),
		Count:       count,
		Amount:      amount,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(rt.out, fee.StringFixed(2))
	return nil
}

func (rt *runtime) prodStatus(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("usage: prod-status <prodId> <status>")
	}
	id, err := parseID(c.Args().Get(0))
	if err != nil {
		return err
	}
	status := c.Args().Get(1)
	if status != "0" && status != "1" {
		return fmt.Errorf("invalid status %q, expected 0 or 1", status)
	}
	if err := rt.api.Product.SetStatus(c.Context, id, int(status[0]-'0')); err != nil {
		return err
	}
	fmt.Fprintf(rt.out, "product %d is now %s\n", id, adminclient.ProductStatusTag(int(status[0]-'0')).Text)
	return nil
}

func (rt *runtime) reply(c *cli.Context) error {
	req := adminclient.ReplyRequest{
		ProdCommID:   c.Int64("id"),
		ReplyContent: c.String("content"),
		Status:       c.Int("status"),
	}
	if req.ReplyContent != "" {
		req.ReplySts = 1
	}
	comm, err := rt.api.ProdComm.Reply(c.Context, req)
	if err != nil {
		return err
	}
	return writeJSON(rt.out, comm)
}

func (rt *runtime) upload(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return errors.New("usage: upload <file>")
	}
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	key, err := rt.client.UploadElement(c.Context, filepath.Base(name), f)
	if err != nil {
		return err
	}
	if rt.cfg.ImageBase != "" {
		fmt.Fprintln(rt.out, adminclient.ImageURL(rt.cfg.ImageBase, key))
		return nil
	}
	fmt.Fprintln(rt.out, key)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
