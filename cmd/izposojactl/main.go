package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/erazemk/izposoja/internal/catalog"
	"github.com/erazemk/izposoja/internal/client"
	"github.com/erazemk/izposoja/internal/model"
)

const usage = `Usage: izposojactl [-server URL] <command> [flags]

Commands:
  list [-q term] [-category c] [-available all|true|false]
                     list items, filtered and sorted by name
  show <id>          show one item
  add -name n -description d -category c -condition c [-image url]
                     list a new item
  borrow <id>        request to borrow an item

The server defaults to $IZPOSOJA_URL or http://localhost:5000.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("izposojactl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	server := os.Getenv("IZPOSOJA_URL")
	if server == "" {
		server = "http://localhost:5000"
	}
	fs.StringVar(&server, "server", server, "")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}

	c, err := client.New(server)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "list":
		err = cmdList(ctx, c, rest, stdout, stderr)
	case "show":
		err = cmdShow(ctx, c, rest, stdout)
	case "add":
		err = cmdAdd(ctx, c, rest, stdout, stderr)
	case "borrow":
		err = cmdBorrow(ctx, c, rest, stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		fs.Usage()
		return 2
	}

	var usageErr usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &usageErr):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

type usageError string

func (e usageError) Error() string { return string(e) }

func cmdList(ctx context.Context, c *client.Client, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	q := catalog.DefaultQuery()
	fs.StringVar(&q.Search, "q", "", "search term matched against name and description")
	fs.StringVar(&q.Category, "category", catalog.All, "exact category or all")
	fs.StringVar(&q.Availability, "available", catalog.All, "all, true or false")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	items, err := c.List(ctx)
	if err != nil {
		return err
	}
	items = catalog.Filter(items, q)
	if len(items) == 0 {
		fmt.Fprintln(stdout, "No items found")
		return nil
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tCONDITION\tOWNER\tSTATUS")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Name, item.Category, item.Condition, item.Owner, status(item))
	}
	return tw.Flush()
}

func cmdShow(ctx context.Context, c *client.Client, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return usageError("show needs exactly one item id")
	}
	item, err := c.Get(ctx, args[0])
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", item.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", item.Name)
	fmt.Fprintf(tw, "Description:\t%s\n", item.Description)
	fmt.Fprintf(tw, "Category:\t%s\n", item.Category)
	fmt.Fprintf(tw, "Condition:\t%s\n", item.Condition)
	fmt.Fprintf(tw, "Owner:\t%s\n", item.Owner)
	fmt.Fprintf(tw, "Status:\t%s\n", status(*item))
	if item.Location != nil {
		fmt.Fprintf(tw, "Location:\t%s\n", item.Location.Address)
	}
	fmt.Fprintf(tw, "Image:\t%s\n", item.Image)
	return tw.Flush()
}

func cmdAdd(ctx context.Context, c *client.Client, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var n model.NewItem
	fs.StringVar(&n.Name, "name", "", "item name")
	fs.StringVar(&n.Description, "description", "", "description")
	fs.StringVar(&n.Category, "category", "", "category, e.g. "+strings.Join(model.Categories, ", "))
	fs.StringVar(&n.Condition, "condition", "", "condition, e.g. "+strings.Join(model.Conditions, ", "))
	fs.StringVar(&n.Image, "image", "", "image URL (optional)")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	item, err := c.Create(ctx, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Added %s (%s)\n", item.ID, item.Name)
	return nil
}

func cmdBorrow(ctx context.Context, c *client.Client, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return usageError("borrow needs exactly one item id")
	}
	res, err := c.RequestBorrow(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, res.Message)
	return nil
}

func status(item model.Item) string {
	if item.Available {
		return "available"
	}
	if item.BorrowedBy != nil {
		return "borrowed by " + *item.BorrowedBy
	}
	return "borrowed"
}
