package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/alecthomas/kong"

	actx "go.hackfix.me/kangyang/app/context"
	"go.hackfix.me/kangyang/cart"
	"go.hackfix.me/kangyang/catalog"
)

// The Cart command manages the grocery cart.
type Cart struct {
	Show struct{} `kong:"cmd,help='Print the cart contents.'"`
	Add  struct {
		ProductID int `arg:"" help:"The product ID."`
		Quantity  int `arg:"" optional:"" default:"1" help:"The number of units to add."`
	} `kong:"cmd,help='Add units of a product to the cart.'"`
	Rm struct {
		ProductID int `arg:"" help:"The product ID."`
	} `kong:"cmd,help='Remove one unit of a product from the cart.'"`
	Set struct {
		ProductID int `arg:"" help:"The product ID."`
		Quantity  int `arg:"" help:"The new quantity. Zero removes the product."`
	} `kong:"cmd,help='Set the quantity of a product.'"`
	Clear struct{} `kong:"cmd,help='Empty the cart.'"`
	Total struct{} `kong:"cmd,help='Print the total price of the cart.'"`
}

// Run the cart command.
func (c *Cart) Run(kctx *kong.Context, appCtx *actx.Context) error {
	svc := appCtx.Cart

	switch subcommand(kctx) {
	case "show":
		printCart(appCtx, svc.Cart())
	case "add":
		svc.Add(c.Add.ProductID, c.Add.Quantity)
	case "rm":
		svc.Remove(c.Rm.ProductID)
	case "set":
		svc.UpdateQuantity(c.Set.ProductID, c.Set.Quantity)
	case "clear":
		svc.Clear()
	case "total":
		fmt.Fprintf(appCtx.Stdout, "%.2f\n", cart.Total(svc.Cart(), catalog.Products()))
	}

	return nil
}

func printCart(appCtx *actx.Context, crt cart.Cart) {
	if len(crt) == 0 {
		return
	}

	products := map[int]catalog.Product{}
	for _, p := range catalog.Products() {
		products[p.ID] = p
	}

	ids := make([]int, 0, len(crt))
	for id := range crt {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	data := make([][]string, 0, len(ids))
	for _, id := range ids {
		name, price := "unknown product", "-"
		if p, ok := products[id]; ok {
			name = p.Name
			price = fmt.Sprintf("%.2f", p.Price*float64(crt[id]))
		}
		data = append(data, []string{strconv.Itoa(id), name, strconv.Itoa(crt[id]), price})
	}

	header := []string{"ID", "Product", "Quantity", "Price"}
	renderTable(appCtx.Stdout, header, data)
	fmt.Fprintf(appCtx.Stdout, "\n%d items, total %.2f\n",
		crt.Count(), cart.Total(crt, catalog.Products()))
}
