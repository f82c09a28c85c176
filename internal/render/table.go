// Package render draws the product list as a plain-text table.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rogerio-castellano/inventory-manager/internal/models"
)

// Currency formats a price the way the product table shows it.
func Currency(price float64) string {
	return fmt.Sprintf("M%.2f", price)
}

// Table writes one row per product. When mode is editing, the target row is
// marked with an asterisk.
func Table(w io.Writer, products []models.Product, mode models.EditMode) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tProduct Name\tDescription\tCategory\tPrice\tQuantity")
	for _, p := range products {
		marker := ""
		if mode.Active && mode.TargetID == p.ID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n", marker, p.ID, p.Name, p.Description, p.Category, Currency(p.Price), p.Quantity)
	}
	return tw.Flush()
}
