package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"lilutecno/internal/domain"
	"lilutecno/internal/filter"
	"lilutecno/internal/repos"
	"lilutecno/internal/services"
	"lilutecno/internal/validate"
)

// NewCatalogCommand groups the catalog maintenance commands.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and maintain the product catalog",
	}
	cmd.AddCommand(newCatalogImportCommand(rootOpts))
	cmd.AddCommand(newCatalogListCommand(rootOpts))
	cmd.AddCommand(newCatalogStockCommand(rootOpts))
	return cmd
}

func newCatalogImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import products from a .yaml or .json catalog file",
		Long: `Import products from a catalog file into the database.

Existing products with the same id are updated in place; new products are
appended to the display order in file order.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(rootOpts)
			db, err := repos.OpenDB(cfg.DBDSN)
			if err != nil {
				return err
			}
			defer db.Close()
			n, err := importCatalog(db, args[0])
			if err != nil {
				return err
			}
			return writeOut(cmd.OutOrStdout(), rootOpts.Format, map[string]any{"imported": n},
				fmt.Sprintf("imported %d product(s) from %s\n", n, args[0]))
		},
	}
}

type listOptions struct {
	q         string
	category  string
	min, max  float64
	stockOnly bool
}

func newCatalogListCommand(rootOpts *RootOptions) *cobra.Command {
	o := &listOptions{}
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List products matching the given filters",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := validate.Q(o.q); !ok {
				return fmt.Errorf("invalid search term %q", o.q)
			}
			cfg := loadConfig(rootOpts)
			db, err := repos.OpenDB(cfg.DBDSN)
			if err != nil {
				return err
			}
			defer db.Close()
			cat, err := loadCatalog(db)
			if err != nil {
				return err
			}

			maxPrice := cfg.MaxPrice
			if cmd.Flags().Changed("max") {
				maxPrice = o.max
			}
			f := filter.Normalize(domain.FiltersState{
				SearchTerm: o.q,
				Category:   o.category,
				PriceRange: domain.PriceRange{Min: o.min, Max: maxPrice},
				StockOnly:  o.stockOnly,
			}, cfg.MaxPrice)
			res := services.NewCatalogService(cat, cfg.MaxPrice).Search(f)
			return writeList(cmd.OutOrStdout(), rootOpts.Format, res)
		},
	}
	cmd.Flags().StringVar(&o.q, "q", "", "case-insensitive search on name and summary")
	cmd.Flags().StringVar(&o.category, "category", "", "exact category")
	cmd.Flags().Float64Var(&o.min, "min", 0, "minimum price")
	cmd.Flags().Float64Var(&o.max, "max", 0, "maximum price (default MAX_PRICE)")
	cmd.Flags().BoolVar(&o.stockOnly, "stock-only", false, "only products in stock")
	return cmd
}

func newCatalogStockCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "stock <product-id> <qty>",
		Short:        "Set the stock of a product",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := validate.ID(args[0])
			if !ok {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			cfg := loadConfig(rootOpts)
			db, err := repos.OpenDB(cfg.DBDSN)
			if err != nil {
				return err
			}
			defer db.Close()
			inv := repos.NewInventoryRepo(db)
			if err := inv.SetQty(id, qty); err != nil {
				return err
			}
			stored, err := inv.Qty(id)
			if err != nil {
				return err
			}
			avail := services.Availability(stored)
			return writeOut(cmd.OutOrStdout(), rootOpts.Format, map[string]any{"id": id, "availability": avail},
				fmt.Sprintf("%s: %s (%d)\n", id, avail.Status, avail.Qty))
		},
	}
}

func writeList(w io.Writer, format string, res services.Result) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(res)
	}
	for _, p := range res.Products {
		offer := ""
		if p.OnOffer() {
			offer = " (oferta)"
		}
		if _, err := fmt.Fprintf(w, "%-16s %-36s %12.0f %4d%s\n", p.ID, p.Name, p.Price, p.Stock, offer); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d of %d product(s), %d on offer\n", res.Available, res.Total, res.OnOfferCount)
	return err
}

func writeOut(w io.Writer, format string, v any, text string) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(v)
	}
	_, err := io.WriteString(w, text)
	return err
}
