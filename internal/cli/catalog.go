// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tomtom215/tigana/internal/catalog"
)

// CatalogReport is the result of catalog validate.
type CatalogReport struct {
	Valid      bool           `json:"valid"`
	Source     string         `json:"source"`
	Products   int            `json:"products"`
	Categories map[string]int `json:"categories"`
}

type catalogListOptions struct {
	path     string
	category string
	query    string
	minPrice float64
	maxPrice float64
	sort     string
}

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate the product catalog",
	}
	cmd.AddCommand(newCatalogValidateCommand(rootOpts))
	cmd.AddCommand(newCatalogListCommand(rootOpts))
	return cmd
}

func newCatalogValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [catalog.yaml]",
		Short: "Validate a catalog file",
		Long: `Decode a catalog YAML file and validate every product: required fields,
known categories, price and rating bounds, and unique ids.

Without an argument the catalog selected by the configuration is checked
(the built-in catalog when catalog.path is empty).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			path, err := catalogPath(rootOpts, args)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeConfig, "failed to load configuration", err)
			}
			return runCatalogValidate(f, path)
		},
	}
}

func runCatalogValidate(f *OutputFormatter, path string) error {
	source := path
	if source == "" {
		source = "built-in"
	}
	f.VerboseLog("Validating catalog %s", source)

	products, err := loadCatalog(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f.Fail(ExitCommandError, ErrCodeArgument, "catalog file not found", err)
		}
		return f.Fail(ExitFailure, ErrCodeCatalog, "catalog is invalid", err)
	}

	report := CatalogReport{
		Valid:      true,
		Source:     source,
		Products:   products.Len(),
		Categories: make(map[string]int, len(catalog.Categories)),
	}
	for _, c := range catalog.Categories {
		report.Categories[string(c)] = len(products.ByCategory(c))
	}

	return f.Success(report, func(w io.Writer) {
		fmt.Fprintf(w, "Catalog %s is valid: %d products\n", report.Source, report.Products)
		for _, c := range catalog.Categories {
			fmt.Fprintf(w, "  %-10s %d\n", c, report.Categories[string(c)])
		}
	})
}

func newCatalogListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &catalogListOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products with storefront filters",
		Long: `List catalog products the way the storefront grid does: the search query
narrows first, then the category, then the inclusive price window, then the
sort order.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			listOpts, err := opts.toListOptions(cmd)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeArgument, "invalid filter", err)
			}
			path := opts.path
			if path == "" {
				if path, err = catalogPath(rootOpts, nil); err != nil {
					return f.Fail(ExitCommandError, ErrCodeConfig, "failed to load configuration", err)
				}
			}
			products, err := loadCatalog(path)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeCatalog, "failed to load catalog", err)
			}
			return writeProducts(f, products.List(listOpts))
		},
	}

	cmd.Flags().StringVar(&opts.path, "catalog", "", "catalog file (default: configured catalog)")
	cmd.Flags().StringVar(&opts.category, "category", "", "category (dates|figs|apricots|raisins|mixed)")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "search query")
	cmd.Flags().Float64Var(&opts.minPrice, "min", 0, "minimum price (inclusive)")
	cmd.Flags().Float64Var(&opts.maxPrice, "max", 0, "maximum price (inclusive)")
	cmd.Flags().StringVar(&opts.sort, "sort", "name", "sort order (name|price-low|price-high|rating|popular)")
	return cmd
}

func (o *catalogListOptions) toListOptions(cmd *cobra.Command) (catalog.ListOptions, error) {
	var out catalog.ListOptions
	if o.category != "" {
		c, ok := catalog.ParseCategory(o.category)
		if !ok {
			return out, fmt.Errorf("unknown category %q", o.category)
		}
		out.Category = c
	}
	sortOrder, err := catalog.ParseSortOrder(o.sort)
	if err != nil {
		return out, err
	}
	out.Sort = sortOrder
	out.Query = o.query

	if cmd.Flags().Changed("min") {
		v := o.minPrice
		out.MinPrice = &v
	}
	if cmd.Flags().Changed("max") {
		v := o.maxPrice
		out.MaxPrice = &v
	}
	if out.MinPrice != nil && out.MaxPrice != nil && *out.MaxPrice < *out.MinPrice {
		return out, fmt.Errorf("max price %.2f is below min price %.2f", *out.MaxPrice, *out.MinPrice)
	}
	return out, nil
}

func writeProducts(f *OutputFormatter, products []catalog.Product) error {
	return f.Success(products, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING")
		for i := range products {
			p := &products[i]
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.1f\n", p.ID, p.Name, p.Category, p.Price, p.Rating)
		}
		_ = tw.Flush()
		fmt.Fprintf(w, "%d products\n", len(products))
	})
}

// catalogPath returns args[0] or the configured catalog path.
func catalogPath(opts *RootOptions, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return "", err
	}
	return cfg.Catalog.Path, nil
}
