// ABOUTME: Product commands for the catalogctl CLI
// ABOUTME: List, search, category filter, and admin CRUD from the shell

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"catalogctl/internal/api"
	"catalogctl/internal/session"
)

var (
	productPage     int
	productSize     int
	productName     string
	productPrice    string
	productCategory int64
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage catalog products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Run: func(cmd *cobra.Command, args []string) {
		runCatalogCommand(func(ctx context.Context, w io.Writer, env *cmdEnv) int {
			var page *api.Page[api.Product]
			var err error
			if productCategory > 0 {
				page, err = env.client.ProductsByCategory(ctx, productCategory, productPage, env.pageSize())
			} else {
				page, err = env.client.ListProducts(ctx, productPage, env.pageSize())
			}
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 1
			}
			printProductPage(w, page)
			return 0
		})
	},
}

var productsSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search products by name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCatalogCommand(func(ctx context.Context, w io.Writer, env *cmdEnv) int {
			page, err := env.client.SearchProducts(ctx, args[0], productPage, env.pageSize())
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 1
			}
			printProductPage(w, page)
			return 0
		})
	},
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCatalogCommand(func(ctx context.Context, w io.Writer, env *cmdEnv) int {
			id, err := parseID(args[0])
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 2
			}
			p, err := env.client.GetProduct(ctx, id)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 1
			}
			if IsJSONOutput() {
				printJSON(w, p)
			} else {
				fmt.Fprintf(w, "ID:       %d\nName:     %s\nPrice:    %s\nCategory: %s (#%d)\n",
					p.ID, p.Name, api.FormatPrice(p.Price), p.CategoryName, p.CategoryID)
			}
			return 0
		})
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product (admin)",
	Run: func(cmd *cobra.Command, args []string) {
		runCatalogCommand(func(ctx context.Context, w io.Writer, env *cmdEnv) int {
			if !requireAdmin(env.store, w) {
				return 2
			}
			draft, code := productDraftFromFlags(w)
			if code != 0 {
				return code
			}
			p, err := env.client.CreateProduct(ctx, draft)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 1
			}
			if IsJSONOutput() {
				printJSON(w, p)
			} else {
				fmt.Fprintf(w, "Product created successfully (id %d)\n", p.ID)
			}
			return 0
		})
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a product (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCatalogCommand(func(ctx context.Context, w io.Writer, env *cmdEnv) int {
			if !requireAdmin(env.store, w) {
				return 2
			}
			id, err := parseID(args[0])
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 2
			}
			draft, code := productDraftFromFlags(w)
			if code != 0 {
				return code
			}
			p, err := env.client.UpdateProduct(ctx, id, draft)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 1
			}
			if IsJSONOutput() {
				printJSON(w, p)
			} else {
				fmt.Fprintf(w, "Product updated successfully (id %d)\n", p.ID)
			}
			return 0
		})
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCatalogCommand(func(ctx context.Context, w io.Writer, env *cmdEnv) int {
			if !requireAdmin(env.store, w) {
				return 2
			}
			id, err := parseID(args[0])
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 2
			}
			if err := env.client.DeleteProduct(ctx, id); err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 1
			}
			fmt.Fprintln(w, "Product deleted successfully")
			return 0
		})
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsSearchCmd)
	productsCmd.AddCommand(productsGetCmd)
	productsCmd.AddCommand(productsCreateCmd)
	productsCmd.AddCommand(productsUpdateCmd)
	productsCmd.AddCommand(productsDeleteCmd)

	for _, c := range []*cobra.Command{productsListCmd, productsSearchCmd} {
		c.Flags().IntVar(&productPage, "page", 0, "Page index (zero-based)")
		c.Flags().IntVar(&productSize, "size", 0, "Page size (defaults to CATALOG_PAGE_SIZE)")
	}
	productsListCmd.Flags().Int64Var(&productCategory, "category", 0, "Filter by category id")

	for _, c := range []*cobra.Command{productsCreateCmd, productsUpdateCmd} {
		c.Flags().StringVar(&productName, "name", "", "Product name")
		c.Flags().StringVar(&productPrice, "price", "", "Product price")
		c.Flags().Int64Var(&productCategory, "category", 0, "Category id")
	}
}

// cmdEnv bundles the wired client and session store for a command run
type cmdEnv struct {
	client          *api.Client
	store           *session.Store
	defaultPageSize int
}

// pageSize resolves the effective page size for list commands
func (e *cmdEnv) pageSize() int {
	if productSize > 0 {
		return productSize
	}
	return e.defaultPageSize
}

// runCatalogCommand wires dependencies, runs fn, and exits non-zero on failure
func runCatalogCommand(fn func(context.Context, io.Writer, *cmdEnv) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, store, cfg, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stdout, "Error: %v\n", err)
		os.Exit(2)
	}

	env := &cmdEnv{client: client, store: store, defaultPageSize: cfg.PageSize}
	if code := fn(ctx, os.Stdout, env); code != 0 {
		os.Exit(code)
	}
}

// productDraftFromFlags validates the create/update flags into a draft
func productDraftFromFlags(w io.Writer) (api.ProductDraft, int) {
	price, err := api.ParsePrice(productPrice)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return api.ProductDraft{}, 2
	}
	draft := api.ProductDraft{Name: productName, Price: price, CategoryID: productCategory}
	if err := api.ValidateProductDraft(draft); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return api.ProductDraft{}, 2
	}
	return draft, 0
}

// parseID parses a positional id argument
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// printProductPage renders a product page as a table or JSON
func printProductPage(w io.Writer, page *api.Page[api.Product]) {
	if IsJSONOutput() {
		printJSON(w, page)
		return
	}
	if len(page.Content) == 0 {
		fmt.Fprintln(w, "No products found")
		return
	}
	fmt.Fprintf(w, "%-6s %-30s %-12s %s\n", "ID", "NAME", "PRICE", "CATEGORY")
	for _, p := range page.Content {
		fmt.Fprintf(w, "%-6d %-30s %-12s %s\n", p.ID, p.Name, api.FormatPrice(p.Price), p.CategoryName)
	}
	fmt.Fprintln(w, formatPageFooter(page.Number, page.TotalPages, page.TotalElements))
}
