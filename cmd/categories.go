// ABOUTME: Category commands for the catalogctl CLI
// ABOUTME: List, search, detail-with-products, and admin CRUD from the shell

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"catalogctl/internal/api"
)

var (
	categoryPage        int
	categorySize        int
	categoryName        string
	categoryDescription string
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage catalog categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Run: func(cmd *cobra.Command, args []string) {
		runCatalogCommand(func(ctx context.Context, w io.Writer, env *cmdEnv) int {
			page, err := env.client.ListCategories(ctx, categoryPage, categoryPageSize(env))
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 1
			}
			printCategoryPage(w, page)
			return 0
		})
	},
}

var categoriesSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search categories by name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCatalogCommand(func(ctx context.Context, w io.Writer, env *cmdEnv) int {
			page, err := env.client.SearchCategories(ctx, args[0], categoryPage, categoryPageSize(env))
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 1
			}
			printCategoryPage(w, page)
			return 0
		})
	},
}

var categoriesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCatalogCommand(func(ctx context.Context, w io.Writer, env *cmdEnv) int {
			id, err := parseID(args[0])
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 2
			}
			cat, err := env.client.GetCategory(ctx, id)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 1
			}
			if IsJSONOutput() {
				printJSON(w, cat)
			} else {
				fmt.Fprintf(w, "ID:          %d\nName:        %s\nDescription: %s\n", cat.ID, cat.Name, cat.Description)
			}
			return 0
		})
	},
}

var categoriesProductsCmd = &cobra.Command{
	Use:   "products <id>",
	Short: "Show a category with its products",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCatalogCommand(func(ctx context.Context, w io.Writer, env *cmdEnv) int {
			id, err := parseID(args[0])
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 2
			}
			detail, err := env.client.CategoryProducts(ctx, id)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 1
			}
			if IsJSONOutput() {
				printJSON(w, detail)
				return 0
			}
			fmt.Fprintf(w, "%s - %s\n", detail.Name, detail.Description)
			if len(detail.Products) == 0 {
				fmt.Fprintln(w, "No products in this category")
				return 0
			}
			fmt.Fprintf(w, "%-6s %-30s %s\n", "ID", "NAME", "PRICE")
			for _, p := range detail.Products {
				fmt.Fprintf(w, "%-6d %-30s %s\n", p.ID, p.Name, api.FormatPrice(p.Price))
			}
			return 0
		})
	},
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category (admin)",
	Run: func(cmd *cobra.Command, args []string) {
		runCatalogCommand(func(ctx context.Context, w io.Writer, env *cmdEnv) int {
			if !requireAdmin(env.store, w) {
				return 2
			}
			draft := api.CategoryDraft{Name: categoryName, Description: categoryDescription}
			cat, err := env.client.CreateCategory(ctx, draft)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 1
			}
			if IsJSONOutput() {
				printJSON(w, cat)
			} else {
				fmt.Fprintf(w, "Category created successfully (id %d)\n", cat.ID)
			}
			return 0
		})
	},
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a category (admin)",
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
			draft := api.CategoryDraft{Name: categoryName, Description: categoryDescription}
			cat, err := env.client.UpdateCategory(ctx, id, draft)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 1
			}
			if IsJSONOutput() {
				printJSON(w, cat)
			} else {
				fmt.Fprintf(w, "Category updated successfully (id %d)\n", cat.ID)
			}
			return 0
		})
	},
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category (admin)",
	Long:  `Delete a category. Fails with a conflict error when products still reference it.`,
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
			if err := env.client.DeleteCategory(ctx, id); err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 1
			}
			fmt.Fprintln(w, "Category deleted successfully")
			return 0
		})
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesSearchCmd)
	categoriesCmd.AddCommand(categoriesGetCmd)
	categoriesCmd.AddCommand(categoriesProductsCmd)
	categoriesCmd.AddCommand(categoriesCreateCmd)
	categoriesCmd.AddCommand(categoriesUpdateCmd)
	categoriesCmd.AddCommand(categoriesDeleteCmd)

	for _, c := range []*cobra.Command{categoriesListCmd, categoriesSearchCmd} {
		c.Flags().IntVar(&categoryPage, "page", 0, "Page index (zero-based)")
		c.Flags().IntVar(&categorySize, "size", 0, "Page size (defaults to CATALOG_PAGE_SIZE)")
	}
	for _, c := range []*cobra.Command{categoriesCreateCmd, categoriesUpdateCmd} {
		c.Flags().StringVar(&categoryName, "name", "", "Category name (letters and spaces)")
		c.Flags().StringVar(&categoryDescription, "description", "", "Category description")
	}
}

// categoryPageSize resolves the effective page size for category lists
func categoryPageSize(env *cmdEnv) int {
	if categorySize > 0 {
		return categorySize
	}
	return env.defaultPageSize
}

// printCategoryPage renders a category page as a table or JSON
func printCategoryPage(w io.Writer, page *api.Page[api.Category]) {
	if IsJSONOutput() {
		printJSON(w, page)
		return
	}
	if len(page.Content) == 0 {
		fmt.Fprintln(w, "No categories found")
		return
	}
	fmt.Fprintf(w, "%-6s %-24s %s\n", "ID", "NAME", "DESCRIPTION")
	for _, c := range page.Content {
		fmt.Fprintf(w, "%-6d %-24s %s\n", c.ID, c.Name, c.Description)
	}
	fmt.Fprintln(w, formatPageFooter(page.Number, page.TotalPages, page.TotalElements))
}
