package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/services"
)

// linkSourceCLI is the default utm_source for links printed by the CLI.
const linkSourceCLI = "cli"

var (
	listCategories  []string
	listSearch      string
	listFeatured    bool
	listNotFeatured bool
	listIncludeBlog bool
	listSort        string
	listLimit       int
	listOffset      int
	listPage        int
	listPerPage     int
	listJSON        bool
	listCSV         bool

	showHTML bool
	showJSON bool

	relatedLimit int
	relatedJSON  bool

	linkSource string
	linkMedium string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Query catalog products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products matching filters",
	Long: `List catalog products. Blog entries are excluded unless --include-blog is set.

Categories are combined with OR. --page switches to paginated output using
--per-page (default: site.products_per_page).`,
	Args: cobra.NoArgs,
	RunE: runProductsList,
}

var productsShowCmd = &cobra.Command{
	Use:   "show [slug]",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsShow,
}

var productsRelatedCmd = &cobra.Command{
	Use:   "related [slug]",
	Short: "List products related to a product",
	Long: `Rank other products by shared categories (3 points each), shared tags
(2 points each) and a common merchant (1 point).`,
	Args: cobra.ExactArgs(1),
	RunE: runProductsRelated,
}

var productsLinkCmd = &cobra.Command{
	Use:   "link [slug]",
	Short: "Print the tracked affiliate link of a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsLink,
}

func init() {
	f := productsListCmd.Flags()
	f.StringSliceVarP(&listCategories, "category", "c", nil, "category label (repeatable)")
	f.StringVarP(&listSearch, "search", "q", "", "free-text filter")
	f.BoolVar(&listFeatured, "featured", false, "only featured products")
	f.BoolVar(&listNotFeatured, "not-featured", false, "only non-featured products")
	f.BoolVar(&listIncludeBlog, "include-blog", false, "include blog entries")
	f.StringVar(&listSort, "sort", "newest", "sort order: newest, oldest or title")
	f.IntVar(&listLimit, "limit", 0, "maximum number of products (0 = no limit)")
	f.IntVar(&listOffset, "offset", 0, "number of products to skip")
	f.IntVar(&listPage, "page", 0, "page number (enables pagination)")
	f.IntVar(&listPerPage, "per-page", 0, "page size (default from config)")
	f.BoolVar(&listJSON, "json", false, "output as JSON")
	f.BoolVar(&listCSV, "csv", false, "output as CSV")
	productsListCmd.MarkFlagsMutuallyExclusive("featured", "not-featured")
	productsListCmd.MarkFlagsMutuallyExclusive("json", "csv")

	productsShowCmd.Flags().BoolVar(&showHTML, "html", false, "render the description as HTML")
	productsShowCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")

	productsRelatedCmd.Flags().IntVarP(&relatedLimit, "limit", "n", services.DefaultRelatedLimit, "maximum number of products")
	productsRelatedCmd.Flags().BoolVar(&relatedJSON, "json", false, "output as JSON")

	productsLinkCmd.Flags().StringVar(&linkSource, "source", linkSourceCLI, "utm_source value")
	productsLinkCmd.Flags().StringVar(&linkMedium, "medium", "", "utm_medium value (default from config)")

	productsCmd.AddCommand(productsListCmd, productsShowCmd, productsRelatedCmd, productsLinkCmd)
	rootCmd.AddCommand(productsCmd)
}

func listSpec() (domain.QuerySpec, error) {
	order, err := domain.ParseSortOrder(listSort)
	if err != nil {
		return domain.QuerySpec{}, err
	}
	spec := domain.QuerySpec{
		Categories:  listCategories,
		Search:      listSearch,
		IncludeBlog: listIncludeBlog,
		SortBy:      order,
		Limit:       listLimit,
		Offset:      listOffset,
	}
	switch {
	case listFeatured:
		v := true
		spec.Featured = &v
	case listNotFeatured:
		v := false
		spec.Featured = &v
	}
	return spec, nil
}

func runProductsList(cmd *cobra.Command, _ []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}
	spec, err := listSpec()
	if err != nil {
		return err
	}

	if listPage > 0 {
		perPage := listPerPage
		if perPage <= 0 {
			perPage = settings().Site.ProductsPerPage
		}
		page, err := catalogService.Paginate(cmd.Context(), spec, listPage, perPage)
		if err != nil {
			return fmt.Errorf("pagination failed: %w", err)
		}
		switch {
		case listJSON:
			return printJSON(cmd, page)
		case listCSV:
			return printCSV(cmd, page.Items)
		}
		printProducts(cmd, page.Items)
		cmd.Printf("\nPage %d of %d (%d products)\n", page.Number, page.TotalPages, page.TotalItems)
		return nil
	}

	products, err := catalogService.Query(cmd.Context(), spec)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	switch {
	case listJSON:
		return printJSON(cmd, products)
	case listCSV:
		return printCSV(cmd, products)
	}
	printProducts(cmd, products)
	return nil
}

func lookupProduct(cmd *cobra.Command, slug string) (*domain.Product, error) {
	if err := requireCatalog(); err != nil {
		return nil, err
	}
	p, err := catalogService.ProductBySlug(cmd.Context(), slug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("product %q not found", slug)
	}
	return p, err
}

func runProductsShow(cmd *cobra.Command, args []string) error {
	p, err := lookupProduct(cmd, args[0])
	if err != nil {
		return err
	}
	if showJSON {
		return printJSON(cmd, p)
	}

	cmd.Println(p.Title)
	cmd.Println()
	price := services.FormatPrice(p.Price, p.Currency)
	if p.OriginalPrice != nil && *p.OriginalPrice > p.Price {
		price += " (antes " + services.FormatPrice(*p.OriginalPrice, p.Currency) + ")"
	}
	cmd.Printf("  ID:          %s\n", p.ID)
	cmd.Printf("  Slug:        %s\n", p.Slug)
	cmd.Printf("  Price:       %s\n", price)
	if p.Discount != "" {
		cmd.Printf("  Discount:    %s\n", p.Discount)
	}
	cmd.Printf("  Categories:  %v\n", p.Categories)
	if len(p.Tags) > 0 {
		cmd.Printf("  Tags:        %v\n", p.Tags)
	}
	cmd.Printf("  Featured:    %t\n", p.IsFeatured)
	cmd.Printf("  Store:       %s\n", services.DomainFromURL(p.AffiliateURL))
	cmd.Printf("  Created:     %s\n", p.CreatedAt.Format("2006-01-02"))
	cmd.Printf("  Link:        %s\n", catalogService.AffiliateURL(*p, linkSourceCLI, ""))
	cmd.Println()

	switch {
	case descRenderer == nil:
		cmd.Println(p.Description)
	case showHTML:
		html, err := descRenderer.RenderHTML(p.Description)
		if err != nil {
			return fmt.Errorf("render description: %w", err)
		}
		cmd.Println(html)
	default:
		cmd.Println(descRenderer.PlainText(p.Description))
	}
	return nil
}

func runProductsRelated(cmd *cobra.Command, args []string) error {
	p, err := lookupProduct(cmd, args[0])
	if err != nil {
		return err
	}
	related := catalogService.RelatedProducts(cmd.Context(), *p, relatedLimit)
	if relatedJSON {
		return printJSON(cmd, related)
	}
	if len(related) == 0 {
		cmd.Println("No related products.")
		return nil
	}
	for i := range related {
		cmd.Printf("  [%d] ", related[i].Score)
		printProductLine(cmd, &related[i].Product)
	}
	return nil
}

func runProductsLink(cmd *cobra.Command, args []string) error {
	p, err := lookupProduct(cmd, args[0])
	if err != nil {
		return err
	}
	cmd.Println(catalogService.AffiliateURL(*p, linkSource, linkMedium))
	return nil
}
