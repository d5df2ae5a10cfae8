package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"catalog-audit/internal/config"
	"catalog-audit/internal/exclusion"
	"catalog-audit/internal/providers/shopify"
	"catalog-audit/internal/validation"
)

// checkproduct fetches one product and prints its validation result. Handy
// when a merchant asks why a specific product keeps showing up in the report.
func main() {
	id := flag.String("id", "", "numeric Shopify product ID")
	flag.Parse()

	if *id == "" {
		fmt.Fprintln(os.Stderr, "usage: checkproduct -id <product-id>")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.ShopURL == "" || cfg.AccessToken == "" {
		fmt.Fprintln(os.Stderr, "set SHOP_URL and SHOPIFY_ACCESS_TOKEN")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	provider := shopify.Provider{C: shopify.New(cfg.ShopURL, cfg.AccessToken, cfg.APIVersion)}
	product, err := provider.GetProduct(ctx, *id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetching product %s: %v\n", *id, err)
		os.Exit(1)
	}
	if product == nil {
		fmt.Fprintf(os.Stderr, "product %s not found\n", *id)
		os.Exit(1)
	}

	fmt.Printf("Product: %s\n", product.Title)
	fmt.Printf("ID:      %s\n", product.ID)
	fmt.Printf("Status:  %s\n", product.Status)
	fmt.Printf("Images:  %d  Tags: %d  Collections: %d  Variants: %d\n",
		len(product.Images), len(product.Tags), len(product.Collections), len(product.Variants))

	rules := exclusion.DefaultRules()
	if cfg.ExclusionsFile != "" {
		if loaded, err := exclusion.LoadRules(cfg.ExclusionsFile); err == nil {
			rules = loaded
		}
	}
	if excluded, reason := exclusion.NewFilter(rules).ShouldExclude(product); excluded {
		fmt.Printf("\nExcluded from auditing: %s\n", reason)
		return
	}

	validator := validation.New(validation.Config{
		MinImages:            cfg.MinImages,
		MinDescriptionLength: cfg.MinDescriptionLength,
		MinPrice:             cfg.MinPrice,
	})
	issues := validator.Validate(product)
	if len(issues) == 0 {
		fmt.Println("\nNo validation issues.")
		return
	}

	fmt.Printf("\n%d issue(s):\n", len(issues))
	for _, issue := range issues {
		fmt.Printf("  [%s] %s: %s\n", issue.Severity, issue.Kind, issue.Message)
		for k, v := range issue.Details {
			fmt.Printf("      %s: %v\n", k, v)
		}
	}
	os.Exit(1)
}
