package shopify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"catalog-audit/internal/domain"
)

const maxPageSize = 250 // Shopify's cap on first:

// Provider fetches the catalog snapshot for one audit run.
type Provider struct {
	C        *Client
	PageSize int
	Limit    int // max products to fetch, <=0 means the default 20000
	Log      *zap.SugaredLogger
}

// ListProducts pages through the product catalog until exhausted or Limit is
// reached, mapping every node into the domain model.
func (p Provider) ListProducts(ctx context.Context) ([]domain.Product, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20000
	}
	pageSize := p.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if pageSize > limit {
		pageSize = limit
	}

	var all []domain.Product
	var cursor string

	for {
		variables := map[string]any{"first": pageSize}
		if cursor != "" {
			variables["after"] = cursor
		}

		var data productsData
		if err := p.C.Query(ctx, productsQuery, variables, &data); err != nil {
			return all, fmt.Errorf("shopify: list products: %w", err)
		}

		for _, edge := range data.Products.Edges {
			if len(all) >= limit {
				break
			}
			all = append(all, mapProduct(edge.Node))
		}

		if p.Log != nil {
			p.Log.Infow("fetched product page", "page_size", len(data.Products.Edges), "total", len(all))
		}

		if len(all) >= limit || !data.Products.PageInfo.HasNextPage {
			return all, nil
		}
		cursor = data.Products.PageInfo.EndCursor
	}
}

// GetProduct fetches a single product by numeric id. Returns nil when the
// store has no such product.
func (p Provider) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	variables := map[string]any{
		"id": fmt.Sprintf("gid://shopify/Product/%s", id),
	}

	var data productData
	if err := p.C.Query(ctx, productByIDQuery, variables, &data); err != nil {
		return nil, fmt.Errorf("shopify: get product %s: %w", id, err)
	}
	if data.Product == nil {
		return nil, nil
	}
	product := mapProduct(*data.Product)
	return &product, nil
}

// mapProduct flattens the edges/node wrappers into the domain model. Absent
// nested fields degrade to zero values.
func mapProduct(n productNode) domain.Product {
	p := domain.Product{
		ID:          n.ID,
		Title:       n.Title,
		Handle:      n.Handle,
		Status:      n.Status,
		Description: n.DescriptionHTML,
		Tags:        append([]string(nil), n.Tags...),
		MinPrice:    n.PriceRangeV2.MinVariantPrice.Amount,
	}

	for _, edge := range n.Images.Edges {
		p.Images = append(p.Images, domain.Image{
			Src: edge.Node.OriginalSrc,
			Alt: edge.Node.AltText,
		})
	}

	for _, edge := range n.Collections.Edges {
		p.Collections = append(p.Collections, edge.Node.Title)
	}

	if len(n.Metafields.Edges) > 0 {
		p.Metafields = make(map[string]string, len(n.Metafields.Edges))
		for _, edge := range n.Metafields.Edges {
			p.Metafields[edge.Node.Namespace+"."+edge.Node.Key] = edge.Node.Value
		}
	}

	for _, edge := range n.Variants.Edges {
		p.Variants = append(p.Variants, mapVariant(edge.Node))
	}

	return p
}

func mapVariant(n variantNode) domain.Variant {
	v := domain.Variant{
		ID:      n.ID,
		SKU:     n.SKU,
		Barcode: n.Barcode,
		Price:   n.Price,
		Taxable: n.Taxable,
	}

	levels := n.InventoryItem.InventoryLevels.Edges
	if len(levels) > 0 && levels[0].Node.Location != nil {
		loc := levels[0].Node.Location
		v.Location = &domain.Location{
			Name:                 loc.Name,
			IsFulfillmentService: loc.IsFulfillmentService,
			FulfillsOnlineOrders: loc.FulfillsOnlineOrders,
			ShipsInventory:       loc.ShipsInventory,
			Active:               loc.IsActive,
		}
	}

	return v
}
