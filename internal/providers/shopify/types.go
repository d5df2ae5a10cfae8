package shopify

// GraphQL node shapes for the products query. Shopify wraps every list in
// edges/node, flattened by the provider when mapping into the domain model.

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type productsData struct {
	Products struct {
		Edges []struct {
			Node productNode `json:"node"`
		} `json:"edges"`
		PageInfo pageInfo `json:"pageInfo"`
	} `json:"products"`
}

type productData struct {
	Product *productNode `json:"product"`
}

type productNode struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Handle          string `json:"handle"`
	Status          string `json:"status"`
	DescriptionHTML string `json:"descriptionHtml"`
	Tags            []string `json:"tags"`

	Images struct {
		Edges []struct {
			Node imageNode `json:"node"`
		} `json:"edges"`
	} `json:"images"`

	PriceRangeV2 struct {
		MinVariantPrice struct {
			Amount string `json:"amount"`
		} `json:"minVariantPrice"`
	} `json:"priceRangeV2"`

	Collections struct {
		Edges []struct {
			Node struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"collections"`

	Metafields struct {
		Edges []struct {
			Node struct {
				Namespace string `json:"namespace"`
				Key       string `json:"key"`
				Value     string `json:"value"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"metafields"`

	Variants struct {
		Edges []struct {
			Node variantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

type imageNode struct {
	OriginalSrc string `json:"originalSrc"`
	AltText     string `json:"altText"`
}

type variantNode struct {
	ID      string `json:"id"`
	SKU     string `json:"sku"`
	Barcode string `json:"barcode"`
	Price   string `json:"price"`
	Taxable *bool  `json:"taxable"`

	InventoryItem struct {
		InventoryLevels struct {
			Edges []struct {
				Node struct {
					Location *locationNode `json:"location"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"inventoryLevels"`
	} `json:"inventoryItem"`
}

type locationNode struct {
	Name                 string `json:"name"`
	IsFulfillmentService bool   `json:"isFulfillmentService"`
	FulfillsOnlineOrders bool   `json:"fulfillsOnlineOrders"`
	ShipsInventory       bool   `json:"shipsInventory"`
	IsActive             bool   `json:"isActive"`
}

const productFields = `
id
title
handle
status
descriptionHtml
images(first: 10) {
    edges {
        node {
            originalSrc
            altText
        }
    }
}
tags
priceRangeV2 {
    minVariantPrice {
        amount
    }
}
collections(first: 10) {
    edges {
        node {
            id
            title
        }
    }
}
metafields(first: 20) {
    edges {
        node {
            namespace
            key
            value
        }
    }
}
variants(first: 20) {
    edges {
        node {
            id
            sku
            barcode
            price
            taxable
            inventoryItem {
                inventoryLevels(first: 1) {
                    edges {
                        node {
                            location {
                                name
                                isFulfillmentService
                                fulfillsOnlineOrders
                                shipsInventory
                                isActive
                            }
                        }
                    }
                }
            }
        }
    }
}`

const productsQuery = `
query($first: Int!, $after: String) {
    products(
        first: $first,
        after: $after,
        query: "status:active AND published_status:published AND -title:OP:*"
    ) {
        edges {
            node {` + productFields + `
            }
        }
        pageInfo {
            hasNextPage
            endCursor
        }
    }
}`

const productByIDQuery = `
query($id: ID!) {
    product(id: $id) {` + productFields + `
    }
}`
