package catalog

// CategoryRefResponse is the denormalized {id, name} copy of a category
// membership as stored on a product.
type CategoryRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Price       float64               `json:"price"`
	ImageURLs   []string              `json:"image_urls,omitempty"`
	Seller      *SellerResponse       `json:"seller,omitempty"`
	Categories  []CategoryRefResponse `json:"categories"`
}

// CreateProductRequest represents the payload to create a product.
// Categories travel as ids; the server resolves the embedded copies.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURLs   []string `json:"image_urls"`
	SellerID    string   `json:"seller_id"`
	CategoryIDs []string `json:"category_ids"`
}

// UpdateProductRequest represents the payload to update a product.
type UpdateProductRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURLs   []string `json:"image_urls"`
	SellerID    string   `json:"seller_id"`
	CategoryIDs []string `json:"category_ids"`
}
