// Package catalog contiene los DTOs del API del catálogo.
package catalog

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ProductIDs []string `json:"product_ids"`
}

// CreateCategoryRequest represents the payload to create a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// UpdateCategoryRequest represents the payload to rename a category.
type UpdateCategoryRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
