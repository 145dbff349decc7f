package api

// CreateProductRequest represents the request body for creating a product.
// @Description Request payload for creating a product
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"max=100"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Description string  `json:"description" validate:"max=1000"`
}

// UpdateProductRequest represents the request body for updating a product.
// Omitted fields keep their stored value.
// @Description Partial update payload for a product
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
}

// ProductResponse represents a product resource in API responses.
// @Description Product resource
type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// MessageResponse carries a human readable confirmation.
// @Description Confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}
