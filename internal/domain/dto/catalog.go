package dto

// BrandListQuery holds brand list filters.
type BrandListQuery struct {
	ListQuery
	Featured BoolParam `form:"featured"`
}

// CreateBrandRequest creates a brand. Slug is derived from the name
// when omitted.
type CreateBrandRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Website     string `json:"website"`
	Slug        string `json:"slug"`
	Featured    bool   `json:"featured"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateBrandRequest updates a brand; nil fields are left unchanged.
type UpdateBrandRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Logo        *string `json:"logo"`
	Website     *string `json:"website"`
	Slug        *string `json:"slug"`
	Featured    *bool   `json:"featured"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryListQuery holds category list filters.
type CategoryListQuery struct {
	ListQuery
	Featured      BoolParam `form:"featured"`
	ParentID      string    `form:"parent_id"`
	IncludeParent BoolParam `form:"includeParent"`
}

// CategoryTreeQuery filters the categories-with-children view.
type CategoryTreeQuery struct {
	IsActive BoolParam `form:"is_active"`
}

// CreateCategoryRequest creates a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Slug        string `json:"slug"`
	ParentID    string `json:"parent_id"`
	Featured    bool   `json:"featured"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateCategoryRequest updates a category; nil fields are left unchanged.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Slug        *string `json:"slug"`
	ParentID    *string `json:"parent_id"`
	Featured    *bool   `json:"featured"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"is_active"`
}

// ProductListQuery holds product list filters.
type ProductListQuery struct {
	ListQuery
	Featured   BoolParam `form:"featured"`
	BrandID    string    `form:"brand_id"`
	CategoryID string    `form:"category_id"`
	MinPrice   *float64  `form:"min_price"`
	MaxPrice   *float64  `form:"max_price"`
}

// CreateProductRequest creates a product.
type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	SKU           string   `json:"sku" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
	DiscountPrice float64  `json:"discount_price"`
	Stock         int      `json:"stock"`
	BrandID       string   `json:"brand_id"`
	CategoryID    string   `json:"category_id"`
	Featured      bool     `json:"featured"`
	IsActive      *bool    `json:"is_active"`
}

// UpdateProductRequest updates a product; nil fields are left unchanged.
type UpdateProductRequest struct {
	Name          *string   `json:"name"`
	SKU           *string   `json:"sku"`
	Price         *float64  `json:"price"`
	Slug          *string   `json:"slug"`
	Description   *string   `json:"description"`
	Images        *[]string `json:"images"`
	DiscountPrice *float64  `json:"discount_price"`
	Stock         *int      `json:"stock"`
	BrandID       *string   `json:"brand_id"`
	CategoryID    *string   `json:"category_id"`
	Featured      *bool     `json:"featured"`
	IsActive      *bool     `json:"is_active"`
}
