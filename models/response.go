package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  UserWithProfile `json:"user"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type PaginationResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    interface{}    `json:"data"`
	Meta    PaginationMeta `json:"meta"`
}

type HomePage struct {
	Categories       []Category `json:"categories"`
	FeaturedProducts []Product  `json:"featured_products"`
}

type CategoryPage struct {
	Category Category  `json:"category"`
	Products []Product `json:"products"`
}

type ProductPage struct {
	Product         Product   `json:"product"`
	RelatedProducts []Product `json:"related_products"`
}

type ProductListPage struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
}
