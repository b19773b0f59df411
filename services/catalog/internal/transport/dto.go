package transport

type CreateBookRequest struct {
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Stock        uint    `json:"stock"`
	ImageURL     string  `json:"image_url"`
	CategorySlug string  `json:"category_slug"`
}

type PatchBookRequest struct {
	Title        *string  `json:"title"`
	Author       *string  `json:"author"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	Stock        *uint    `json:"stock"`
	ImageURL     *string  `json:"image_url"`
	CategorySlug *string  `json:"category_slug"`
}
