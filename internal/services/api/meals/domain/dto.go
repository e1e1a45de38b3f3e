package domain

// CreateInput adds a meal to the catalog
type CreateInput struct {
	Meal       string  `json:"meal"       validate:"required,min=1,max=200" example:"Spaghetti"`
	Cuisine    string  `json:"cuisine"    validate:"required,min=1,max=100" example:"Italian"`
	Price      float64 `json:"price"      validate:"gt=0"                   example:"10"`
	Difficulty string  `json:"difficulty" validate:"required"               example:"MED"`
}

// DeleteOutput confirms a soft delete
type DeleteOutput struct {
	ID      int64 `json:"id"      example:"1"`
	Deleted bool  `json:"deleted" example:"true"`
}

// ClearOutput confirms the catalog was reset
type ClearOutput struct {
	Cleared bool `json:"cleared" example:"true"`
}
