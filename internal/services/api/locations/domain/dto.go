package domain

// CreateInput stores a new location
type CreateInput struct {
	Location string `json:"location" validate:"required,min=1,max=200" example:"Boston"`
}

// DeleteOutput confirms a soft delete
type DeleteOutput struct {
	ID      int64 `json:"id"      example:"1"`
	Deleted bool  `json:"deleted" example:"true"`
}

// ClearOutput confirms the table was reset
type ClearOutput struct {
	Cleared bool `json:"cleared" example:"true"`
}
