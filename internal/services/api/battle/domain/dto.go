package domain

// StageInput names a catalog meal to stage
type StageInput struct {
	Meal string `json:"meal" validate:"required,min=1,max=200" example:"Spaghetti"`
}

// ClearOutput confirms a session was emptied or dropped
type ClearOutput struct {
	ID      string `json:"id"      example:"0b6f4c52-7f0e-4c55-9a8e-3d3b8f0b8e11"`
	Cleared bool   `json:"cleared" example:"true"`
}
