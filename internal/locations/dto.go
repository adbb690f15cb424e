package locations

type CreateInput struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
}

type UpdateInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}
