package users

type CreateInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
	Role     string `json:"role" validate:"required"`
	Location string `json:"location"`
}

type UpdateInput struct {
	FullName *string `json:"fullName"`
	Role     *string `json:"role"`
	Location *string `json:"location"`
	IsActive *bool   `json:"isActive"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}
