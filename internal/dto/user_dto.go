package dto

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=30"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
	Age      *int   `json:"age" validate:"omitempty,gte=1,lte=120"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female other"`
	Phone    string `json:"phone" validate:"omitempty,min=10,max=20"`
}

type EmailUpdateRequest struct {
	NewEmail        string `json:"new_email" validate:"required,email"`
	CurrentPassword string `json:"current_password" validate:"required"`
}

type EmailUpdateVerifyRequest struct {
	NewEmail string `json:"new_email" validate:"required,email"`
	Code     string `json:"code" validate:"required,len=4,numeric"`
}

type OwnerUpgradeConfirmRequest struct {
	Code     string `json:"code" validate:"required,len=6,numeric"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Age      int    `json:"age" validate:"required,gte=18,lte=100"`
	Gender   string `json:"gender" validate:"required,oneof=male female other"`
	Phone    string `json:"phone" validate:"required,min=10,max=20"`
}
