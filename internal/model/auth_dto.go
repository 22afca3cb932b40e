package model

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminDTO struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    AdminDTO `json:"user"`
}
