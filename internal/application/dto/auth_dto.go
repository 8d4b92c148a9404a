package dto

import "time"

// SignupRequest entrada para registro público (password en texto, se hashea en use case).
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"omitempty,max=200"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResponse salida de signup/login: usuario + token del dominio user.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// MeUser perfil propio con el conteo de sitios poseídos.
type MeUser struct {
	UserResponse
	SitesCount int `json:"sites_count"`
}

// MeResponse salida de GET /auth/me.
type MeResponse struct {
	User MeUser `json:"user"`
}
