package models

import "github.com/golang-jwt/jwt/v5"

// User is the profile stored in the `user` cookie.
type User struct {
	ID       any    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	JWTToken string `json:"jwt_token,omitempty"`
}

// Session is the authenticated identity carried by the request cookies.
type Session struct {
	User  *User
	Token string
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the upstream answer for login and signup.
type AuthResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

type LoginResponse struct {
	User           *User    `json:"user,omitempty"`
	RemainingTries int      `json:"remaining_tries,omitempty"`
	Message        string   `json:"message,omitempty"`
	Session        *Session `json:"-"`
}

// TokenClaims is the subset of upstream token claims the gateway reads.
type TokenClaims struct {
	UserID any    `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
