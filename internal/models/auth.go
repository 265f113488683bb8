package models

// LoginRequest carries the credentials for a tenant-agnostic login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the signed token and the user's identity summary.
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
