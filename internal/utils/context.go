package utils

const UserIDKey contextKey = "user_id"

const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)
