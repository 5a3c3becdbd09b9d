package user

type User struct {
	ID       int
	Username string
	Email    string
	Password string
	Roles    []string
}

// UserInfo is the public view of an authenticated user.
type UserInfo struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

func (u User) Info() UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, Email: u.Email, Roles: u.Roles}
}
