package models

// User is the signed-in identity as returned by /login and cached locally.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Role is the human-readable role label.
func (u User) Role() string {
	if u.IsAdmin {
		return "Administrator"
	}
	return "User"
}

// AdminUser is a row of the admin user table; the id is always present.
type AdminUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// LoginResult is the body of a successful POST /login.
type LoginResult struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

// SignupResult is the body of a successful POST /signup.
type SignupResult struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
}

// Success is the generic acknowledgement of a delete.
type Success struct {
	Success bool `json:"success"`
}

// Created carries the id of a freshly created post or comment.
type Created struct {
	ID int64 `json:"id"`
}
