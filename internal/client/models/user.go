package models

// User is the identity projection the backend exposes for an account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// UserUpdate carries the profile fields a user may change. Nil pointers mean
// "leave unchanged" and are omitted from the PATCH body.
type UserUpdate struct {
	Email  *string `json:"email,omitempty"`
	Name   *string `json:"name,omitempty"`
	Bio    *string `json:"bio,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// Merge returns a copy of u with every non-empty field of upd applied over
// it. Fields the backend omitted in upd keep their previous values.
func Merge(u User, upd User) User {
	out := u
	if upd.ID != "" {
		out.ID = upd.ID
	}
	if upd.Username != "" {
		out.Username = upd.Username
	}
	if upd.Email != "" {
		out.Email = upd.Email
	}
	if upd.Name != "" {
		out.Name = upd.Name
	}
	if upd.Bio != "" {
		out.Bio = upd.Bio
	}
	if upd.Avatar != "" {
		out.Avatar = upd.Avatar
	}
	return out
}
