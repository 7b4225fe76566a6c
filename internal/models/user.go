package models

import "time"

// User is an account in the record store. Password holds a bcrypt hash and
// is only ever read by the account service.
type User struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// WithoutPassword returns a copy of the user with the password hash cleared.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}
