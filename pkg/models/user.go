package models

// User is a registered account. Password is stored as supplied; hashing is
// out of scope for this server.
type User struct {
	Account  string `json:"account"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// CheckPassword reports whether the supplied password matches the stored
// one.
func (u User) CheckPassword(password string) bool {
	return u.Password != "" && u.Password == password
}
