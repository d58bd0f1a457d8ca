package domain

// AdminAccount is a username/password pair for the admin interface.
// Passwords are stored and compared as literal text.
type AdminAccount struct {
	ID       int64
	Username string
	Password string
}
