package domain

// UserSession is the logged-in user's credential context.
//
// It is set at login, cleared at logout, and passed explicitly to every
// component that talks to the backend. There is no ambient lookup.
type UserSession struct {
	// Email identifies the user to the backend.
	Email string

	// Token is the bearer credential issued at login.
	Token string
}

// Valid returns true if the session carries a usable credential.
func (s UserSession) Valid() bool {
	return s.Token != ""
}
