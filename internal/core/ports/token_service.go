package ports

// TokenService issues and validates the bearer tokens that bind a request to
// a user id. Tokens are self-contained; no server-side session state exists.
type TokenService interface {
	Issue(userID string) (string, error)
	// Validate returns the user id carried by the token. It fails with
	// domain.ErrInvalidToken on bad signature, malformed input, or expiry,
	// and with domain.ErrMalformedClaims when a valid token carries no
	// user id.
	Validate(token string) (string, error)
}
