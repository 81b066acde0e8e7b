package ports

// TokenService issues and verifies the signed identity tokens exchanged
// at login and on every protected request.
type TokenService interface {
	// Issue returns a signed token embedding the user id.
	Issue(userID string) (string, error)
	// Verify returns the embedded user id, or domain.ErrInvalidToken when
	// the token is malformed, tampered with, or expired.
	Verify(token string) (string, error)
}
