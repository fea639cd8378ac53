package auth

// AuthError is a custom error type for token errors
type AuthError string

// Error implements the error interface
func (e AuthError) Error() string {
	return string(e)
}

const (
	ErrNilConfig      AuthError = "config cannot be nil"
	ErrMissingSecret  AuthError = "signing secret cannot be empty"
	ErrInvalidToken   AuthError = "invalid token"
	ErrMissingSubject AuthError = "token has no subject"
)
