package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

const (
	ErrNilConfig  SessionError = "config cannot be nil"
	ErrNilGate    SessionError = "session gate cannot be nil"
	ErrNilService SessionError = "quick roll service cannot be nil"
	ErrStaleLoad  SessionError = "identity changed while loading, result discarded"
)
