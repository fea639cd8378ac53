package api

// APIError is a custom error type for server construction errors
type APIError string

// Error implements the error interface
func (e APIError) Error() string {
	return string(e)
}

const (
	ErrNilConfig           APIError = "config cannot be nil"
	ErrNilQuickRollService APIError = "quick roll service cannot be nil"
	ErrNilDiceService      APIError = "dice service cannot be nil"
)
