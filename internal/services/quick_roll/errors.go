package quick_roll

// QuickRollError is a custom error type for preset-related errors
type QuickRollError string

// Error implements the error interface
func (e QuickRollError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrValidation        QuickRollError = "invalid quick roll"
	ErrStoreUnavailable  QuickRollError = "quick roll store unavailable"
	ErrNotAuthenticated  QuickRollError = "not authenticated"
	ErrQuickRollNotFound QuickRollError = "quick roll not found"
	ErrNilConfig         QuickRollError = "config cannot be nil"
	ErrNilInput          QuickRollError = "input cannot be nil"
)
