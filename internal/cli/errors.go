package cli

// CLIError is a custom error type for terminal client setup errors
type CLIError string

// Error implements the error interface
func (e CLIError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig           CLIError = "config cannot be nil"
	ErrNilIO               CLIError = "input and output cannot be nil"
	ErrNilDiceService      CLIError = "dice service cannot be nil"
	ErrNilQuickRollService CLIError = "quick roll service cannot be nil"
	ErrNilLocal            CLIError = "local repository cannot be nil"
	ErrNilGate             CLIError = "gate cannot be nil"
	ErrSignInDisabled      CLIError = "sign-in is not configured"
)
