package discord

// BotError is a custom error type for bot setup errors
type BotError string

// Error implements the error interface
func (e BotError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig           BotError = "config cannot be nil"
	ErrMissingToken        BotError = "token cannot be empty"
	ErrNilDiceService      BotError = "dice service cannot be nil"
	ErrNilQuickRollService BotError = "quick roll service cannot be nil"
)
