package dice

// DiceError is a custom error type for roll-related errors
type DiceError string

// Error implements the error interface
func (e DiceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig       DiceError = "config cannot be nil"
	ErrNilRoller       DiceError = "dice roller cannot be nil"
	ErrNilService      DiceError = "dice service cannot be nil"
	ErrNilInput        DiceError = "roll input cannot be nil"
	ErrRollInProgress  DiceError = "a roll is already in progress"
	ErrInvalidNotation DiceError = "invalid dice notation"
)
