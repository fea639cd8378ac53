package quick_roll

// RepositoryError is the error type returned for invalid repository calls
type RepositoryError string

// Error implements the error interface
func (e RepositoryError) Error() string {
	return string(e)
}

const (
	ErrNilConfig         RepositoryError = "config cannot be nil"
	ErrNilRedisClient    RepositoryError = "redis client cannot be nil"
	ErrNilPool           RepositoryError = "database pool cannot be nil"
	ErrNilStorage        RepositoryError = "storage cannot be nil"
	ErrNilInput          RepositoryError = "input cannot be nil"
	ErrMissingOwner      RepositoryError = "owner id cannot be empty"
	ErrMissingID         RepositoryError = "quick roll id cannot be empty"
	ErrQuickRollNotFound RepositoryError = "quick roll not found"
)
