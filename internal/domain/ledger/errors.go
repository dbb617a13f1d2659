package ledger

import "errors"

var (
	ErrUnauthorized         = errors.New("not an authorized signer")
	ErrAlreadyApproved      = errors.New("signer has already approved")
	ErrTargetNotFound       = errors.New("target not found")
	ErrInvalidConfiguration = errors.New("invalid ledger configuration")
	ErrInvalidIdentity      = errors.New("invalid identity")
)
