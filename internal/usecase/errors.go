package usecase

import "errors"

const CodeInvalidInput = "INVALID_INPUT"

// DomainError is returned for input the use case refuses to act on. It is
// raised before any remote call.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var target *DomainError
	return errors.As(err, &target)
}
