package errors

import (
	"fmt"
)

var (
	ErrNotFound              = fmt.Errorf("not found")
	ErrInvalidInput          = fmt.Errorf("invalid input")
	ErrDuplicateRegistration = fmt.Errorf("duplicate registration number")
)
