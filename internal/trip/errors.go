package trip

import "errors"

var (
	ErrorNotImplemented     = errors.New("not implemented")
	ErrorMissingDestination = errors.New("destination is empty once sanitized")
)
