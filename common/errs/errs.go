package errs

import (
	"errors"
	"fmt"
)

type HttpError struct {
	Code    int
	Message string
	Data    any
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("code %d: %s, data: %v", e.Code, e.Message, e.Data)
}

var (
	ErrConcertNotFound       = errors.New("concert not found")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrInsufficientTickets   = errors.New("not enough tickets remaining")
	ErrReservationFailed     = errors.New("reservation failed")
	ErrCaptureFailed         = errors.New("payment capture failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrUnknownProvider       = errors.New("unknown ticket provider")
	ErrDuplicateProvider     = errors.New("duplicate ticket provider")
)

// ValidationError carries messages keyed by request field. An empty key holds
// errors that do not belong to a single field.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}
