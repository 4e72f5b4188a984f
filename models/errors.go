package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// Ошибки бизнес-процесса, транслируются в HTTP статусы в base_controller.
var (
	ErrNotFound       = errors.New("запись не найдена")
	ErrNotAuthorized  = errors.New("операция недоступна")
	ErrAlreadyDecided = errors.New("по заявке уже принято решение")
)

type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(format string, args ...interface{}) error {
	return ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var vErr ValidationError
	return errors.As(err, &vErr)
}
