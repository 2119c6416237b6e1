// Package service holds the board's use cases. Services validate input,
// enforce ownership and paging rules, and delegate persistence to storage
// interfaces so they can be tested with hand-written mocks.
package service

import "github.com/boards-dev/boards/internal/validation"

type Validator interface {
	Validate(form any) error
}

// FormValidator checks forms with the struct tags from the validation package.
type FormValidator struct{}

func (FormValidator) Validate(form any) error {
	return validation.Validate(form)
}
