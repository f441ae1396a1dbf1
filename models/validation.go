package models

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// NewValidator returns the validator shared by the services. Request shapes
// above carry their rules as struct tags.
func NewValidator() *validatorv10.Validate {
	return validatorv10.New()
}
