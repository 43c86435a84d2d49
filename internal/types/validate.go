// Package types provides type definitions for structured data used throughout the executive search system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// newValidator builds a validator that knows the recommendation label set
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("recommendation", func(fl validator.FieldLevel) bool {
		return Recommendation(fl.Field().String()).IsFinal()
	})
	return v
}

// Validate validates the VettingScore using the validator.
func (s *VettingScore) Validate() error {
	return newValidator().Struct(s)
}

// Validate validates the CandidateProfile using the validator.
func (p *CandidateProfile) Validate() error {
	return newValidator().Struct(p)
}
