// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo's Validator
// interface.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the request validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

// bind decodes and validates a request body. Malformed JSON and failed
// validation both surface as BadRequest.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperror.BadRequest("Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return apperror.BadRequest("Invalid request body")
	}
	return nil
}
