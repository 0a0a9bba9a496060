package service

import (
	"errors"

	"github.com/lessensdelharmonie/harmonie/internal/api/validation"
)

// Sentinel errors for service layer
var (
	ErrValidation       = errors.New("validation error")
	ErrMalformedPayload = validation.ErrMalformedPayload
)
