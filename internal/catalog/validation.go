package catalog

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/rogerio-castellano/warehouse-inventory/internal/apperrors"
)

type fieldErrors []apperrors.FieldError

func (f *fieldErrors) add(field, description string) {
	*f = append(*f, apperrors.FieldError{Field: field, Description: description})
}

func (f *fieldErrors) required(field, value string, maxLen int) {
	if strings.TrimSpace(value) == "" {
		f.add(field, field+" is required")
		return
	}
	f.maxLen(field, value, maxLen)
}

func (f *fieldErrors) maxLen(field, value string, maxLen int) {
	if len(value) > maxLen {
		f.add(field, fmt.Sprintf("%s must be at most %d characters", field, maxLen))
	}
}

func (f *fieldErrors) nonNegative(field string, v int) {
	if v < 0 {
		f.add(field, field+" cannot be negative")
	}
}

func (f *fieldErrors) email(field, value string) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		f.add(field, field+" must be a valid email address")
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.Validation(f...)
}
