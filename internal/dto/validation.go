package dto

import (
	"github.com/SscSPs/freelancer_books/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// RegisterValidators adds the custom binding tags used by the request DTOs.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("record_variant", validateRecordVariant); err != nil {
		return err
	}
	return v.RegisterValidation("money", validateMoney)
}

func validateRecordVariant(fl validator.FieldLevel) bool {
	_, err := domain.ParseRecordVariant(fl.Field().String())
	return err == nil
}

// validateMoney accepts a plain decimal string with at most two fraction digits.
func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.Equal(d.Round(2))
}
