package ui

import (
	"user-records/internal/validation"
)

// ValidationError 是送出前的表單錯誤，Message 直接顯示給使用者
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validate checks f in a fixed order and reports the first failure:
// missing fields, then email, phone and date of birth.
func Validate(f Form) error {
	required := []struct{ name, value string }{
		{FieldFirstName, f.FirstName},
		{FieldLastName, f.LastName},
		{FieldEmail, f.Email},
		{FieldPhone, f.Phone},
		{FieldDateOfBirth, f.DateOfBirth},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.name, Message: validation.MandatoryMessage(r.name)}
		}
	}
	if !validation.ValidEmail(f.Email) {
		return &ValidationError{Field: FieldEmail, Message: validation.MsgInvalidEmail}
	}
	if !validation.ValidPhone(f.Phone) {
		return &ValidationError{Field: FieldPhone, Message: validation.MsgInvalidPhone}
	}
	if _, err := validation.ParseDate(f.DateOfBirth); err != nil {
		return &ValidationError{Field: FieldDateOfBirth, Message: validation.MsgInvalidDate}
	}
	return nil
}
