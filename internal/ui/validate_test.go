package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		FirstName:   "Ann",
		LastName:    "Lee",
		Email:       "ann@x.io",
		Phone:       "5551234567",
		DateOfBirth: "1990-05-02",
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Form)
		field  string
		msg    string
	}{
		{"valid", func(*Form) {}, "", ""},
		{"empty first name", func(f *Form) { f.FirstName = "" }, FieldFirstName, "FirstName is mandatory to fill."},
		{"empty last name", func(f *Form) { f.LastName = "" }, FieldLastName, "LastName is mandatory to fill."},
		{"empty phone", func(f *Form) { f.Phone = "" }, FieldPhone, "Phone is mandatory to fill."},
		{"email without at", func(f *Form) { f.Email = "a.b.com" }, FieldEmail, "Please enter a valid email address."},
		{"short phone", func(f *Form) { f.Phone = "12345" }, FieldPhone, "Please enter a valid 10-digit phone number."},
		{"ten digit phone", func(f *Form) { f.Phone = "1234567890" }, "", ""},
		{"bad date", func(f *Form) { f.DateOfBirth = "not-a-date" }, FieldDateOfBirth, "Please enter a valid date of birth."},
		{"iso date", func(f *Form) { f.DateOfBirth = "1990-05-02" }, "", ""},
		// 必填檢查優先於格式檢查
		{"missing wins over malformed", func(f *Form) { f.Email = "bad"; f.DateOfBirth = "" }, FieldDateOfBirth, "DateOfBirth is mandatory to fill."},
		{"email checked before phone", func(f *Form) { f.Email = "bad"; f.Phone = "1" }, FieldEmail, "Please enter a valid email address."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.mutate(&f)
			err := Validate(f)
			if tc.msg == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tc.field, verr.Field)
			require.Equal(t, tc.msg, verr.Error())
		})
	}
}
