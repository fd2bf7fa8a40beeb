package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type form struct {
	FirstName   string `form:"firstName" validate:"required"`
	Email       string `form:"email" validate:"required,simpleemail"`
	Phone       string `form:"phone" validate:"required,phone10"`
	DateOfBirth string `form:"dateOfBirth" validate:"required,calendardate"`
}

func validForm() form {
	return form{FirstName: "Ann", Email: "ann@x.io", Phone: "5551234567", DateOfBirth: "1990-01-01"}
}

func TestPatterns(t *testing.T) {
	require.True(t, ValidEmail("a@b.co"))
	require.False(t, ValidEmail("a@b"))
	require.False(t, ValidEmail("a b@c.d"))
	require.True(t, ValidPhone("5551234567"))
	require.False(t, ValidPhone("12345"))
	require.False(t, ValidPhone("555123456a"))
}

func TestParseDate(t *testing.T) {
	d, err := NormalizeDate("1990-02-03")
	require.NoError(t, err)
	require.Equal(t, "1990-02-03", d)

	d, err = NormalizeDate("1990-02-03T10:00:00Z")
	require.NoError(t, err)
	require.Equal(t, "1990-02-03", d)

	_, err = ParseDate("1990-13-40")
	require.Error(t, err)
	_, err = ParseDate("not a date")
	require.Error(t, err)
}

func TestMandatoryMessage(t *testing.T) {
	require.Equal(t, "FirstName is mandatory to fill.", MandatoryMessage("firstName"))
	require.Equal(t, "", MandatoryMessage(""))
}

func TestValidatorMessages(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(validForm()))

	cases := []struct {
		name   string
		mutate func(*form)
		want   string
	}{
		{"missing first name", func(f *form) { f.FirstName = "" }, "FirstName is mandatory to fill."},
		{"missing date", func(f *form) { f.DateOfBirth = "" }, "DateOfBirth is mandatory to fill."},
		{"bad email", func(f *form) { f.Email = "nope" }, MsgInvalidEmail},
		{"bad phone", func(f *form) { f.Phone = "12345" }, MsgInvalidPhone},
		{"bad date", func(f *form) { f.DateOfBirth = "31/31/1990" }, MsgInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.mutate(&f)
			err := v.Validate(f)
			require.Error(t, err)
			require.Equal(t, tc.want, Message(err))
		})
	}
}

func TestMessageNonValidationError(t *testing.T) {
	require.Equal(t, "boom", Message(errors.New("boom")))
}

func TestMessagePrefersMissingField(t *testing.T) {
	f := validForm()
	f.Email = "nope"
	f.DateOfBirth = ""
	require.Equal(t, "DateOfBirth is mandatory to fill.", Message(New().Validate(f)))
}
