package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator for Echo and registers the
// simpleemail, phone10 and calendardate tags.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// RegisterValidation 只會在 tag 名稱為空或 fn 為 nil 時失敗
	_ = v.RegisterValidation("simpleemail", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

// Validate calls the underlying validator
func (cv *Validator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// Message turns a validation failure into the same wording the client
// shows. Missing fields win over malformed ones; otherwise the first
// failing field is reported.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	for _, e := range verrs {
		if e.Tag() == "required" {
			fe = e
			break
		}
	}
	switch fe.Tag() {
	case "required":
		return MandatoryMessage(fe.Field())
	case "simpleemail":
		return MsgInvalidEmail
	case "phone10":
		return MsgInvalidPhone
	case "calendardate":
		return MsgInvalidDate
	}
	return fe.Error()
}
