// Package validation holds the user-form rules shared by the HTTP API and
// the client, plus the go-playground/validator adapter echo uses.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// 使用者可見的錯誤訊息
const (
	MsgInvalidEmail = "Please enter a valid email address."
	MsgInvalidPhone = "Please enter a valid 10-digit phone number."
	MsgInvalidDate  = "Please enter a valid date of birth."
)

// dateLayouts 依序嘗試；HTML date input 送出的是第一種
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
}

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool { return emailPattern.MatchString(s) }

// ValidPhone reports whether s is exactly ten decimal digits.
func ValidPhone(s string) bool { return phonePattern.MatchString(s) }

// ParseDate 解析生日；成功時回傳的時間已截到日期
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New("invalid date")
}

// NormalizeDate returns s as YYYY-MM-DD, the form stored in the database.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}

// MandatoryMessage 產生必填欄位的提示，例如 "FirstName is mandatory to fill."
func MandatoryMessage(field string) string {
	if field == "" {
		return ""
	}
	return strings.ToUpper(field[:1]) + field[1:] + " is mandatory to fill."
}
