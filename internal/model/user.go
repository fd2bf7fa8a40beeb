// File: internal/model/user.go
package model

// User is the single managed record: profile fields plus an optional image
// reference. ID is the only identifier exposed to clients.
type User struct {
	ID           int     `db:"id" json:"id"`
	FirstName    string  `db:"first_name" json:"firstName"`
	LastName     string  `db:"last_name" json:"lastName"`
	Email        string  `db:"email" json:"email"`
	Phone        string  `db:"phone" json:"phone"`
	DateOfBirth  string  `db:"date_of_birth" json:"dateOfBirth"`
	ProfileImage *string `db:"profile_image" json:"profileImage"`
}

// FullName 回傳 "First Last"，供搜尋與顯示使用
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
