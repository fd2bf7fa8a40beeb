// Package ui holds the client side of the user-record manager: an explicit
// state container, the reducer that applies actions to it, form
// validation, the search filter and the HTTP API client.
package ui

import (
	"user-records/internal/model"
)

// File 是使用者選取、尚未上傳的圖片
type File struct {
	Name string
	Data []byte
}

// Form mirrors the editable fields of a user record.
type Form struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	DateOfBirth  string
	ProfileImage *File
}

type State struct {
	Users    []model.User
	Selected *model.User
	Form     Form
	Query    string
}

type Mode int

const (
	Idle Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "idle"
}

// Mode 由 Selected 推導：有選取即為編輯中
func (s State) Mode() Mode {
	if s.Selected != nil {
		return Editing
	}
	return Idle
}

// Visible 回傳套用搜尋條件後要顯示的清單
func (s State) Visible() []model.User {
	return Filter(s.Users, s.Query)
}

// Action is one user interaction or one API result.
type Action interface {
	action()
}

type (
	InputChanged  struct{ Field, Value string }
	FileChosen    struct{ File *File }
	EditSelected  struct{ User model.User }
	SearchChanged struct{ Query string }
	Submit        struct{}
	Delete        struct{ ID int }

	Loaded  struct{ Users []model.User }
	Saved   struct{ User model.User }
	Removed struct{ ID int }
)

func (InputChanged) action()  {}
func (FileChosen) action()    {}
func (EditSelected) action()  {}
func (SearchChanged) action() {}
func (Submit) action()        {}
func (Delete) action()        {}
func (Loaded) action()        {}
func (Saved) action()         {}
func (Removed) action()       {}

// 表單欄位名稱，與 API 的 form key 相同
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldDateOfBirth = "dateOfBirth"
)

// Reduce applies a pure action to s. Submit and Delete need the network
// and are handled by App; Reduce returns s unchanged for them.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case InputChanged:
		s.Form = s.Form.with(a.Field, a.Value)
	case FileChosen:
		s.Form.ProfileImage = a.File
	case EditSelected:
		u := a.User
		s.Selected = &u
		s.Form = Form{
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			Email:       u.Email,
			Phone:       u.Phone,
			DateOfBirth: u.DateOfBirth,
		}
	case SearchChanged:
		s.Query = a.Query
	case Loaded:
		s.Users = a.Users
	case Saved:
		s.Form = Form{}
		s.Selected = nil
	case Removed:
		users := make([]model.User, 0, len(s.Users))
		for _, u := range s.Users {
			if u.ID != a.ID {
				users = append(users, u)
			}
		}
		s.Users = users
		if s.Selected != nil && s.Selected.ID == a.ID {
			s.Selected = nil
			s.Form = Form{}
		}
	}
	return s
}

func (f Form) with(field, value string) Form {
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldDateOfBirth:
		f.DateOfBirth = value
	}
	return f
}
