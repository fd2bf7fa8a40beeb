package api

// swagger:model api.UserForm
type UserForm struct {
	FirstName   string `form:"firstName" validate:"required" example:"Ann"`
	LastName    string `form:"lastName" validate:"required" example:"Lee"`
	Email       string `form:"email" validate:"required,simpleemail" example:"ann@example.com"`
	Phone       string `form:"phone" validate:"required,phone10" example:"5551234567"`
	DateOfBirth string `form:"dateOfBirth" validate:"required,calendardate" example:"1990-01-01"`

	// 只在更新且未附檔時由前端帶入，伺服器不信任此值
	ProfileImage string `form:"profileImage" swaggerignore:"true"`
}
