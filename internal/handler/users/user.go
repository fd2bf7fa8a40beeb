package users

import (
	"errors"
	"net/http"
	"strconv"

	"user-records/internal/api"
	"user-records/internal/model"
	"user-records/internal/service"
	"user-records/internal/store"
	"user-records/internal/upload"
	"user-records/internal/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgInternal = "Internal Server Error"
	msgNotFound = "User not found"
	msgDeleted  = "User deleted successfully"

	profileImageField = "profileImage"
)

var (
	createUser      = store.CreateUser
	getUserByID     = store.GetUserByID
	updateUser      = store.UpdateUser
	deleteUser      = store.DeleteUser
	listUsers       = service.ListUsers
	invalidateUsers = service.InvalidateUsers
)

// @Summary     Create a user
// @Description 接收 multipart 表單建立使用者，可附帶大頭照
// @Tags        users
// @Accept      multipart/form-data
// @Produce     json
// @Param       firstName    formData string true  "名"
// @Param       lastName     formData string true  "姓"
// @Param       email        formData string true  "Email"
// @Param       phone        formData string true  "10 位數電話"
// @Param       dateOfBirth  formData string true  "生日 (YYYY-MM-DD)"
// @Param       profileImage formData file   false "大頭照"
// @Success     200          {object} api.UserResponse
// @Failure     400          {object} api.ErrorResponse
// @Failure     500          {object} api.ErrorResponse
// @Router      /users [post]
func CreateUserHandler(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, dob, msg := bindUserForm(c)
		if msg != "" {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msg})
		}

		image, err := saveProfileImage(c, d.Sink)
		if err != nil {
			return internalError(c, d, "save profile image", err)
		}

		user, err := createUser(c.Request().Context(), d.DB, &model.User{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			Phone:        req.Phone,
			DateOfBirth:  dob,
			ProfileImage: image,
		})
		if err != nil {
			return internalError(c, d, "create user", err)
		}
		logSaved(c, d, "user created", user)

		invalidate(c, d)
		return c.JSON(http.StatusOK, toResponse(*user))
	}
}

// @Summary     List users
// @Description 回傳所有使用者，依 id 排序
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users [get]
func ListUsersHandler(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := listUsers(c.Request().Context(), d.DB, d.cache(), d.CacheTTL)
		if res.CacheErr != nil {
			d.logger(c).Warn("users cache unavailable", zap.Error(res.CacheErr))
		}
		if err != nil {
			return internalError(c, d, "list users", err)
		}

		out := make([]api.UserResponse, 0, len(res.Users))
		for _, u := range res.Users {
			out = append(out, toResponse(u))
		}
		return c.JSON(http.StatusOK, out)
	}
}

// @Summary     Update a user by ID
// @Description 以表單內容整筆取代使用者資料；未附新檔時保留原本的大頭照
// @Tags        users
// @Accept      multipart/form-data
// @Produce     json
// @Param       id           path     int    true  "使用者 ID"
// @Param       firstName    formData string true  "名"
// @Param       lastName     formData string true  "姓"
// @Param       email        formData string true  "Email"
// @Param       phone        formData string true  "10 位數電話"
// @Param       dateOfBirth  formData string true  "生日 (YYYY-MM-DD)"
// @Param       profileImage formData file   false "新的大頭照"
// @Success     200          {object} api.UserResponse
// @Failure     400          {object} api.ErrorResponse
// @Failure     404          {object} api.ErrorResponse
// @Failure     500          {object} api.ErrorResponse
// @Router      /users/update/{id} [put]
func UpdateUserHandler(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid user ID"})
		}

		req, dob, msg := bindUserForm(c)
		if msg != "" {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msg})
		}

		// 先確認資料存在，避免對不存在的 ID 留下孤兒檔案
		ctx := c.Request().Context()
		current, err := getUserByID(ctx, d.DB, id)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Error: msgNotFound})
		}
		if err != nil {
			return internalError(c, d, "load user", err)
		}

		image, err := saveProfileImage(c, d.Sink)
		if err != nil {
			return internalError(c, d, "save profile image", err)
		}
		if image == nil {
			// 沒有新檔案：沿用資料庫中的值，不採信表單帶來的 profileImage
			image = current.ProfileImage
		}

		user, err := updateUser(ctx, d.DB, &model.User{
			ID:           id,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			Phone:        req.Phone,
			DateOfBirth:  dob,
			ProfileImage: image,
		})
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Error: msgNotFound})
		}
		if err != nil {
			return internalError(c, d, "update user", err)
		}
		logSaved(c, d, "user updated", user)

		invalidate(c, d)
		return c.JSON(http.StatusOK, toResponse(*user))
	}
}

// @Summary     Delete a user by ID
// @Description 刪除使用者；已上傳的檔案不會被刪除
// @Tags        users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{id} [delete]
func DeleteUserHandler(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid user ID"})
		}

		err = deleteUser(c.Request().Context(), d.DB, id)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Error: msgNotFound})
		}
		if err != nil {
			return internalError(c, d, "delete user", err)
		}

		invalidate(c, d)
		return c.JSON(http.StatusOK, api.MessageResponse{Message: msgDeleted})
	}
}

// bindUserForm 綁定並驗證表單；msg 非空時應回 400
func bindUserForm(c echo.Context) (req api.UserForm, dob string, msg string) {
	if err := c.Bind(&req); err != nil {
		return req, "", "invalid form data"
	}
	if err := c.Validate(&req); err != nil {
		return req, "", validation.Message(err)
	}
	dob, err := validation.NormalizeDate(req.DateOfBirth)
	if err != nil {
		return req, "", validation.MsgInvalidDate
	}
	return req, dob, ""
}

// saveProfileImage 把 profileImage 檔案寫入 sink；沒有檔案時回傳 nil
func saveProfileImage(c echo.Context, sink upload.Sink) (*string, error) {
	fh, err := c.FormFile(profileImageField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	name, err := sink.Store(src, fh.Filename)
	if err != nil {
		return nil, err
	}
	return &name, nil
}

func logSaved(c echo.Context, d Deps, msg string, u *model.User) {
	fields := []zap.Field{zap.Int("id", u.ID)}
	if u.ProfileImage != nil && d.Sink != nil {
		fields = append(fields, zap.String("image_url", d.Sink.URLFor(*u.ProfileImage)))
	}
	d.logger(c).Info(msg, fields...)
}

func invalidate(c echo.Context, d Deps) {
	if err := invalidateUsers(c.Request().Context(), d.cache()); err != nil {
		d.logger(c).Warn("invalidate users cache", zap.Error(err))
	}
}

func internalError(c echo.Context, d Deps, op string, err error) error {
	d.logger(c).Error(op, zap.Error(err))
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: msgInternal})
}

func toResponse(u model.User) api.UserResponse {
	return api.UserResponse{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Phone:        u.Phone,
		DateOfBirth:  u.DateOfBirth,
		ProfileImage: u.ProfileImage,
	}
}
