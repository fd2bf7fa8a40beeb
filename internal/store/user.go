package store

import (
	"context"
	"errors"
	"fmt"

	"user-records/internal/database"
	"user-records/internal/model"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound 表示指定 id 的使用者不存在
var ErrNotFound = errors.New("user not found")

const userColumns = `id, first_name, last_name, email, COALESCE(phone, ''),
		COALESCE(to_char(date_of_birth, 'YYYY-MM-DD'), ''), profile_image`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Phone,
		&u.DateOfBirth,
		&u.ProfileImage,
	)
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, email, phone, date_of_birth, profile_image)
		 VALUES ($1, $2, $3, $4, $5::date, $6)
		 RETURNING `+userColumns,
		u.FirstName,
		u.LastName,
		u.Email,
		u.Phone,
		u.DateOfBirth,
		u.ProfileImage,
	)
	created := &model.User{}
	if err := scanUser(row, created); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return created, nil
}

// ListUsers 依 id 順序回傳全部使用者；空表回傳空 slice 而非 nil
func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetUserByID: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

// UpdateUser 以 u 的內容整筆取代可編輯欄位，包含 ProfileImage。
// 呼叫端若要保留原圖片，必須自行帶入舊檔名。
func UpdateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, email = $3, phone = $4,
		        date_of_birth = $5::date, profile_image = $6
		 WHERE id = $7
		 RETURNING `+userColumns,
		u.FirstName,
		u.LastName,
		u.Email,
		u.Phone,
		u.DateOfBirth,
		u.ProfileImage,
		u.ID,
	)
	updated := &model.User{}
	if err := scanUser(row, updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("UpdateUser: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("UpdateUser: %w", err)
	}
	return updated, nil
}

func DeleteUser(ctx context.Context, db database.DB, ID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		ID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	return nil
}
