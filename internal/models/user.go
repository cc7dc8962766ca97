package models

import (
	"strings"
	"time"
)

// User описывает пользователя платформы в таблице users.
type User struct {
	ID        ID         `db:"id" json:"id"`
	Name      *string    `db:"name" json:"name"`
	Email     *string    `db:"email" json:"email"`
	Status    string     `db:"status" json:"status"`
	CreatedAt *time.Time `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// DisplayName возвращает имя, иначе локальную часть email, иначе идентификатор.
func (u *User) DisplayName() string {
	if u == nil {
		return "Unknown User"
	}
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	if u.Email != nil && *u.Email != "" {
		return strings.SplitN(*u.Email, "@", 2)[0]
	}
	return "User ID: " + u.ID.String()
}

// Profile - публичные данные пользователя из таблицы profiles.
type Profile struct {
	ID       ID      `db:"id" json:"id"`
	FullName *string `db:"full_name" json:"full_name"`
	Email    *string `db:"email" json:"email"`
}

// ProfileColumns - колонки, нужные для join.
var ProfileColumns = []string{"id", "full_name", "email"}
