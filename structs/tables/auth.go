package tables

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// RoleAdministrator is the only role allowed to obtain an access token
const RoleAdministrator = "administrator"

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	Id            int64     `json:"id" bun:"id,pk,autoincrement"`
	Name          string    `json:"name" bun:"name,notnull"`
	Email         string    `json:"email" bun:"email,unique,notnull"`
	Role          *string   `json:"role" bun:"role"`
	PasswordHash  string    `json:"-" bun:"password,notnull"`
	CreatedAt     time.Time `json:"created_at" bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `json:"updated_at" bun:"updated_at,notnull,default:current_timestamp"`
}

func (u *User) IsAdministrator() bool {
	return u.Role != nil && *u.Role == RoleAdministrator
}

var _ bun.BeforeAppendModelHook = (*User)(nil)

func (u *User) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	touchTimestamps(query, &u.CreatedAt, &u.UpdatedAt)
	return nil
}

// touchTimestamps fills created_at on insert and updated_at on insert and update
func touchTimestamps(query bun.Query, createdAt, updatedAt *time.Time) {
	now := time.Now()
	switch query.(type) {
	case *bun.InsertQuery:
		if createdAt.IsZero() {
			*createdAt = now
		}
		*updatedAt = now
	case *bun.UpdateQuery:
		*updatedAt = now
	}
}
