package structs

import (
	"time"

	"github.com/google/uuid"
)

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

type AuthClaims struct {
	Sub   int64     `json:"sub"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
	Iat   time.Time `json:"iat"`
	Exp   time.Time `json:"exp"`
	Jti   uuid.UUID `json:"jti"`
}

type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Role     *string `json:"role,omitempty"`
	Password string  `json:"password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Role     *string `json:"role,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// BulkDeleteRequest is shared by the product and user bulk delete endpoints
type BulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}
