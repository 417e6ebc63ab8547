package services

import (
	"context"
	"errors"
	"fmt"
	"shop_admin_server/database"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const emailTakenMessage = "The email has already been taken."

// tokenStore keeps revoked token ids
type tokenStore interface {
	BlacklistToken(ctx context.Context, jti uuid.UUID, exp time.Time) error
	IsTokenBlacklisted(ctx context.Context, jti uuid.UUID) (bool, error)
}

// accountFinder loads the user a token was issued to
type accountFinder interface {
	Get(ctx context.Context, id int64) (*tables.User, error)
}

type AuthService struct {
	logger   *gecho.Logger
	cfg      *structs.Config
	db       bun.IDB
	tokens   tokenStore
	accounts accountFinder
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, db bun.IDB, tokens tokenStore, accounts accountFinder) *AuthService {
	return &AuthService{
		logger:   logger,
		cfg:      cfg,
		db:       db,
		tokens:   tokens,
		accounts: accounts,
	}
}

// Login checks the credentials and issues an access token for administrators
func (as *AuthService) Login(ctx context.Context, req *structs.AuthRequest) (*tables.User, string, error) {
	startTime := time.Now()

	user, err := database.Query[tables.User](as.db).Where("email", req.Email).First(ctx)
	if err != nil {
		as.logger.Error("Unexpected database error during login", gecho.Field("error", err))
		return nil, "", lib.MapDBError(err)
	}
	if user == nil {
		as.logger.Debug("User not found during login attempt", gecho.Field("identifier", req.Email))
		return nil, "", lib.ErrInvalidCredentials
	}

	valid, err := lib.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash",
			gecho.Field("error", err),
			gecho.Field("user_id", user.Id),
		)
		return nil, "", lib.ErrInvalidCredentials
	}
	if !valid {
		as.logger.Debug("Invalid password attempt",
			gecho.Field("identifier", req.Email),
			gecho.Field("user_id", user.Id),
		)
		return nil, "", lib.ErrInvalidCredentials
	}

	if !user.IsAdministrator() {
		as.logger.Warn("Non-administrator login refused", gecho.Field("user_id", user.Id))
		return nil, "", lib.ErrNotAdministrator
	}

	token, _, err := lib.GenerateAccessToken(user.Id, user.Email, *user.Role,
		as.cfg.Auth.AccessTokenSecret, as.cfg.Auth.AccessTokenExpiry)
	if err != nil {
		return nil, "", err
	}

	as.logger.Debug("User logged in successfully",
		gecho.Field("user_id", user.Id),
		gecho.Field("elapsed_time_ms", time.Since(startTime).Milliseconds()),
	)
	return user, token, nil
}

// Register creates a user account. A taken email is reported as a field error.
func (as *AuthService) Register(ctx context.Context, req *structs.RegisterRequest) (*tables.User, error) {
	taken, err := database.Query[tables.User](as.db).Where("email", req.Email).Exists(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if taken {
		return nil, lib.NewFieldError("email", emailTakenMessage)
	}

	passwordHash, err := lib.HashPassword(req.Password, lib.DefaultArgonParams)
	if err != nil {
		as.logger.Error("Failed to hash password", gecho.Field("error", err))
		return nil, err
	}

	user := &tables.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: passwordHash,
	}
	if _, err := database.Query[tables.User](as.db).Insert(ctx, user); err != nil {
		mapped := lib.MapDBError(err)
		if lib.IsConflict(mapped) {
			as.logger.Warn("Registration failed - duplicate user", gecho.Field("email", req.Email))
			return nil, lib.NewFieldError("email", emailTakenMessage)
		}
		as.logger.Error("Database error during registration", gecho.Field("error", err))
		return nil, mapped
	}

	as.logger.Info("User registered", gecho.Field("user_id", user.Id))
	return user, nil
}

// Authenticate validates a bearer token and rejects revoked ones. The token's
// user must still exist and still be an administrator.
func (as *AuthService) Authenticate(ctx context.Context, token string) (*structs.AuthClaims, error) {
	claims, err := lib.ParseToken(token, as.cfg.Auth.AccessTokenSecret)
	if err != nil {
		return nil, err
	}

	revoked, err := as.tokens.IsTokenBlacklisted(ctx, claims.Jti)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if revoked {
		return nil, lib.ErrRevokedToken
	}

	user, err := as.accounts.Get(ctx, claims.Sub)
	if lib.IsNotFound(err) {
		as.logger.Warn("Token presented for a deleted user", gecho.Field("user_id", claims.Sub))
		return nil, lib.ErrRevokedToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token user: %w", err)
	}
	if !user.IsAdministrator() {
		as.logger.Warn("Token presented by a demoted user", gecho.Field("user_id", claims.Sub))
		return nil, lib.ErrRevokedToken
	}

	claims.Email = user.Email
	claims.Role = *user.Role
	return claims, nil
}

// Logout revokes the presented token until it expires
func (as *AuthService) Logout(ctx context.Context, claims *structs.AuthClaims) error {
	if claims == nil {
		return errors.New("no claims to revoke")
	}
	if err := as.tokens.BlacklistToken(ctx, claims.Jti, claims.Exp); err != nil {
		as.logger.Error("Failed to blacklist token", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
		return err
	}
	as.logger.Debug("Token revoked", gecho.Field("user_id", claims.Sub), gecho.Field("jti", claims.Jti))
	return nil
}
