package services

import (
	"context"
	"shop_admin_server/database"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

type UserService struct {
	logger *gecho.Logger
	db     bun.IDB
}

func NewUserService(logger *gecho.Logger, db bun.IDB) *UserService {
	return &UserService{logger: logger, db: db}
}

func (us *UserService) List(ctx context.Context) ([]tables.User, error) {
	users, err := database.Query[tables.User](us.db).OrderBy("id", database.ASC).All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	return users, nil
}

func (us *UserService) Get(ctx context.Context, id int64) (*tables.User, error) {
	user, err := database.FindByID[tables.User](ctx, us.db, id)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if user == nil {
		return nil, lib.ErrNotFound
	}
	return user, nil
}

// Update overwrites name, email and role. The password is re-hashed only when supplied.
func (us *UserService) Update(ctx context.Context, id int64, req *structs.UpdateUserRequest) (*tables.User, error) {
	user, err := us.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := database.Query[tables.User](us.db).
		Where("email", req.Email).
		WhereNot("id", id).
		Exists(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if taken {
		return nil, lib.NewFieldError("email", emailTakenMessage)
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Role = req.Role
	columns := []string{"name", "email", "role", "updated_at"}

	if req.Password != nil {
		hash, err := lib.HashPassword(*req.Password, lib.DefaultArgonParams)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		columns = append(columns, "password")
	}

	if _, err := us.db.NewUpdate().Model(user).Column(columns...).WherePK().Exec(ctx); err != nil {
		mapped := lib.MapDBError(err)
		if lib.IsConflict(mapped) {
			return nil, lib.NewFieldError("email", emailTakenMessage)
		}
		return nil, mapped
	}

	us.logger.Info("User updated", gecho.Field("user_id", id))
	return user, nil
}

func (us *UserService) Delete(ctx context.Context, id int64) error {
	affected, err := database.DeleteByID[tables.User](ctx, us.db, id)
	if err != nil {
		return lib.MapDBError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	us.logger.Info("User deleted", gecho.Field("user_id", id))
	return nil
}

func (us *UserService) BulkDelete(ctx context.Context, ids []int64) (int, error) {
	affected, err := database.DeleteByIDs[tables.User](ctx, us.db, ids)
	if err != nil {
		return 0, lib.MapDBError(err)
	}
	us.logger.Info("Users bulk deleted", gecho.Field("requested", len(ids)), gecho.Field("deleted", affected))
	return affected, nil
}

// EnsureAdministrator creates an administrator account, or promotes and
// resets the password of an existing account with the same email
func (us *UserService) EnsureAdministrator(ctx context.Context, name, email, password string) (*tables.User, error) {
	hash, err := lib.HashPassword(password, lib.DefaultArgonParams)
	if err != nil {
		return nil, err
	}
	role := tables.RoleAdministrator

	user, err := database.Query[tables.User](us.db).Where("email", email).First(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}

	if user == nil {
		user = &tables.User{Name: name, Email: email, Role: &role, PasswordHash: hash}
		if _, err := database.Query[tables.User](us.db).Insert(ctx, user); err != nil {
			return nil, lib.MapDBError(err)
		}
		us.logger.Info("Administrator created", gecho.Field("user_id", user.Id))
		return user, nil
	}

	user.Role = &role
	user.PasswordHash = hash
	if name != "" {
		user.Name = name
	}
	_, err = us.db.NewUpdate().Model(user).Column("name", "role", "password", "updated_at").WherePK().Exec(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	us.logger.Info("Existing user promoted to administrator", gecho.Field("user_id", user.Id))
	return user, nil
}
