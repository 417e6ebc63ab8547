package users

import (
	"context"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type userStore interface {
	List(ctx context.Context) ([]tables.User, error)
	Get(ctx context.Context, id int64) (*tables.User, error)
	Update(ctx context.Context, id int64, req *structs.UpdateUserRequest) (*tables.User, error)
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) (int, error)
}

type UserRoutesManager struct {
	logger      *gecho.Logger
	userService userStore
}

func NewUserRoutesManager(logger *gecho.Logger, userService userStore) *UserRoutesManager {
	return &UserRoutesManager{
		logger:      logger,
		userService: userService,
	}
}

// RegisterRoutes mounts the user routes; the caller applies the admin gate
func (urm *UserRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", urm.ListUsers)
		r.Post("/bulkDelete", urm.BulkDeleteUsers)
		r.Get("/{userId}", urm.GetUser)
		r.Put("/{userId}", urm.UpdateUser)
		r.Delete("/{userId}", urm.DeleteUser)
	})
}
