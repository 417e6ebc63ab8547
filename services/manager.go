package services

import (
	"shop_admin_server/database"
	"shop_admin_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

type ServiceManager struct {
	AuthService           *AuthService
	UserService           *UserService
	CacheService          *CacheService
	HealthService         *HealthService
	StorageService        *StorageService
	ProductService        *ProductService
	CategoryService       *CategoryService
	TagService            *TagService
	AttributeService      *AttributeService
	AttributeValueService *AttributeValueService
	OrderService          *OrderService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, redisClient *redis.Client) *ServiceManager {
	cacheService := NewCacheService(logger, cfg, redisClient)
	storageService := NewStorageService(logger, cfg.Storage)
	userService := NewUserService(logger, db)

	return &ServiceManager{
		AuthService:           NewAuthService(cfg, logger, db, cacheService, userService),
		UserService:           userService,
		CacheService:          cacheService,
		HealthService:         NewHealthService(logger, db, cacheService),
		StorageService:        storageService,
		ProductService:        NewProductService(logger, db, storageService),
		CategoryService:       NewCategoryService(logger, db),
		TagService:            NewTagService(logger, db),
		AttributeService:      NewAttributeService(logger, db),
		AttributeValueService: NewAttributeValueService(logger, db),
		OrderService:          NewOrderService(logger, db),
	}
}
