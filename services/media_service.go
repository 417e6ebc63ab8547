package services

import (
	"context"
	"shop_admin_server/database"
	"shop_admin_server/structs/tables"

	"github.com/samber/lo"
	"github.com/uptrace/bun"
)

// loadImages returns the images of every owner of the given type keyed by owner id
func loadImages(ctx context.Context, db bun.IDB, ownerType tables.OwnerType, ownerIDs []int64) (map[int64][]tables.Image, error) {
	if len(ownerIDs) == 0 {
		return map[int64][]tables.Image{}, nil
	}
	images, err := database.Query[tables.Image](db).
		Where("owner_type", ownerType).
		WhereIn("owner_id", ownerIDs).
		OrderBy("id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, err
	}
	return lo.GroupBy(images, func(img tables.Image) int64 { return img.OwnerID }), nil
}

// imagesOf returns the images of a single owner
func imagesOf(ctx context.Context, db bun.IDB, owner tables.ImageOwner) ([]tables.Image, error) {
	byOwner, err := loadImages(ctx, db, owner.Type, []int64{owner.ID})
	if err != nil {
		return nil, err
	}
	return byOwner[owner.ID], nil
}

func attachImage(ctx context.Context, db bun.IDB, owner tables.ImageOwner, path string, featured bool) error {
	_, err := database.Query[tables.Image](db).Insert(ctx, tables.NewImage(owner, path, featured))
	return err
}

func deleteImages(ctx context.Context, db bun.IDB, ids []int64) error {
	_, err := database.DeleteByIDs[tables.Image](ctx, db, ids)
	return err
}

// deleteOwnerImages removes every image row of the given owners and returns the removed paths
func deleteOwnerImages(ctx context.Context, db bun.IDB, ownerType tables.OwnerType, ownerIDs []int64) ([]string, error) {
	byOwner, err := loadImages(ctx, db, ownerType, ownerIDs)
	if err != nil {
		return nil, err
	}
	images := lo.Flatten(lo.Values(byOwner))
	if err := deleteImages(ctx, db, lo.Map(images, func(img tables.Image, _ int) int64 { return img.ID })); err != nil {
		return nil, err
	}
	return lo.Map(images, func(img tables.Image, _ int) string { return img.ImagePath }), nil
}

// planGallery works out how a product's gallery changes on update.
// Every image whose path is in removed is deleted, as is every unfeatured
// image whose path is not in keep. Kept paths without a remaining unfeatured
// record are returned for creation.
func planGallery(existing []tables.Image, keep, removed []string) (deleteIDs []int64, createPaths []string) {
	removedSet := lo.SliceToMap(removed, func(p string) (string, struct{}) { return p, struct{}{} })
	keepSet := lo.SliceToMap(keep, func(p string) (string, struct{}) { return p, struct{}{} })

	remaining := map[string]bool{}
	for _, img := range existing {
		_, isRemoved := removedSet[img.ImagePath]
		_, isKept := keepSet[img.ImagePath]

		switch {
		case isRemoved:
			deleteIDs = append(deleteIDs, img.ID)
		case !img.IsFeatured && !isKept:
			deleteIDs = append(deleteIDs, img.ID)
		case !img.IsFeatured:
			remaining[img.ImagePath] = true
		}
	}

	for _, p := range lo.Uniq(keep) {
		if p == "" || remaining[p] {
			continue
		}
		createPaths = append(createPaths, p)
	}
	return deleteIDs, createPaths
}
