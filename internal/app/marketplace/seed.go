package marketplace

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/service-marketplace/internal/config"
	"github.com/magabrotheeeer/service-marketplace/internal/lib/password"
	"github.com/magabrotheeeer/service-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/service-marketplace/internal/models"
	"github.com/magabrotheeeer/service-marketplace/internal/storage/repository"
)

var defaultCategories = []models.Category{
	{Name: "Plumbing", Description: "Pipe repair, leak fixing and sanitary installation", Icon: "wrench"},
	{Name: "Electrical", Description: "Wiring, sockets and electrical appliance repair", Icon: "bolt"},
	{Name: "Cleaning", Description: "Home and office cleaning services", Icon: "broom"},
	{Name: "Carpentry", Description: "Furniture assembly and woodwork", Icon: "hammer"},
	{Name: "Painting", Description: "Interior and exterior painting", Icon: "paint-roller"},
}

// Seed создает администратора из конфигурации и категории по умолчанию,
// если база пустая. Повторные запуски ничего не меняют.
func Seed(ctx context.Context, log *slog.Logger, db *repository.Storage, seed config.AdminSeed) error {
	exists, err := db.AdminExists(ctx)
	if err != nil {
		return err
	}
	if !exists && seed.Password != "" {
		hash, err := password.GetHash(seed.Password)
		if err != nil {
			return err
		}
		uid, err := db.RegisterUser(ctx, models.User{
			Email:        seed.Email,
			FullName:     seed.FullName,
			Phone:        seed.Phone,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			Credits:      0,
			IsActive:     true,
		})
		if err != nil {
			return err
		}
		log.Info("seeded admin user", slog.String("uid", uid), slog.String("email", seed.Email))
	}

	count, err := db.CountCategories(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		for _, category := range defaultCategories {
			if _, err := db.CreateCategory(ctx, category); err != nil {
				log.Warn("failed to seed category", slog.String("name", category.Name), sl.Err(err))
			}
		}
		log.Info("seeded default categories", slog.Int("count", len(defaultCategories)))
	}
	return nil
}
