package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-catalog-api/internal/core/config"
	"go-catalog-api/internal/core/database"
	"go-catalog-api/internal/core/logger"
	"go-catalog-api/internal/domain"
	"go-catalog-api/internal/repo"
	"go-catalog-api/pkg/utils"
)

// 一次性工具：创建首个 admin 账号；邮箱已存在则提升为 admin
func main() {
	email := flag.String("email", "", "admin email")
	name := flag.String("name", "Admin", "full name")
	password := flag.String("password", "", "password")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	if *email == "" || *password == "" {
		log.Fatal("usage: seedadmin -email <email> -password <password> [-name <name>]")
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repo.NewUserRepo(db)
	addr := strings.ToLower(strings.TrimSpace(*email))

	existing, err := users.FindByEmail(ctx, addr)
	if err != nil {
		log.Fatal("lookup failed", zap.Error(err))
	}
	if existing != nil {
		if existing.IsAdmin() {
			log.Info("already admin", zap.String("email", addr))
			return
		}
		if err := db.WithContext(ctx).Model(existing).Update("role", domain.RoleAdmin).Error; err != nil {
			log.Fatal("promote failed", zap.Error(err))
		}
		log.Info("user promoted to admin", zap.String("email", addr))
		return
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        addr,
		FullName:     strings.TrimSpace(*name),
		PasswordHash: utils.HashPassword(*password),
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal("create failed", zap.Error(err))
	}
	log.Info("admin created", zap.String("email", addr), zap.String("id", u.ID))
}
