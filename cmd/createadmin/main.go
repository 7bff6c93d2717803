package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go-truck-business/internal/app"
	"go-truck-business/internal/auth"
	"go-truck-business/internal/bootstrap"
	"go-truck-business/internal/config"
	"go-truck-business/internal/rbac/infra"

	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", "", "login email")
	name := flag.String("name", "Administrator", "display name")
	password := flag.String("password", "", "password, at least 6 characters")
	role := flag.String("role", infra.RoleAdmin, "ADMIN or STAFF")
	flag.Parse()

	if *email == "" || len(*password) < 6 || !infra.ValidRole(*role) {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := bootstrap.NewLogger(cfg.App.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	conn, err := app.ConnectDatabase(cfg, false)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	defer conn.Close()

	if cfg.App.AutoMigrate {
		if err := app.Migrate(conn.GormDB); err != nil {
			logger.Fatal("migrate failed", zap.Error(err))
		}
	}

	svc := auth.NewService(auth.NewRepository(conn.GormDB), auth.TokenConfig{Secret: cfg.JWT.Secret}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := svc.CreateUser(ctx, auth.CreateUserRequest{
		Email:    *email,
		Name:     *name,
		Password: *password,
		Role:     *role,
	})
	if err != nil {
		logger.Fatal("create user failed", zap.Error(err))
	}

	fmt.Printf("created %s user %s (%s)\n", user.Role, user.Email, user.ID)
}
