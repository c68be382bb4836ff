package main

import (
	"log/slog"
	"os"
	"time"

	"webshop/internal/config"
	"webshop/internal/handler"
	"webshop/internal/infra/db"
	infraRepo "webshop/internal/infra/repository"
	"webshop/internal/server"
	"webshop/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

const seedAdminPassword = "admin123" // デモ用

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// .envはあれば読む（なくてもよい）
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file", slog.String("error", err.Error()))
	}

	rootCmd := &cobra.Command{
		Use:          "webshop-api",
		Short:        "Webshop backend API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(logger)
			},
		},
		&cobra.Command{
			Use:   "initdb",
			Short: "Create the schema and seed demo data",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runInitDB(logger)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runServe(logger *slog.Logger) error {
	cfg := config.Load()

	gormDB, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	// Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	sessionRepo := infraRepo.NewSessionGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	hasher := usecase.NewBcryptPasswordHasher(cfg.BcryptCost)
	verifier := usecase.NewBcryptPasswordVerifier()

	// Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, sessionRepo, hasher, verifier, idGen, clock, cfg.SessionTTL)
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)

	// Handler生成
	authH := handler.NewAuthHandler(authUC, cfg.CookieSecure)
	productH := handler.NewProductHandler(productUC)
	orderH := handler.NewOrderHandler(orderUC)
	adminProductH := handler.NewAdminProductHandler(productUC)
	adminOrderH := handler.NewAdminOrderHandler(adminOrderUC)

	e := server.New(logger, authUC, authH, productH, orderH, adminProductH, adminOrderH)

	logger.Info("server starting", slog.String("addr", cfg.Addr()))
	return server.Start(e, cfg.Addr())
}

func runInitDB(logger *slog.Logger) error {
	cfg := config.Load()

	gormDB, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	hasher := usecase.NewBcryptPasswordHasher(cfg.BcryptCost)
	adminHash, err := hasher.Hash(seedAdminPassword)
	if err != nil {
		return err
	}

	if err := db.Seed(gormDB, adminHash); err != nil {
		return err
	}

	logger.Info("database initialized", slog.String("db", cfg.PostgresDB))
	return nil
}
