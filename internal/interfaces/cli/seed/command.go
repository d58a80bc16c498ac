package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/labpool/labpool/internal/infrastructure/auth"
	"github.com/labpool/labpool/internal/infrastructure/config"
	"github.com/labpool/labpool/internal/infrastructure/database"
	"github.com/labpool/labpool/internal/infrastructure/repository"
	"github.com/labpool/labpool/internal/infrastructure/seed"
	"github.com/labpool/labpool/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the permission catalog, default roles and the superadmin",
		Long: `Insert the permission catalog, the superadmin, admin and user roles,
and the superadmin account from configuration. Rows that already exist are
left untouched, so the command can be re-run safely.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == "debug"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	catalog, err := seed.LoadCatalog()
	if err != nil {
		return err
	}

	log := logger.NewLogger().Named("seed")
	db := database.Get()
	seeder := seed.NewSeeder(
		catalog,
		repository.NewPermissionRepository(db, log),
		repository.NewRoleRepository(db, log),
		repository.NewUserRepository(db, log),
		auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		cfg.Seed,
		log,
	)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	if err := seeder.Run(ctx); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	log.Infow("seed completed", "superadmin_email", cfg.Seed.SuperadminEmail)
	return nil
}
