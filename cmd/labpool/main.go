package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/labpool/labpool/internal/interfaces/cli/migrate"
	"github.com/labpool/labpool/internal/interfaces/cli/seed"
	"github.com/labpool/labpool/internal/interfaces/cli/server"
)

//	@title						LabPool API
//	@version					1.0
//	@description				Crowdfunded laboratory testing pools: catalog, pools, donations and RBAC administration.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	Bearer
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "labpool",
		Short: "LabPool - crowdfunded lab testing",
		Long:  `LabPool runs the pooled lab-testing API, its database migrations and the RBAC seed.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
