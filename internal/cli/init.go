package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Elsie-Muhumuza/kambari/internal/adapters/guides"
	"github.com/Elsie-Muhumuza/kambari/internal/config"
	"github.com/Elsie-Muhumuza/kambari/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the kambari home directory",
		Long: `Initialize the app home dir (~/.kambari by default): write the
default config file, create the database schema and install the
built-in theme packs. Safe to re-run; existing files are kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.HomeDir()
			if err != nil {
				return err
			}
			fmt.Printf("Initializing kambari in %s\n", dir)

			// Loading creates the config file with defaults on first run
			cfg, err := config.LoadFrom(dir)
			if err != nil {
				return err
			}
			fmt.Println("✓ Configuration ready")

			// Opening the connection creates the schema on a fresh
			// install and runs pending migrations otherwise.
			db.SetPath(cfg.Paths.Database)
			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Printf("✓ Database ready at %s\n", cfg.Paths.Database)

			packs := guides.NewThemePacks(cfg.Paths.Themes)
			if err := packs.EnsureDefaults(context.Background()); err != nil {
				return err
			}
			fmt.Printf("✓ Theme packs installed in %s\n", cfg.Paths.Themes)

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  kambari member add \"Alice Wanjiru\" --phone 0712345678")
			fmt.Println("  kambari series create \"Parables of Jesus\" --theme parables --weeks 6")
			fmt.Println("  kambari session assign SES-001")

			return nil
		},
	}
}
