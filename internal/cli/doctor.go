package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/Elsie-Muhumuza/kambari/internal/adapters/guides"
	"github.com/Elsie-Muhumuza/kambari/internal/config"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the kambari installation",
		Long: `Health check for a kambari installation.

Validates:
- App home dir and config file
- Configuration (roles, weekday, tie-break settings)
- Database file and schema
- Theme packs (present and valid JSON)
- Gemini API key (guides fall back to built-in questions without it)

Examples:
  kambari doctor              # Run full health check
  kambari doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{}
			hasErrors := false

			dirResult, cfg := checkHomeDir()
			results = append(results, dirResult)
			results = append(results, checkConfig(cfg))
			results = append(results, checkDatabase(cfg))
			results = append(results, checkThemePacks(cfg))
			results = append(results, checkGeminiKey(cfg))

			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				// Print compact table
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				// Print details for non-passing checks
				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found. Run 'kambari init' to repair the installation.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// checkHomeDir validates the app home dir and loads the configuration
// for the remaining checks. A nil config marks the install as unusable.
func checkHomeDir() (CheckResult, *config.Config) {
	dir, err := config.HomeDir()
	if err != nil {
		return CheckResult{Name: "App Dir", Status: "✗", Details: "  Cannot resolve home directory"}, nil
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return CheckResult{
			Name:    "App Dir",
			Status:  "✗",
			Details: fmt.Sprintf("  %s not found\n  Run: kambari init", dir),
		}, nil
	}

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		// Dir exists but the config is broken; report under Config
		return CheckResult{Name: "App Dir", Status: "✓"}, nil
	}
	return CheckResult{Name: "App Dir", Status: "✓"}, cfg
}

// checkConfig validates the loaded configuration
func checkConfig(cfg *config.Config) CheckResult {
	if cfg == nil {
		dir, _ := config.HomeDir()
		if _, err := config.LoadFrom(dir); err != nil {
			return CheckResult{
				Name:    "Config",
				Status:  "✗",
				Details: "  " + err.Error(),
			}
		}
		return CheckResult{Name: "Config", Status: "✗", Details: "  Configuration could not be loaded"}
	}
	if err := cfg.Validate(); err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Config", Status: "✓"}
}

// checkDatabase verifies the database file exists and carries the schema
func checkDatabase(cfg *config.Config) CheckResult {
	if cfg == nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  Skipped, config unavailable"}
	}

	if _, err := os.Stat(cfg.Paths.Database); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Database",
			Status:  "✗",
			Details: fmt.Sprintf("  %s not found\n  Run: kambari init", cfg.Paths.Database),
		}
	}

	// Open directly rather than through the shared connection so the
	// check never creates or migrates anything.
	conn, err := sql.Open("sqlite3", cfg.Paths.Database)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	defer conn.Close()

	required := []string{"members", "member_roles", "sessions", "assignments", "attendance", "series", "passages", "materials"}
	var missing []string
	for _, table := range required {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return CheckResult{
			Name:    "Database",
			Status:  "✗",
			Details: "  Missing tables: " + strings.Join(missing, ", ") + "\n  Run: kambari init",
		}
	}

	return CheckResult{Name: "Database", Status: "✓"}
}

// checkThemePacks verifies every installed pack parses
func checkThemePacks(cfg *config.Config) CheckResult {
	if cfg == nil {
		return CheckResult{Name: "Theme Packs", Status: "✗", Details: "  Skipped, config unavailable"}
	}

	packs := guides.NewThemePacks(cfg.Paths.Themes)
	ctx := context.Background()

	themes, err := packs.KnownThemes(ctx)
	if err != nil {
		return CheckResult{Name: "Theme Packs", Status: "✗", Details: "  " + err.Error()}
	}
	if len(themes) == 0 {
		return CheckResult{
			Name:    "Theme Packs",
			Status:  "⚠",
			Details: "  No theme packs installed\n  Run: kambari init",
		}
	}

	var broken []string
	for _, theme := range themes {
		if _, err := packs.LoadPack(ctx, theme); err != nil {
			broken = append(broken, theme)
		}
	}
	if len(broken) > 0 {
		return CheckResult{
			Name:    "Theme Packs",
			Status:  "✗",
			Details: "  Invalid packs: " + strings.Join(broken, ", "),
		}
	}

	return CheckResult{Name: "Theme Packs", Status: "✓"}
}

// checkGeminiKey reports whether AI question generation is available
func checkGeminiKey(cfg *config.Config) CheckResult {
	if cfg == nil {
		return CheckResult{Name: "Gemini Key", Status: "✗", Details: "  Skipped, config unavailable"}
	}
	if cfg.Gemini.APIKey == "" {
		return CheckResult{
			Name:    "Gemini Key",
			Status:  "⚠",
			Details: "  Not set; study guides will use the built-in question set\n  Set KAMBARI_GEMINI_API_KEY to enable generation",
		}
	}
	return CheckResult{Name: "Gemini Key", Status: "✓"}
}
