package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Bennylang23/autobeluga/internal/app"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

func newMigrateCmd(c *cli) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect the Postgres schema migrations",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "migrations directory (default: $MIGRATIONS_DIR or ./db/migrations)")

	withMigrator := func(run func(m *migrate.Migrate, args []string) error) func(*cobra.Command, []string) error {
		return func(_ *cobra.Command, args []string) error {
			m, err := c.newMigrator(dir)
			if err != nil {
				return err
			}
			defer c.closeMigrator(m)
			return run(m, args)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(m *migrate.Migrate, _ []string) error {
				if err := ignoreNoChange(m.Up()); err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				c.logger.Info("migrations applied")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back migrations (default 1 step)",
			Args:  cobra.MaximumNArgs(1),
			RunE: withMigrator(func(m *migrate.Migrate, args []string) error {
				steps, err := parseSteps(args)
				if err != nil {
					return err
				}
				if err := ignoreNoChange(m.Steps(-steps)); err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
				c.logger.Info("migrations rolled back", "steps", steps)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(m *migrate.Migrate, _ []string) error {
				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					_, err = fmt.Fprintln(c.out, "version: none\ndirty: false")
					return err
				}
				if err != nil {
					return fmt.Errorf("read version: %w", err)
				}
				_, err = fmt.Fprintf(c.out, "version: %d\ndirty: %t\n", version, dirty)
				return err
			}),
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Set the schema version without running migrations",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(m *migrate.Migrate, args []string) error {
				version, err := parseVersion(args[0])
				if err != nil {
					return err
				}
				if err := m.Force(version); err != nil {
					return fmt.Errorf("force version %d: %w", version, err)
				}
				c.logger.Info("schema version forced", "version", version)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "goto <version>",
			Short: "Migrate up or down to the given version",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(m *migrate.Migrate, args []string) error {
				target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
				if err != nil {
					return fmt.Errorf("invalid target version %q: %w", args[0], err)
				}
				if err := ignoreNoChange(m.Migrate(uint(target))); err != nil {
					return fmt.Errorf("migrate to %d: %w", target, err)
				}
				c.logger.Info("migrated", "version", target)
				return nil
			}),
		},
	)
	return cmd
}

func (c *cli) newMigrator(dir string) (*migrate.Migrate, error) {
	dbURL, err := app.DatabaseURL(c.cfg)
	if err != nil {
		return nil, err
	}
	migrationsDir, err := resolveMigrationsDir(dir)
	if err != nil {
		return nil, err
	}

	m, err := migrate.New("file://"+filepath.ToSlash(migrationsDir), dbURL)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

func (c *cli) closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		c.logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		c.logger.Warn("close migration db", "error", dbErr)
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	return value, nil
}

func resolveMigrationsDir(flagValue string) (string, error) {
	candidates := []string{
		strings.TrimSpace(flagValue),
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked --dir, MIGRATIONS_DIR, ./db/migrations)")
}
