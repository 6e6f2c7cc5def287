package main

import (
	"fmt"

	"github.com/JaimeStill/ems-backend/internal/migrations"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, func(m *migrations.Migrator) error {
					if err := m.Up(); err != nil {
						return err
					}
					return printVersion(cmd, m)
				})
			},
		},
		migrateDownCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, func(m *migrations.Migrator) error {
					return printVersion(cmd, m)
				})
			},
		},
	)

	return cmd
}

func migrateDownCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Revert migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *migrations.Migrator) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to revert, 0 reverts all")
	return cmd
}

func withMigrator(cmd *cobra.Command, fn func(*migrations.Migrator) error) error {
	db, _, err := connect(cmd.Context())
	if err != nil {
		return err
	}

	m, err := migrations.New(db)
	if err != nil {
		db.Close()
		return err
	}
	defer m.Close()

	return fn(m)
}

func printVersion(cmd *cobra.Command, m *migrations.Migrator) error {
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}

	state := "clean"
	if dirty {
		state = "dirty"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", v, state)
	return nil
}
