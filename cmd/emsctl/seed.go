package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var (
		file string
		list bool
	)

	cmd := &cobra.Command{
		Use:   "seed [seeder...]",
		Short: "Populate the database with demo data",
		Long: `Run the named seeders, or all of them when none are named, inside a
single transaction. Seed data is read from --file or the embedded demo set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if list {
				for _, s := range seeders {
					fmt.Fprintf(out, "  - %s: %s\n", s.Name(), s.Description())
				}
				return nil
			}

			data, err := loadSeedData(file)
			if err != nil {
				return err
			}

			db, logger, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := runSeeders(cmd.Context(), db, data, args); err != nil {
				return err
			}

			ran := "all seeders"
			if len(args) > 0 {
				ran = strings.Join(args, ", ")
			}
			logger.Info("seeding complete", "seeders", ran, "users", len(data.Users), "sites", len(data.Sites))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "external seed file (overrides embedded)")
	cmd.Flags().BoolVar(&list, "list", false, "list available seeders")
	return cmd
}
