package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/JaimeStill/ems-backend/internal/api"
	"github.com/JaimeStill/ems-backend/pkg/pagination"
	"github.com/JaimeStill/ems-backend/pkg/routes"
	"github.com/spf13/cobra"
)

func routesCmd() *cobra.Command {
	var basePath string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the API route table in match priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.DiscardHandler)
			table := api.NewTable(&api.Domain{}, logger, pagination.Config{})
			return printTable(cmd.OutOrStdout(), basePath, table)
		},
	}

	cmd.Flags().StringVar(&basePath, "base-path", "/api/v1", "path the API module is mounted under")
	return cmd
}

func printTable(out io.Writer, basePath string, table *routes.Table) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MOUNT\tMETHOD\tPATH\tTAGS")

	for _, e := range table.Entries() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.Mount, e.Method, basePath+e.Path, strings.Join(e.Tags, ", "))
	}

	return w.Flush()
}
