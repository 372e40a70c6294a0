package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tablewise/concierge/sqlite"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the database and load the sample restaurants",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		dbPath, _ := cmd.Flags().GetString("db")
		db, err := sqlite.Open(ctx, dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Seed(ctx); err != nil {
			return err
		}

		meta, err := db.Metadata(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s: %d cities, %d cuisines, %d moods\n",
			dbPath, len(meta.Cities), len(meta.Cuisines), len(meta.Moods))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
