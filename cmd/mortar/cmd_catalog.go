package main

import (
	"fmt"

	"github.com/akmonengine/mortar/catalog"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect or seed a part catalog database",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats <catalog.db>",
		Short: "Show how many parts a catalog holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := catalog.OpenSQLite(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.Stats()
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d parts\n", args[0], n)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "seed <catalog.db>",
		Short: "Write the builtin parts into a catalog database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := catalog.OpenSQLite(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			builtin := catalog.Builtin()
			n := 0
			for _, id := range builtin.IDs() {
				g, err := builtin.Part(id)
				if err != nil {
					return err
				}
				if err := db.Save(g); err != nil {
					return err
				}
				n++
			}
			fmt.Printf("%s: seeded %d parts\n", args[0], n)
			return nil
		},
	})

	return cmd
}
