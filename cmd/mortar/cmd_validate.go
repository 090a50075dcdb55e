package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/akmonengine/mortar"
	"github.com/akmonengine/mortar/catalog"
	"github.com/akmonengine/mortar/ldraw"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file.ldr|file.mpd>",
		Short: "Validate a model for collisions and ungrounded parts",
		Long: `Validate a model for collisions and ungrounded parts.

The file is parsed, flattened into world-space placements and checked:
  - illegal volume overlaps between parts
  - parts unreachable from the ground through stud connections
  - parts with no catalog geometry (unverifiable)

Examples:
  mortar validate castle.mpd
  mortar validate --catalog parts.db --json tower.ldr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogPath, _ := cmd.Flags().GetString("catalog")
			configPath, _ := cmd.Flags().GetString("config")
			index, _ := cmd.Flags().GetString("index")
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg := mortar.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = mortar.LoadConfig(configPath); err != nil {
					return err
				}
			}
			if index != "" {
				cfg.Index = index
			}

			var source catalog.Source = catalog.Builtin()
			if catalogPath != "" {
				db, err := catalog.OpenSQLite(catalogPath)
				if err != nil {
					return err
				}
				defer db.Close()
				source = db
			}

			doc, err := ldraw.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			result := mortar.New(source, cfg).Validate(doc.Root, doc.Models)

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Print(result)
			}

			if !result.Pass {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().String("catalog", "", "path to a SQLite part catalog (default: builtin parts)")
	cmd.Flags().String("config", "", "path to a YAML tolerance config")
	cmd.Flags().String("index", "", "spatial index backend: grid, rtree or linear")
	cmd.Flags().Bool("json", false, "emit the result as JSON")

	return cmd
}
