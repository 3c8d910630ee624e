// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/biblioscope/internal/store"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite <ppn>",
	Short: "Toggle the favorite tag on a stored record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggle(args[0], store.ToggleFavorite, "favorite")
	},
}

var deadendCmd = &cobra.Command{
	Use:   "deadend <ppn>",
	Short: "Toggle the dead-end tag on a stored record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggle(args[0], store.ToggleDeadEnd, "dead-end")
	},
}

func toggle(id string, fn func(store.Store, string) (bool, error), tag string) error {
	st, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	v, err := fn(st, id)
	if err != nil {
		return fmt.Errorf("toggling %s on %s: %w", tag, id, err)
	}
	fmt.Printf("%s %s = %t\n", id, tag, v)
	return nil
}

var showCmd = &cobra.Command{
	Use:   "show <ppn>",
	Short: "Print one stored record as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(loadConfig())
		if err != nil {
			return err
		}
		defer st.Close()

		rec, err := st.Get(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(rec)
	},
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(deadendCmd)
	rootCmd.AddCommand(showCmd)
}
