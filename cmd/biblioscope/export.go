// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump all stored records as YAML",
	Long: `Export writes every record discovered so far, with its tags, as a YAML
document to stdout or to the file given with --out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")

		st, err := openStore(loadConfig())
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.List()
		if err != nil {
			return fmt.Errorf("listing records: %w", err)
		}

		var w io.Writer = os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			defer f.Close()
			w = f
		}

		enc := yaml.NewEncoder(w)
		defer enc.Close()
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encoding records: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%d records exported\n", len(records))
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "", "write to file instead of stdout")

	rootCmd.AddCommand(exportCmd)
}
