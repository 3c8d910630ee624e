// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/biblioscope/internal/authority"
	"github.com/pdiddy/biblioscope/internal/mods"
	"github.com/pdiddy/biblioscope/internal/sru"
	"github.com/pdiddy/biblioscope/internal/traverse"
)

var visitCmd = &cobra.Command{
	Use:   "visit <ppn>",
	Short: "Traverse the catalog from a seed record",
	Long: `Visit fetches the record for the given catalog identifier (PPN) and expands
it in three phases: related records by each author (authority identifier when
known, free-text name otherwise), by each classification label, and by each
subject heading. Every discovered record is stored locally; records already
stored keep their tags.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg := loadConfig()
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		extractor := &mods.Extractor{
			Cache: authority.NewCache(),
			Store: st,
		}
		orch := &traverse.Orchestrator{
			Client:    sru.NewClient(cfg.Catalog),
			Extractor: extractor,
		}

		emit := func(b traverse.Batch) error {
			if asJSON {
				return writeBatchJSON(os.Stdout, b)
			}
			writeBatchTable(os.Stdout, b)
			return nil
		}
		return orch.Traverse(cmd.Context(), args[0], emit)
	},
}

// writeBatchJSON emits one batch as a single JSON line.
func writeBatchJSON(w *os.File, b traverse.Batch) error {
	out := struct {
		Phase   string `json:"phase"`
		Context any    `json:"context"`
		Records any    `json:"records,omitempty"`
		Error   string `json:"error,omitempty"`
	}{
		Phase:   string(b.Phase),
		Context: b.Context,
		Records: b.Records,
	}
	if b.Err != nil {
		out.Error = b.Err.Error()
	}
	enc := json.NewEncoder(w)
	return enc.Encode(out)
}

func init() {
	visitCmd.Flags().Bool("json", false, "output batches as JSON lines")

	rootCmd.AddCommand(visitCmd)
}
