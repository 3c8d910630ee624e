// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the biblioscope CLI: catalog discovery
// traversal from a seed record, plus tag management of the local record store.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/biblioscope/internal/secrets"
	"github.com/pdiddy/biblioscope/internal/store"
	"github.com/pdiddy/biblioscope/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds access keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the biblioscope CLI.
var rootCmd = &cobra.Command{
	Use:   "biblioscope",
	Short: "Discovery traversal over a library catalog",
	Long: `biblioscope queries an SRU library-catalog service and walks from a seed
record to related records: by shared author identity, by classification code,
and by subject heading. Discovered records are stored locally and can be
tagged as favorites or dead ends.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./biblioscope.yaml or ~/.config/biblioscope/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("biblioscope")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "biblioscope"))
		}
	}

	viper.SetEnvPrefix("BIBLIOSCOPE")
	viper.AutomaticEnv()

	viper.SetDefault("catalog.base_url", "https://sru.k10plus.de")
	viper.SetDefault("catalog.database", "opac-de-18")
	viper.SetDefault("catalog.max_records", 10)
	viper.SetDefault("catalog.record_schema", "mods36")
	viper.SetDefault("catalog.timeout", 30*time.Second)
	viper.SetDefault("catalog.user_agent", "biblioscope/"+version)
	viper.SetDefault("store.path", "biblioscope.db")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the runtime configuration from viper and secrets.
func loadConfig() types.Config {
	cfg := types.Config{
		Catalog: types.CatalogConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("catalog.timeout"),
				UserAgent: viper.GetString("catalog.user_agent"),
			},
			BaseURL:      viper.GetString("catalog.base_url"),
			Database:     viper.GetString("catalog.database"),
			MaxRecords:   viper.GetInt("catalog.max_records"),
			RecordSchema: viper.GetString("catalog.record_schema"),
			AccessKey:    viper.GetString("catalog.access_key"),
		},
		Store: types.StoreConfig{
			Path: viper.GetString("store.path"),
		},
	}
	if cfg.Catalog.AccessKey == "" {
		cfg.Catalog.AccessKey = loadedSecrets["catalog-access-key"]
	}
	return cfg
}

// openStore opens the configured document store.
func openStore(cfg types.Config) (store.Store, error) {
	s, err := store.NewSQLite(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", cfg.Store.Path, err)
	}
	return s, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
