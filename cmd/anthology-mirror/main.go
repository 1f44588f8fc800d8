// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the anthology-mirror CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the anthology-mirror CLI.
var rootCmd = &cobra.Command{
	Use:   "anthology-mirror",
	Short: "Mirror conference anthology index pages and paper files",
	Long: `anthology-mirror maintains a local mirror of academic-conference
anthology pages. It reads a manifest of conferences and volumes, fetches and
caches each volume's index page, extracts the paper listing, and downloads
every referenced PDF and bibliography file that is not yet on disk.

Every stage is gated on file existence, so an interrupted crawl resumes
where it left off: cached index pages, listings, and downloaded files are
never re-fetched.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./anthology-mirror.yaml or ~/.config/anthology-mirror/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("anthology-mirror")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "anthology-mirror"))
		}
	}

	viper.SetEnvPrefix("ANTHOLOGY_MIRROR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
