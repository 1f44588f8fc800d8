package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/anthology-mirror/pkg/types"
)

const (
	defaultTimeout             = 60 * time.Second
	defaultUserAgent           = "anthology-mirror/0.1"
	defaultBaseURL             = "https://www.aclweb.org/anthology"
	defaultManifest            = "conferences.yaml"
	defaultVolumeConcurrency   = 10
	defaultProbeConcurrency    = 10
	defaultDownloadConcurrency = 2
)

// addMirrorFlags registers the flags shared by every crawl-facing command.
// The root directory has no flag default: it must come from the flag, the
// config file, or ANTHOLOGY_MIRROR_ROOT_DIR, and validation fails the run
// before any I/O when it is missing.
func addMirrorFlags(cmd *cobra.Command) {
	cmd.Flags().String("root-dir", "", "local mirror root directory (required)")
	cmd.Flags().String("base-url", "", "remote anthology root URL")
	cmd.Flags().String("manifest", "", "conference manifest YAML path")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	cmd.Flags().Int("volume-concurrency", 0, "concurrent volume index loads (default 10)")
	cmd.Flags().Int("probe-concurrency", 0, "concurrent file existence checks (default 10)")
	cmd.Flags().Int("download-concurrency", 0, "concurrent file downloads (default 2)")
}

// mirrorConfig assembles and validates the pipeline configuration from
// flags, the config file, and the environment, in that precedence order.
// This is the only place configuration is resolved; stage packages receive
// the finished struct.
func mirrorConfig(cmd *cobra.Command) (types.MirrorConfig, error) {
	cfg := types.MirrorConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   durationSetting(cmd, "timeout", "timeout", defaultTimeout),
			UserAgent: defaultUserAgent,
		},
		RootDir:             stringSetting(cmd, "root-dir", "root_dir", ""),
		BaseURL:             stringSetting(cmd, "base-url", "base_url", defaultBaseURL),
		ManifestPath:        stringSetting(cmd, "manifest", "manifest_path", defaultManifest),
		VolumeConcurrency:   intSetting(cmd, "volume-concurrency", "volume_concurrency", defaultVolumeConcurrency),
		ProbeConcurrency:    intSetting(cmd, "probe-concurrency", "probe_concurrency", defaultProbeConcurrency),
		DownloadConcurrency: intSetting(cmd, "download-concurrency", "download_concurrency", defaultDownloadConcurrency),
	}
	if ua := viper.GetString("user_agent"); ua != "" {
		cfg.UserAgent = ua
	}

	if err := cfg.Validate(); err != nil {
		return types.MirrorConfig{}, err
	}
	return cfg, nil
}

func stringSetting(cmd *cobra.Command, flag, key, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func intSetting(cmd *cobra.Command, flag, key string, fallback int) int {
	if v, _ := cmd.Flags().GetInt(flag); v != 0 {
		return v
	}
	if v := viper.GetInt(key); v != 0 {
		return v
	}
	return fallback
}

func durationSetting(cmd *cobra.Command, flag, key string, fallback time.Duration) time.Duration {
	if v, _ := cmd.Flags().GetDuration(flag); v != 0 {
		return v
	}
	if v := viper.GetDuration(key); v != 0 {
		return v
	}
	return fallback
}
