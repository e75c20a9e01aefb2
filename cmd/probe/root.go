package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JaimeStill/tenderboard/internal/acquisition"
	"github.com/JaimeStill/tenderboard/pkg/logger"
)

var (
	cfgFile string
	quiet   bool
	verbose bool
	output  string
	saveDir string
)

var rootCmd = &cobra.Command{
	Use:   "probe",
	Short: "Exercise the tender document acquisition pipeline",
	Long: `Probe runs the same acquisition steps the tenderboard service uses
when a summary sheet is uploaded: it extracts hyperlinks from PDFs, scrapes
tender pages for document links, downloads URLs through the relay chain and
probes candidate links for the administrative and technical documents.

Relay and timeout settings are read from $HOME/.tenderboard.yaml and
TENDERBOARD_ACQUISITION_* environment variables.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tenderboard.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress messages")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline activity at debug level")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "human", "output format (human, json)")
	rootCmd.PersistentFlags().StringVar(&saveDir, "save", "", "directory to write downloaded documents to")

	rootCmd.PersistentFlags().StringSlice("relays", nil, "relay prefixes tried in order")
	rootCmd.PersistentFlags().String("attempt-timeout", "", "timeout for each relay attempt")
	rootCmd.PersistentFlags().Int("batch-size", 0, "concurrent downloads per probe group")

	cobra.CheckErr(viper.BindPFlag("relays", rootCmd.PersistentFlags().Lookup("relays")))
	cobra.CheckErr(viper.BindPFlag("attempt_timeout", rootCmd.PersistentFlags().Lookup("attempt-timeout")))
	cobra.CheckErr(viper.BindPFlag("batch_size", rootCmd.PersistentFlags().Lookup("batch-size")))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tenderboard")
	}

	viper.SetEnvPrefix("TENDERBOARD_ACQUISITION")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && !quiet {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// acquisitionConfig builds a finalized acquisition.Config from viper.
// Unset keys fall through to the package defaults.
func acquisitionConfig() (*acquisition.Config, error) {
	cfg := &acquisition.Config{
		Relays:            splitList(viper.GetStringSlice("relays")),
		AttemptTimeout:    viper.GetString("attempt_timeout"),
		BatchSize:         viper.GetInt("batch_size"),
		SmallPayloadBytes: viper.GetInt("small_payload_bytes"),
		MaxDownloadSize:   viper.GetString("max_download_size"),
		UserAgent:         viper.GetString("user_agent"),
	}
	if err := cfg.Finalize(nil); err != nil {
		return nil, fmt.Errorf("acquisition config: %w", err)
	}
	return cfg, nil
}

// splitList flattens comma-separated entries, which is how relays arrive
// from the environment.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func newLogger() *slog.Logger {
	cfg := &logger.Config{Level: "warn", Format: "text"}
	if verbose {
		cfg.Level = "debug"
	}
	return logger.New(cfg, os.Stderr)
}

func newPipeline() (acquisition.System, error) {
	cfg, err := acquisitionConfig()
	if err != nil {
		return nil, err
	}
	return acquisition.New(cfg, nil, newLogger()), nil
}

func status(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
