package main

import (
	"fmt"
	"os"

	"github.com/book-expert/logger"
	"github.com/book-expert/tts-chunker/internal/chunking"
	"github.com/book-expert/tts-chunker/internal/config"
	"github.com/spf13/cobra"
)

// Flag names.
const (
	flagConfig  = "config"
	flagLogDir  = "log-dir"
	flagMin     = "min"
	flagOptMin  = "opt-min"
	flagOptMax  = "opt-max"
	flagMax     = "max"
	flagWPM     = "wpm"
	flagJSON    = "json"
	flagWorkers = "workers"
	flagOrdinal = "ordinal"
)

// Flag descriptions.
const (
	flagConfigDesc  = "TOML file whose [chunking] section sets the size band"
	flagLogDirDesc  = "Directory for the log file"
	flagMinDesc     = "Minimum chunk length in characters"
	flagOptMinDesc  = "Lower bound of the optimal chunk length"
	flagOptMaxDesc  = "Upper bound of the optimal chunk length"
	flagMaxDesc     = "Maximum chunk length in characters"
	flagWPMDesc     = "Reading speed in words per minute"
	flagJSONDesc    = "Print chunk manifests as JSON"
	flagWorkersDesc = "Number of files prepared in parallel"
	flagOrdinalDesc = "Read the number as an ordinal"
)

const logFileName = "chunk-cli.log"

// rootOptions holds the persistent flag values.
type rootOptions struct {
	configPath string
	logDir     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "chunk-cli",
		Short: "Prepare Kyrgyz text for TTS dataset recording",
		Long: `Splits book text into normalized, duration-bounded chunks for
voice-actor recording, and shows how single numbers and phrases are read.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, flagConfig, "", flagConfigDesc)
	rootCmd.PersistentFlags().StringVar(&opts.logDir, flagLogDir, os.TempDir(), flagLogDirDesc)

	rootCmd.AddCommand(newChunkCmd(opts))
	rootCmd.AddCommand(newNormalizeCmd(opts))
	rootCmd.AddCommand(newWordsCmd())

	return rootCmd
}

// chunkingConfig returns the [chunking] section of the config file, or the
// defaults when no file is given.
func (o *rootOptions) chunkingConfig() (chunking.Config, error) {
	if o.configPath == "" {
		return chunking.DefaultConfig(), nil
	}

	data, err := os.ReadFile(o.configPath)
	if err != nil {
		return chunking.Config{}, fmt.Errorf("failed to read config '%s': %w", o.configPath, err)
	}

	cfg, err := config.Parse(data)
	if err != nil {
		return chunking.Config{}, fmt.Errorf("config '%s': %w", o.configPath, err)
	}

	return cfg.Chunking, nil
}

func (o *rootOptions) newLogger() (*logger.Logger, error) {
	log, err := logger.New(o.logDir, logFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return log, nil
}

func closeLogger(log *logger.Logger) {
	err := log.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error closing logger: %v\n", err)
	}
}
