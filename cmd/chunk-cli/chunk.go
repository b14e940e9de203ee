package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/book-expert/tts-chunker/internal/chunking"
	"github.com/book-expert/tts-chunker/internal/core"
	"github.com/book-expert/tts-chunker/internal/pipeline"
	"github.com/spf13/cobra"
)

// Log messages.
const (
	logPreparedFile = "Prepared %s: %d chunks, %d rejected, %s"
	logRejected     = "Rejected chunk in %s: %v"
)

type chunkOptions struct {
	minChars   int
	optMin     int
	optMax     int
	maxChars   int
	wpm        float64
	jsonOutput bool
	workers    int
}

func newChunkCmd(root *rootOptions) *cobra.Command {
	opts := &chunkOptions{}

	cmd := &cobra.Command{
		Use:   "chunk FILE...",
		Short: "Split text files into recordable chunks",
		Long: `Runs every file through line filtering, normalization, sentence
segmentation, chunk building, pair repair and validation. Flags override the
[chunking] section of --config.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChunk(cmd, root, opts, args)
		},
	}

	defaults := chunking.DefaultConfig()
	cmd.Flags().IntVar(&opts.minChars, flagMin, defaults.MinChars, flagMinDesc)
	cmd.Flags().IntVar(&opts.optMin, flagOptMin, defaults.OptimalMinChars, flagOptMinDesc)
	cmd.Flags().IntVar(&opts.optMax, flagOptMax, defaults.OptimalMaxChars, flagOptMaxDesc)
	cmd.Flags().IntVar(&opts.maxChars, flagMax, defaults.MaxChars, flagMaxDesc)
	cmd.Flags().Float64Var(&opts.wpm, flagWPM, defaults.WordsPerMinute, flagWPMDesc)
	cmd.Flags().BoolVar(&opts.jsonOutput, flagJSON, false, flagJSONDesc)
	cmd.Flags().IntVar(&opts.workers, flagWorkers, pipeline.DefaultBatchWorkers, flagWorkersDesc)

	return cmd
}

// apply overrides cfg with the flags set on cmd.
func (o *chunkOptions) apply(cmd *cobra.Command, cfg chunking.Config) chunking.Config {
	flags := cmd.Flags()

	if flags.Changed(flagMin) {
		cfg.MinChars = o.minChars
	}

	if flags.Changed(flagOptMin) {
		cfg.OptimalMinChars = o.optMin
	}

	if flags.Changed(flagOptMax) {
		cfg.OptimalMaxChars = o.optMax
	}

	if flags.Changed(flagMax) {
		cfg.MaxChars = o.maxChars
		cfg.RelaxedMaxChars = max(cfg.RelaxedMaxChars, o.maxChars)
	}

	if flags.Changed(flagWPM) {
		cfg.WordsPerMinute = o.wpm
	}

	return cfg
}

func runChunk(cmd *cobra.Command, root *rootOptions, opts *chunkOptions, files []string) error {
	cfg, err := root.chunkingConfig()
	if err != nil {
		return err
	}

	preparer, err := pipeline.New(opts.apply(cmd, cfg), nil)
	if err != nil {
		return err
	}

	log, err := root.newLogger()
	if err != nil {
		return err
	}
	defer closeLogger(log)

	texts := make([]string, len(files))

	for i, file := range files {
		data, readErr := os.ReadFile(file)
		if readErr != nil {
			return fmt.Errorf("failed to read '%s': %w", file, readErr)
		}

		texts[i] = string(data)
	}

	results, err := preparer.PrepareBatch(cmd.Context(), texts, opts.workers)
	if err != nil {
		return err
	}

	manifests := make([]core.Manifest, len(files))

	for i, result := range results {
		for _, rejection := range result.Rejected {
			log.Warn(logRejected, files[i], rejection)
		}

		log.Info(logPreparedFile, files[i], len(result.Chunks), len(result.Rejected),
			chunking.FormatDuration(result.TotalDuration))

		manifests[i] = core.Manifest{
			DocumentKey:   files[i],
			CreatedAt:     time.Now().UTC(),
			Chunks:        result.Chunks,
			RejectedCount: len(result.Rejected),
			TotalDuration: result.TotalDuration,
		}
	}

	if opts.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), manifests)
	}

	return writeText(cmd.OutOrStdout(), manifests)
}

func writeJSON(out io.Writer, manifests []core.Manifest) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	err := encoder.Encode(manifests)
	if err != nil {
		return fmt.Errorf("failed to encode manifests: %w", err)
	}

	return nil
}

func writeText(out io.Writer, manifests []core.Manifest) error {
	for _, manifest := range manifests {
		_, err := fmt.Fprintf(out, "%s: %d chunks, %d rejected, %s\n", manifest.DocumentKey,
			len(manifest.Chunks), manifest.RejectedCount, chunking.FormatDuration(manifest.TotalDuration))
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		for _, chunk := range manifest.Chunks {
			_, err = fmt.Fprintf(out, "%4d [%s] %s\n",
				chunk.Index, chunking.FormatDuration(chunk.EstimatedDuration), chunk.Text)
			if err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}

	return nil
}
