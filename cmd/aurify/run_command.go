package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"aurify/internal/enhance"
	"aurify/internal/pipeline"
	"aurify/internal/transcode"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var keepEnhanced bool
	var deleteEnhanced bool
	var workers int

	cmd := &cobra.Command{
		Use:   "run <source-dir> <target-dir> [format] [quality]",
		Short: "Enhance a directory of audio files",
		Long: "Normalizes every audio file in the source directory to 16-bit 44.1kHz WAV,\n" +
			"runs the enhancement engine over the normalized set, and encodes the result\n" +
			"into the target directory in the requested format.",
		Args: cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			sourceDir := args[0]
			targetDir := args[1]
			formatName := ""
			quality := ""
			if len(args) > 2 {
				formatName = args[2]
			}
			if len(args) > 3 {
				quality = args[3]
			}

			if keepEnhanced {
				cfg.Pipeline.KeepEnhanced = true
			}
			if workers > 0 {
				cfg.Pipeline.Workers = workers
			}

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			invoker := transcode.NewFFmpeg(cfg.Tools.FFmpeg, logger)
			enhancer := enhance.NewCLI(cfg.Tools.Enhancer, logger, enhance.WithArgs(cfg.Tools.EnhancerArgs))

			var decider pipeline.Decider
			if deleteEnhanced {
				decider = pipeline.StaticDecider(true)
			} else {
				decider = pipeline.NewTerminalDecider()
			}

			orchestrator := pipeline.New(cfg, invoker, enhancer, decider, logger)

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := orchestrator.Run(runCtx, sourceDir, targetDir, formatName, quality)
			if err != nil {
				return err
			}

			printRunSummary(cmd, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepEnhanced, "keep-enhanced", false, "Keep the enhanced intermediate without prompting")
	cmd.Flags().BoolVar(&deleteEnhanced, "delete-enhanced", false, "Delete the enhanced intermediate without prompting")
	cmd.Flags().IntVar(&workers, "workers", 0, "Override the configured worker count")
	cmd.MarkFlagsMutuallyExclusive("keep-enhanced", "delete-enhanced")
	return cmd
}

func printRunSummary(cmd *cobra.Command, result *pipeline.Result) {
	out := cmd.OutOrStdout()

	rows := [][]string{
		{"normalize", strconv.Itoa(result.Normalized.Processed), strconv.Itoa(len(result.Normalized.Skipped))},
		{"enhance", strconv.Itoa(result.Enhanced.Processed), strconv.Itoa(len(result.Enhanced.Skipped))},
		{"encode", strconv.Itoa(result.Encoded.Processed), strconv.Itoa(len(result.Encoded.Skipped))},
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Stage", "Processed", "Skipped"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	))

	for _, stage := range []struct {
		name   string
		report pipeline.Report
	}{
		{"normalize", result.Normalized},
		{"enhance", result.Enhanced},
		{"encode", result.Encoded},
	} {
		for _, skipped := range stage.report.Skipped {
			fmt.Fprintf(out, "Skipped during %s: %s\n", stage.name, skipped)
		}
	}

	fmt.Fprintf(out, "Run %s finished: %d file(s) written to %s\n", result.RunID, len(result.TargetFiles), result.TargetDir)
	if result.EnhancedDir != "" {
		fmt.Fprintf(out, "Enhanced intermediate kept at %s\n", result.EnhancedDir)
	}
}
