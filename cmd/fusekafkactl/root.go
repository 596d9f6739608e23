package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	fusekafka "github.com/axondata/go-fusekafka"
	"github.com/axondata/go-fusekafka/internal/logging"
)

func newRootCommand(extra ...fusekafka.Option) *cobra.Command {
	var settingsFlag string
	var levelFlag string
	var formatFlag string

	rootCmd := &cobra.Command{
		Use:           "fusekafkactl {" + strings.Join(fusekafka.Actions(), "|") + "}",
		Short:         "Supervise the fuse_kafka worker fleet",
		Args:          cobra.ExactArgs(1),
		ValidArgs:     fusekafka.Actions(),
		Version:       fusekafka.GetVersion().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := fusekafka.LoadSettings(settingsFlag)
			if err != nil {
				return err
			}
			if levelFlag != "" {
				settings.LogLevel = levelFlag
			}
			if formatFlag != "" {
				settings.LogFormat = formatFlag
			}

			logger, err := logging.New(logging.Options{
				Level:  settings.LogLevel,
				Format: settings.LogFormat,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			logger = logger.With("run_id", uuid.NewString(), "action", args[0])

			opts := append(settings.Options(), fusekafka.WithLogger(logger))
			opts = append(opts, extra...)
			sup := fusekafka.NewSupervisor(opts...)

			// The supervisor is not closed: workers must outlive this invocation.
			result, err := sup.Do(cmd.Context(), args[0])
			if result.Action != fusekafka.ActionUnknown {
				if rerr := renderResult(cmd.OutOrStdout(), result); rerr != nil && err == nil {
					err = rerr
				}
			}
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&settingsFlag, "settings", "", "YAML settings file")
	rootCmd.PersistentFlags().StringVar(&levelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "log-format", "", "Log format: auto, console, json")

	return rootCmd
}

func renderResult(w io.Writer, result fusekafka.Result) error {
	switch result.Action {
	case fusekafka.ActionStart:
		return renderSpawns(w, result.Spawned)
	case fusekafka.ActionStop:
		_, err := fmt.Fprintf(w, "Stopped %d workers\n", result.Stopped)
		return err
	case fusekafka.ActionRestart:
		if _, err := fmt.Fprintf(w, "Stopped %d workers\n", result.Stopped); err != nil {
			return err
		}
		return renderSpawns(w, result.Spawned)
	case fusekafka.ActionStatus:
		_, err := fmt.Fprintln(w, result.Status.State)
		return err
	default:
		return nil
	}
}
