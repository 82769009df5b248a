package cli

import (
	"github.com/spf13/cobra"

	"github.com/eloualiche/relink/pkg/config"
	"github.com/eloualiche/relink/pkg/display"
	"github.com/eloualiche/relink/pkg/errors"
	"github.com/eloualiche/relink/pkg/linker"
	"github.com/eloualiche/relink/pkg/logging"
	"github.com/eloualiche/relink/pkg/synthfs"
)

func newLinkCmd(dryRun, noColor *bool) *cobra.Command {
	return &cobra.Command{
		Use:     "link CONFIG",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.link")
			configPath := args[0]

			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}

			logger.Info().
				Str("config", configPath).
				Bool("dryRun", *dryRun).
				Msg("Starting link")

			reporter := display.NewConsoleReporter(display.Options{
				Writer:   cmd.OutOrStdout(),
				MaxPairs: settings.Display.MaxPairs,
				NoColor:  *noColor || settings.Display.NoColor,
			})

			opts := linker.Options{
				ConfigPath: configPath,
				DryRun:     *dryRun,
				Reporter:   reporter,
			}
			// Real runs go through the synthfs pipeline; dry runs never
			// reach the executor.
			if !*dryRun {
				opts.Executor = synthfs.NewExecutor()
			}

			result, err := linker.Run(opts)
			if err != nil {
				return err
			}

			if !result.Success() {
				return errors.New(errors.ErrSymlinkCreate, MsgRunFailed)
			}
			return nil
		},
	}
}
