package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eloualiche/relink/pkg/config"
	"github.com/eloualiche/relink/pkg/installer"
	"github.com/eloualiche/relink/pkg/logging"
)

func newInstallCmd() *cobra.Command {
	var (
		dest  string
		force bool
	)

	cmd := &cobra.Command{
		Use:     "install [PROJECT_DIR]",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.install")

			projectDir := "."
			if len(args) == 1 {
				projectDir = args[0]
			}

			// The settings file supplies the destination when the flag
			// is not given.
			if !cmd.Flags().Changed("dest") {
				if settings, err := config.LoadSettings(); err == nil && settings.Install.Dest != "" {
					dest = settings.Install.Dest
				}
			}

			logger.Info().
				Str("project", projectDir).
				Str("dest", dest).
				Bool("force", force).
				Msg("Installing scaffolding")

			result, err := installer.Install(installer.Options{
				ProjectDir: projectDir,
				Dest:       dest,
				Force:      force,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Installing into %s\n", result.ToolsDir)
			for _, f := range result.Installed {
				fmt.Fprintf(out, MsgInstalledFormat, f)
			}
			for _, f := range result.Skipped {
				fmt.Fprintf(out, MsgSkippedFormat, f)
			}

			template := "nickel/links_template.ncl"
			fmt.Fprintln(out)
			fmt.Fprintln(out, MsgInstallDone)
			fmt.Fprintf(out, MsgInstallStepEdit+"\n", template)
			fmt.Fprintf(out, MsgInstallStepNckl+"\n", template)
			fmt.Fprintln(out, MsgInstallStepLink)
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "dest", installer.DefaultDest, MsgFlagDest)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)

	return cmd
}
