package cli

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/simreg/internal/version"
	"github.com/arthur-debert/simreg/pkg/config"
	"github.com/arthur-debert/simreg/pkg/logging"
	"github.com/arthur-debert/simreg/pkg/simreg"
	"github.com/arthur-debert/simreg/pkg/ui"
)

// options shared by every subcommand
type options struct {
	reg       *simreg.Registries
	verbosity int
	format    ui.Format
}

// outputFormat resolves the requested format against stdout
func (o *options) outputFormat() ui.Format {
	return ui.Resolve(o.format, os.Stdout)
}

// NewRootCmd creates the root command working on reg, which must already
// be initialized
func NewRootCmd(reg *simreg.Registries) *cobra.Command {
	opts := &options{reg: reg}

	rootCmd := &cobra.Command{
		Use:     "simreg",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbosity := opts.verbosity
			if verbosity == 0 {
				verbosity = config.Get().Logging.Verbosity
			}
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			// --format wins over output.format from config.toml
			if flag := cmd.Flag("format"); flag == nil || !flag.Changed {
				if err := opts.format.Set(config.Get().Output.Format); err != nil {
					return err
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().VarP(&opts.format, "format", "o", MsgFlagFormat)

	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newDescribeCmd(opts))
	rootCmd.AddCommand(newDocsCmd(opts))
	rootCmd.AddCommand(newFunctionsCmd(opts))
	rootCmd.AddCommand(newCallCmd(opts))
	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
