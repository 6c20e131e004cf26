// Package cairofixcmder is the root of the cairofix command tree.
package cairofixcmder

import (
	"github.com/spf13/cobra"

	authcmder "github.com/papercomputeco/cairofix/cmd/cairofix/auth"
	configcmder "github.com/papercomputeco/cairofix/cmd/cairofix/config"
	fixcmder "github.com/papercomputeco/cairofix/cmd/cairofix/fix"
	versioncmder "github.com/papercomputeco/cairofix/cmd/version"
)

const cairofixLongDesc string = `cairofix sends Cairo smart contracts to Cairo Coder and prints the fix.

Running cairofix without a subcommand is the same as "cairofix fix".

  cairofix                     Fix the embedded AnimalNFT contract
  cairofix fix <file>          Fix a contract file
  cairofix auth cairo-coder    Store the Cairo Coder API key
  cairofix config list         Show configuration`

const cairofixShortDesc string = "cairofix - Cairo Coder contract fixer"

func NewCairofixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cairofix [contract-file]",
		Short:         cairofixShortDesc,
		Long:          cairofixLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .cairofix/ config directory")
	cmd.PersistentFlags().Bool("json-logs", false, "Write logs to stderr as JSON")
	cmd.PersistentFlags().String("log-file", "", "Also append JSON logs to this file")

	fixcmder.Adopt(cmd)

	// Add subcommands
	cmd.AddCommand(fixcmder.NewFixCmd())
	cmd.AddCommand(authcmder.NewAuthCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
