// Package configcmder provides the config command for managing persistent
// cairofix configuration stored in the .cairofix/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent cairofix configuration.

Configuration is stored as config.toml in the .cairofix/ directory and provides
default values for command flags. CLI flags and CAIROFIX_* environment
variables always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  client.endpoint, client.auth_header, client.timeout,
  prompt.instruction, output.render

Use subcommands to get, set, or list configuration values:
  cairofix config set <key> <value>    Set a configuration value
  cairofix config get <key>            Get a configuration value
  cairofix config list                 List all configuration values

Examples:
  cairofix config set client.timeout 90s
  cairofix config set output.render auto
  cairofix config get client.endpoint
  cairofix config list`

const configShortDesc string = "Manage persistent cairofix configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
