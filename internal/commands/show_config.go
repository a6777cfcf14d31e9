package featcmp

import (
	"github.com/mwiater/featcmp/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the config file is loaded properly and overridden by environment and flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), GetConfig(), verbose)
	},
}

func init() {
	showConfigCmd.Flags().BoolP("verbose", "v", false, "also dump the full config struct")
	showCmd.AddCommand(showConfigCmd)
}
