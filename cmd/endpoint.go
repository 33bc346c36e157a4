package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nini1972/comicbook-creator/endpoint"
)

var endpointCmd = &cobra.Command{
	Use:   "endpoint [topic]",
	Short: "Print the stream URL a topic would be sent to",
	Long:  "Without a topic, prints the server base URL used for relative image links.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ep := endpoint.New(cfg.Server.Scheme, cfg.Server.Host, cfg.Server.Port, cfg.Server.Path)
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ep.BaseURL())
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), ep.URL(args[0]))
		return nil
	},
}
