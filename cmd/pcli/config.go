package main

import (
	"fmt"

	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/runtime/version"
	"github.com/urfave/cli/v2"
)

// configCommand prints the active chain config in the YAML layout read by
// --chain-config-file, so a named preset can be dumped and then edited.
func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the active chain config as YAML",
		Action: func(c *cli.Context) error {
			if _, err := fmt.Fprintf(c.App.Writer, "# gasper %s\n", version.SemanticVersion()); err != nil {
				return err
			}
			_, err := fmt.Fprintf(c.App.Writer, "%s\n", params.ConfigToYaml(params.BeaconConfig()))
			return err
		},
	}
}
