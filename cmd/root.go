package cmd

import (
	"fmt"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stubborn-gaga-0805/cibuild/consts"
)

type rootCmd struct {
	*baseCmd
}

// NewCommand builds the cibuild command tree.
func NewCommand() *cobra.Command {
	return newRootCmd().getCmd()
}

func newRootCmd() *rootCmd {
	rc := &rootCmd{newBaseCmd()}
	rc.cmd = &cobra.Command{
		Use:     consts.AppName,
		Short:   "CI build step for tagged and untagged commits",
		Version: consts.Version,
		Run: func(cmd *cobra.Command, args []string) {
			if err := cmd.Usage(); err != nil {
				panic(err)
			}
		},
	}
	rc.cmd.SetUsageFunc(func(c *cobra.Command) error {
		out := c.OutOrStdout()
		if len(c.Commands()) > 0 {
			fmt.Fprintf(out, "+--------------------------------------------------+\n|                >_ cibuild %-8s               |\n|                   MIT License                    |\n+--------------------------------------------------+\n\n", consts.Version)
		}
		fmt.Fprintf(out, "[Command] %s\n", color.BlueString(c.Use))
		fmt.Fprintf(out, "Flag Usages:\n%s \n", color.YellowString(c.Flags().FlagUsages()))
		if len(c.Commands()) > 0 {
			fmt.Fprintf(out, "Command Usages:\n")
			for _, sc := range c.Commands() {
				if sc.Name() == "completion" || sc.Name() == "help" {
					continue
				}
				fmt.Fprintf(out, "  %s %s\n", color.GreenString(sc.Name()), sc.Short)
			}
		}
		fmt.Fprintln(out)
		return nil
	})
	addStringFlag(rc.cmd, true, flagAppConfig)
	rc.addCommands(
		newBuildCmd(),
		newPlanCmd(),
		newEnvCmd(),
		newBundleCmd(),
		newRepackageCmd(),
	)

	return rc
}
