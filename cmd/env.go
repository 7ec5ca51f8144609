package cmd

import (
	"fmt"
	"github.com/spf13/cobra"
	"github.com/stubborn-gaga-0805/cibuild/helpers"
	"os"
)

type envCmd struct {
	*baseCmd
	environ func() []string
}

func newEnvCmd() *envCmd {
	e := &envCmd{baseCmd: newBaseCmd(), environ: os.Environ}
	e.cmd = &cobra.Command{
		Use:     "env",
		Aliases: []string{"environ"},
		Short:   "Print the build environment with secrets masked",
		Run: func(cmd *cobra.Command, args []string) {
			if err := e.initConfig(cmd); err != nil {
				e.fatal(err)
				return
			}
			e.run()
		},
	}

	return e
}

func (e *envCmd) run() {
	for _, line := range helpers.Environ(e.environ(), e.config.CI.MaskPatterns) {
		fmt.Fprintln(e.out, line)
	}
}
