package cmd

import (
	"fmt"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stubborn-gaga-0805/cibuild/conf"
)

type planCmd struct {
	*buildCmd
}

func newPlanCmd() *planCmd {
	plan := &planCmd{buildCmd: newBuildCmd()}
	plan.cmd = &cobra.Command{
		Use:     "plan",
		Aliases: []string{"dry-run"},
		Short:   "Show what 'build' would run without running it",
		Long:    "💡 Print the release-tag decision and the build commands, eg: cibuild plan",
		Run: func(cmd *cobra.Command, args []string) {
			if err := plan.initConfig(cmd); err != nil {
				plan.fatal(err)
				return
			}
			plan.buildFlags = &buildFlags{flagForce: getBool(cmd, flagForce)}
			plan.run()
		},
	}
	addBoolFlag(plan.cmd, false, flagForce)

	return plan
}

func (plan *planCmd) run() {
	p := plan.pipeline()
	decision := p.Decide()
	if path := conf.GetConfigPath(); len(path) > 0 {
		fmt.Fprintf(plan.out, "[Config] %s\n", path)
	}
	fmt.Fprintf(plan.out, "[Decision] %s (%s)\n", color.BlueString(decision.String()), p.Config.CI.TagVariable)
	if !decision.ShouldBuild() {
		return
	}
	for i, inv := range p.Plan() {
		fmt.Fprintf(plan.out, "  %d. %s\n", i+1, color.GreenString(inv.String()))
	}
}
