package cmd

import (
	"fmt"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stubborn-gaga-0805/cibuild/helpers"
	"github.com/stubborn-gaga-0805/cibuild/pkg/cargo"
	"github.com/stubborn-gaga-0805/cibuild/pkg/ci"
)

type buildCmd struct {
	*baseCmd
	*buildFlags

	runner  cargo.Runner
	lookup  ci.LookupFunc
	environ func() []string
}

type buildFlags struct {
	flagForce bool
}

var (
	flagForce = flag{"force", "f", false, "Build even when the commit is a release tag or the CI variable is unset"}
)

func newBuildCmd() *buildCmd {
	build := &buildCmd{
		baseCmd:    newBaseCmd(),
		buildFlags: new(buildFlags),
		runner:     cargo.NewExecRunner(),
	}
	build.cmd = &cobra.Command{
		Use:     "build",
		Aliases: []string{"ci"},
		Short:   "Run the debug and release builds unless the commit is a release tag",
		Long:    "💡 Build the project twice (debug, then release) on non-tag CI builds, eg: cibuild build --force",
		Run: func(cmd *cobra.Command, args []string) {
			if err := build.initConfig(cmd); err != nil {
				build.fatal(err)
				return
			}
			build.buildFlags = &buildFlags{flagForce: getBool(cmd, flagForce)}
			if err := build.run(); err != nil {
				build.fatal(err)
				return
			}
		},
	}
	addBoolFlag(build.cmd, false, flagForce)

	return build
}

func (build *buildCmd) pipeline() *ci.Pipeline {
	p := ci.NewPipeline(build.config, build.runner)
	p.Out = build.out
	p.Force = build.flagForce
	if build.lookup != nil {
		p.Lookup = build.lookup
	}
	if build.environ != nil {
		p.Environ = build.environ
	}
	return p
}

func (build *buildCmd) run() error {
	p := build.pipeline()
	if p.Decide().ShouldBuild() {
		bar := helpers.NewProgressBar(build.out, len(cargo.Profiles), "Building...")
		p.OnStep = func(cargo.Profile) { bar.Increment() }
		defer bar.Finish()
	}
	res, err := p.Run(build.ctx)
	if err != nil {
		return err
	}
	if res.Decision.ShouldBuild() {
		fmt.Fprintf(build.out, "\n🍺 %s\n", color.GreenString("Debug and release builds succeeded!"))
	}
	return nil
}
