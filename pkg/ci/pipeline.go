package ci

import (
	"context"
	"fmt"
	"github.com/stubborn-gaga-0805/cibuild/conf"
	"github.com/stubborn-gaga-0805/cibuild/helpers"
	"github.com/stubborn-gaga-0805/cibuild/pkg/cargo"
	"io"
	"os"
)

// Pipeline is the CI build step: gate on the release tag, then build debug and release in order.
type Pipeline struct {
	Config *conf.App
	Runner cargo.Runner
	Lookup LookupFunc
	// Environ supplies the KEY=VALUE pairs that are printed before building.
	Environ func() []string
	Out     io.Writer
	Force   bool

	// OnStep is called after every successful build, if set.
	OnStep func(profile cargo.Profile)
}

type Result struct {
	Decision Decision
	Executed []cargo.Invocation
}

func NewPipeline(cfg *conf.App, runner cargo.Runner) *Pipeline {
	return &Pipeline{
		Config:  cfg,
		Runner:  runner,
		Lookup:  OSLookup,
		Environ: os.Environ,
		Out:     os.Stdout,
	}
}

func (p *Pipeline) Decide() Decision {
	if p.Force {
		return DecisionBuild
	}
	return Decide(p.Lookup, p.Config.CI)
}

// Plan returns the invocations Run would execute, in order.
func (p *Pipeline) Plan() []cargo.Invocation {
	plan := make([]cargo.Invocation, 0, len(cargo.Profiles))
	for _, profile := range cargo.Profiles {
		plan = append(plan, cargo.Plan(p.Config.Cargo, profile))
	}
	return plan
}

func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	res := Result{Decision: p.Decide()}

	switch res.Decision {
	case DecisionSkipTag:
		helpers.Skip(p.Out, "Release tag detected (%s), skipping the build step", p.Config.CI.TagVariable)
		return res, nil
	case DecisionSkipNoCI:
		helpers.Skip(p.Out, "%s is not set, skipping the build step (use --force to build anyway)", p.Config.CI.TagVariable)
		return res, nil
	}

	if p.Config.CI.PrintEnv {
		for _, line := range helpers.Environ(p.Environ(), p.Config.CI.MaskPatterns) {
			fmt.Fprintln(p.Out, line)
		}
	}

	for i, inv := range p.Plan() {
		profile := cargo.Profiles[i]
		helpers.Info(p.Out, "[%s] %s", profile, inv)
		if err := p.Runner.Run(ctx, inv); err != nil {
			return res, &cargo.BuildError{Profile: profile, Err: err}
		}
		res.Executed = append(res.Executed, inv)
		if p.OnStep != nil {
			p.OnStep(profile)
		}
	}
	return res, nil
}
