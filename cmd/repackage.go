package cmd

import (
	"fmt"
	"github.com/spf13/cobra"
	"github.com/stubborn-gaga-0805/cibuild/consts"
	"github.com/stubborn-gaga-0805/cibuild/helpers"
	"github.com/stubborn-gaga-0805/cibuild/pkg/manifest"
	"github.com/stubborn-gaga-0805/cibuild/pkg/repack"
	"path/filepath"
)

type repackageCmd struct {
	*baseCmd
	repacker *repack.Repacker
}

func newRepackageCmd() *repackageCmd {
	r := &repackageCmd{baseCmd: newBaseCmd()}
	r.cmd = &cobra.Command{
		Use:     "repackage [version]",
		Aliases: []string{"repack"},
		Short:   "Download the published release archives and repackage them per platform",
		Long:    "💡 Repackage the GitHub release of a version, eg: cibuild repackage v1.2.3",
		Args:    cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := r.initConfig(cmd); err != nil {
				r.fatal(err)
				return
			}
			if err := r.run(args); err != nil {
				r.fatal(err)
				return
			}
		},
	}

	return r
}

func (r *repackageCmd) run(args []string) error {
	var explicit string
	if len(args) > 0 {
		explicit = args[0]
	}
	version, err := manifest.Resolve(explicit, filepath.Join(r.workingDir, consts.CargoManifest), r.workingDir)
	if err != nil {
		return err
	}
	if r.repacker == nil {
		r.repacker = repack.New(r.config, r.workingDir)
	}

	targets := r.config.Repackage.Targets
	for _, t := range targets {
		helpers.Info(r.out, "Downloading file: %s", r.repacker.RemoteURL(t, version))
	}
	bar := helpers.NewProgressBar(r.out, len(targets), fmt.Sprintf("Repackaging %s...", version))
	defer bar.Finish()
	_, err = r.repacker.Run(r.ctx, targets, version, func(o repack.Outcome) {
		bar.Increment()
		if o.Skipped != nil {
			helpers.Skip(r.out, "%s skipped: %v", o.Target.Triple, o.Skipped)
			return
		}
		helpers.Success(r.out, "Build created in: '%s'", o.Artifact)
	})
	return err
}
