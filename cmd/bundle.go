package cmd

import (
	"errors"
	"fmt"
	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/stubborn-gaga-0805/cibuild/consts"
	"github.com/stubborn-gaga-0805/cibuild/helpers"
	"github.com/stubborn-gaga-0805/cibuild/pkg/bundle"
	"github.com/stubborn-gaga-0805/cibuild/pkg/manifest"
	"os"
	"path/filepath"
	"runtime"
)

type bundleCmd struct {
	*baseCmd
	*bundleFlags
}

type bundleFlags struct {
	flagYes  bool
	flagGOOS string
}

var (
	flagYes  = flag{"yes", "y", false, "Replace an existing publish directory without asking"}
	flagGOOS = flag{"goos", "", runtime.GOOS, "Platform the bundle is made for (controls .exe, line endings and archive format)"}
)

func newBundleCmd() *bundleCmd {
	b := &bundleCmd{baseCmd: newBaseCmd(), bundleFlags: new(bundleFlags)}
	b.cmd = &cobra.Command{
		Use:     "bundle [triple] [tag] [commit]",
		Aliases: []string{"publish"},
		Short:   "Collect the release build into target/publish and archive it",
		Long:    `💡 Create the distributable archive, eg: cibuild bundle x86_64-pc-windows-msvc v1.2.3 3f2c1ab`,
		Args:    cobra.MaximumNArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			if err := b.initConfig(cmd); err != nil {
				b.fatal(err)
				return
			}
			b.bundleFlags = &bundleFlags{
				flagYes:  getBool(cmd, flagYes),
				flagGOOS: cmd.Flag(flagGOOS.name).Value.String(),
			}
			if err := b.run(args); err != nil {
				b.fatal(err)
				return
			}
		},
	}
	addBoolFlag(b.cmd, false, flagYes)
	addStringFlag(b.cmd, false, flagGOOS)

	return b
}

func (b *bundleCmd) options(args []string) (bundle.Options, error) {
	opts := bundle.Options{
		WorkDir:   b.workingDir,
		Product:   b.config.Product,
		Triple:    b.config.Cargo.Target,
		GOOS:      b.flagGOOS,
		Overwrite: b.flagYes,
		Commit:    os.Getenv(consts.CommitVariable),
	}
	var explicitTag = os.Getenv(consts.TagNameVariable)
	if len(args) > 0 {
		opts.Triple = args[0]
	}
	if len(args) > 1 {
		explicitTag = args[1]
	}
	if len(args) > 2 {
		opts.Commit = args[2]
	}
	tag, err := manifest.Resolve(explicitTag, filepath.Join(b.workingDir, consts.CargoManifest), b.workingDir)
	if err != nil {
		return opts, err
	}
	opts.Tag = tag
	return opts, nil
}

func (b *bundleCmd) run(args []string) error {
	opts, err := b.options(args)
	if err != nil {
		return err
	}
	res, err := bundle.Assemble(opts)
	if errors.Is(err, bundle.ErrExists) {
		fmt.Printf("🤔 [Publish path: %s] already exists！\n", bundle.PublishDir(opts))
		prompt := &survey.Confirm{
			Message: "Whether to overwrite the existing publish directory ?",
			Default: false,
			Help:    "WARNING: Selecting overwrite will delete all content under the existing directory",
		}
		if e := survey.AskOne(prompt, &opts.Overwrite, survey.WithIcons(func(icons *survey.IconSet) {
			icons.Question.Text = "📥"
			icons.Question.Format = "blue+b"
		})); e != nil {
			return e
		}
		if !opts.Overwrite {
			return err
		}
		res, err = bundle.Assemble(opts)
	}
	if err != nil {
		return err
	}
	helpers.Success(b.out, "Build created in: '%s'", res.Archive)
	return nil
}
