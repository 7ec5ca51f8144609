package cmd

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stubborn-gaga-0805/cibuild/conf"
	"github.com/stubborn-gaga-0805/cibuild/helpers"
	"io"
	"os"
)

type cmder interface {
	getCmd() *cobra.Command
}

type baseCmd struct {
	cmd *cobra.Command
	ctx context.Context

	id             string
	configFilePath string
	workingDir     string
	config         *conf.App
	out            io.Writer
}

func newBaseCmd() *baseCmd {
	var (
		err   error
		id, _ = os.Hostname()
		bc    = &baseCmd{
			id:  id,
			ctx: context.Background(),
			out: os.Stdout,
		}
	)
	bc.workingDir, err = os.Getwd()
	if err != nil {
		fmt.Printf("🚧 Stopped...[%v]\n", err)
		os.Exit(1)
		return nil
	}
	return bc
}

func (base *baseCmd) getCmd() *cobra.Command {
	return base.cmd
}

func (base *baseCmd) addCommands(commands ...cmder) {
	for _, command := range commands {
		base.cmd.AddCommand(command.getCmd())
	}
}

// initConfig 读取配置文件, 文件不存在时使用默认配置
func (base *baseCmd) initConfig(cmd *cobra.Command) error {
	base.configFilePath = getAppConfigPath(cmd).ToString()
	if cmd.Context() != nil {
		base.ctx = cmd.Context()
	}
	configs, err := conf.Load(base.configFilePath)
	if err != nil {
		return err
	}
	conf.SetConfigPath(base.configFilePath)
	conf.SetConfig(configs)
	base.config = configs
	return nil
}

func (base *baseCmd) fatal(err error) {
	helpers.Fail(os.Stderr, "[Command: %s] execution failed...[%v]", base.cmd.Name(), err)
	os.Exit(1)
}

type flag struct {
	name         string
	shortName    string
	defaultValue interface{}
	usage        string
}

func getFlags(cmd *cobra.Command, persistent bool) *pflag.FlagSet {
	flags := cmd.Flags()
	if persistent {
		flags = cmd.PersistentFlags()
	}
	return flags
}

func addStringFlag(cmd *cobra.Command, persistent bool, f flag) {
	getFlags(cmd, persistent).StringP(f.name, f.shortName, f.defaultValue.(string), f.usage)
}

func addBoolFlag(cmd *cobra.Command, persistent bool, f flag) {
	getFlags(cmd, persistent).BoolP(f.name, f.shortName, f.defaultValue.(bool), f.usage)
}

func getBool(cmd *cobra.Command, f flag) bool {
	var (
		value bool
		err   error
	)
	if value, err = cmd.Flags().GetBool(f.name); err != nil {
		panic(err)
	}
	return value
}
