package cmd

import (
	"github.com/spf13/cobra"
	"github.com/stubborn-gaga-0805/cibuild/consts"
)

type ConfigFilePath string

var flagAppConfig = flag{"config", "c", consts.DefaultConfigFile, "Set the path to the configuration file"}

func (e ConfigFilePath) ToString() string {
	return string(e)
}

// 从命令中获取ConfigPath
func getAppConfigPath(cmd *cobra.Command) ConfigFilePath {
	f := cmd.Flag(flagAppConfig.name)
	if f == nil {
		return ConfigFilePath(consts.DefaultConfigFile)
	}
	return ConfigFilePath(f.Value.String())
}
