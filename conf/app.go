package conf

type App struct {
	CI        CI        `json:"ci" yaml:"ci"`
	Cargo     Cargo     `json:"cargo" yaml:"cargo"`
	Product   Product   `json:"product" yaml:"product"`
	Repackage Repackage `json:"repackage" yaml:"repackage"`
}

// CI 发布标签判断相关配置
type CI struct {
	TagVariable  string   `json:"tagVariable" yaml:"tagVariable"`
	NonTagValue  string   `json:"nonTagValue" yaml:"nonTagValue"`
	PrintEnv     bool     `json:"printEnv" yaml:"printEnv"`
	MaskPatterns []string `json:"maskPatterns" yaml:"maskPatterns"`
}

// Cargo 构建工具调用配置
type Cargo struct {
	Command   string   `json:"command" yaml:"command"`
	Features  []string `json:"features" yaml:"features"`
	Target    string   `json:"target" yaml:"target"`
	WorkDir   string   `json:"workDir" yaml:"workDir"`
	ExtraArgs []string `json:"extraArgs" yaml:"extraArgs"`
}

// Product 发布产物信息
type Product struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Repository  string `json:"repository" yaml:"repository"`
}

type Repackage struct {
	BaseURL string   `json:"baseURL" yaml:"baseURL"`
	Targets []Target `json:"targets" yaml:"targets"`
}

// Target 一个需要重新打包的目标平台
type Target struct {
	Triple       string `json:"triple" yaml:"triple"`
	Extension    string `json:"extension" yaml:"extension"`
	PlatformName string `json:"platformName" yaml:"platformName"`
	AddLib       bool   `json:"addLib" yaml:"addLib"`
}

var (
	runtimeConfig  *App
	configFilePath string
)

func SetConfig(cfg *App) {
	runtimeConfig = cfg
}

// GetConfig returns the loaded configuration, or the defaults when nothing was loaded yet.
func GetConfig() *App {
	if runtimeConfig == nil {
		return Default()
	}
	return runtimeConfig
}

func SetConfigPath(path string) {
	configFilePath = path
}

func GetConfigPath() string {
	return configFilePath
}
