package consts

const Version = "v1.0.0"

const (
	AppName           = "cibuild"
	DefaultConfigFile = "./.cibuild.yaml"
	EnvPrefix         = "CIBUILD"
)

// CI variables
const (
	DefaultTagVariable = "APPVEYOR_REPO_TAG"
	DefaultNonTagValue = "false"
	CommitVariable     = "APPVEYOR_REPO_COMMIT"
	TagNameVariable    = "APPVEYOR_REPO_TAG_NAME"
)

const (
	ProfileDebug   = "debug"
	ProfileRelease = "release"
)

const (
	GOOSWindows = "windows"
	GOOSDarwin  = "darwin"
)

const (
	PublishDir     = "target/publish"
	ReleaseDir     = "target/release"
	CargoManifest  = "Cargo.toml"
	GithubDownload = "https://github.com/%s/releases/download/%s/%s-%s-%s.tar.gz"
)
