package misc

// Set at build time with
//
//	-ldflags "-X wpstyle/misc.version=... -X wpstyle/misc.gitHash=..."
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "wpstyle"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
