// Package misc holds program identity set at build time.
package misc

const appName = "dmmu"

// Set with -ldflags "-X dmmu/misc.version=... -X dmmu/misc.gitHash=...".
var (
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
