package version

// Overridden at build time:
//
//	go build -ldflags "-X google-auth-service/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Describe combines the configured application version with the build metadata.
func Describe(appVersion string) string {
	if appVersion == "" {
		appVersion = "dev"
	}
	return appVersion + " (commit: " + GitCommit + ", built: " + BuildTime + ")"
}
