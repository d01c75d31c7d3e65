package version

// overwritten at build time via -ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var FullVersion = Version + " (" + Commit + ", " + BuildDate + ")"
