package constants

const (
	Version        = `0.1.0`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `/.kn/`
	LogFile        = `kn.log`
	PrefsFile      = `prefs.db`

	DefaultPlaceholderTitle = `未命名笔记`
	DefaultToastDuration    = 3000 // ms
	DefaultCacheSizeMB      = 8
)
