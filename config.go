package pagebuilder

import "github.com/goliatone/go-pagebuilder/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown             = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown               = runtimeconfig.ErrStorageDriverUnknown
	ErrHistoryLimitInvalid                = runtimeconfig.ErrHistoryLimitInvalid
	ErrCoalesceWindowInvalid              = runtimeconfig.ErrCoalesceWindowInvalid
	ErrCacheTTLInvalid                    = runtimeconfig.ErrCacheTTLInvalid
	ErrPreviewBreakpointInvalid           = runtimeconfig.ErrPreviewBreakpointInvalid
	ErrThemeNameRequiresPath              = runtimeconfig.ErrThemeNameRequiresPath
	ErrTemplatesWatchRequiresDir          = runtimeconfig.ErrTemplatesWatchRequiresDir
	ErrCommandsDispatcherRequiresCommands = runtimeconfig.ErrCommandsDispatcherRequiresCommands
	ErrLoggingProviderRequired            = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown             = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid                = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid               = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	StorageConfig   = runtimeconfig.StorageConfig
	CacheConfig     = runtimeconfig.CacheConfig
	HistoryConfig   = runtimeconfig.HistoryConfig
	EditorConfig    = runtimeconfig.EditorConfig
	PreviewConfig   = runtimeconfig.PreviewConfig
	TemplatesConfig = runtimeconfig.TemplatesConfig
	CommandsConfig  = runtimeconfig.CommandsConfig
	Features        = runtimeconfig.Features
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
