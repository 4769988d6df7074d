package editor

import "github.com/seldinet/tui.editor/internal/runtimeconfig"

var (
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrMarkdownExtensionUnknown = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrEditorPlatformInvalid    = runtimeconfig.ErrEditorPlatformInvalid
	ErrCommandTimeoutInvalid    = runtimeconfig.ErrCommandTimeoutInvalid
)

type (
	Config               = runtimeconfig.Config
	Features             = runtimeconfig.Features
	LoggingConfig        = runtimeconfig.LoggingConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	EditorConfig         = runtimeconfig.EditorConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
