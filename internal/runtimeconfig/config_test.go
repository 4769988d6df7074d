package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/seldinet/tui.editor/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestDefaultConfigWithLoggerIsValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_IgnoresLoggingWhenFeatureDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected logging settings ignored, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigValidate_NoopProviderSkipsFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "noop"
	cfg.Logging.Format = "xml"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected format ignored for noop provider, got %v", err)
	}
}

func TestConfigValidate_MarkdownExtensions(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Parser.Extensions = []string{" Table ", "strikethrough", ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected known extensions accepted, got %v", err)
	}

	cfg.Markdown.Parser.Extensions = []string{"footnote"}
	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrMarkdownExtensionUnknown) {
		t.Fatalf("expected ErrMarkdownExtensionUnknown, got %v", err)
	}
}

func TestConfigValidate_EditorSettings(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Editor.Platform = "windows"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrEditorPlatformInvalid) {
		t.Fatalf("expected ErrEditorPlatformInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Editor.CommandTimeout = -1
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCommandTimeoutInvalid) {
		t.Fatalf("expected ErrCommandTimeoutInvalid, got %v", err)
	}
}

func TestParserConfigParseOptionsCopiesExtensions(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	opts := cfg.Markdown.Parser.ParseOptions()
	if !opts.CustomBlocks || opts.HardWraps || opts.SafeMode {
		t.Fatalf("unexpected parse options %+v", opts)
	}
	opts.Extensions[0] = "table"
	if cfg.Markdown.Parser.Extensions[0] != "gfm" {
		t.Fatal("expected extensions to be copied")
	}
}
