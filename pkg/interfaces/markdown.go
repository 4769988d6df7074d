package interfaces

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	// Extensions names the goldmark extensions to enable ("gfm", "table",
	// "strikethrough", "tasklist", "linkify", ...). Empty means "gfm",
	// which covers tables, strikethrough, task lists and linkify.
	Extensions []string `json:"extensions"`
	// HardWraps turns every soft line break into a hard break.
	HardWraps bool `json:"hard_wraps"`
	// CustomBlocks enables $$info fenced custom blocks.
	CustomBlocks bool `json:"custom_blocks"`
	// SafeMode drops raw HTML instead of passing it to the convertor.
	SafeMode bool `json:"safe_mode"`
}

// FrontMatter models metadata extracted from Markdown files. Title and Tags
// are promoted; everything else lands in Custom, and Raw keeps the full map.
type FrontMatter struct {
	Title  string         `yaml:"title" json:"title"`
	Tags   []string       `yaml:"tags" json:"tags"`
	Custom map[string]any `yaml:",inline" json:"custom"`
	Raw    map[string]any `yaml:"-" json:"raw"`
}
