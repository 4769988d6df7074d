// Package markdown parses markdown with goldmark and adapts the result into
// the mdast tree read by the convertor. It also strips front matter and
// turns pasted HTML into markdown first.
package markdown
