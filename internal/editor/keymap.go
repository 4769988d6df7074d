package editor

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

var (
	ErrInvalidKey       = errors.New("editor: invalid key binding")
	ErrDuplicateBinding = errors.New("editor: duplicate key binding")
)

// Platform decides what the Mod modifier stands for.
type Platform int

const (
	PlatformOther Platform = iota
	PlatformMac
)

// CurrentPlatform reports the platform of the running process.
func CurrentPlatform() Platform {
	if runtime.GOOS == "darwin" || runtime.GOOS == "ios" {
		return PlatformMac
	}
	return PlatformOther
}

// NormalizeKey canonicalizes a key name such as "Shift-Mod-c" into
// "Shift-Ctrl-c" (or "Shift-Meta-c" on mac). Modifiers are emitted in a
// fixed order; the base key keeps its case.
func NormalizeKey(key string, platform Platform) (string, error) {
	parts := strings.Split(key, "-")
	name := parts[len(parts)-1]
	if name == "" {
		// "Ctrl--" binds the minus key.
		if len(parts) >= 2 && parts[len(parts)-2] == "" {
			name = "-"
			parts = parts[:len(parts)-1]
		} else {
			return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	if name == "Space" {
		name = " "
	}

	var alt, ctrl, meta, shift bool
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "cmd", "meta", "m":
			meta = true
		case "a", "alt":
			alt = true
		case "c", "ctrl", "control":
			ctrl = true
		case "s", "shift":
			shift = true
		case "mod":
			if platform == PlatformMac {
				meta = true
			} else {
				ctrl = true
			}
		default:
			return "", fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidKey, mod, key)
		}
	}

	var b strings.Builder
	if shift {
		b.WriteString("Shift-")
	}
	if meta {
		b.WriteString("Meta-")
	}
	if ctrl {
		b.WriteString("Ctrl-")
	}
	if alt {
		b.WriteString("Alt-")
	}
	b.WriteString(name)
	return b.String(), nil
}

// Keymap binds normalized key names to commands.
type Keymap struct {
	platform Platform
	bindings map[string]Command
}

// NewKeymap returns an empty keymap for platform.
func NewKeymap(platform Platform) *Keymap {
	return &Keymap{platform: platform, bindings: map[string]Command{}}
}

// Bind registers cmd under key. Binding the same normalized key twice
// fails.
func (k *Keymap) Bind(key string, cmd Command) error {
	normalized, err := NormalizeKey(key, k.platform)
	if err != nil {
		return err
	}
	if _, exists := k.bindings[normalized]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateBinding, normalized)
	}
	k.bindings[normalized] = cmd
	return nil
}

// BindAll registers every binding of a component keymap.
func (k *Keymap) BindAll(bindings map[string]Command) error {
	keys := make([]string, 0, len(bindings))
	for key := range bindings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := k.Bind(key, bindings[key]); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the command bound to key.
func (k *Keymap) Lookup(key string) (Command, bool) {
	normalized, err := NormalizeKey(key, k.platform)
	if err != nil {
		return nil, false
	}
	cmd, ok := k.bindings[normalized]
	return cmd, ok
}

// Keys lists the normalized bound keys, sorted.
func (k *Keymap) Keys() []string {
	keys := make([]string, 0, len(k.bindings))
	for key := range k.bindings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Platform returns the platform the keymap normalizes for.
func (k *Keymap) Platform() Platform { return k.platform }
