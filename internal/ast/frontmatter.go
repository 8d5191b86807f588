package ast

import (
	"errors"
	"fmt"
	"strings"
)

// MaxTopics is the maximum number of topics a document may declare.
const MaxTopics = 5

// ErrUnknownPlatform indicates a platform name outside the supported set.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform identifies a publishing target.
type Platform int

const (
	Zenn Platform = iota
	Qiita
)

// Platforms lists every target in output order.
var Platforms = []Platform{Zenn, Qiita}

func (p Platform) String() string {
	switch p {
	case Zenn:
		return "zenn"
	case Qiita:
		return "qiita"
	default:
		return fmt.Sprintf("Platform(%d)", int(p))
	}
}

// ParsePlatform resolves a platform name case-insensitively.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "zenn":
		return Zenn, nil
	case "qiita":
		return Qiita, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPlatform, name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Platform) UnmarshalText(text []byte) error {
	parsed, err := ParsePlatform(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// MessageType is the closed set of message box kinds.
type MessageType int

const (
	Info MessageType = iota
	Warn
	Alert
)

func (t MessageType) String() string {
	switch t {
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Alert:
		return "alert"
	default:
		return fmt.Sprintf("MessageType(%d)", int(t))
	}
}

// ParseMessageType maps a message keyword to its type. An empty keyword is
// the default info box.
func ParseMessageType(s string) (MessageType, bool) {
	switch s {
	case "", "info":
		return Info, true
	case "warn":
		return Warn, true
	case "alert":
		return Alert, true
	}
	return Info, false
}

// Frontmatter is the metadata block at the head of a source document.
type Frontmatter struct {
	Title     string    `yaml:"title"`
	Emoji     string    `yaml:"emoji"`
	Type      string    `yaml:"type"` // "tech" or "idea" by convention
	Topics    []string  `yaml:"topics"`
	Published bool      `yaml:"published"`
	Only      *Platform `yaml:"only,omitempty"` // nil compiles for every platform
}

// Targets returns the platforms this document compiles for.
func (f Frontmatter) Targets() []Platform {
	if f.Only != nil {
		return []Platform{*f.Only}
	}
	return append([]Platform(nil), Platforms...)
}

// Compiles reports whether the document compiles for p.
func (f Frontmatter) Compiles(p Platform) bool {
	return f.Only == nil || *f.Only == p
}
