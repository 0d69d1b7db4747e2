// Package cmdline parses raw compiler invocations into ordered argument records.
//
// The grammar is the one emitted for the csc compiler front end:
//
//  1. Tokens are separated by single spaces
//  2. Switches start with '/' and carry an optional ":value"
//  3. Values may be wrapped in double quotes and span several tokens
//  4. A quote preceded by a backslash does not close a quoted value
//
// A token starting with '/' that names an existing file is treated as a path
// rather than a switch. The check is a heuristic: a path that does not exist
// yet is read as a switch.
package cmdline

import (
	"os"
	"strings"
)

// DefaultExecutableFragment identifies the compiler token in an invocation
const DefaultExecutableFragment = "csc."

// PathExistsFunc reports whether a file exists at the given path
type PathExistsFunc func(path string) bool

// FileExists reports whether path names an existing regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return !info.IsDir()
}

// Parser converts invocation text into argument records
type Parser struct {
	fragment   string
	pathExists PathExistsFunc
}

// Option configures a Parser
type Option func(*Parser)

// WithPathExists replaces the filesystem check used to tell paths from switches
func WithPathExists(fn PathExistsFunc) Option {
	return func(p *Parser) {
		if fn != nil {
			p.pathExists = fn
		}
	}
}

// WithExecutableFragment sets the case-insensitive text that marks the compiler token
func WithExecutableFragment(fragment string) Option {
	return func(p *Parser) {
		if fragment != "" {
			p.fragment = fragment
		}
	}
}

// NewParser creates a parser with the given options
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		fragment:   DefaultExecutableFragment,
		pathExists: FileExists,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse parses raw with a default parser
func Parse(raw string) []Argument {
	return NewParser().Parse(raw)
}

// Parse splits raw into records. It never fails: malformed input yields
// whatever could be recovered.
func (p *Parser) Parse(raw string) []Argument {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, " ")
	start := p.executableBoundary(parts)

	args := []Argument{Positional(trimQuote(strings.Join(parts[:start], " ")))}

	for c := start; c < len(parts); c++ {
		part := parts[c]
		if part == "" {
			continue
		}

		valueStart := 0
		if part[0] == '/' && !p.pathExists(part) {
			valueStart = strings.IndexByte(part, ':')
			if valueStart == -1 {
				args = append(args, Flag(part[1:]))
				continue
			}

			// A trailing colon carries no value
			if valueStart >= len(part)-1 {
				args = append(args, Flag(part[1:valueStart]))
				continue
			}

			valueStart++
		}

		if part[valueStart] != '"' {
			args = append(args, record(part, valueStart, part[valueStart:]))
			continue
		}

		first := c
		for c < len(parts) && !closesQuote(parts[c], c == first, valueStart) {
			c++
		}

		end := c + 1
		if end > len(parts) {
			end = len(parts)
		}

		value := strings.Join(parts[first:end], " ")[valueStart:]
		args = append(args, record(parts[first], valueStart, removeQuotes(value)))
	}

	return args
}

// executableBoundary returns the index one past the last token naming the compiler
func (p *Parser) executableBoundary(parts []string) int {
	fragment := strings.ToLower(p.fragment)
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" && strings.Contains(strings.ToLower(parts[i]), fragment) {
			return i + 1
		}
	}

	return 0
}

// closesQuote reports whether part ends a quoted value. In the opening token
// the closing quote must follow the opening one.
func closesQuote(part string, opening bool, valueStart int) bool {
	if opening {
		if len(part) <= valueStart+1 {
			return false
		}
	} else if part == "" {
		return false
	}

	if part[len(part)-1] != '"' {
		return false
	}

	return len(part) < 2 || part[len(part)-2] != '\\'
}

// record builds a switch record when the token was a switch, positional otherwise
func record(part string, valueStart int, value string) Argument {
	if valueStart == 0 {
		return Positional(value)
	}

	return Switch(part[1:valueStart-1], value)
}

// removeQuotes strips one double quote from each end of s
func removeQuotes(s string) string {
	if len(s) < 2 {
		return strings.Trim(s, `"`)
	}

	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

// trimQuote strips at most one double quote from each end of s
func trimQuote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
