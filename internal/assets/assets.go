// Package assets resolves the resource directories used by loader nodes
// and selects entries from them.
//
// A Library maps each asset kind to a directory. By default every kind
// lives in a subdirectory of the configured root named after the kind;
// individual kinds may be overridden with absolute paths or paths relative
// to the root.
package assets

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/vk/framegridgo/internal/fsutil"
)

var (
	// ErrDirectoryNotFound is returned when a resource directory is missing.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrNoMatches is returned when a directory holds no matching files.
	ErrNoMatches = errors.New("no matching files")
	// ErrIndexOutOfRange is returned for explicit indexes past the listing.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Kind names a family of bundled resources.
type Kind string

const (
	Borders  Kind = "borders"
	Poses    Kind = "poses"
	Ambience Kind = "ambience"
	Prompts  Kind = "prompts"
)

// Library resolves asset kinds to directories.
type Library struct {
	Root      string
	Overrides map[Kind]string
}

// NewLibrary creates a library rooted at root. Empty override values are
// ignored.
func NewLibrary(root string, overrides map[Kind]string) *Library {
	l := &Library{Root: root, Overrides: make(map[Kind]string)}
	for k, v := range overrides {
		if v != "" {
			l.Overrides[k] = v
		}
	}
	return l
}

// Dir returns the directory holding assets of the given kind.
func (l *Library) Dir(kind Kind) string {
	if dir, ok := l.Overrides[kind]; ok {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(l.Root, dir)
	}
	return filepath.Join(l.Root, string(kind))
}

// List lists the assets of a kind matching pattern.
func (l *Library) List(kind Kind, pattern string) (*Listing, error) {
	listing, err := List(l.Dir(kind), pattern)
	if err != nil {
		return nil, fmt.Errorf("%s assets: %w", kind, err)
	}
	return listing, nil
}

// Listing is the sorted set of files selected from one directory.
type Listing struct {
	Dir   string
	Names []string
}

// List reads dir and returns the files matching pattern in name order.
func List(dir, pattern string) (*Listing, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("cannot access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}

	names, err := fsutil.ListMatching(os.DirFS(dir), ".", pattern)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	if len(names) == 0 {
		if pattern == "" {
			pattern = "*"
		}
		return nil, fmt.Errorf("%w: %s contains no files matching %q", ErrNoMatches, dir, pattern)
	}
	return &Listing{Dir: dir, Names: names}, nil
}

// Len returns the number of files.
func (l *Listing) Len() int { return len(l.Names) }

// Path returns the full path of entry i.
func (l *Listing) Path(i int) string { return filepath.Join(l.Dir, l.Names[i]) }

// Select picks one entry with the given mode.
func (l *Listing) Select(mode Mode, index int, seed int64) (int, error) {
	return Select(len(l.Names), mode, index, seed)
}

// Mode is an entry selection strategy.
type Mode string

const (
	// ByIndex uses the index verbatim and fails when it is out of range.
	ByIndex Mode = "index"
	// Wrap takes the index modulo the number of entries.
	Wrap Mode = "wrap"
	// Random picks an entry from a generator seeded with the seed.
	Random Mode = "random"
)

// ParseMode validates a selection mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ByIndex, Wrap, Random:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown selection mode %q (want %q, %q or %q)", s, ByIndex, Wrap, Random)
	}
}

// Select picks an index in [0, n).
func Select(n int, mode Mode, index int, seed int64) (int, error) {
	if n <= 0 {
		return 0, ErrNoMatches
	}
	switch mode {
	case ByIndex:
		if index < 0 || index >= n {
			return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, n)
		}
		return index, nil
	case Wrap:
		return ((index % n) + n) % n, nil
	case Random:
		return NewRand(seed).IntN(n), nil
	default:
		return 0, fmt.Errorf("unknown selection mode %q", mode)
	}
}

// NewRand returns the deterministic generator used for seeded choices.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
}
