package typography

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var dateToken = regexp.MustCompile(`%date:([^%]+)%`)

// layoutReplacer maps date format letters onto Go reference time fields.
var layoutReplacer = strings.NewReplacer(
	"yyyy", "2006",
	"yy", "06",
	"MM", "01",
	"dd", "02",
	"HH", "15",
	"hh", "15",
	"mm", "04",
	"ss", "05",
)

// PathInput defines the arguments of the PathBuilder node.
type PathInput struct {
	Root      string `fggo:"root"`
	Subfolder string `fggo:"subfolder"`
	Prefix    string `fggo:"prefix"`
	Extension string `fggo:"extension"`
	Counter   int    `fggo:"counter"`
	Padding   int    `fggo:"padding"`
}

// PathOutput holds the built path and its parts.
type PathOutput struct {
	Path      string `fggo:"path"`
	Directory string `fggo:"directory"`
	Filename  string `fggo:"filename"`
}

// OnRunPathBuilder returns root/subfolder/prefix_counter.extension. The
// counter is zero-padded to padding digits, and the separator is dropped
// when the prefix is empty. Date tokens are expanded in root, subfolder
// and prefix.
func OnRunPathBuilder(_ context.Context, deps *PathDeps, in *PathInput) (*PathOutput, error) {
	now := deps.Now()
	expand := func(s string) string {
		return dateToken.ReplaceAllStringFunc(s, func(tok string) string {
			layout := dateToken.FindStringSubmatch(tok)[1]
			return now.Format(layoutReplacer.Replace(layout))
		})
	}

	name := fmt.Sprintf("%0*d", in.Padding, in.Counter)
	if prefix := expand(in.Prefix); prefix != "" {
		name = prefix + "_" + name
	}
	if ext := strings.TrimPrefix(in.Extension, "."); ext != "" {
		name += "." + ext
	}
	dir := filepath.Join(expand(in.Root), expand(in.Subfolder))
	return &PathOutput{Path: filepath.Join(dir, name), Directory: dir, Filename: name}, nil
}
