package loaders

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/framegridgo/internal/assets"
)

// TextInput defines the arguments of the LoadTextFromDir node.
type TextInput struct {
	Directory string `fggo:"directory"`
	Pattern   string `fggo:"pattern"`
	Mode      string `fggo:"mode"`
	Index     int    `fggo:"index"`
	Seed      int64  `fggo:"seed"`
}

// TextOutput holds the file contents and its name.
type TextOutput struct {
	Text     string `fggo:"text"`
	Filename string `fggo:"filename"`
}

// OnRunLoadTextFromDir reads the selected text file. A UTF-8 byte order
// mark and trailing newlines are removed.
func OnRunLoadTextFromDir(_ context.Context, _ *Deps, in *TextInput) (*TextOutput, error) {
	listing, i, err := pick(in.Directory, in.Pattern, in.Mode, in.Index, in.Seed)
	if err != nil {
		return nil, err
	}
	text, err := readText(listing.Path(i))
	if err != nil {
		return nil, err
	}
	return &TextOutput{Text: text, Filename: listing.Names[i]}, nil
}

// PromptInput defines the arguments of the LoadPromptFromAssets node.
type PromptInput struct {
	Mode  string `fggo:"mode"`
	Index int    `fggo:"index"`
	Seed  int64  `fggo:"seed"`
}

// OnRunLoadPromptFromAssets reads a .txt file from the prompts assets.
func OnRunLoadPromptFromAssets(_ context.Context, deps *Deps, in *PromptInput) (*TextOutput, error) {
	listing, i, err := pickAsset(deps.Assets, assets.Prompts, "*.txt", in.Mode, in.Index, in.Seed)
	if err != nil {
		return nil, err
	}
	text, err := readText(listing.Path(i))
	if err != nil {
		return nil, err
	}
	return &TextOutput{Text: text, Filename: listing.Names[i]}, nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	s := strings.TrimPrefix(string(data), "\ufeff")
	return strings.TrimRight(s, "\r\n"), nil
}
