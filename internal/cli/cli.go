package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/vk/framegridgo/internal/app"
	"github.com/vk/framegridgo/internal/hcl"
	"github.com/zclconf/go-cty/cty"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// pairs collects repeated name=value flags.
type pairs map[string]string

func (p pairs) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + p[k]
	}
	return strings.Join(parts, ",")
}

func (p pairs) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	p[name] = value
	return nil
}

// Parse processes command-line arguments. It returns the populated config
// and run request, a boolean indicating if the program should exit cleanly,
// or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, *app.RunRequest, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("framegrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
FrameGrid - Image and video processing nodes runnable from the shell.

Usage:
  framegrid -list
  framegrid [options] -node NODE [-image name=PATH] [-mask name=PATH] [-arg name=VALUE]

Arguments:
  PATH
    An image file, or a directory whose images form the frames of a batch.
  VALUE
    An HCL literal such as 3, true, [1, 2] or "text". Anything that does not
    parse as a literal is passed as a string.

Options:
`)
		flagSet.PrintDefaults()
	}

	images, masks, rawArgs := pairs{}, pairs{}, pairs{}
	listFlag := flagSet.Bool("list", false, "List every available node and exit.")
	nodeFlag := flagSet.String("node", "", "Key of the node to run.")
	flagSet.Var(images, "image", "Image input as name=PATH. Repeatable.")
	flagSet.Var(masks, "mask", "Mask input as name=PATH. Repeatable.")
	flagSet.Var(rawArgs, "arg", "Scalar input as name=VALUE. Repeatable.")
	outFlag := flagSet.String("out", "out", "Directory that receives image, mask and audio outputs.")
	configFlag := flagSet.String("config", "", "Path to a YAML, TOML or JSON config file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 4, "Number of frames processed concurrently inside a node.")
	assetsFlag := flagSet.String("assets", "", "Root directory of the asset library.")
	manifestsFlag := flagSet.String("manifests", "", "Directory of .hcl manifests overriding the built-in nodes.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, nil, true, nil
		}
		return nil, nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if !*listFlag && *nodeFlag == "" {
		slog.Debug("No node selected, printing usage and exiting.")
		flagSet.Usage()
		return nil, nil, true, nil
	}

	cfg, err := app.LoadConfig(*configFlag)
	if err != nil {
		return nil, nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	// Only flags given explicitly override the file and environment.
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-format":
			cfg.LogFormat = strings.ToLower(*logFormatFlag)
		case "log-level":
			cfg.LogLevel = strings.ToLower(*logLevelFlag)
		case "workers":
			cfg.Workers = *workersFlag
		case "assets":
			cfg.Assets.Root = *assetsFlag
		case "manifests":
			cfg.ManifestsPath = *manifestsFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI parameter validation complete.")

	req := &app.RunRequest{
		List:   *listFlag,
		Node:   *nodeFlag,
		Images: images,
		Masks:  masks,
		Args:   make(map[string]cty.Value, len(rawArgs)),
		OutDir: *outFlag,
	}
	for name, raw := range rawArgs {
		req.Args[name] = parseValue(raw)
	}

	slog.Debug("CLI parser finished successfully.", "node", req.Node, "list", req.List)
	return cfg, req, false, nil
}

// parseValue reads raw as an HCL literal, falling back to a plain string.
func parseValue(raw string) cty.Value {
	v, err := hcl.ParseArg(raw)
	if err != nil {
		return cty.StringVal(raw)
	}
	return v
}
