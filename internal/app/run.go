package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/vk/framegridgo/internal/assets"
	"github.com/vk/framegridgo/internal/audioio"
	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/vk/framegridgo/internal/imageio"
	"github.com/vk/framegridgo/internal/tensor"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// RunRequest describes one CLI invocation: either a catalog listing or a
// single node run over files on disk.
type RunRequest struct {
	List bool
	Node string
	// Images and Masks map input names to an image file or a directory of
	// frames.
	Images map[string]string
	Masks  map[string]string
	// Args holds the remaining inputs, already parsed.
	Args   map[string]cty.Value
	OutDir string
}

// Run executes the request and writes a report to the app's output.
func (a *App) Run(ctx context.Context, req *RunRequest) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if req.List {
		return a.printCatalog()
	}

	args := make(map[string]cty.Value, len(req.Images)+len(req.Masks)+len(req.Args))
	for name, v := range req.Args {
		args[name] = v
	}
	for _, name := range sortedNames(req.Images) {
		batch, err := loadImages(req.Images[name])
		if err != nil {
			return fmt.Errorf("input %q: %w", name, err)
		}
		a.logger.Debug("Loaded image input.", "input", name, "frames", batch.Len())
		args[name] = tensor.ImageVal(batch)
	}
	for _, name := range sortedNames(req.Masks) {
		masks, err := loadMasks(req.Masks[name])
		if err != nil {
			return fmt.Errorf("input %q: %w", name, err)
		}
		args[name] = tensor.MaskVal(masks)
	}

	res, err := a.Invoke(ctx, req.Node, args)
	if err != nil {
		return err
	}
	a.logger.Info("Node run complete.", "node", req.Node, "outputs", len(res.Values))
	for _, name := range res.Names() {
		if err := a.report(name, res.Get(name), req.OutDir); err != nil {
			return fmt.Errorf("output %q: %w", name, err)
		}
	}
	return nil
}

func (a *App) printCatalog() error {
	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tNODE\tINPUTS\tOUTPUTS")
	for _, def := range a.Catalog() {
		outputs := make([]string, len(def.Outputs))
		for i, o := range def.Outputs {
			outputs[i] = o.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", def.Category, def.Key, len(def.InputOrder), joinNames(outputs))
	}
	return tw.Flush()
}

// report writes tensor outputs below outDir and prints every other value.
func (a *App) report(name string, v cty.Value, outDir string) error {
	switch {
	case v.IsNull():
		fmt.Fprintf(a.outW, "%s: null\n", name)
	case v.Type().Equals(tensor.ImageType):
		paths, err := imageio.SaveBatch(outDir, name, v.EncapsulatedValue().(*tensor.Batch))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "%s: %d frames in %s\n", name, len(paths), outDir)
	case v.Type().Equals(tensor.MaskType):
		masks := v.EncapsulatedValue().(*tensor.MaskBatch)
		frames := &tensor.Batch{Frames: make([]*tensor.Image, masks.Len())}
		for i, m := range masks.Frames {
			frames.Frames[i] = m.AsImage()
		}
		paths, err := imageio.SaveBatch(outDir, name, frames)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "%s: %d masks in %s\n", name, len(paths), outDir)
	case v.Type().Equals(tensor.AudioType):
		path := filepath.Join(outDir, name+".wav")
		if err := audioio.Save(path, v.EncapsulatedValue().(*tensor.Audio)); err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "%s: %s\n", name, path)
	case v.Type().Equals(cty.String):
		fmt.Fprintf(a.outW, "%s: %s\n", name, v.AsString())
	default:
		js, err := ctyjson.Marshal(v, v.Type())
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "%s: %s\n", name, js)
	}
	return nil
}

// loadImages reads a single image file, or every image of a directory in
// name order.
func loadImages(path string) (*tensor.Batch, error) {
	paths, err := framePaths(path)
	if err != nil {
		return nil, err
	}
	return imageio.LoadBatch(paths)
}

func loadMasks(path string) (*tensor.MaskBatch, error) {
	paths, err := framePaths(path)
	if err != nil {
		return nil, err
	}
	out := &tensor.MaskBatch{Frames: make([]*tensor.Mask, len(paths))}
	for i, p := range paths {
		m, err := imageio.LoadMask(p)
		if err != nil {
			return nil, err
		}
		out.Frames[i] = m
	}
	return out, nil
}

func framePaths(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	listing, err := assets.List(path, imageio.Pattern)
	if err != nil {
		return nil, err
	}
	paths := make([]string, listing.Len())
	for i := range paths {
		paths[i] = listing.Path(i)
	}
	return paths, nil
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func joinNames(names []string) string {
	s := ""
	for i, n := range names {
		if i > 0 {
			s += ", "
		}
		s += n
	}
	return s
}
