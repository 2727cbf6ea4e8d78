package app

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/vk/framegridgo/internal/config"
	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/vk/framegridgo/internal/tensor"
	"github.com/zclconf/go-cty/cty"
)

// Result holds the outputs of one node invocation in declared order.
type Result struct {
	Node   *config.NodeDefinition
	Values map[string]cty.Value
}

// Names returns the output names in declared order.
func (r *Result) Names() []string {
	names := make([]string, len(r.Node.Outputs))
	for i, o := range r.Node.Outputs {
		names[i] = o.Name
	}
	return names
}

// Get returns the named output, or a null value.
func (r *Result) Get(name string) cty.Value {
	if v, ok := r.Values[name]; ok {
		return v
	}
	return cty.NullVal(cty.DynamicPseudoType)
}

// Image returns the named image output.
func (r *Result) Image(name string) (*tensor.Batch, error) {
	v := r.Get(name)
	if !v.Type().Equals(tensor.ImageType) || v.IsNull() {
		return nil, fmt.Errorf("output %q is not an image", name)
	}
	return v.EncapsulatedValue().(*tensor.Batch), nil
}

// Mask returns the named mask output.
func (r *Result) Mask(name string) (*tensor.MaskBatch, error) {
	v := r.Get(name)
	if !v.Type().Equals(tensor.MaskType) || v.IsNull() {
		return nil, fmt.Errorf("output %q is not a mask", name)
	}
	return v.EncapsulatedValue().(*tensor.MaskBatch), nil
}

// Audio returns the named audio output.
func (r *Result) Audio(name string) (*tensor.Audio, error) {
	v := r.Get(name)
	if !v.Type().Equals(tensor.AudioType) || v.IsNull() {
		return nil, fmt.Errorf("output %q is not audio", name)
	}
	return v.EncapsulatedValue().(*tensor.Audio), nil
}

// Invoke runs the node registered under key with the given arguments.
// Arguments are decoded and bounds-checked against the manifest, the
// handler is called with the node's instance deps, and its outputs are
// encoded in declared order.
func (a *App) Invoke(ctx context.Context, key string, args map[string]cty.Value) (*Result, error) {
	logger := a.logger.With("node", key)
	ctx = ctxlog.WithLogger(ctx, logger)
	ctx = tensor.WithWorkers(ctx, a.cfg.Workers)

	def, ok := a.registry.DefinitionRegistry[key]
	if !ok {
		return nil, fmt.Errorf("unknown node %q", key)
	}
	handler, ok := a.registry.HandlerRegistry[def.Entry]
	if !ok {
		return nil, fmt.Errorf("handler %q not registered", def.Entry)
	}

	var inputStruct any
	if handler.NewInput != nil {
		inputStruct = handler.NewInput()
	}
	if inputStruct != nil {
		if err := a.converter.DecodeInputs(ctx, inputStruct, args, def); err != nil {
			return nil, fmt.Errorf("node %s: %w", key, err)
		}
	}
	depsStruct := a.instanceDeps(key, handler)

	logger.Debug("Calling node handler.", "entry", def.Entry)
	start := time.Now()

	handlerFunc := reflect.ValueOf(handler.Fn)
	callArgs := []reflect.Value{reflect.ValueOf(ctx)}
	if depsStruct == nil {
		callArgs = append(callArgs, reflect.Zero(handlerFunc.Type().In(1)))
	} else {
		callArgs = append(callArgs, reflect.ValueOf(depsStruct))
	}
	if inputStruct == nil {
		callArgs = append(callArgs, reflect.Zero(handlerFunc.Type().In(2)))
	} else {
		callArgs = append(callArgs, reflect.ValueOf(inputStruct))
	}

	results := handlerFunc.Call(callArgs)
	nativeOutput, errResult := results[0].Interface(), results[1].Interface()
	if errResult != nil {
		return nil, fmt.Errorf("node %s: %w", key, errResult.(error))
	}

	values, err := a.converter.EncodeOutputs(ctx, nativeOutput, def)
	if err != nil {
		return nil, err
	}

	logger.Debug("Node finished.", "duration", time.Since(start))
	return &Result{Node: def, Values: values}, nil
}
