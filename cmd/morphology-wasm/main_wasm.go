//go:build js && wasm

package main

import (
	"encoding/base64"
	"fmt"
	"syscall/js"

	"github.com/example/go-morphology/internal/image"
	"github.com/example/go-morphology/internal/kernel"
	"github.com/example/go-morphology/internal/morphology"
)

func main() {
	engine := map[string]any{
		"version":    "0.1.0-wasm",
		"showKernel": js.FuncOf(showKernel),
		"apply":      js.FuncOf(applyAsync),
	}

	js.Global().Set("MorphologyEngine", js.ValueOf(engine))
	println("morphology wasm engine loaded")
	select {}
}

func showKernel(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errResult("missing kernel string argument")
	}
	digits := 6
	if len(args) > 1 {
		digits = args[1].Int()
	}
	k, err := kernel.Parse(args[0].String())
	if err != nil {
		return errResult(err.Error())
	}
	return okResult(map[string]any{"dump": kernel.DumpList(k, digits)})
}

func applyAsync(_ js.Value, args []js.Value) any {
	promiseCtor := js.Global().Get("Promise")
	var handler js.Func
	handler = js.FuncOf(func(_ js.Value, pArgs []js.Value) any {
		defer handler.Release()
		resolve := pArgs[0]
		reject := pArgs[1]

		req, err := parseApplyArgs(args)
		if err != nil {
			reject.Invoke(err.Error())
			return nil
		}

		go func() {
			res, err := runApply(req)
			if err != nil {
				reject.Invoke(err.Error())
				return
			}
			resolve.Invoke(js.ValueOf(res))
		}()

		return nil
	})

	return promiseCtor.New(handler)
}

type applyArgs struct {
	imageBase64 string
	method      string
	kernelStr   string
	mask        string
	bias        float64
	n           int
	format      string
}

func parseApplyArgs(args []js.Value) (applyArgs, error) {
	if len(args) < 1 {
		return applyArgs{}, fmt.Errorf("missing options argument")
	}
	opt := args[0]
	if opt.IsUndefined() || opt.IsNull() {
		return applyArgs{}, fmt.Errorf("options argument is null")
	}

	req := applyArgs{
		imageBase64: jsStringField(opt, "imageBase64"),
		method:      jsStringField(opt, "method"),
		kernelStr:   jsStringField(opt, "kernel"),
		mask:        jsStringField(opt, "mask"),
		format:      jsStringField(opt, "format"),
		n:           1,
	}
	if req.mask == "" {
		req.mask = "all"
	}
	if req.format == "" {
		req.format = "png"
	}
	if v := opt.Get("bias"); !v.IsUndefined() && !v.IsNull() {
		req.bias = v.Float()
	}
	if v := opt.Get("iterations"); !v.IsUndefined() && !v.IsNull() {
		req.n = v.Int()
	}
	if req.imageBase64 == "" {
		return applyArgs{}, fmt.Errorf("missing imageBase64 field")
	}
	if req.method == "" {
		return applyArgs{}, fmt.Errorf("missing method field")
	}
	if req.kernelStr == "" {
		return applyArgs{}, fmt.Errorf("missing kernel field")
	}
	return req, nil
}

func jsStringField(v js.Value, name string) string {
	f := v.Get(name)
	if f.IsUndefined() || f.IsNull() {
		return ""
	}
	return f.String()
}

func runApply(req applyArgs) (map[string]any, error) {
	raw, err := base64.StdEncoding.DecodeString(req.imageBase64)
	if err != nil {
		return nil, fmt.Errorf("decode base64 image: %w", err)
	}

	src, err := image.DecodeBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	method, err := morphology.ParseMethodName(req.method)
	if err != nil {
		return nil, err
	}
	kernels, err := kernel.Parse(req.kernelStr)
	if err != nil {
		return nil, fmt.Errorf("parse kernel: %w", err)
	}
	mask, err := image.ParseMask(req.mask)
	if err != nil {
		return nil, err
	}

	out, changed, err := morphology.Run(src, morphology.Options{
		Mask:    mask,
		Method:  method,
		N:       req.n,
		Kernels: kernels,
		Bias:    req.bias,
	})
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}

	encoded, err := image.EncodeBytes(out, req.format)
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	return okResult(map[string]any{
		"imageBase64":   base64.StdEncoding.EncodeToString(encoded),
		"changedPixels": changed,
	}), nil
}

func okResult(payload map[string]any) map[string]any {
	payload["ok"] = true
	return payload
}

func errResult(msg string) map[string]any {
	return map[string]any{
		"ok":    false,
		"error": msg,
	}
}
