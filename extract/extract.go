// Package extract derives a header from a compiled WebAssembly module.
//
// Only function imports and exports are reported. Every parameter and
// result must be one of i32, i64, f32 or f64 and a function may return
// at most one value; anything else cannot be expressed in a header and is
// rejected.
package extract

import (
	"context"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wash/errors"
	"github.com/wippyai/wash/header"
	"github.com/wippyai/wash/header/ast"
)

// Extractor compiles modules with a private wazero runtime.
type Extractor struct {
	runtime wazero.Runtime
}

func New(ctx context.Context) (*Extractor, error) {
	return NewWithConfig(ctx, wazero.NewRuntimeConfig())
}

func NewWithConfig(ctx context.Context, cfg wazero.RuntimeConfig) (*Extractor, error) {
	if cfg == nil {
		return nil, errors.InvalidInput(errors.PhaseExtract, "nil runtime config")
	}
	return &Extractor{runtime: wazero.NewRuntimeWithConfig(ctx, cfg)}, nil
}

// Close releases the runtime and every module compiled by it.
func (e *Extractor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Header compiles wasm and lists its function imports in import order
// and its function exports ordered by function index, then export name.
func (e *Extractor) Header(ctx context.Context, wasm []byte) (*ast.Header, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseExtract, errors.KindInvalidData, err, "compile module")
	}
	defer compiled.Close(ctx)

	hdr := &ast.Header{}
	for _, fn := range compiled.ImportedFunctions() {
		module, name, _ := fn.Import()
		sig, err := signature(fn, "import", module, name)
		if err != nil {
			return nil, err
		}
		hdr.Imports = append(hdr.Imports, ast.Import{Module: module, Base: name, Signature: sig})
	}

	exports := compiled.ExportedFunctions()
	names := make([]string, 0, len(exports))
	for name := range exports {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := exports[names[i]].Index(), exports[names[j]].Index()
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		sig, err := signature(exports[name], "export", name)
		if err != nil {
			return nil, err
		}
		hdr.Exports = append(hdr.Exports, ast.Export{Base: name, Signature: sig})
	}

	header.Logger().Debug("extracted header",
		zap.String("module", compiled.Name()),
		zap.Int("imports", len(hdr.Imports)),
		zap.Int("exports", len(hdr.Exports)))
	return hdr, nil
}

// Header is a one-shot Extractor.Header with a throwaway runtime.
func Header(ctx context.Context, wasm []byte) (*ast.Header, error) {
	e, err := New(ctx)
	if err != nil {
		return nil, err
	}
	defer e.Close(ctx)
	return e.Header(ctx, wasm)
}

func signature(fn api.FunctionDefinition, path ...string) (ast.Signature, error) {
	var sig ast.Signature
	for _, vt := range fn.ParamTypes() {
		p, ok := primType(vt)
		if !ok {
			return sig, errors.Unsupported(errors.PhaseExtract, path,
				"param type "+api.ValueTypeName(vt))
		}
		sig.Params = append(sig.Params, p)
	}

	results := fn.ResultTypes()
	switch len(results) {
	case 0:
	case 1:
		p, ok := primType(results[0])
		if !ok {
			return sig, errors.Unsupported(errors.PhaseExtract, path,
				"result type "+api.ValueTypeName(results[0]))
		}
		sig.Result = ast.Result(p)
	default:
		return sig, errors.New(errors.PhaseExtract, errors.KindUnsupported).
			Path(path...).
			Value(len(results)).
			Detail("%d results, at most one allowed", len(results)).
			Build()
	}
	return sig, nil
}

func primType(vt api.ValueType) (ast.PrimType, bool) {
	switch vt {
	case api.ValueTypeI32:
		return ast.I32, true
	case api.ValueTypeI64:
		return ast.I64, true
	case api.ValueTypeF32:
		return ast.F32, true
	case api.ValueTypeF64:
		return ast.F64, true
	}
	return 0, false
}
