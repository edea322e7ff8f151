package wasmhost

import (
	"context"
	"math"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// ModuleName is the import module guests link against.
const ModuleName = "feos"

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
	f64 = api.ValueTypeF64
)

// FuncDef defines a host function.
type FuncDef struct {
	Handler     api.GoModuleFunc
	Name        string
	ParamTypes  []api.ValueType
	ResultTypes []api.ValueType
	// Fail is stored in the single result slot when the handler panics.
	Fail uint64
}

// HostModule is the set of feos host functions.
type HostModule struct {
	name  string
	funcs map[string]FuncDef
}

// New returns the host module with every feos function defined.
func New() *HostModule {
	m := &HostModule{name: ModuleName, funcs: make(map[string]FuncDef)}
	for _, f := range functions() {
		m.Define(f)
	}
	return m
}

// Name returns the import module name.
func (m *HostModule) Name() string { return m.name }

// Define adds or replaces a function.
func (m *HostModule) Define(f FuncDef) {
	m.funcs[f.Name] = f
}

// Func returns a function definition by name.
func (m *HostModule) Func(name string) (FuncDef, bool) {
	f, ok := m.funcs[name]
	return f, ok
}

// Funcs returns all definitions sorted by name.
func (m *HostModule) Funcs() []FuncDef {
	out := make([]FuncDef, 0, len(m.funcs))
	for _, f := range m.funcs {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Instantiate registers the host module with the runtime.
func (m *HostModule) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	builder := rt.NewHostModuleBuilder(m.name)

	for _, f := range m.Funcs() {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(safe(f), f.ParamTypes, f.ResultTypes).
			WithName(f.Name).
			Export(f.Name)
	}

	return builder.Instantiate(ctx)
}

// safe wraps a handler so a panic becomes the function's failure result.
func safe(f FuncDef) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		defer func() {
			if r := recover(); r != nil {
				Logger().Error("recovered panic in host function",
					zap.String("func", f.Name),
					zap.Any("panic", r))
				if len(f.ResultTypes) > 0 && len(stack) > 0 {
					stack[0] = f.Fail
				}
			}
		}()
		f.Handler(ctx, mod, stack)
	}
}

var (
	failHandle = uint64(0)
	failFloat  = api.EncodeF64(math.NaN())
	failStatus = api.EncodeI32(5)
	failFlag   = api.EncodeI32(-1)
	failCount  = api.EncodeI64(-1)
)

func params(types ...api.ValueType) []api.ValueType { return types }
