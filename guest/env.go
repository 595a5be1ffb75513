package guest

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/volume-bridge/errors"
	"github.com/wippyai/volume-bridge/handle"
)

// ObserverRef is an opaque observer token minted by the embedder and
// forwarded into the guest unresolved.
type ObserverRef uint64

// dispatchExport is the name of the guest's dispatch entry point.
const dispatchExport = "dispatch"

// dispatchArity is the parameter count of the dispatch export:
// observer, kind, arg1, arg2, arg3, extra.
const dispatchArity = 6

// Env is a managed observer environment running inside a wasm guest.
type Env struct {
	rt       wazero.Runtime
	mod      api.Module
	dispatch api.Function
	log      *zap.Logger
}

type config struct {
	name string
	log  *zap.Logger
}

// Option configures guest module loading.
type Option func(*config)

// WithModuleName sets the instantiated module's name.
func WithModuleName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets the environment's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// Load compiles and instantiates a guest module and resolves its
// dispatch export. Resolution failures are fatal: the returned error
// is a process_init error and no environment is produced.
func Load(ctx context.Context, wasmBytes []byte, opts ...Option) (*Env, error) {
	cfg := &config{
		name: "observer",
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	rt := wazero.NewRuntime(ctx)

	mod, err := rt.InstantiateWithConfig(ctx, wasmBytes,
		wazero.NewModuleConfig().WithName(cfg.name))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.ProcessInit("guest module", err)
	}

	fn := mod.ExportedFunction(dispatchExport)
	if fn == nil {
		_ = rt.Close(ctx)
		return nil, errors.ProcessInit("dispatch export", nil)
	}
	if n := len(fn.Definition().ParamTypes()); n != dispatchArity {
		_ = rt.Close(ctx)
		return nil, errors.New(errors.PhaseInit, errors.KindProcessInit).
			Detail("dispatch export has %d parameters, want %d", n, dispatchArity).
			Build()
	}

	cfg.log.Debug("guest module loaded",
		zap.String("module", cfg.name))

	return &Env{
		rt:       rt,
		mod:      mod,
		dispatch: fn,
		log:      cfg.log,
	}, nil
}

// Dispatch adapts the guest's dispatch export to the bridge dispatch
// signature. A guest trap is returned as an error; the caller's
// invocation boundary logs and suppresses it.
func (e *Env) Dispatch() (handle.DispatchFunc, error) {
	if e == nil || e.dispatch == nil {
		return nil, errors.NotInitialized("guest environment")
	}

	fn := e.dispatch
	return func(class, observer any, kind, arg1, arg2, arg3 int32, extra any) error {
		ref, ok := observer.(ObserverRef)
		if !ok {
			return errors.InvalidInput("observer proxy is not a guest observer ref")
		}

		var extraBits uint64
		switch v := extra.(type) {
		case nil:
		case uint64:
			extraBits = v
		case ObserverRef:
			extraBits = uint64(v)
		default:
			return errors.InvalidInput("extra payload is not guest-representable")
		}

		_, err := fn.Call(context.Background(),
			uint64(ref),
			api.EncodeI32(kind),
			api.EncodeI32(arg1),
			api.EncodeI32(arg2),
			api.EncodeI32(arg3),
			extraBits)
		return err
	}, nil
}

// TypeOf resolves an owner to its type descriptor: the guest module's
// name. Every owner dispatching into this environment shares the one
// guest-side entry point.
func (e *Env) TypeOf(owner any) (any, error) {
	if e == nil || e.mod == nil {
		return nil, errors.NotInitialized("guest environment")
	}
	if owner == nil {
		return nil, errors.InvalidInput("nil owner")
	}
	return e.mod.Name(), nil
}

// Close tears down the wazero runtime and everything instantiated in it.
func (e *Env) Close(ctx context.Context) error {
	if e.rt == nil {
		return nil
	}
	return e.rt.Close(ctx)
}
