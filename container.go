package wasmo

import (
	"github.com/appcypher/wasmo/internal/backend"
	"github.com/appcypher/wasmo/internal/runtimedata"
)

// CompileType distinguishes how a Container's code was produced.
type CompileType interface{ compileType() }

// AOT marks a Container compiled ahead of time, with no further codegen
// possible once Finish has run.
type AOT struct{}

func (AOT) compileType() {}

// JITEager marks a Container whose code was produced eagerly at load time
// rather than lazily per-function; this module never lowers lazily, so the
// distinction is purely a marker today; it exists because a future lazy
// mode would need a third type here, not because JITEager and AOT compile
// any differently yet.
type JITEager struct{}

func (JITEager) compileType() {}

// ContainerKind distinguishes a Container holding a not-yet-instantiated
// module from one bound to a live instance's storage.
type ContainerKind interface{ containerKind() }

// ModuleKind marks a Container that has not been bound to allocated
// memories, tables, or globals yet.
type ModuleKind[T CompileType] struct{}

func (ModuleKind[T]) containerKind() {}

// InstanceKind marks a Container whose InstanceContext has been populated
// with real storage. Binding that storage is instantiation, which this
// module does not implement; InstanceKind exists so the type still has a
// name to compile against once a host adds it.
type InstanceKind[T CompileType] struct{}

func (InstanceKind[T]) containerKind() {}

// Container is the structural representation shared by every compiled
// module and every instance of one: its side-table ModuleData and the
// machine code the backend produced for it. T selects, at compile time,
// which of the four Module/Instance × AOT/JITEager shapes a particular
// Container is. Go has no direct equivalent of a zero-sized phantom field
// to enforce this the way the source's PhantomData<T> does; here T appears
// only as a type parameter and is never stored, which has the same effect —
// it shapes which functions a Container[T] can be passed to without costing
// the struct any space.
type Container[T ContainerKind] struct {
	Data     *runtimedata.ModuleData
	Compiled backend.CompiledModule
}

// NewContainer wraps already-lowered data and code into a Container of the
// requested kind.
func NewContainer[T ContainerKind](data *runtimedata.ModuleData, compiled backend.CompiledModule) *Container[T] {
	return &Container[T]{Data: data, Compiled: compiled}
}

// The four concrete shapes a compiled artifact takes, named to match the
// public surface a host embedding this module would import.
type (
	ModuleAOT   = Container[ModuleKind[AOT]]
	ModuleJIT   = Container[ModuleKind[JITEager]]
	InstanceAOT = Container[InstanceKind[AOT]]
	InstanceJIT = Container[InstanceKind[JITEager]]
)
