package wasmo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appcypher/wasmo/internal/backend/refbackend"
	"github.com/appcypher/wasmo/internal/runtimedata"
	"github.com/appcypher/wasmo/internal/wasm"
)

func TestNewContainer_wrapsDataAndCode(t *testing.T) {
	m := &wasm.Module{Types: []wasm.FuncSignature{{}}}
	data := runtimedata.BuildModuleData(m)

	ctx := refbackend.NewContext()
	compiledModule := ctx.CreateModule("empty")
	compiled, err := compiledModule.Finish()
	require.NoError(t, err)

	c := NewContainer[ModuleKind[AOT]](data, compiled)
	require.Same(t, data, c.Data)
	require.Same(t, compiled, c.Compiled)
}

func TestContainer_typeAliasesDistinguishKinds(t *testing.T) {
	var _ *ModuleAOT = (*Container[ModuleKind[AOT]])(nil)
	var _ *ModuleJIT = (*Container[ModuleKind[JITEager]])(nil)
	var _ *InstanceAOT = (*Container[InstanceKind[AOT]])(nil)
	var _ *InstanceJIT = (*Container[InstanceKind[JITEager]])(nil)
}
