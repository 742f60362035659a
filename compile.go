// Package wasmo compiles a WebAssembly binary straight to native machine
// code: decode and validate into an operand-reference operator IR, then
// lower that IR through a pluggable backend. There is no interpreter and no
// instantiation — Compile's result is a Container carrying compiled
// function code and the side tables an embedder needs to instantiate it,
// which is left to the embedder.
package wasmo

import (
	"fmt"

	"github.com/appcypher/wasmo/internal/backend/refbackend"
	"github.com/appcypher/wasmo/internal/lower"
	"github.com/appcypher/wasmo/internal/runtimedata"
	"github.com/appcypher/wasmo/internal/wasm/binary"
)

// Compile decodes and validates a Wasm binary, then lowers the decoded
// module. There is no partial result: on any error, the returned Container is nil.
func Compile(bin []byte) (*ModuleAOT, error) {
	m, err := binary.DecodeModule(bin)
	if err != nil {
		return nil, fmt.Errorf("wasmo: decode: %w", err)
	}

	ctx := refbackend.NewContext()
	compiled, err := lower.Module(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("wasmo: lower: %w", err)
	}

	data := runtimedata.BuildModuleData(m)
	return NewContainer[ModuleKind[AOT]](data, compiled), nil
}
