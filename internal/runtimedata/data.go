package runtimedata

import "github.com/appcypher/wasmo/internal/wasm"

// ModuleData is the side-table companion to a lowered module: the name
// tables a host uses to resolve imports and exports, plus every locally
// defined entity's declared shape. An instantiator walks Locals to allocate
// and bind real storage, then writes the resulting pointers into the
// InstanceContext the compiled code expects as its first argument.
type ModuleData struct {
	Exports map[string]wasm.ExportDesc
	Imports map[string]map[string]wasm.ImportDesc
	Locals  Locals
}

// BuildModuleData derives a ModuleData from a decoded module. Every Ptr
// field in the returned Locals is nil; populating them is instantiation,
// which is out of this module's scope.
func BuildModuleData(m *wasm.Module) *ModuleData {
	data := &ModuleData{
		Exports: make(map[string]wasm.ExportDesc, len(m.Exports)),
		Imports: make(map[string]map[string]wasm.ImportDesc),
	}

	for _, exp := range m.Exports {
		data.Exports[exp.Name] = exp.Desc
	}
	for _, imp := range m.Imports {
		byField, ok := data.Imports[imp.Module]
		if !ok {
			byField = make(map[string]wasm.ImportDesc)
			data.Imports[imp.Module] = byField
		}
		byField[imp.Field] = imp.Desc
	}

	for _, t := range m.Tables {
		data.Locals.Tables = append(data.Locals.Tables, TableDesc{Limits: toRuntimeLimits(t.Limits)})
	}
	for _, mem := range m.Memories {
		data.Locals.Memories = append(data.Locals.Memories, MemoryDesc{Limits: toRuntimeLimits(mem.Limits)})
	}
	for _, g := range m.Globals {
		data.Locals.Globals = append(data.Locals.Globals, GlobalDesc{Mutable: g.Mutable, Type: g.Type})
	}
	for _, fn := range m.Functions {
		data.Locals.Functions = append(data.Locals.Functions, FuncDesc{Signature: m.Types[fn.TypeIndex]})
	}

	return data
}

func toRuntimeLimits(l wasm.ResizableLimits) ResizableLimits {
	return ResizableLimits{Minimum: l.Minimum, Maximum: l.Maximum, HasMax: l.HasMax}
}
