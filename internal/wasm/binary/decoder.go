// Package binary implements the streaming Wasm binary decoder and validator:
// the module preamble, the top-level section loop, each section's
// sub-decoder, and the per-function body decoder/validator that emits the
// operand-reference operator IR defined in internal/wasm.
package binary

import (
	"github.com/appcypher/wasmo/internal/leb128"
	"github.com/appcypher/wasmo/internal/wasm"
	"github.com/appcypher/wasmo/internal/wasmerr"
	"github.com/appcypher/wasmo/internal/wasmolog"
	"go.uber.org/zap"
)

var preambleMagic = [4]byte{0x00, 'a', 's', 'm'}

const preambleVersion uint32 = 1

// DecodeModule decodes and validates an entire Wasm binary in one pass,
// returning the populated IR Module or the first error encountered. There is
// no partial result: compilation is all-or-nothing, matching §7's
// propagation policy.
func DecodeModule(bin []byte) (*wasm.Module, error) {
	c := leb128.NewCursor(bin)
	if err := decodePreamble(c); err != nil {
		return nil, err
	}

	m := &wasm.Module{}
	seen := make(map[wasm.SectionID]bool)
	var highestSeen wasm.SectionID = 0

	for !c.AtEnd() {
		entry := c.Offset()
		idByte, err := c.ReadVaruint7()
		if err != nil {
			return nil, err
		}
		id := wasm.SectionID(idByte)
		if id > wasm.SectionData {
			return nil, wasmerr.New(wasmerr.MalformedSectionId, entry)
		}

		if id != wasm.SectionCustom {
			if seen[id] || id < highestSeen {
				return nil, wasmerr.New(wasmerr.SectionAlreadyDefined, entry)
			}
			seen[id] = true
			highestSeen = id
		}

		payloadLen, err := c.ReadVaruint32()
		if err != nil {
			return nil, err
		}
		payloadStart := c.Offset()
		payload, err := c.EatBytes(int(payloadLen))
		if err != nil {
			return nil, err
		}
		pc := leb128.NewCursor(payload)

		if err := decodeSection(id, pc, m); err != nil {
			return nil, rebaseError(err, payloadStart)
		}
		if pc.Offset() != len(payload) {
			return nil, wasmerr.New(wasmerr.SectionPayloadDoesNotMatchPayloadLength, payloadStart)
		}
		wasmolog.L().Debug("decoded section", zap.Stringer("id", id), zap.Int("payload_len", len(payload)))
	}

	wasmolog.L().Info("decoded module",
		zap.Int("functions", len(m.Functions)),
		zap.Int("exports", len(m.Exports)),
		zap.Int("imports", len(m.Imports)),
	)
	return m, nil
}

func decodePreamble(c *leb128.Cursor) error {
	entry := c.Offset()
	magic, err := c.EatBytes(4)
	if err != nil {
		return wasmerr.New(wasmerr.IncompletePreamble, entry)
	}
	if magic[0] != preambleMagic[0] || magic[1] != preambleMagic[1] || magic[2] != preambleMagic[2] || magic[3] != preambleMagic[3] {
		return wasmerr.New(wasmerr.InvalidMagicNumber, entry)
	}
	version, err := c.ReadUint32()
	if err != nil {
		return wasmerr.New(wasmerr.IncompletePreamble, entry)
	}
	if version != preambleVersion {
		return wasmerr.New(wasmerr.InvalidVersionNumber, entry)
	}
	return nil
}

// rebaseError translates an error offset recorded relative to the start of a
// section's payload cursor into an offset relative to the whole module
// buffer, so every error the caller sees is addressable directly against the
// original bytes.
func rebaseError(err error, payloadStart int) error {
	pe, ok := err.(*wasmerr.Error)
	if !ok {
		return err
	}
	rebased := *pe
	rebased.Offset += payloadStart
	return &rebased
}

func decodeSection(id wasm.SectionID, c *leb128.Cursor, m *wasm.Module) error {
	switch id {
	case wasm.SectionCustom:
		return decodeCustomSection(c)
	case wasm.SectionType:
		return decodeTypeSection(c, m)
	case wasm.SectionImport:
		return decodeImportSection(c, m)
	case wasm.SectionFunction:
		return decodeFunctionSection(c, m)
	case wasm.SectionTable:
		return decodeTableSection(c, m)
	case wasm.SectionMemory:
		return decodeMemorySection(c, m)
	case wasm.SectionGlobal:
		return decodeGlobalSection(c, m)
	case wasm.SectionExport:
		return decodeExportSection(c, m)
	case wasm.SectionStart:
		return decodeStartSection(c, m)
	case wasm.SectionElement:
		return decodeElementSection(c, m)
	case wasm.SectionCode:
		return decodeCodeSection(c, m)
	case wasm.SectionData:
		return decodeDataSection(c, m)
	default:
		return wasmerr.New(wasmerr.UnsupportedSection, c.Offset())
	}
}

func decodeCustomSection(c *leb128.Cursor) error {
	nameLen, err := c.ReadVaruint32()
	if err != nil {
		return wasmerr.New(wasmerr.MalformedNameLengthInCustomSection, c.Offset())
	}
	name, err := c.EatBytes(int(nameLen))
	if err != nil {
		return wasmerr.New(wasmerr.IncompleteCustomSection, c.Offset())
	}
	if !validateUTF8(name) {
		return wasmerr.New(wasmerr.MalformedNameLengthInCustomSection, c.Offset())
	}
	// The remainder of the payload is opaque to the core; the caller
	// (DecodeModule) has already sliced exactly payload_len bytes for us, so
	// consuming the rest unconditionally satisfies the framing check.
	c.EatBytes(c.Remaining())
	return nil
}
