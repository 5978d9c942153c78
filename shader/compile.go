package shader

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/gogpu/geoproc"
	"github.com/gogpu/naga"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// Compile compiles WGSL source to SPIR-V words.
func Compile(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to compile: %w", err)
	}
	if len(spirvBytes)%4 != 0 || len(spirvBytes) < 4 {
		return nil, fmt.Errorf("shader: SPIR-V output is %d bytes, not whole words", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	if words[0] != spirvMagic {
		return nil, fmt.Errorf("shader: invalid SPIR-V magic 0x%08X", words[0])
	}
	return words, nil
}

// CompileProcessor generates and compiles the vertex stage for gp.
func CompileProcessor(gp *geoproc.GeometryProcessor) ([]uint32, error) {
	src, err := VertexWGSL(gp)
	if err != nil {
		return nil, err
	}
	words, err := Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", gp.Label(), err)
	}
	geoproc.Logger().Debug("shader: compiled vertex stage",
		slog.String("label", gp.Label()),
		slog.String("key", fmt.Sprintf("0x%08X", gp.Key())),
		slog.Int("words", len(words)))
	return words, nil
}
