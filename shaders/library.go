// Package shaders contains the WGSL sources of the triangle shaders. They are
// compiled to SPIR-V on first use.
package shaders

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/gogpu/naga"
	"github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/triangle/triangle"
)

//go:embed *.wgsl
var sources embed.FS

var ErrUnknownShader = errors.New("unknown shader")

// Library compiles the embedded shaders and keeps the results.
// It is safe for concurrent use.
type Library struct {
	mu       sync.Mutex
	compiled *lru.Cache[string, triangle.ShaderBinary]
}

var _ triangle.ShaderSource = (*Library)(nil)

func NewLibrary() *Library {
	compiled, _ := lru.New[string, triangle.ShaderBinary](16)
	return &Library{compiled: compiled}
}

// Names returns the names of all known shaders, e.g. "basic.vert"
func Names() []string {
	entries, _ := sources.ReadDir(".")

	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".wgsl"))
	}

	slices.Sort(names)

	return names
}

// Source returns the WGSL source of the named shader
func Source(name string) (string, error) {
	code, err := sources.ReadFile(name + ".wgsl")
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrUnknownShader, name)
	}

	return string(code), nil
}

// StageOf derives the shader stage from the extension of the name
func StageOf(name string) (triangle.ShaderStage, error) {
	switch path.Ext(name) {
	case ".vert":
		return triangle.StageVertex, nil
	case ".frag":
		return triangle.StageFragment, nil
	default:
		return 0, fmt.Errorf("no stage for shader %q", name)
	}
}

// Binary returns the compiled binary of the named shader
func (l *Library) Binary(name string) (triangle.ShaderBinary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if binary, ok := l.compiled.Get(name); ok {
		return binary, nil
	}

	source, err := Source(name)
	if err != nil {
		return triangle.ShaderBinary{}, err
	}

	stage, err := StageOf(name)
	if err != nil {
		return triangle.ShaderBinary{}, err
	}

	words, err := Compile(source)
	if err != nil {
		return triangle.ShaderBinary{}, fmt.Errorf("compile %q: %w", name, err)
	}

	slog.Debug("Compiled shader", slog.String("name", name), slog.Int("words", len(words)))

	binary := triangle.ShaderBinary{
		Name:  name,
		Stage: stage,
		Words: words,
	}

	l.compiled.Add(name, binary)

	return binary, nil
}

// Compile compiles WGSL source code into SPIR-V words.
func Compile(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}

	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("spir-v of %d bytes is not a sequence of words", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return words, nil
}
