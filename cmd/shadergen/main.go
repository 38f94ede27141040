// Command shadergen compiles a WGSL shader to SPIR-V and writes a Go
// source file declaring the words as a named variable:
//
//	shadergen -in basic.vert.wgsl -out basic_vert_spv.go -name BasicVert -package shaders
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/oliverbestmann/triangle/shaders"
)

var funcs = template.FuncMap{
	"mod": func(a, b int) int { return a % b },
}

var sourceTemplate = template.Must(template.New("source").Funcs(funcs).Parse(`// Code generated by shadergen from {{ .Input }}. DO NOT EDIT.

package {{ .Package }}

var {{ .Name }} = []uint32{
{{- range $idx, $word := .Words }}{{ if eq (mod $idx 8) 0 }}
	{{ end }}{{ printf "0x%08x" $word }},{{ end }}
}
`))

type sourceData struct {
	Input   string
	Package string
	Name    string
	Words   []uint32
}

func main() {
	input := flag.String("in", "", "wgsl file to compile")
	output := flag.String("out", "", "go file to write")
	name := flag.String("name", "", "name of the generated variable")
	pkg := flag.String("package", "main", "package of the generated file")
	flag.Parse()

	if err := run(*input, *output, *name, *pkg); err != nil {
		slog.Error("Generate shader failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func run(input, output, name, pkg string) error {
	if input == "" || output == "" || name == "" {
		return errors.New("-in, -out and -name are required")
	}

	code, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	words, err := shaders.Compile(string(code))
	if err != nil {
		return fmt.Errorf("compile %q: %w", input, err)
	}

	source, err := Generate(sourceData{
		Input:   filepath.Base(input),
		Package: pkg,
		Name:    name,
		Words:   words,
	})
	if err != nil {
		return err
	}

	slog.Info("Write shader", slog.String("file", output), slog.Int("words", len(words)))

	return os.WriteFile(output, source, 0o644)
}

// Generate renders the go source declaring the shader words
func Generate(data sourceData) ([]byte, error) {
	var buf bytes.Buffer
	if err := sourceTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}

	return format.Source(buf.Bytes())
}
