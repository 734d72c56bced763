// Package wgsl reflects the resource bindings of WGSL shader stages.
//
// Reflection covers what materials need: module-scope uniform buffers
// (scalar, vector, matrix, array or struct typed), 2D textures and
// samplers, each with its @group/@binding. Uniform buffers of struct type
// expose one uniform per member. Each stage is parsed and lowered with
// naga, so binding locations, member offsets and array strides are the
// ones the compiler assigns.
package wgsl

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/blit"
)

var (
	// ErrParse is returned for sources naga rejects and for bindings
	// reflection does not support.
	ErrParse = errors.New("wgsl: parse error")

	// ErrUniformMismatch is returned when both stages declare a uniform of
	// the same name with different types or bindings.
	ErrUniformMismatch = errors.New("wgsl: uniform mismatch between stages")
)

// Kind is the resource type of a binding.
type Kind uint8

// Binding kinds.
const (
	KindUniform Kind = iota
	KindTexture
	KindSampler
)

// Field is one value uniform inside a uniform buffer binding.
type Field struct {
	Name        string
	Type        blit.UniformType
	ArrayLength int
	// Offset is the byte offset of the first element.
	Offset int
	// Stride is the byte distance between array elements.
	Stride int
}

// Binding is one resource binding.
type Binding struct {
	Name    string
	Kind    Kind
	Group   int
	Binding int
	Stages  blit.ShaderStage
	// Size is the uniform buffer size in bytes, rounded up to 16.
	Size   int
	Fields []Field
}

// Module is the merged reflection of a vertex and fragment stage.
type Module struct {
	// Bindings ordered by group and binding within each stage, vertex
	// stage first.
	Bindings []Binding
	// Uniforms lists every value uniform, texture and sampler in the order
	// materials pack them.
	Uniforms []blit.UniformInfo
}

// Reflect parses both stages and merges their bindings.
func Reflect(data blit.ShaderData) (*Module, error) {
	vs, err := reflectStage(data.Vertex, blit.StageVertex)
	if err != nil {
		return nil, fmt.Errorf("vertex stage: %w", err)
	}
	fs, err := reflectStage(data.Fragment, blit.StageFragment)
	if err != nil {
		return nil, fmt.Errorf("fragment stage: %w", err)
	}
	return merge(vs, fs)
}

// lower runs naga's front end over one stage's source.
func lower(src string) (*ir.Module, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	mod, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return mod, nil
}

// reflectStage collects the resource bindings declared by one stage.
func reflectStage(src string, stage blit.ShaderStage) ([]Binding, error) {
	mod, err := lower(src)
	if err != nil {
		return nil, err
	}

	var out []Binding
	for _, gv := range mod.GlobalVariables {
		if gv.Binding == nil {
			continue
		}
		b := Binding{
			Name:    gv.Name,
			Group:   int(gv.Binding.Group),
			Binding: int(gv.Binding.Binding),
			Stages:  stage,
		}
		switch gv.Space {
		case ir.SpaceUniform:
			b.Kind = KindUniform
			fields, size, err := uniformLayout(mod, gv.Name, gv.Type)
			if err != nil {
				return nil, fmt.Errorf("uniform %s: %w", gv.Name, err)
			}
			b.Fields, b.Size = fields, size
		case ir.SpaceHandle:
			kind, ok := handleKind(mod.Types[gv.Type].Inner)
			if !ok {
				return nil, fmt.Errorf("%w: binding %s has unsupported type", ErrParse, gv.Name)
			}
			b.Kind = kind
		default:
			return nil, fmt.Errorf("%w: binding %s is not a uniform, texture or sampler", ErrParse, gv.Name)
		}
		out = append(out, b)
	}

	slices.SortStableFunc(out, func(a, b Binding) int {
		if c := cmp.Compare(a.Group, b.Group); c != 0 {
			return c
		}
		return cmp.Compare(a.Binding, b.Binding)
	})
	return out, nil
}

func handleKind(inner ir.TypeInner) (Kind, bool) {
	switch t := inner.(type) {
	case ir.ImageType:
		if t.Dim == ir.Dim2D && !t.Arrayed && !t.Multisampled && t.Class == ir.ImageClassSampled {
			return KindTexture, true
		}
	case ir.SamplerType:
		return KindSampler, true
	}
	return 0, false
}

// merge combines the stage bindings. A name present in both stages must
// agree on kind, location and layout; its stage sets are joined.
func merge(stages ...[]Binding) (*Module, error) {
	mod := &Module{}
	index := make(map[string]int)

	for _, bindings := range stages {
		for _, b := range bindings {
			i, seen := index[b.Name]
			if !seen {
				index[b.Name] = len(mod.Bindings)
				mod.Bindings = append(mod.Bindings, b)
				continue
			}
			prev := &mod.Bindings[i]
			if !sameBinding(prev, &b) {
				return nil, fmt.Errorf("%w: %s", ErrUniformMismatch, b.Name)
			}
			prev.Stages |= b.Stages
		}
	}

	seenField := make(map[string]bool)
	for _, b := range mod.Bindings {
		switch b.Kind {
		case KindUniform:
			for _, f := range b.Fields {
				if seenField[f.Name] {
					return nil, fmt.Errorf("%w: %s declared in two buffers", ErrUniformMismatch, f.Name)
				}
				seenField[f.Name] = true
				mod.Uniforms = append(mod.Uniforms, blit.UniformInfo{
					Name:        f.Name,
					Type:        f.Type,
					Stages:      b.Stages,
					BufferIndex: b.Binding,
					ArrayLength: f.ArrayLength,
				})
			}
		case KindTexture, KindSampler:
			t := blit.UniformTexture2D
			if b.Kind == KindSampler {
				t = blit.UniformSampler2D
			}
			mod.Uniforms = append(mod.Uniforms, blit.UniformInfo{
				Name:          b.Name,
				Type:          t,
				Stages:        b.Stages,
				RegisterIndex: b.Binding,
				ArrayLength:   1,
			})
		}
	}
	return mod, nil
}

func sameBinding(a, b *Binding) bool {
	if a.Kind != b.Kind || a.Group != b.Group || a.Binding != b.Binding || a.Size != b.Size {
		return false
	}
	return slices.Equal(a.Fields, b.Fields)
}
