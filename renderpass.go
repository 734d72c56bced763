package blit

// Compare is a depth comparison function.
type Compare uint8

// Depth comparisons. CompareNone disables the depth test.
const (
	CompareNone Compare = iota
	CompareAlways
	CompareNever
	CompareLess
	CompareEqual
	CompareLessOrEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterOrEqual
)

// Cull selects which triangle faces are discarded.
type Cull uint8

// Cull modes.
const (
	CullNone Cull = iota
	CullFront
	CullBack
)

// RenderPass is one draw invocation: a mesh range drawn into a target with
// a material and fixed-function state. It is built per draw and consumed
// immediately by Graphics.Render.
type RenderPass struct {
	// Target to draw into. Nil means the backbuffer.
	Target   Target
	Mesh     Mesh
	Material *Material

	// HasViewport enables Viewport; otherwise the whole target is used.
	HasViewport bool
	Viewport    Rect

	// HasScissor enables Scissor.
	HasScissor bool
	Scissor    Rect

	IndexStart    int
	IndexCount    int
	InstanceCount int

	Depth Compare
	Cull  Cull
	Blend BlendMode
}

// NewRenderPass returns a pass with normal blending and no depth test
// that draws the whole mesh.
func NewRenderPass(target Target, mesh Mesh, material *Material) RenderPass {
	pass := RenderPass{
		Target:   target,
		Mesh:     mesh,
		Material: material,
		Blend:    BlendNormal,
	}
	if mesh != nil {
		pass.IndexCount = mesh.IndexCount()
	}
	return pass
}

// Validate normalizes pass against a target of the given size.
//
// It returns the corrected copy and whether the pass should be drawn at
// all. A pass whose index range starts past the end of the mesh is skipped.
// A nil mesh, material or material shader is a fatal programmer error.
//
// Corrections, each logged as a warning:
//   - an index range running past the mesh is trimmed to end at the last index
//   - an instance count above the mesh's is clamped
//
// The viewport defaults to the full target and is otherwise intersected
// with it; the scissor, when enabled, is intersected with the target too.
func Validate(pass RenderPass, bounds Point) (RenderPass, bool) {
	assert(pass.Mesh != nil, "render pass requires a mesh")
	assert(pass.Material != nil, "render pass requires a material")
	assert(pass.Material.Shader() != nil, "render pass material requires a shader")

	meshIndices := pass.Mesh.IndexCount()
	if pass.IndexStart+pass.IndexCount > meshIndices {
		if pass.IndexStart >= meshIndices {
			Logger().Warn("render pass: index start out of range, skipping",
				"start", pass.IndexStart, "mesh_indices", meshIndices)
			return pass, false
		}
		Logger().Warn("render pass: index range exceeds mesh, trimming",
			"start", pass.IndexStart, "count", pass.IndexCount, "mesh_indices", meshIndices)
		pass.IndexCount = meshIndices - pass.IndexStart
	}
	if pass.IndexStart < 0 || pass.IndexCount <= 0 {
		Logger().Warn("render pass: empty index range, skipping",
			"start", pass.IndexStart, "count", pass.IndexCount)
		return pass, false
	}

	if meshInstances := pass.Mesh.InstanceCount(); pass.InstanceCount > meshInstances {
		Logger().Warn("render pass: instance count exceeds mesh, clamping",
			"instances", pass.InstanceCount, "mesh_instances", meshInstances)
		pass.InstanceCount = meshInstances
	}

	full := Rect{W: float32(bounds.X), H: float32(bounds.Y)}
	if !pass.HasViewport {
		pass.HasViewport = true
		pass.Viewport = full
	} else {
		pass.Viewport = pass.Viewport.OverlapRect(full)
	}

	if pass.HasScissor {
		pass.Scissor = pass.Scissor.OverlapRect(full)
	}

	return pass, true
}
