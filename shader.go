package blit

// UniformType is the declared type of a shader uniform.
type UniformType uint8

// Uniform types.
const (
	UniformNone UniformType = iota
	UniformFloat
	UniformFloat2
	UniformFloat3
	UniformFloat4
	UniformMat3x2
	UniformMat4x4
	UniformTexture2D
	UniformSampler2D
)

// Components returns the number of floats a value of the type occupies in
// Material data. Textures and samplers occupy none.
func (t UniformType) Components() int {
	switch t {
	case UniformFloat:
		return 1
	case UniformFloat2:
		return 2
	case UniformFloat3:
		return 3
	case UniformFloat4:
		return 4
	case UniformMat3x2:
		return 6
	case UniformMat4x4:
		return 16
	default:
		return 0
	}
}

// String returns the type name.
func (t UniformType) String() string {
	switch t {
	case UniformFloat:
		return "Float"
	case UniformFloat2:
		return "Float2"
	case UniformFloat3:
		return "Float3"
	case UniformFloat4:
		return "Float4"
	case UniformMat3x2:
		return "Mat3x2"
	case UniformMat4x4:
		return "Mat4x4"
	case UniformTexture2D:
		return "Texture2D"
	case UniformSampler2D:
		return "Sampler2D"
	default:
		return "None"
	}
}

// ShaderStage is a bit set of pipeline stages.
type ShaderStage uint8

// Shader stages.
const (
	StageNone     ShaderStage = 0
	StageVertex   ShaderStage = 1
	StageFragment ShaderStage = 2
	StageAll      ShaderStage = StageVertex | StageFragment
)

// UniformInfo describes one reflected uniform.
type UniformInfo struct {
	Name string
	Type UniformType
	// Stages the uniform is visible in.
	Stages ShaderStage
	// BufferIndex is the uniform buffer binding the value lives in.
	BufferIndex int
	// RegisterIndex is the texture or sampler binding.
	RegisterIndex int
	// ArrayLength is 1 for non-array uniforms.
	ArrayLength int
}

// ShaderData is the source pair handed to Backend.CreateShader.
// Both shipped backends read WGSL; Vertex must define vs_main and Fragment
// fs_main.
type ShaderData struct {
	Vertex   string
	Fragment string
}

// Shader is a compiled, reflected program.
type Shader interface {
	Uniforms() []UniformInfo
	Data() ShaderData
}
