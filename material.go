package blit

// Material binds values, textures and samplers to a Shader's uniforms.
//
// Float values of all non-texture uniforms are packed in declaration order
// into a single slice; each uniform occupies Components()*ArrayLength floats.
// Textures and samplers each get one slot per array element.
type Material struct {
	shader   Shader
	textures []Texture
	samplers []TextureSampler
	data     []float32
}

// NewMaterial creates a material for shader. A nil shader is fatal.
func NewMaterial(shader Shader) *Material {
	assert(shader != nil, "material requires a shader")

	m := &Material{shader: shader}
	for _, u := range shader.Uniforms() {
		n := max(u.ArrayLength, 1)
		switch u.Type {
		case UniformTexture2D:
			m.textures = append(m.textures, make([]Texture, n)...)
		case UniformSampler2D:
			m.samplers = append(m.samplers, make([]TextureSampler, n)...)
		default:
			m.data = append(m.data, make([]float32, u.Type.Components()*n)...)
		}
	}
	return m
}

// Shader returns the material's shader.
func (m *Material) Shader() Shader {
	return m.shader
}

// Clone returns an independent copy sharing the shader and texture handles.
func (m *Material) Clone() *Material {
	return &Material{
		shader:   m.shader,
		textures: append([]Texture(nil), m.textures...),
		samplers: append([]TextureSampler(nil), m.samplers...),
		data:     append([]float32(nil), m.data...),
	}
}

// slot returns the slot offset of uniform name among uniforms of type t.
func (m *Material) slot(name string, t UniformType) (offset, length int, ok bool) {
	for _, u := range m.shader.Uniforms() {
		if u.Type != t {
			continue
		}
		n := max(u.ArrayLength, 1)
		if u.Name == name {
			return offset, n, true
		}
		offset += n
	}
	return 0, 0, false
}

// registerSlot returns the slot of the uniform of type t bound at register.
func (m *Material) registerSlot(register int, t UniformType) (int, bool) {
	offset := 0
	for _, u := range m.shader.Uniforms() {
		if u.Type != t {
			continue
		}
		if u.RegisterIndex == register {
			return offset, true
		}
		offset += max(u.ArrayLength, 1)
	}
	return 0, false
}

// SetTexture assigns tex to element index of the texture uniform name.
func (m *Material) SetTexture(name string, tex Texture, index int) {
	offset, n, ok := m.slot(name, UniformTexture2D)
	if !ok || index < 0 || index >= n {
		Logger().Warn("material: no texture uniform", "name", name, "index", index)
		return
	}
	m.textures[offset+index] = tex
}

// SetTextureAt assigns tex to the texture uniform bound at register.
func (m *Material) SetTextureAt(register int, tex Texture) {
	slot, ok := m.registerSlot(register, UniformTexture2D)
	if !ok {
		Logger().Warn("material: no texture uniform at register", "register", register)
		return
	}
	m.textures[slot] = tex
}

// GetTexture returns the texture at element index of uniform name, or nil.
func (m *Material) GetTexture(name string, index int) Texture {
	offset, n, ok := m.slot(name, UniformTexture2D)
	if !ok || index < 0 || index >= n {
		return nil
	}
	return m.textures[offset+index]
}

// SetSampler assigns s to element index of the sampler uniform name.
func (m *Material) SetSampler(name string, s TextureSampler, index int) {
	offset, n, ok := m.slot(name, UniformSampler2D)
	if !ok || index < 0 || index >= n {
		Logger().Warn("material: no sampler uniform", "name", name, "index", index)
		return
	}
	m.samplers[offset+index] = s
}

// SetSamplerAt assigns s to the sampler uniform bound at register.
func (m *Material) SetSamplerAt(register int, s TextureSampler) {
	slot, ok := m.registerSlot(register, UniformSampler2D)
	if !ok {
		Logger().Warn("material: no sampler uniform at register", "register", register)
		return
	}
	m.samplers[slot] = s
}

// GetSampler returns the sampler at element index of uniform name.
func (m *Material) GetSampler(name string, index int) TextureSampler {
	offset, n, ok := m.slot(name, UniformSampler2D)
	if !ok || index < 0 || index >= n {
		return TextureSampler{}
	}
	return m.samplers[offset+index]
}

// dataRange returns the float range of a value uniform.
func (m *Material) dataRange(name string) (offset, length int, ok bool) {
	for _, u := range m.shader.Uniforms() {
		if u.Type == UniformTexture2D || u.Type == UniformSampler2D || u.Type == UniformNone {
			continue
		}
		n := u.Type.Components() * max(u.ArrayLength, 1)
		if u.Name == name {
			return offset, n, true
		}
		offset += n
	}
	return 0, 0, false
}

// HasValue reports whether the shader declares a value uniform called name.
func (m *Material) HasValue(name string) bool {
	_, _, ok := m.dataRange(name)
	return ok
}

// SetValue copies values into the uniform name. Values longer than the
// uniform are truncated with a warning.
func (m *Material) SetValue(name string, values []float32) {
	offset, n, ok := m.dataRange(name)
	if !ok {
		Logger().Warn("material: no value uniform", "name", name)
		return
	}
	if len(values) > n {
		Logger().Warn("material: value exceeds uniform size", "name", name, "len", len(values), "size", n)
		values = values[:n]
	}
	copy(m.data[offset:offset+n], values)
}

// GetValue returns the floats of uniform name, or nil.
// The returned slice aliases the material data.
func (m *Material) GetValue(name string) []float32 {
	offset, n, ok := m.dataRange(name)
	if !ok {
		return nil
	}
	return m.data[offset : offset+n]
}

// Textures returns the texture slots in uniform order.
func (m *Material) Textures() []Texture { return m.textures }

// Samplers returns the sampler slots in uniform order.
func (m *Material) Samplers() []TextureSampler { return m.samplers }

// Data returns the packed float data.
func (m *Material) Data() []float32 { return m.data }
