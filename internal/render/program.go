package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"space-demos/internal/logger"
)

// program is a shader plus the material that carries it into DrawMesh. Uniform locations
// are looked up once and cached.
type program struct {
	name   string
	shader rl.Shader
	mtl    rl.Material
	locs   map[string]int32
}

// loadProgram compiles vs/fs. An invalid shader is logged and the program keeps raylib's
// default shader, so meshes still draw (unlit).
func loadProgram(name, vs, fs string, log *logger.Logger) *program {
	p := &program{name: name, mtl: rl.LoadMaterialDefault(), locs: make(map[string]int32)}
	shader := rl.LoadShaderFromMemory(vs, fs)
	if rl.IsShaderValid(shader) {
		p.shader = shader
		p.mtl.Shader = shader
	} else if log != nil {
		log.Logf("shader %s: compile failed, using default shader", name)
	}
	return p
}

func (p *program) valid() bool {
	return rl.IsShaderValid(p.shader)
}

func (p *program) loc(name string) int32 {
	if l, ok := p.locs[name]; ok {
		return l
	}
	l := int32(-1)
	if p.valid() {
		l = rl.GetShaderLocation(p.shader, name)
	}
	p.locs[name] = l
	return l
}

func (p *program) setFloat(name string, v float32) {
	if l := p.loc(name); l >= 0 {
		rl.SetShaderValue(p.shader, l, []float32{v}, rl.ShaderUniformFloat)
	}
}

func (p *program) setVec3(name string, v [3]float32) {
	if l := p.loc(name); l >= 0 {
		rl.SetShaderValueV(p.shader, l, v[:], rl.ShaderUniformVec3, 1)
	}
}

// setFlag uploads b as a float uniform (0 or 1); shaders test it against 0.5.
func (p *program) setFlag(name string, b bool) {
	var v float32
	if b {
		v = 1
	}
	p.setFloat(name, v)
}

// unload releases the shader and the material's maps array. The material is first pointed
// back at the default shader and textures: the textures belong to the texture cache, and
// UnloadMaterial skips default ids.
func (p *program) unload() {
	if p.valid() {
		rl.UnloadShader(p.shader)
	}
	p.shader = rl.Shader{}
	if p.mtl.Maps == nil {
		return
	}
	p.mtl.Shader = rl.Shader{ID: rl.GetShaderIdDefault()}
	for i := int32(0); i < rl.MaxMaterialMaps; i++ {
		p.mtl.GetMap(i).Texture = rl.Texture2D{ID: rl.GetTextureIdDefault()}
	}
	rl.UnloadMaterial(p.mtl)
	p.mtl = rl.Material{}
}
