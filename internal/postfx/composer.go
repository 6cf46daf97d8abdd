// Package postfx renders a scene into an offscreen target and composites a glow over it.
package postfx

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"space-demos/internal/logger"
	"space-demos/internal/postfx/bloom"
	"space-demos/internal/scene"
)

const maxKernel = 11

const quadVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec4 vertexColor;
uniform mat4 mvp;
out vec2 fragTexCoord;
void main() {
  fragTexCoord = vertexTexCoord;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const brightFS = `#version 330
in vec2 fragTexCoord;
uniform sampler2D texture0;
uniform float threshold;
uniform float smoothWidth;
out vec4 finalColor;
void main() {
  vec4 texel = texture(texture0, fragTexCoord);
  float lum = dot(texel.rgb, vec3(0.2126, 0.7152, 0.0722));
  float k = smoothstep(threshold, threshold + smoothWidth, lum);
  finalColor = vec4(texel.rgb * k, 1.0);
}
`

const blurFS = `#version 330
in vec2 fragTexCoord;
uniform sampler2D texture0;
uniform vec2 texelStep;
uniform float weights[11];
uniform float taps;
out vec4 finalColor;
void main() {
  vec3 sum = texture(texture0, fragTexCoord).rgb * weights[0];
  for (int i = 1; i < 11; i++) {
    if (float(i) >= taps) break;
    vec2 off = texelStep * float(i);
    sum += (texture(texture0, fragTexCoord + off).rgb + texture(texture0, fragTexCoord - off).rgb) * weights[i];
  }
  finalColor = vec4(sum, 1.0);
}
`

// scaleFS multiplies a texture by a factor and writes opaque alpha, so it can both copy the
// scene and add a weighted mip under additive blending.
const scaleFS = `#version 330
in vec2 fragTexCoord;
uniform sampler2D texture0;
uniform float factor;
out vec4 finalColor;
void main() {
  finalColor = vec4(texture(texture0, fragTexCoord).rgb * factor, 1.0);
}
`

type shader struct {
	s    rl.Shader
	locs map[string]int32
}

func loadShader(name, fs string, log *logger.Logger) *shader {
	s := &shader{s: rl.LoadShaderFromMemory(quadVS, fs), locs: make(map[string]int32)}
	if !rl.IsShaderValid(s.s) && log != nil {
		log.Logf("shader %s: compile failed, bloom disabled", name)
	}
	return s
}

func (s *shader) valid() bool { return rl.IsShaderValid(s.s) }

func (s *shader) loc(name string) int32 {
	if l, ok := s.locs[name]; ok {
		return l
	}
	l := rl.GetShaderLocation(s.s, name)
	s.locs[name] = l
	return l
}

func (s *shader) set(name string, v ...float32) {
	l := s.loc(name)
	if l < 0 || len(v) == 0 {
		return
	}
	switch len(v) {
	case 1:
		rl.SetShaderValue(s.s, l, v, rl.ShaderUniformFloat)
	case 2:
		rl.SetShaderValue(s.s, l, v, rl.ShaderUniformVec2)
	}
}

func (s *shader) setArray(name string, v []float32) {
	if l := s.loc(name); l >= 0 && len(v) > 0 {
		rl.SetShaderValueV(s.s, l, v, rl.ShaderUniformFloat, int32(len(v)))
	}
}

// Composer wraps a Drawer: the scene is drawn into an offscreen target, its bright parts are
// blurred at five decreasing resolutions, and the blurred mips are added back on top.
type Composer struct {
	inner  scene.Drawer
	params bloom.Params
	log    *logger.Logger

	width, height int32
	sceneRT       rl.RenderTexture2D
	brightRT      rl.RenderTexture2D
	horizontal    [bloom.Mips]rl.RenderTexture2D
	vertical      [bloom.Mips]rl.RenderTexture2D

	bright, blur, scale *shader
	kernels             [bloom.Mips][]float32
	factors             [bloom.Mips]float32
}

// NewComposer returns a composer drawing inner with glow p. Targets are created on the first
// Draw and recreated if the canvas size changes.
func NewComposer(inner scene.Drawer, p bloom.Params, log *logger.Logger) *Composer {
	c := &Composer{inner: inner, params: p, log: log, factors: bloom.Factors(p)}
	for i := range c.kernels {
		c.kernels[i] = padKernel(bloom.Kernel(bloom.KernelRadius(i)))
	}
	return c
}

func padKernel(w []float32) []float32 {
	out := make([]float32, maxKernel)
	copy(out, w)
	return out
}

func (c *Composer) ensure(width, height int32) {
	if c.bright == nil {
		c.bright = loadShader("bright", brightFS, c.log)
		c.blur = loadShader("blur", blurFS, c.log)
		c.scale = loadShader("scale", scaleFS, c.log)
	}
	if width == c.width && height == c.height {
		return
	}
	c.unloadTargets()
	c.width, c.height = width, height
	c.sceneRT = rl.LoadRenderTexture(width, height)
	sizes := bloom.MipSizes(width, height)
	c.brightRT = rl.LoadRenderTexture(sizes[0][0], sizes[0][1])
	for i, s := range sizes {
		c.horizontal[i] = rl.LoadRenderTexture(s[0], s[1])
		c.vertical[i] = rl.LoadRenderTexture(s[0], s[1])
		rl.SetTextureFilter(c.horizontal[i].Texture, rl.FilterBilinear)
		rl.SetTextureFilter(c.vertical[i].Texture, rl.FilterBilinear)
	}
	rl.SetTextureFilter(c.sceneRT.Texture, rl.FilterBilinear)
	rl.SetTextureFilter(c.brightRT.Texture, rl.FilterBilinear)
}

func (c *Composer) ready() bool {
	return c.bright.valid() && c.blur.valid() && c.scale.valid()
}

// Draw renders s through the glow chain onto the current framebuffer.
func (c *Composer) Draw(s *scene.Scene, cam scene.Camera) {
	c.ensure(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	if !c.ready() {
		c.inner.Draw(s, cam)
		return
	}

	rl.BeginTextureMode(c.sceneRT)
	c.inner.Draw(s, cam)
	rl.EndTextureMode()

	c.pass(c.brightRT, c.sceneRT.Texture, c.bright, func() {
		c.bright.set("threshold", c.params.Threshold)
		c.bright.set("smoothWidth", bloom.SmoothWidth)
	})

	src := c.brightRT.Texture
	for i := range c.horizontal {
		kernel := c.kernels[i]
		taps := float32(bloom.KernelRadius(i))
		h, v := c.horizontal[i], c.vertical[i]
		stepH, stepV := bloom.TexelSteps([2]int32{h.Texture.Width, h.Texture.Height})
		c.pass(h, src, c.blur, func() {
			c.blur.set("texelStep", stepH[:]...)
			c.blur.setArray("weights", kernel)
			c.blur.set("taps", taps)
		})
		c.pass(v, h.Texture, c.blur, func() {
			c.blur.set("texelStep", stepV[:]...)
			c.blur.setArray("weights", kernel)
			c.blur.set("taps", taps)
		})
		src = v.Texture
	}

	c.blit(c.sceneRT.Texture, 1)
	rl.BeginBlendMode(rl.BlendAdditive)
	for i, v := range c.vertical {
		c.blit(v.Texture, c.factors[i])
	}
	rl.EndBlendMode()
}

// pass draws src stretched over dst with sh. uniforms runs inside shader mode.
func (c *Composer) pass(dst rl.RenderTexture2D, src rl.Texture2D, sh *shader, uniforms func()) {
	rl.BeginTextureMode(dst)
	rl.ClearBackground(rl.Black)
	rl.BeginShaderMode(sh.s)
	uniforms()
	drawFlipped(src, dst.Texture.Width, dst.Texture.Height)
	rl.EndShaderMode()
	rl.EndTextureMode()
}

// blit draws src over the whole screen scaled by factor.
func (c *Composer) blit(src rl.Texture2D, factor float32) {
	rl.BeginShaderMode(c.scale.s)
	c.scale.set("factor", factor)
	drawFlipped(src, c.width, c.height)
	rl.EndShaderMode()
}

// drawFlipped draws a render texture upright; render textures are stored bottom-up.
func drawFlipped(src rl.Texture2D, width, height int32) {
	srcRect := rl.NewRectangle(0, 0, float32(src.Width), -float32(src.Height))
	dstRect := rl.NewRectangle(0, 0, float32(width), float32(height))
	rl.DrawTexturePro(src, srcRect, dstRect, rl.NewVector2(0, 0), 0, rl.White)
}

func (c *Composer) unloadTargets() {
	if c.width == 0 {
		return
	}
	rl.UnloadRenderTexture(c.sceneRT)
	rl.UnloadRenderTexture(c.brightRT)
	for i := range c.horizontal {
		rl.UnloadRenderTexture(c.horizontal[i])
		rl.UnloadRenderTexture(c.vertical[i])
	}
}

// Close releases the targets and shaders.
func (c *Composer) Close() {
	c.unloadTargets()
	c.width, c.height = 0, 0
	if c.bright == nil {
		return
	}
	for _, s := range []*shader{c.bright, c.blur, c.scale} {
		if s.valid() {
			rl.UnloadShader(s.s)
		}
	}
	c.bright, c.blur, c.scale = nil, nil, nil
}
