// Package renderer draws a scene.Scene with OpenGL: lit, optionally
// textured meshes with environment reflections and linear fog, plus a skybox
// when the environment doubles as the background.
package renderer

import (
	_ "embed"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/shader"
)

var (
	//go:embed shaders/mesh.vert
	meshVertexShader string
	//go:embed shaders/mesh.frag
	meshFragmentShader string
	//go:embed shaders/skybox.vert
	skyboxVertexShader string
	//go:embed shaders/skybox.frag
	skyboxFragmentShader string
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Stats counts the work of the last frame.
type Stats struct {
	DrawCalls  int
	Triangles  int
	Uploads    int
	Primitives int // Resident on the GPU
}

type meshUniforms struct {
	model, viewProj, normalMatrix         int32
	baseColor, hasTexture, baseTexture    int32
	metallic, roughness                   int32
	ambient, lightDir, lightColor, camera int32
	hasEnv, envMap, envIntensity          int32
	fogEnabled, fogColor, fogNear, fogFar int32
}

// Renderer handles all OpenGL scene rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	meshProgram uint32
	mesh        meshUniforms
	skyProgram  uint32
	skyViewRot  int32
	skyEnvMap   int32
	skyVAO      uint32
	skyVBO      uint32
	textures    map[image.Image]uint32
	resident    map[*scene.Primitive]struct{}
	stats       Stats
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config:   cfg,
		log:      log,
		textures: make(map[image.Image]uint32),
		resident: make(map[*scene.Primitive]struct{}),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)
	gl.Enable(gl.MULTISAMPLE)

	var err error
	r.meshProgram, err = shader.CompileProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	r.skyProgram, err = shader.CompileProgram(skyboxVertexShader, skyboxFragmentShader)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("skybox program: %w", err)
	}
	r.lookupUniforms()
	r.skyVAO, r.skyVBO = uploadSkybox()

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

func (r *Renderer) lookupUniforms() {
	loc := &shader.Locator{Program: r.meshProgram}
	u := loc.Get
	r.mesh = meshUniforms{
		model:        u("uModel"),
		viewProj:     u("uViewProj"),
		normalMatrix: u("uNormalMatrix"),
		baseColor:    u("uBaseColor"),
		hasTexture:   u("uHasTexture"),
		baseTexture:  u("uBaseTexture"),
		metallic:     u("uMetallic"),
		roughness:    u("uRoughness"),
		ambient:      u("uAmbient"),
		lightDir:     u("uLightDir"),
		lightColor:   u("uLightColor"),
		camera:       u("uCameraPos"),
		hasEnv:       u("uHasEnv"),
		envMap:       u("uEnvMap"),
		envIntensity: u("uEnvIntensity"),
		fogEnabled:   u("uFogEnabled"),
		fogColor:     u("uFogColor"),
		fogNear:      u("uFogNear"),
		fogFar:       u("uFogFar"),
	}
	r.skyViewRot = shader.Uniform(r.skyProgram, "uViewRotProj")
	r.skyEnvMap = shader.Uniform(r.skyProgram, "uEnvMap")
	if len(loc.Missing) > 0 {
		r.log.Debug("inactive mesh uniforms", zap.Strings("names", loc.Missing))
	}
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for p := range r.resident {
		releasePrimitive(p)
	}
	clear(r.resident)
	for img, tex := range r.textures {
		gl.DeleteTextures(1, &tex)
		delete(r.textures, img)
	}
	if r.skyVAO != 0 {
		gl.DeleteVertexArrays(1, &r.skyVAO)
	}
	if r.skyVBO != 0 {
		gl.DeleteBuffers(1, &r.skyVBO)
	}
	if r.meshProgram != 0 {
		gl.DeleteProgram(r.meshProgram)
	}
	if r.skyProgram != 0 {
		gl.DeleteProgram(r.skyProgram)
	}
}

// Resize sets the drawable size in pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Stats returns counters for the last Render.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Render draws the scene from the camera.
func (r *Renderer) Render(sc *scene.Scene, cam *camera.Perspective) {
	r.stats = Stats{Primitives: len(r.resident)}

	bg := sc.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	var env uint32
	if sc.Environment != nil {
		env = r.uploadCube(sc.Environment)
	}
	if env != 0 && sc.EnvironmentBackground {
		r.drawSkybox(env, cam)
	}

	viewProj := cam.ViewProjection()
	u := r.mesh
	gl.UseProgram(r.meshProgram)
	gl.UniformMatrix4fv(u.viewProj, 1, false, &viewProj[0])

	ambient := sc.Ambient.Radiance()
	lightDir := sc.Directional.Direction()
	lightColor := sc.Directional.Radiance()
	gl.Uniform3fv(u.ambient, 1, &ambient[0])
	gl.Uniform3fv(u.lightDir, 1, &lightDir[0])
	gl.Uniform3fv(u.lightColor, 1, &lightColor[0])
	gl.Uniform3fv(u.camera, 1, &cam.Position[0])

	gl.Uniform1i(u.baseTexture, 0)
	gl.Uniform1i(u.envMap, 1)
	gl.Uniform1i(u.hasEnv, boolInt(env != 0))
	if env != 0 {
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, env)
	}

	fog := sc.Fog
	gl.Uniform1i(u.fogEnabled, boolInt(fog.Enabled()))
	gl.Uniform3fv(u.fogColor, 1, &fog.Color[0])
	gl.Uniform1f(u.fogNear, fog.Near)
	gl.Uniform1f(u.fogFar, fog.Far)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	envIntensity := sc.EnvIntensity
	r.drawNode(sc.Root, mgl32.Ident4(), envIntensity)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.CULL_FACE)
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

func (r *Renderer) drawNode(n *scene.Node, parent mgl32.Mat4, envIntensity float32) {
	if n == nil || !n.Visible {
		return
	}
	world := parent.Mul4(n.Local())
	if n.Mesh != nil {
		normal := normalMatrix(world)
		gl.UniformMatrix4fv(r.mesh.model, 1, false, &world[0])
		gl.UniformMatrix3fv(r.mesh.normalMatrix, 1, false, &normal[0])
		for _, p := range n.Mesh.Primitives {
			r.drawPrimitive(p, envIntensity)
		}
	}
	for _, c := range n.Children {
		r.drawNode(c, world, envIntensity)
	}
}

func (r *Renderer) drawPrimitive(p *scene.Primitive, envIntensity float32) {
	if len(p.Indices) == 0 {
		return
	}
	if p.GPU == nil {
		r.uploadPrimitive(p)
	}
	u := r.mesh
	m := p.Material
	if m == nil {
		m = scene.DefaultMaterial()
	}

	gl.Uniform4fv(u.baseColor, 1, &m.BaseColor[0])
	gl.Uniform1f(u.metallic, m.Metallic)
	gl.Uniform1f(u.roughness, m.Roughness)
	gl.Uniform1f(u.envIntensity, envIntensity*m.EnvIntensity)
	gl.Uniform1i(u.hasTexture, boolInt(p.GPU.Texture != 0))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.GPU.Texture)

	if m.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}

	gl.BindVertexArray(p.GPU.VAO)
	gl.DrawElementsWithOffset(gl.TRIANGLES, p.GPU.Count, gl.UNSIGNED_INT, 0)
	r.stats.DrawCalls++
	r.stats.Triangles += int(p.GPU.Count) / 3
}

func (r *Renderer) drawSkybox(env uint32, cam *camera.Perspective) {
	m := skyboxMatrix(cam.ViewMatrix(), cam.ProjectionMatrix())
	gl.DepthMask(false)
	gl.Disable(gl.CULL_FACE)
	gl.UseProgram(r.skyProgram)
	gl.UniformMatrix4fv(r.skyViewRot, 1, false, &m[0])
	gl.Uniform1i(r.skyEnvMap, 1)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, env)
	gl.BindVertexArray(r.skyVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.DepthMask(true)
	r.stats.DrawCalls++
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
