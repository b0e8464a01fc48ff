package renderer

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/texture"
)

// maxTextureSize caps uploaded base color textures.
const maxTextureSize = 2048

func (r *Renderer) uploadPrimitive(p *scene.Primitive) {
	p.EnsureNormals()
	data := interleave(p)

	g := &scene.GPU{Count: int32(len(p.Indices))}
	gl.GenVertexArrays(1, &g.VAO)
	gl.GenBuffers(1, &g.VBO)
	gl.GenBuffers(1, &g.EBO)

	gl.BindVertexArray(g.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(p.Indices)*4, gl.Ptr(p.Indices), gl.STATIC_DRAW)

	stride := int32(vertexFloats * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.BindVertexArray(0)

	if p.Material != nil && p.Material.BaseImage != nil {
		g.Texture = r.uploadTexture(p.Material.BaseImage)
	}

	p.GPU = g
	r.resident[p] = struct{}{}
	r.stats.Uploads++
}

// uploadTexture returns the GL texture for img, creating it once. Materials
// that share a decoded image share the texture.
func (r *Renderer) uploadTexture(img image.Image) uint32 {
	if tex, ok := r.textures[img]; ok {
		return tex
	}
	b := img.Bounds()
	w := texture.PowerOfTwo(b.Dx(), maxTextureSize)
	h := texture.PowerOfTwo(b.Dy(), maxTextureSize)
	rgba := texture.Resize(img, w, h)

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.textures[img] = tex
	r.log.Debug("texture uploaded",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("source_width", b.Dx()),
		zap.Int("source_height", b.Dy()),
	)
	return tex
}

func (r *Renderer) uploadCube(c *scene.CubeFaces) uint32 {
	if c.Texture != 0 {
		return c.Texture
	}
	for _, f := range c.Faces {
		if f == nil {
			return 0
		}
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for i, f := range c.Faces {
		size := int32(c.Size)
		gl.TexImage2D(uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+i), 0, gl.RGBA8, size, size, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f.Pix))
	}
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	c.Texture = tex
	r.stats.Uploads++
	r.log.Debug("environment uploaded", zap.Int("size", c.Size))
	return tex
}

func uploadSkybox() (vao, vbo uint32) {
	verts := skyboxVertices()
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

// Release frees the GPU buffers of every primitive under n. Textures stay
// cached because other nodes may share the image.
func (r *Renderer) Release(n *scene.Node) {
	if n == nil {
		return
	}
	released := 0
	n.Primitives(func(_ *scene.Node, p *scene.Primitive) {
		if _, ok := r.resident[p]; !ok {
			return
		}
		releasePrimitive(p)
		delete(r.resident, p)
		released++
	})
	if released > 0 {
		r.log.Debug("primitives released", zap.String("node", n.Name), zap.Int("count", released))
	}
}

// ReleaseEnvironment frees the cube map of c so a later Render uploads it
// again.
func (r *Renderer) ReleaseEnvironment(c *scene.CubeFaces) {
	if c == nil || c.Texture == 0 {
		return
	}
	gl.DeleteTextures(1, &c.Texture)
	c.Texture = 0
}

func releasePrimitive(p *scene.Primitive) {
	g := p.GPU
	if g == nil {
		return
	}
	gl.DeleteVertexArrays(1, &g.VAO)
	gl.DeleteBuffers(1, &g.VBO)
	gl.DeleteBuffers(1, &g.EBO)
	p.GPU = nil
}
