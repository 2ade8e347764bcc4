// Package glview draws presented frames in an OpenGL context.
package glview

import (
	"image"
	"strings"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"
)

// Surface draws frames as a single textured quad covering the viewport.
// All methods must be called from the thread that owns the GL context.
type Surface struct {
	program uint32
	vao     uint32
	vbo     uint32
	texture uint32
	width   int32
	height  int32
	ready   bool // A frame has been uploaded.
}

// New creates the GL resources for a surface. The GL context must
// be current and gl.Init must have been called.
func New() (*Surface, error) {
	program, err := linkProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, err
	}

	s := &Surface{program: program}
	gl.UseProgram(s.program)

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)

	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(screenQuad)*4, gl.Ptr(screenQuad), gl.STATIC_DRAW)

	pos := uint32(gl.GetAttribLocation(s.program, cstr("vertPos")))
	gl.EnableVertexAttribArray(pos)
	gl.VertexAttribPointer(pos, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))

	uv := uint32(gl.GetAttribLocation(s.program, cstr("vertTexCoord")))
	gl.EnableVertexAttribArray(uv)
	gl.VertexAttribPointer(uv, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))

	gl.GenTextures(1, &s.texture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	return s, nil
}

// Release deletes the GL resources.
func (s *Surface) Release() {
	gl.DeleteTextures(1, &s.texture)
	gl.DeleteBuffers(1, &s.vbo)
	gl.DeleteVertexArrays(1, &s.vao)
	gl.DeleteProgram(s.program)
	s.ready = false
}

// Upload replaces the texture contents with img.
func (s *Surface) Upload(img *image.RGBA) error {
	w, h := int32(img.Rect.Dx()), int32(img.Rect.Dy())
	if w == 0 || h == 0 {
		return errors.New("empty frame")
	}

	if img.Stride != int(w)*4 {
		return errors.Errorf("unsupported frame stride: %d", img.Stride)
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.texture)

	if w != s.width || h != s.height {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		s.width, s.height = w, h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}

	s.ready = true
	return nil
}

// Draw renders the most recent frame into a viewport of the given size.
func (s *Surface) Draw(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if !s.ready {
		return
	}

	gl.UseProgram(s.program)
	gl.BindVertexArray(s.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.texture)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// cstr returns v as a C string.
func cstr(v string) *uint8 {
	return gl.Str(v + "\x00")
}

func linkProgram(vertex, fragment string) (uint32, error) {
	vs, err := compileShader(vertex, gl.VERTEX_SHADER)
	if err != nil {
		return 0, errors.Wrap(err, "failed to compile vertex shader")
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, errors.Wrap(err, "failed to compile fragment shader")
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)

		msg := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(program, n, nil, gl.Str(msg))
		gl.DeleteProgram(program)
		return 0, errors.Errorf("failed to link program: %s", strings.TrimRight(msg, "\x00"))
	}

	return program, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)

	src, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, src, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)

		msg := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(shader, n, nil, gl.Str(msg))
		gl.DeleteShader(shader)
		return 0, errors.New(strings.TrimRight(msg, "\x00"))
	}

	return shader, nil
}

// screenQuad holds two triangles covering clip space. Each vertex is
// X, Y, U, V. Texture row 0 maps to the top of the screen.
var screenQuad = []float32{
	-1, -1, 0, 1,
	1, -1, 1, 1,
	-1, 1, 0, 0,

	1, -1, 1, 1,
	1, 1, 1, 0,
	-1, 1, 0, 0,
}

const vertexShader = `
#version 420

in  vec2 vertPos;
in  vec2 vertTexCoord;
out vec2 fragTexCoord;

void main() {
    fragTexCoord = vertTexCoord;
    gl_Position  = vec4(vertPos, 0, 1);
}
`

const fragmentShader = `
#version 420

layout (binding = 0) uniform sampler2D frame;

in  vec2 fragTexCoord;
out vec4 outputColor;

void main() {
    outputColor = vec4(texture(frame, fragTexCoord).rgb, 1);
}
`
