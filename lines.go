package main

import (
	"image/color"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"
	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/cellux/grapher/internal/graph"
)

const (
	lineVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    attribute vec4 a_color;
    uniform mat4 u_transform;
    varying vec4 v_color;
    void main(void) {
      gl_Position = u_transform * vec4(a_position, 0.0, 1.0);
      v_color = a_color;
    }` + "\x00"
	lineFragmentShader = `
    precision mediump float;
    varying vec4 v_color;
    void main(void) {
      gl_FragColor = v_color;
    }` + "\x00"
)

type LineVertex struct {
	position [2]float32
	color    [4]float32
}

type LineProgram struct {
	program     *Program
	a_position  int32
	a_color     int32
	u_transform int32
}

// LineDrawList collects GL_LINES segments in coordinate space. Vertices
// are stored relative to an origin near the view so that float32 keeps
// enough precision when the view is far from (0, 0).
type LineDrawList struct {
	lp       *LineProgram
	width    float32
	originX  float64
	originY  float64
	vertices []LineVertex
}

func CreateLineProgram() (*LineProgram, error) {
	program, err := CreateProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, err
	}
	return &LineProgram{
		program:     program,
		a_position:  program.GetAttribLocation("a_position\x00"),
		a_color:     program.GetAttribLocation("a_color\x00"),
		u_transform: program.GetUniformLocation("u_transform\x00"),
	}, nil
}

func (lp *LineProgram) CreateDrawList(width float32) *LineDrawList {
	return &LineDrawList{
		lp:       lp,
		width:    width,
		vertices: make([]LineVertex, 0, 4096),
	}
}

func (lp *LineProgram) Close() error {
	return lp.program.Close()
}

func glColor(c color.NRGBA) [4]float32 {
	return [4]float32{
		float32(c.R) / 255.0,
		float32(c.G) / 255.0,
		float32(c.B) / 255.0,
		float32(c.A) / 255.0,
	}
}

// Reset clears the list and moves its origin to (x, y).
func (ldl *LineDrawList) Reset(x, y float64) {
	ldl.vertices = ldl.vertices[:0]
	ldl.originX = x
	ldl.originY = y
}

func (ldl *LineDrawList) vertex(p graph.Point, c [4]float32) LineVertex {
	return LineVertex{
		position: [2]float32{float32(p.X - ldl.originX), float32(p.Y - ldl.originY)},
		color:    c,
	}
}

func (ldl *LineDrawList) DrawLine(from, to graph.Point, c color.NRGBA) {
	col := glColor(c)
	ldl.vertices = append(ldl.vertices, ldl.vertex(from, col), ldl.vertex(to, col))
}

func (ldl *LineDrawList) DrawPolyline(pl graph.Polyline, c color.NRGBA) {
	col := glColor(c)
	for i := 1; i < len(pl); i++ {
		ldl.vertices = append(ldl.vertices, ldl.vertex(pl[i-1], col), ldl.vertex(pl[i], col))
	}
}

// Render draws the list with an orthographic projection of the given
// coordinate rectangle onto the viewport.
func (ldl *LineDrawList) Render(xMin, xMax, yMin, yMax float64) {
	if len(ldl.vertices) == 0 {
		return
	}
	lp := ldl.lp
	lp.program.Use()
	transform := mgl.Ortho(
		float32(xMin-ldl.originX), float32(xMax-ldl.originX),
		float32(yMin-ldl.originY), float32(yMax-ldl.originY),
		-1, 1)
	lp.program.SetTransform(lp.u_transform, transform)
	stride := int32(unsafe.Sizeof(LineVertex{}))
	gl.EnableVertexAttribArray(uint32(lp.a_position))
	gl.VertexAttribPointer(
		uint32(lp.a_position), 2, gl.FLOAT, false, stride,
		gl.Ptr(&ldl.vertices[0].position[0]))
	gl.EnableVertexAttribArray(uint32(lp.a_color))
	gl.VertexAttribPointer(
		uint32(lp.a_color), 4, gl.FLOAT, false, stride,
		gl.Ptr(&ldl.vertices[0].color[0]))
	gl.LineWidth(ldl.width)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DrawArrays(gl.LINES, 0, int32(len(ldl.vertices)))
	gl.Disable(gl.BLEND)
	gl.DisableVertexAttribArray(uint32(lp.a_position))
	gl.DisableVertexAttribArray(uint32(lp.a_color))
}
