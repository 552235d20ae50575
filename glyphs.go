package main

import (
	"fmt"
	"image"
	"image/color"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"
	mgl "github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	glyphVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    attribute vec2 a_texcoord;
    attribute vec4 a_color;
    uniform mat4 u_transform;
    varying vec2 v_texcoord;
    varying vec4 v_color;
    void main(void) {
      gl_Position = u_transform * vec4(a_position, 0.0, 1.0);
      v_texcoord = a_texcoord;
      v_color = a_color;
    }` + "\x00"
	glyphFragmentShader = `
    precision mediump float;
    uniform sampler2D u_tex;
    varying vec2 v_texcoord;
    varying vec4 v_color;
    void main(void) {
      gl_FragColor = vec4(v_color.rgb, v_color.a * texture2D(u_tex, v_texcoord).a);
    }` + "\x00"
)

const (
	atlasCols = 16
	atlasRows = 8
	// solidRune indexes an atlas cell painted fully opaque, used for
	// filled rectangles.
	solidRune = 0
)

const glyphSizeInPoints = 10.0

type GlyphVertex struct {
	position [2]float32
	texcoord [2]float32
	color    [4]float32
}

// GlyphAtlas is a texture holding the printable ASCII range of a
// monospaced face laid out in fixed-size cells.
type GlyphAtlas struct {
	img         *image.Alpha
	cellW       int
	cellH       int
	ascent      int
	tex         *Texture
	program     *Program
	a_position  int32
	a_texcoord  int32
	a_color     int32
	u_transform int32
	u_tex       int32
}

type GlyphDrawList struct {
	ga       *GlyphAtlas
	vertices []GlyphVertex
}

func newMonoFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     96,
		Hinting: font.HintingFull,
	})
}

// renderAtlas rasterizes runes 0..127 of face into an alpha image. Cell
// solidRune is filled completely.
func renderAtlas(face font.Face) (img *image.Alpha, cellW, cellH, ascent int, err error) {
	metrics := face.Metrics()
	ascent = metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	cellH = metrics.Height.Ceil()
	if cellH < ascent+descent {
		cellH = ascent + descent
	}
	adv, ok := face.GlyphAdvance('m')
	if !ok {
		return nil, 0, 0, 0, fmt.Errorf("font face does not provide a glyph for rune 'm'")
	}
	cellW = adv.Ceil()
	img = image.NewAlpha(image.Rect(0, 0, cellW*atlasCols, cellH*atlasRows))
	for i := range atlasCols * atlasRows {
		col := i % atlasCols
		row := i / atlasCols
		if i == solidRune {
			cell := image.Rect(col*cellW, row*cellH, (col+1)*cellW, (row+1)*cellH)
			draw.Draw(img, cell, image.Opaque, image.Point{}, draw.Src)
			continue
		}
		r := rune(i)
		if r < ' ' || r == 127 {
			continue
		}
		dot := fixed.Point26_6{
			X: fixed.I(col * cellW),
			Y: fixed.I(row*cellH + ascent),
		}
		dstRect, mask, maskPt, _, ok := face.Glyph(dot, r)
		if !ok || mask == nil {
			continue
		}
		draw.Draw(img, dstRect, mask, maskPt, draw.Over)
	}
	return img, cellW, cellH, ascent, nil
}

func CreateGlyphAtlas() (*GlyphAtlas, error) {
	face, err := newMonoFace(glyphSizeInPoints)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	defer face.Close()
	img, cellW, cellH, ascent, err := renderAtlas(face)
	if err != nil {
		return nil, err
	}
	program, err := CreateProgram(glyphVertexShader, glyphFragmentShader)
	if err != nil {
		return nil, err
	}
	tex, err := CreateTexture()
	if err != nil {
		program.Close()
		return nil, err
	}
	if err := tex.Upload(img); err != nil {
		tex.Close()
		program.Close()
		return nil, err
	}
	return &GlyphAtlas{
		img:         img,
		cellW:       cellW,
		cellH:       cellH,
		ascent:      ascent,
		tex:         tex,
		program:     program,
		a_position:  program.GetAttribLocation("a_position\x00"),
		a_texcoord:  program.GetAttribLocation("a_texcoord\x00"),
		a_color:     program.GetAttribLocation("a_color\x00"),
		u_transform: program.GetUniformLocation("u_transform\x00"),
		u_tex:       program.GetUniformLocation("u_tex\x00"),
	}, nil
}

// CellSize returns the advance and line height of one character.
func (ga *GlyphAtlas) CellSize() (w, h int) {
	return ga.cellW, ga.cellH
}

func (ga *GlyphAtlas) Ascent() int {
	return ga.ascent
}

// TextWidth is the width of s in pixels; the face is monospaced.
func (ga *GlyphAtlas) TextWidth(s string) int {
	return len(s) * ga.cellW
}

func (ga *GlyphAtlas) CreateDrawList() *GlyphDrawList {
	return &GlyphDrawList{
		ga:       ga,
		vertices: make([]GlyphVertex, 0, 6*1024),
	}
}

func (ga *GlyphAtlas) Close() error {
	if err := ga.tex.Close(); err != nil {
		return err
	}
	return ga.program.Close()
}

func (gdl *GlyphDrawList) Clear() {
	gdl.vertices = gdl.vertices[:0]
}

func (gdl *GlyphDrawList) quad(x0, y0, x1, y1, s0, t0, s1, t1 float32, c [4]float32) {
	gdl.vertices = append(gdl.vertices,
		GlyphVertex{position: [2]float32{x0, y0}, texcoord: [2]float32{s0, t0}, color: c},
		GlyphVertex{position: [2]float32{x0, y1}, texcoord: [2]float32{s0, t1}, color: c},
		GlyphVertex{position: [2]float32{x1, y1}, texcoord: [2]float32{s1, t1}, color: c},
		GlyphVertex{position: [2]float32{x1, y1}, texcoord: [2]float32{s1, t1}, color: c},
		GlyphVertex{position: [2]float32{x1, y0}, texcoord: [2]float32{s1, t0}, color: c},
		GlyphVertex{position: [2]float32{x0, y0}, texcoord: [2]float32{s0, t0}, color: c},
	)
}

func (gdl *GlyphDrawList) cellTexcoords(r rune) (s0, t0, s1, t1 float32) {
	col := int(r) % atlasCols
	row := int(r) / atlasCols
	s0 = float32(col) / atlasCols
	s1 = float32(col+1) / atlasCols
	t0 = float32(row) / atlasRows
	t1 = float32(row+1) / atlasRows
	return
}

func (gdl *GlyphDrawList) DrawRune(x, y int, r rune, c color.NRGBA) {
	if r < ' ' || r >= 127 {
		r = '?'
	}
	ga := gdl.ga
	s0, t0, s1, t1 := gdl.cellTexcoords(r)
	gdl.quad(
		float32(x), float32(y), float32(x+ga.cellW), float32(y+ga.cellH),
		s0, t0, s1, t1, glColor(c))
}

// DrawString draws s with its baseline at y, starting at x. Coordinates
// are window pixels with the origin at the top left.
func (gdl *GlyphDrawList) DrawString(x, baseline int, s string, c color.NRGBA) {
	y := baseline - gdl.ga.ascent
	for _, r := range s {
		gdl.DrawRune(x, y, r, c)
		x += gdl.ga.cellW
	}
}

func (gdl *GlyphDrawList) FillRect(r image.Rectangle, c color.NRGBA) {
	s0, t0, s1, t1 := gdl.cellTexcoords(solidRune)
	// sample the centre of the solid cell only
	sm, tm := (s0+s1)/2, (t0+t1)/2
	gdl.quad(
		float32(r.Min.X), float32(r.Min.Y), float32(r.Max.X), float32(r.Max.Y),
		sm, tm, sm, tm, glColor(c))
}

// Render draws the list onto a window of the given size in pixels.
func (gdl *GlyphDrawList) Render(width, height int) {
	if len(gdl.vertices) == 0 {
		return
	}
	ga := gdl.ga
	ga.program.Use()
	ga.tex.Bind()
	var activeTexture int32
	gl.GetIntegerv(gl.ACTIVE_TEXTURE, &activeTexture)
	gl.Uniform1i(ga.u_tex, activeTexture-gl.TEXTURE0)
	stride := int32(unsafe.Sizeof(GlyphVertex{}))
	gl.EnableVertexAttribArray(uint32(ga.a_position))
	gl.VertexAttribPointer(
		uint32(ga.a_position), 2, gl.FLOAT, false, stride,
		gl.Ptr(&gdl.vertices[0].position[0]))
	gl.EnableVertexAttribArray(uint32(ga.a_texcoord))
	gl.VertexAttribPointer(
		uint32(ga.a_texcoord), 2, gl.FLOAT, false, stride,
		gl.Ptr(&gdl.vertices[0].texcoord[0]))
	gl.EnableVertexAttribArray(uint32(ga.a_color))
	gl.VertexAttribPointer(
		uint32(ga.a_color), 4, gl.FLOAT, false, stride,
		gl.Ptr(&gdl.vertices[0].color[0]))
	transform := mgl.Ortho2D(0, float32(width), float32(height), 0)
	ga.program.SetTransform(ga.u_transform, transform)
	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(gdl.vertices)))
	gl.Disable(gl.BLEND)
	gl.DisableVertexAttribArray(uint32(ga.a_position))
	gl.DisableVertexAttribArray(uint32(ga.a_texcoord))
	gl.DisableVertexAttribArray(uint32(ga.a_color))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}
