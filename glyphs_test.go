package main

import "testing"

func TestRenderAtlas(t *testing.T) {
	face, err := newMonoFace(glyphSizeInPoints)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()
	img, cellW, cellH, ascent, err := renderAtlas(face)
	if err != nil {
		t.Fatal(err)
	}
	if cellW <= 0 || cellH <= 0 || ascent <= 0 || ascent > cellH {
		t.Fatalf("cell %dx%d, ascent %d", cellW, cellH, ascent)
	}
	if b := img.Bounds(); b.Dx() != cellW*atlasCols || b.Dy() != cellH*atlasRows {
		t.Fatalf("atlas bounds %v", b)
	}

	cellCoverage := func(r rune) int {
		x0 := int(r) % atlasCols * cellW
		y0 := int(r) / atlasCols * cellH
		n := 0
		for y := y0; y < y0+cellH; y++ {
			for x := x0; x < x0+cellW; x++ {
				if img.AlphaAt(x, y).A > 0 {
					n++
				}
			}
		}
		return n
	}
	if got := cellCoverage(solidRune); got != cellW*cellH {
		t.Errorf("solid cell covers %d of %d pixels", got, cellW*cellH)
	}
	if cellCoverage(' ') != 0 {
		t.Error("space is not blank")
	}
	for _, r := range "0x+-." {
		if cellCoverage(r) == 0 {
			t.Errorf("glyph %q is blank", r)
		}
	}
}
