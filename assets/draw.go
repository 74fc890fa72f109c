// Package assets builds the demo textures procedurally with ebiten/vector,
// replacing image files: every sprite is deterministic and generated at
// startup.
package assets

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// FillPath rasterizes a filled path onto dst with the non-zero fill rule, so
// paths with holes (reversed inner contours) render correctly.
func FillPath(dst *ebiten.Image, path *vector.Path, clr color.Color) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	applyColor(vs, clr)

	op := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.FillRuleNonZero,
	}
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}

// StrokePath rasterizes a path outline onto dst.
func StrokePath(dst *ebiten.Image, path *vector.Path, clr color.Color, width float32) {
	opts := &vector.StrokeOptions{Width: width}
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, opts)
	applyColor(vs, clr)

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}

func applyColor(vs []ebiten.Vertex, clr color.Color) {
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
}
