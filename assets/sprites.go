package assets

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Bird draws the mascot sprite used by the sprite demo: a round gray body
// with a wing, an eye, and a beak.
func Bird() *ebiten.Image {
	const size = 256
	img := ebiten.NewImage(size, size)

	body := color.RGBA{120, 120, 128, 255}
	wing := color.RGBA{90, 90, 100, 255}
	beak := color.RGBA{230, 180, 60, 255}

	vector.DrawFilledCircle(img, 128, 140, 90, body, true)
	vector.DrawFilledCircle(img, 150, 80, 50, body, true)

	var w vector.Path
	w.MoveTo(70, 140)
	w.QuadTo(110, 200, 170, 190)
	w.QuadTo(120, 170, 100, 130)
	w.Close()
	FillPath(img, &w, wing)

	var b vector.Path
	b.MoveTo(196, 70)
	b.LineTo(236, 82)
	b.LineTo(196, 96)
	b.Close()
	FillPath(img, &b, beak)

	vector.DrawFilledCircle(img, 168, 70, 8, color.RGBA{20, 20, 24, 255}, true)

	return img
}

// Ship draws the player vessel for the rotation demo, pointing up.
func Ship() *ebiten.Image {
	const w, h = 36, 48
	img := ebiten.NewImage(w, h)

	hull := color.RGBA{90, 160, 220, 255}
	cockpit := color.RGBA{230, 240, 250, 255}

	var p vector.Path
	p.MoveTo(w/2, 2)
	p.LineTo(w-3, h-6)
	p.LineTo(w/2, h-14)
	p.LineTo(3, h-6)
	p.Close()
	FillPath(img, &p, hull)

	vector.DrawFilledCircle(img, w/2, h/2-4, 5, cockpit, true)

	return img
}

// EnemyA draws the snap-to-player enemy: a red diamond.
func EnemyA() *ebiten.Image {
	const s = 40
	img := ebiten.NewImage(s, s)

	var p vector.Path
	p.MoveTo(s/2, 1)
	p.LineTo(s-1, s/2)
	p.LineTo(s/2, s-1)
	p.LineTo(1, s/2)
	p.Close()
	FillPath(img, &p, color.RGBA{220, 80, 80, 255})

	vector.DrawFilledCircle(img, s/2, s/2, 6, color.RGBA{120, 30, 30, 255}, true)

	return img
}

// EnemyB draws the rotate-to-player enemy: an orange hexagon.
func EnemyB() *ebiten.Image {
	const s = 40
	img := ebiten.NewImage(s, s)

	var p vector.Path
	const r = s/2 - 1
	for i := 0; i < 6; i++ {
		angle := float64(i)*math.Pi/3 - math.Pi/2
		x := float32(s/2 + r*math.Cos(angle))
		y := float32(s/2 + r*math.Sin(angle))
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
	FillPath(img, &p, color.RGBA{230, 150, 60, 255})

	vector.DrawFilledCircle(img, s/2, s/2, 6, color.RGBA{120, 70, 20, 255}, true)

	return img
}
