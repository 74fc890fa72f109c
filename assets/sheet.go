package assets

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// RunFrameSize is the width and height of one run-cycle frame.
	RunFrameSize = 24
	// RunFrameCount is the number of frames in the run-cycle sheet. Frame 0
	// is a standing pose; the animation cycles frames 1 through 6.
	RunFrameCount = 7
)

// RunFrameRect returns the source rectangle of frame i in the sheet.
func RunFrameRect(i int) image.Rectangle {
	x := i * RunFrameSize
	return image.Rect(x, 0, x+RunFrameSize, RunFrameSize)
}

// RunSheet draws a 7-frame 24x24 run-cycle sprite sheet: a small runner
// whose legs and arms swing through the cycle.
func RunSheet() *ebiten.Image {
	img := ebiten.NewImage(RunFrameSize*RunFrameCount, RunFrameSize)

	skin := color.RGBA{224, 172, 130, 255}
	shirt := color.RGBA{80, 130, 190, 255}
	pants := color.RGBA{60, 60, 80, 255}

	for frame := 0; frame < RunFrameCount; frame++ {
		ox := float32(frame * RunFrameSize)

		// Legs swing through the cycle; frame 0 stands still
		phase := 0.0
		if frame > 0 {
			phase = 2 * math.Pi * float64(frame-1) / 6
		}
		swing := float32(5 * math.Sin(phase))
		bob := float32(math.Abs(math.Sin(phase)))

		// Head
		vector.DrawFilledCircle(img, ox+12, 6-bob, 4, skin, false)
		// Torso
		vector.DrawFilledRect(img, ox+9, 10-bob, 6, 7, shirt, false)
		// Arms
		vector.DrawFilledRect(img, ox+9-swing/2, 11-bob, 2, 5, skin, false)
		vector.DrawFilledRect(img, ox+13+swing/2, 11-bob, 2, 5, skin, false)
		// Legs
		vector.DrawFilledRect(img, ox+9+swing, 17-bob, 3, 7, pants, false)
		vector.DrawFilledRect(img, ox+12-swing, 17-bob, 3, 7, pants, false)
	}

	return img
}
