package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

const ninePixels = 24

// newRoundImage draws the disc a Nine is cut from.
func newRoundImage() (*ebiten.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, ninePixels, ninePixels))
	r := float64(ninePixels) / 2
	for y := 0; y < ninePixels; y++ {
		for x := 0; x < ninePixels; x++ {
			dx, dy := float64(x)+.5-r, float64(y)+.5-r
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, color.White)
			}
		}
	}
	return ebiten.NewImageFromImage(img, ebiten.FilterDefault)
}

// Nine stretches a nine-patch image over a rectangle.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B, Scale      float64
	positions           [4][2]int
	x, y, width, height int
	scaleCenterWidth    float64
	scaleCenterHeight   float64
	targetPositions     [4][2]float64
}

func NewNine(img *ebiten.Image, r, g, b float64) *Nine {
	return &Nine{
		images: img,
		alpha:  1,
		R:      r, G: g, B: b, Scale: 1,
		positions: [4][2]int{{0, 0}, {11, 11}, {13, 13}, {ninePixels, ninePixels}},
	}
}

func (n *Nine) SetRect(rect image.Rectangle) {
	n.x = rect.Min.X
	n.y = rect.Min.Y
	n.SetSize(rect.Dx(), rect.Dy())
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
	n.targetPositions[0][0] = float64(n.x)
	n.targetPositions[0][1] = float64(n.y)

	n.targetPositions[1][0] = float64(n.x) + n.Scale*float64(n.positions[1][0])
	n.targetPositions[1][1] = float64(n.y) + n.Scale*float64(n.positions[1][1])

	n.targetPositions[2][0] = float64(n.x+n.width) - n.Scale*float64(n.positions[3][0]-n.positions[2][0])
	n.targetPositions[2][1] = float64(n.y+n.height) - n.Scale*float64(n.positions[3][1]-n.positions[2][1])

	innerWidth := n.targetPositions[2][0] - n.targetPositions[1][0]
	innerHigh := n.targetPositions[2][1] - n.targetPositions[1][1]

	n.scaleCenterWidth = innerWidth / float64(n.positions[2][0]-n.positions[1][0])
	n.scaleCenterHeight = innerHigh / float64(n.positions[2][1]-n.positions[1][1])
}

func (n *Nine) Draw(screen *ebiten.Image) {
	// too small for the corners
	if n.scaleCenterWidth < 0 || n.scaleCenterHeight < 0 {
		return
	}
	scales := [3][2]float64{
		{n.Scale, n.Scale},
		{n.scaleCenterWidth, n.scaleCenterHeight},
		{n.Scale, n.Scale},
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scales[col][0], scales[row][1])
			op.GeoM.Translate(n.targetPositions[col][0], n.targetPositions[row][1])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			src := image.Rect(
				n.positions[col][0], n.positions[row][1],
				n.positions[col+1][0], n.positions[row+1][1])
			screen.DrawImage(n.images.SubImage(src).(*ebiten.Image), op)
		}
	}
}
