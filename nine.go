package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

// Nine draws a nine-slice of a square source image: the corners keep their
// shape, the edges and the center stretch to the target size.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B, Scale      float64
	positions           [4]int
	x, y, width, height int
	targetPositions     [2][4]float64
}

// NewNine slices a size x size image with corner-pixel corners.
func NewNine(img *ebiten.Image, size, corner int, scale float64) *Nine {
	return &Nine{
		images:    img,
		alpha:     1,
		R:         1, G: 1, B: 1,
		Scale:     scale,
		positions: [4]int{0, corner, size - corner, size},
	}
}

func (n *Nine) SetColor(c color.RGBA, alpha float64) {
	n.R = float64(c.R) / 0xff
	n.G = float64(c.G) / 0xff
	n.B = float64(c.B) / 0xff
	n.alpha = alpha
}

func (n *Nine) SetBounds(r image.Rectangle) {
	n.x, n.y = r.Min.X, r.Min.Y
	n.SetSize(r.Dx(), r.Dy())
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
	corner := n.Scale * float64(n.positions[1]-n.positions[0])
	far := n.Scale * float64(n.positions[3]-n.positions[2])
	n.targetPositions[0] = [4]float64{
		float64(n.x),
		float64(n.x) + corner,
		float64(n.x+n.width) - far,
		float64(n.x + n.width),
	}
	n.targetPositions[1] = [4]float64{
		float64(n.y),
		float64(n.y) + corner,
		float64(n.y+n.height) - far,
		float64(n.y + n.height),
	}
}

func (n *Nine) Draw(screen *ebiten.Image) {
	tx, ty := n.targetPositions[0], n.targetPositions[1]
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			src := image.Rect(n.positions[col], n.positions[row], n.positions[col+1], n.positions[row+1])
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(
				(tx[col+1]-tx[col])/float64(src.Dx()),
				(ty[row+1]-ty[row])/float64(src.Dy()))
			op.GeoM.Translate(tx[col], ty[row])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			screen.DrawImage(n.images.SubImage(src).(*ebiten.Image), op)
		}
	}
}
