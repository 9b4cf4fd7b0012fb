package main

import (
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type Fonts struct {
	Title  font.Face
	Normal font.Face
	Small  font.Face
}

func LoadFonts() (Fonts, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return Fonts{}, err
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return Fonts{}, err
	}
	const dpi = 72
	face := func(tt *truetype.Font, size float64) font.Face {
		return truetype.NewFace(tt, &truetype.Options{
			Size:    size,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
	}
	return Fonts{
		Title:  face(bold, 48),
		Normal: face(regular, 24),
		Small:  face(regular, 16),
	}, nil
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
