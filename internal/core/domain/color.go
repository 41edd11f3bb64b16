package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalidColorFormat = errors.New(
	"Formato colore non valido. Usa HEX #RRGGBB",
)

type Palette struct {
	Complementary string   `json:"complementary"`
	Suggestions   []string `json:"suggestions"`
}

type rgb struct{ r, g, b uint8 }

func parseHex(s string) (rgb, error) {
	if len(s) != 7 || s[0] != '#' {
		return rgb{}, ErrInvalidColorFormat
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return rgb{}, ErrInvalidColorFormat
	}
	return rgb{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

func hex(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// Complementary inverts every channel of the #RRGGBB color and suggests
// the complement with its G/B and R/G channels swapped.
func Complementary(color string) (Palette, error) {
	c, err := parseHex(color)
	if err != nil {
		return Palette{}, err
	}
	r, g, b := 255-c.r, 255-c.g, 255-c.b
	comp := hex(r, g, b)
	return Palette{
		Complementary: comp,
		Suggestions:   []string{comp, hex(r, b, g), hex(g, r, b)},
	}, nil
}
