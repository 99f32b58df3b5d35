package awtrix

import (
	"context"
	"fmt"
)

const (
	// MatrixWidth and MatrixHeight are the pixel dimensions of the display
	MatrixWidth  = 32
	MatrixHeight = 8
)

// Screen is a snapshot of the matrix, row-major from the top left pixel
type Screen struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Pixels []Color `json:"pixels"`
}

// Pixel returns the color at column x, row y
func (s Screen) Pixel(x, y int) Color {
	return s.Pixels[y*s.Width+x]
}

// ScreenFromRaw converts the firmware's packed 0xRRGGBB values
func ScreenFromRaw(raw []uint32) (Screen, error) {
	if len(raw) != MatrixWidth*MatrixHeight {
		return Screen{}, NewSerializationError(
			fmt.Sprintf("screen has %d pixels, expected %d", len(raw), MatrixWidth*MatrixHeight), nil)
	}
	pixels := make([]Color, len(raw))
	for i, v := range raw {
		pixels[i] = RGB(uint8(v>>16), uint8(v>>8), uint8(v))
	}
	return Screen{Width: MatrixWidth, Height: MatrixHeight, Pixels: pixels}, nil
}

// ScreenRaw fetches the matrix contents as packed 0xRRGGBB values
func (c *Client) ScreenRaw(ctx context.Context) ([]uint32, error) {
	return getJSON[[]uint32](ctx, c, "/api/screen")
}

// Screen fetches the current matrix contents
func (c *Client) Screen(ctx context.Context) (Screen, error) {
	raw, err := c.ScreenRaw(ctx)
	if err != nil {
		return Screen{}, err
	}
	return ScreenFromRaw(raw)
}
