package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Values past the end of the palette use its last colour. When the palette
// is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// scaleFor returns the largest integer scale at which a w x h grid fits in
// maxW x maxH, never less than 1.
func scaleFor(w, h, maxW, maxH int) int {
	if w <= 0 || h <= 0 {
		return 1
	}
	s := min(maxW/w, maxH/h)
	if s < 1 {
		return 1
	}
	return s
}
