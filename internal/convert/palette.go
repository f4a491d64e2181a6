package convert

// Expand returns a paletted kernel for sources of the given index depth
// (1, 2, 4 or 8 bits, packed most significant bits first) writing size-byte
// destination pixels.
func Expand(bits uint, size int) PalettedFunc {
	if bits == 8 {
		return func(dst, src Plane, w, h int, pal []byte) {
			for y := 0; y < h; y++ {
				d, s := dst.Row(y), src.Row(y)
				for x := 0; x < w; x++ {
					i := int(s[x]) * size
					copy(d[x*size:x*size+size], pal[i:i+size])
				}
			}
		}
	}

	return func(dst, src Plane, w, h int, pal []byte) {
		for y := 0; y < h; y++ {
			d, s := dst.Row(y), src.Row(y)
			for x := 0; x < w; x++ {
				i := int(Index(s, bits, x)) * size
				copy(d[x*size:x*size+size], pal[i:i+size])
			}
		}
	}
}

// Index returns the palette index of pixel x in a packed index row.
func Index(row []byte, bits uint, x int) uint8 {
	if bits == 8 {
		return row[x]
	}
	perByte := 8 / int(bits)
	shift := 8 - bits*uint(x%perByte+1)
	return row[x/perByte] >> shift & (byte(1)<<bits - 1)
}
