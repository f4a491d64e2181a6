package convert

// Subsampling gives the chroma decimation of a planar layout as log2 shifts.
type Subsampling struct {
	W, H uint
}

// chromaExtent returns the chroma plane size for a w×h luma rectangle.
func (s Subsampling) chromaExtent(w, h int) (int, int) {
	return ceilShift(w, s.W), ceilShift(h, s.H)
}

func ceilShift(v int, bits uint) int {
	return (v + 1<<bits - 1) >> bits
}

// FromPlanar returns a kernel that converts a planar source with the given
// subsampling into a packed destination. Chroma is replicated across each
// decimation block.
func FromPlanar(sub Subsampling, dst YUVLayout) PlanarFunc {
	dl := dst.Layout()
	return func(d, s *Frame) {
		var buf [chunkPixels * 3]byte
		w, h := d.W, d.H
		for y := 0; y < h; y++ {
			yRow := s.Planes[0].Row(y)
			cbRow := s.Planes[1].Row(y >> sub.H)
			crRow := s.Planes[2].Row(y >> sub.H)
			out := d.Planes[0].Row(y)
			for x0 := 0; x0 < w; x0 += chunkPixels {
				n := min(chunkPixels, w-x0)
				for i := 0; i < n; i++ {
					x := x0 + i
					c := x >> sub.W
					buf[i*3], buf[i*3+1], buf[i*3+2] = yRow[x], cbRow[c], crRow[c]
				}
				dst.WriteYUV(out[dl.Bytes(x0):], buf[:], n)
			}
		}
	}
}

// ToPlanar returns a kernel that converts a packed source into a planar
// destination with the given subsampling. Each chroma sample is the rounded
// box average of the pixels in its decimation block, clipped to the frame.
func ToPlanar(src YUVLayout, sub Subsampling) PlanarFunc {
	sl := src.Layout()
	rowsPerGroup := 1 << sub.H
	return func(d, s *Frame) {
		// Up to 4 rows per chroma row (4:1:0).
		var buf [4][chunkPixels * 3]byte
		w, h := d.W, d.H
		_, ch := sub.chromaExtent(w, h)
		for cy := 0; cy < ch; cy++ {
			y0 := cy << sub.H
			rows := min(rowsPerGroup, h-y0)
			cbRow := d.Planes[1].Row(cy)
			crRow := d.Planes[2].Row(cy)
			for x0 := 0; x0 < w; x0 += chunkPixels {
				n := min(chunkPixels, w-x0)
				for r := 0; r < rows; r++ {
					src.ReadYUV(buf[r][:], s.Planes[0].Row(y0 + r)[sl.Bytes(x0):], n)
					yOut := d.Planes[0].Row(y0 + r)[x0:]
					for i := 0; i < n; i++ {
						yOut[i] = buf[r][i*3]
					}
				}
				cx0 := x0 >> sub.W
				cx1 := ceilShift(x0+n, sub.W)
				for cx := cx0; cx < cx1; cx++ {
					i0 := cx<<sub.W - x0
					i1 := min(n, (cx+1)<<sub.W-x0)
					var su, sv, cnt int
					for r := 0; r < rows; r++ {
						for i := i0; i < i1; i++ {
							su += int(buf[r][i*3+1])
							sv += int(buf[r][i*3+2])
							cnt++
						}
					}
					//nolint:gosec // G115: averages of bytes fit in a byte
					cbRow[cx] = uint8((su + cnt/2) / cnt)
					//nolint:gosec // G115: see above
					crRow[cx] = uint8((sv + cnt/2) / cnt)
				}
			}
		}
	}
}

// Resample returns a kernel between two planar layouts. Luma is copied;
// each destination chroma sample averages the source chroma samples whose
// decimation blocks overlap its own, per axis.
func Resample(dstSub, srcSub Subsampling) PlanarFunc {
	return func(d, s *Frame) {
		w, h := d.W, d.H
		CopyRect(d.Planes[0], s.Planes[0], w, h)

		dcw, dch := dstSub.chromaExtent(w, h)
		scw, sch := srcSub.chromaExtent(w, h)
		for p := 1; p <= 2; p++ {
			dp, sp := d.Planes[p], s.Planes[p]
			for cy := 0; cy < dch; cy++ {
				sy0, sy1 := span(cy, dstSub.H, srcSub.H, sch)
				out := dp.Row(cy)
				for cx := 0; cx < dcw; cx++ {
					sx0, sx1 := span(cx, dstSub.W, srcSub.W, scw)
					sum, cnt := 0, 0
					for sy := sy0; sy < sy1; sy++ {
						in := sp.Row(sy)
						for sx := sx0; sx < sx1; sx++ {
							sum += int(in[sx])
							cnt++
						}
					}
					//nolint:gosec // G115: average of bytes fits in a byte
					out[cx] = uint8((sum + cnt/2) / cnt)
				}
			}
		}
	}
}

// span maps destination chroma index c to the half-open range of source
// chroma indices covering the same luma pixels, clipped to n.
func span(c int, dstBits, srcBits uint, n int) (int, int) {
	lo := (c << dstBits) >> srcBits
	hi := ((c + 1) << dstBits) >> srcBits
	if hi <= lo {
		hi = lo + 1
	}
	if hi > n {
		hi = n
	}
	if lo >= n {
		lo = n - 1
	}
	return lo, hi
}
