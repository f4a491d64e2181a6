package wide

// stepFunc converts exactly one batch of Lanes pixels.
type stepFunc func(dst, src []byte)

// run drives step over a row of w pixels. The final partial batch is staged
// through zero-padded scratch so step always sees a full batch.
func run(dst, src []byte, w, dstSize, srcSize int, step stepFunc) {
	full := w &^ (Lanes - 1)
	for x := 0; x < full; x += Lanes {
		step(dst[x*dstSize:], src[x*srcSize:])
	}
	if n := w - full; n > 0 {
		var s, d [Lanes * 4]byte
		copy(s[:], src[full*srcSize:full*srcSize+n*srcSize])
		step(d[:], s[:])
		copy(dst[full*dstSize:full*dstSize+n*dstSize], d[:n*dstSize])
	}
}

// XRGB8888ToXVYU converts a row of w pixels.
func XRGB8888ToXVYU(dst, src []byte, w int) {
	run(dst, src, w, 4, 4, func(d, s []byte) {
		var bt Batch
		bt.LoadXRGB8888(s)
		bt.RGBToYCbCr()
		bt.StoreXVYU(d)
	})
}

// XVYUToXRGB8888 converts a row of w pixels.
func XVYUToXRGB8888(dst, src []byte, w int) {
	run(dst, src, w, 4, 4, func(d, s []byte) {
		var bt Batch
		bt.LoadXVYU(s)
		bt.YCbCrToRGB()
		bt.StoreXRGB8888(d)
	})
}

// XRGB8888ToRGB565 converts a row of w pixels.
func XRGB8888ToRGB565(dst, src []byte, w int) {
	run(dst, src, w, 2, 4, func(d, s []byte) {
		var bt Batch
		bt.LoadXRGB8888(s)
		bt.StoreRGB565(d)
	})
}

// RGB565ToXRGB8888 converts a row of w pixels.
func RGB565ToXRGB8888(dst, src []byte, w int) {
	run(dst, src, w, 4, 2, func(d, s []byte) {
		var bt Batch
		bt.LoadRGB565(s)
		bt.StoreXRGB8888(d)
	})
}

// XRGB8888ToXRGB1555 converts a row of w pixels.
func XRGB8888ToXRGB1555(dst, src []byte, w int) {
	run(dst, src, w, 2, 4, func(d, s []byte) {
		var bt Batch
		bt.LoadXRGB8888(s)
		bt.StoreXRGB1555(d)
	})
}

// XRGB1555ToXRGB8888 converts a row of w pixels.
func XRGB1555ToXRGB8888(dst, src []byte, w int) {
	run(dst, src, w, 4, 2, func(d, s []byte) {
		var bt Batch
		bt.LoadXRGB1555(s)
		bt.StoreXRGB8888(d)
	})
}

// RGB888ToXRGB8888 converts a row of w pixels.
func RGB888ToXRGB8888(dst, src []byte, w int) {
	run(dst, src, w, 4, 3, func(d, s []byte) {
		var bt Batch
		bt.LoadRGB888(s)
		bt.StoreXRGB8888(d)
	})
}

// XRGB8888ToRGB888 converts a row of w pixels.
func XRGB8888ToRGB888(dst, src []byte, w int) {
	run(dst, src, w, 3, 4, func(d, s []byte) {
		var bt Batch
		bt.LoadXRGB8888(s)
		bt.StoreRGB888(d)
	})
}
