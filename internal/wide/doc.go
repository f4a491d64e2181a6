// Package wide provides fixed-width lane types for batch pixel conversion.
//
// The types here (I32x16, U16x16) are fixed-size arrays processed with
// simple loops. There is no assembly; the loops are ordinary Go with
// bounds checks hoisted out. Kernels built on them convert 16 pixels per
// step and are the "wide" tier of the blitter table.
//
// # Exactness
//
// Every kernel in this package produces the same bytes as the scalar
// reference kernels in internal/convert. The integer math is identical;
// only the evaluation order differs.
//
// # Batch layout
//
// Batch holds 16 pixels in Structure-of-Arrays form:
//
//	A: [A0, A1, ..., A15]   (R or Y)
//	B: [B0, B1, ..., B15]   (G or Cb)
//	C: [C0, C1, ..., C15]   (B or Cr)
//
// # Usage Example
//
//	var bt wide.Batch
//	bt.LoadXRGB8888(src)
//	bt.RGBToYCbCr()
//	bt.StoreXVYU(dst)
package wide
