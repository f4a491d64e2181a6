package wide

import "encoding/binary"

// Lanes is the number of pixels processed per batch.
const Lanes = 16

// Batch holds 16 pixels in Structure-of-Arrays form. A, B and C carry
// R, G, B or Y, Cb, Cr depending on the last load or transform.
type Batch struct {
	A, B, C I32x16
}

// LoadXRGB8888 loads 16 pixels stored as B, G, R, X bytes.
// src must have at least 64 bytes.
func (bt *Batch) LoadXRGB8888(src []byte) {
	_ = src[63]
	for i := 0; i < Lanes; i++ {
		bt.A[i] = int32(src[i*4+2])
		bt.B[i] = int32(src[i*4+1])
		bt.C[i] = int32(src[i*4+0])
	}
}

// StoreXRGB8888 stores 16 pixels as B, G, R, 0xFF bytes.
// dst must have at least 64 bytes.
func (bt *Batch) StoreXRGB8888(dst []byte) {
	_ = dst[63]
	for i := 0; i < Lanes; i++ {
		// Intentional truncation - values are clamped to [0, 255]
		dst[i*4+0] = uint8(bt.C[i]) // #nosec G115
		dst[i*4+1] = uint8(bt.B[i]) // #nosec G115
		dst[i*4+2] = uint8(bt.A[i]) // #nosec G115
		dst[i*4+3] = 0xff
	}
}

// LoadRGB888 loads 16 pixels stored as B, G, R bytes.
// src must have at least 48 bytes.
func (bt *Batch) LoadRGB888(src []byte) {
	_ = src[47]
	for i := 0; i < Lanes; i++ {
		bt.A[i] = int32(src[i*3+2])
		bt.B[i] = int32(src[i*3+1])
		bt.C[i] = int32(src[i*3+0])
	}
}

// StoreRGB888 stores 16 pixels as B, G, R bytes.
// dst must have at least 48 bytes.
func (bt *Batch) StoreRGB888(dst []byte) {
	_ = dst[47]
	for i := 0; i < Lanes; i++ {
		dst[i*3+0] = uint8(bt.C[i]) // #nosec G115
		dst[i*3+1] = uint8(bt.B[i]) // #nosec G115
		dst[i*3+2] = uint8(bt.A[i]) // #nosec G115
	}
}

// LoadXVYU loads 16 pixels stored as Cb, Y, Cr, X bytes into Y, Cb, Cr.
// src must have at least 64 bytes.
func (bt *Batch) LoadXVYU(src []byte) {
	_ = src[63]
	for i := 0; i < Lanes; i++ {
		bt.A[i] = int32(src[i*4+1])
		bt.B[i] = int32(src[i*4+0])
		bt.C[i] = int32(src[i*4+2])
	}
}

// StoreXVYU stores Y, Cb, Cr as Cb, Y, Cr, 0xFF bytes.
// dst must have at least 64 bytes.
func (bt *Batch) StoreXVYU(dst []byte) {
	_ = dst[63]
	for i := 0; i < Lanes; i++ {
		dst[i*4+0] = uint8(bt.B[i]) // #nosec G115
		dst[i*4+1] = uint8(bt.A[i]) // #nosec G115
		dst[i*4+2] = uint8(bt.C[i]) // #nosec G115
		dst[i*4+3] = 0xff
	}
}

// load16 reads 16 little-endian 16-bit pixels.
func load16(src []byte) U16x16 {
	_ = src[31]
	var v U16x16
	for i := range v {
		v[i] = binary.LittleEndian.Uint16(src[i*2:])
	}
	return v
}

// store16 writes 16 little-endian 16-bit pixels.
func store16(dst []byte, v U16x16) {
	_ = dst[31]
	for i := range v {
		binary.LittleEndian.PutUint16(dst[i*2:], v[i])
	}
}

func (bt *Batch) setFromU16(r, g, b U16x16) {
	for i := 0; i < Lanes; i++ {
		bt.A[i] = int32(r[i])
		bt.B[i] = int32(g[i])
		bt.C[i] = int32(b[i])
	}
}

func (bt *Batch) toU16(shiftR, shiftG, shiftB uint) (r, g, b U16x16) {
	for i := 0; i < Lanes; i++ {
		// Intentional truncation - channels are in [0, 255]
		r[i] = uint16(bt.A[i]) >> shiftR // #nosec G115
		g[i] = uint16(bt.B[i]) >> shiftG // #nosec G115
		b[i] = uint16(bt.C[i]) >> shiftB // #nosec G115
	}
	return r, g, b
}

// LoadRGB565 loads 16 little-endian 5:6:5 pixels, widening to 8 bits.
func (bt *Batch) LoadRGB565(src []byte) {
	v := load16(src)
	m5, m6 := SplatU16(0x1f), SplatU16(0x3f)
	bt.setFromU16(
		v.Shr(11).And(m5).Replicate(5),
		v.Shr(5).And(m6).Replicate(6),
		v.And(m5).Replicate(5),
	)
}

// StoreRGB565 stores 16 pixels as little-endian 5:6:5.
func (bt *Batch) StoreRGB565(dst []byte) {
	r, g, b := bt.toU16(3, 2, 3)
	store16(dst, r.Shl(11).Or(g.Shl(5)).Or(b))
}

// LoadXRGB1555 loads 16 little-endian X:5:5:5 pixels, widening to 8 bits.
func (bt *Batch) LoadXRGB1555(src []byte) {
	v := load16(src)
	m5 := SplatU16(0x1f)
	bt.setFromU16(
		v.Shr(10).And(m5).Replicate(5),
		v.Shr(5).And(m5).Replicate(5),
		v.And(m5).Replicate(5),
	)
}

// StoreXRGB1555 stores 16 pixels as little-endian X:5:5:5 with X set.
func (bt *Batch) StoreXRGB1555(dst []byte) {
	r, g, b := bt.toU16(3, 3, 3)
	store16(dst, r.Shl(10).Or(g.Shl(5)).Or(b).Or(SplatU16(0x8000)))
}

// RGBToYCbCr converts A, B, C from RGB to studio-range Y, Cb, Cr.
func (bt *Batch) RGBToYCbCr() {
	r, g, b := bt.A, bt.B, bt.C
	bt.A = Dot3(r, g, b, 66, 129, 25).AddConst(128).Sar(8).AddConst(16)
	bt.B = Dot3(r, g, b, -38, -74, 112).AddConst(128).Sar(8).AddConst(128)
	bt.C = Dot3(r, g, b, 112, -94, -18).AddConst(128).Sar(8).AddConst(128)
}

// YCbCrToRGB converts A, B, C from studio-range Y, Cb, Cr to clamped RGB.
func (bt *Batch) YCbCrToRGB() {
	base := bt.A.AddConst(-16).MulConst(298).AddConst(128)
	u := bt.B.AddConst(-128)
	v := bt.C.AddConst(-128)
	bt.A = base.Add(v.MulConst(409)).Sar(8).Clamp8()
	bt.B = base.Add(u.MulConst(-100)).Add(v.MulConst(-208)).Sar(8).Clamp8()
	bt.C = base.Add(u.MulConst(516)).Sar(8).Clamp8()
}
