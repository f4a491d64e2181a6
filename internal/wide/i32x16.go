package wide

// I32x16 represents 16 int32 values for SIMD-style operations.
// Holds intermediate color-transform sums that need sign and headroom.
type I32x16 [16]int32

// SplatI32 creates I32x16 with all elements set to n.
func SplatI32(n int32) I32x16 {
	var result I32x16
	for i := range result {
		result[i] = n
	}
	return result
}

// Add performs element-wise addition.
func (v I32x16) Add(other I32x16) I32x16 {
	var result I32x16
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// AddConst adds k to every element.
func (v I32x16) AddConst(k int32) I32x16 {
	var result I32x16
	for i := range v {
		result[i] = v[i] + k
	}
	return result
}

// MulConst multiplies every element by k.
func (v I32x16) MulConst(k int32) I32x16 {
	var result I32x16
	for i := range v {
		result[i] = v[i] * k
	}
	return result
}

// Sar performs an arithmetic right shift of every element by n bits.
func (v I32x16) Sar(n uint) I32x16 {
	var result I32x16
	for i := range v {
		result[i] = v[i] >> n
	}
	return result
}

// Clamp8 clamps every element to [0, 255].
func (v I32x16) Clamp8() I32x16 {
	var result I32x16
	for i := range v {
		x := v[i]
		if x < 0 {
			x = 0
		}
		if x > 255 {
			x = 255
		}
		result[i] = x
	}
	return result
}

// Dot3 computes a*ka + b*kb + c*kc element-wise.
func Dot3(a, b, c I32x16, ka, kb, kc int32) I32x16 {
	var result I32x16
	for i := range result {
		result[i] = a[i]*ka + b[i]*kb + c[i]*kc
	}
	return result
}
