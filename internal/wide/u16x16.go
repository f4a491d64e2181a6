package wide

// U16x16 represents 16 uint16 values for SIMD-style operations.
// Used for packing and unpacking 16-bit pixel formats.
type U16x16 [16]uint16

// SplatU16 creates U16x16 with all elements set to n.
func SplatU16(n uint16) U16x16 {
	var result U16x16
	for i := range result {
		result[i] = n
	}
	return result
}

// Or performs element-wise bitwise OR.
func (v U16x16) Or(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] | other[i]
	}
	return result
}

// And performs element-wise bitwise AND.
func (v U16x16) And(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] & other[i]
	}
	return result
}

// Shl shifts every element left by n bits.
func (v U16x16) Shl(n uint) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] << n
	}
	return result
}

// Shr shifts every element right by n bits.
func (v U16x16) Shr(n uint) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] >> n
	}
	return result
}

// Replicate widens n-bit fields (already masked) to 8 bits by bit replication.
// n must be in [4, 8].
func (v U16x16) Replicate(n uint) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i]<<(8-n) | v[i]>>(2*n-8)
	}
	return result
}
