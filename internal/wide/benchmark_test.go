package wide

import (
	"testing"

	"github.com/gogpu/blit/internal/convert"
)

const benchWidth = 1920

func benchRow(b *testing.B, fn convert.RowFunc, dstSize, srcSize int) {
	src := make([]byte, benchWidth*srcSize)
	dst := make([]byte, benchWidth*dstSize)
	for i := range src {
		src[i] = byte(i * 7)
	}
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fn(dst, src, benchWidth)
	}
}

func BenchmarkXRGB8888ToXVYU_Wide(b *testing.B) {
	benchRow(b, XRGB8888ToXVYU, 4, 4)
}

func BenchmarkXRGB8888ToXVYU_Reference(b *testing.B) {
	benchRow(b, convert.Row(convert.XVYU, convert.XRGB8888), 4, 4)
}

func BenchmarkXVYUToXRGB8888_Wide(b *testing.B) {
	benchRow(b, XVYUToXRGB8888, 4, 4)
}

func BenchmarkXRGB8888ToRGB565_Wide(b *testing.B) {
	benchRow(b, XRGB8888ToRGB565, 2, 4)
}

func BenchmarkXRGB8888ToRGB565_Reference(b *testing.B) {
	benchRow(b, convert.Row(convert.RGB565, convert.XRGB8888), 2, 4)
}
