package blit

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// ErrTextureTooLarge is returned when a frame exceeds the default 2D
// texture limit.
var ErrTextureTooLarge = errors.New("blit: frame exceeds texture limits")

// TextureFormat returns the GPU texture format that holds f's primary plane
// byte for byte, or TextureFormatUndefined when f must be converted before
// upload. XVYU uploads as RGBA8Unorm; the sampling shader swizzles U,Y,V.
func (f Format) TextureFormat() gputypes.TextureFormat {
	switch f {
	case FormatXRGB8888:
		return gputypes.TextureFormatBGRA8Unorm
	case FormatYUV444XVYU:
		return gputypes.TextureFormatRGBA8Unorm
	case FormatY8:
		return gputypes.TextureFormatR8Unorm
	default:
		return gputypes.TextureFormatUndefined
	}
}

// UploadFormat returns the format frames of f are converted to before a
// GPU upload: f itself when it maps to a texture format, XVYU for the
// YCbCr family, XRGB8888 otherwise.
func UploadFormat(f Format) Format {
	if f.TextureFormat() != gputypes.TextureFormatUndefined {
		return f
	}
	switch f {
	case FormatYUV422UYVY, FormatYUV422YUYV,
		FormatYUV444Planar, FormatYUV422Planar, FormatYUV420Planar,
		FormatYUV411Planar, FormatYUV410Planar:
		return FormatYUV444XVYU
	default:
		return FormatXRGB8888
	}
}

// TextureDescriptor describes a sampled 2D texture matching p.
func (p *Pixmap) TextureDescriptor(label string) (gputypes.TextureDescriptor, error) {
	tf := p.Format.TextureFormat()
	if tf == gputypes.TextureFormatUndefined {
		return gputypes.TextureDescriptor{}, fmt.Errorf("%w: %v has no texture format", ErrInvalidFormat, p.Format)
	}
	limit := gputypes.DefaultLimits().MaxTextureDimension2D
	if p.W <= 0 || p.H <= 0 {
		return gputypes.TextureDescriptor{}, ErrInvalidDimensions
	}
	//nolint:gosec // G115: dimensions are positive
	w, h := uint32(p.W), uint32(p.H)
	if w > limit || h > limit {
		return gputypes.TextureDescriptor{}, fmt.Errorf("%w: %dx%d > %d", ErrTextureTooLarge, w, h, limit)
	}
	return gputypes.TextureDescriptor{
		Label: label,
		Size: gputypes.Extent3D{
			Width:              w,
			Height:             h,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        tf,
		Usage:         gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding,
	}, nil
}

// PrepareUpload converts p into its upload format and returns the frame
// with its texture descriptor. When no conversion is needed p itself is
// returned; otherwise the frame comes from pool and the caller should Put
// it back after the upload.
func (b *Blitter) PrepareUpload(p *Pixmap, pool *Pool, label string) (*Pixmap, gputypes.TextureDescriptor, error) {
	f := UploadFormat(p.Format)
	frame := p
	if f != p.Format {
		var err error
		if frame, err = pool.Get(p.W, p.H, f); err != nil {
			return nil, gputypes.TextureDescriptor{}, err
		}
		if !b.BltFast(frame, p, p.W, p.H) {
			pool.Put(frame)
			return nil, gputypes.TextureDescriptor{}, fmt.Errorf("%w: no route from %v to %v", ErrInvalidFormat, p.Format, f)
		}
	}
	desc, err := frame.TextureDescriptor(label)
	if err != nil {
		if frame != p {
			pool.Put(frame)
		}
		return nil, gputypes.TextureDescriptor{}, err
	}
	return frame, desc, nil
}
