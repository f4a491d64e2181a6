package blit

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/cpu"
)

// Tier identifies a family of conversion kernels.
//
// Every tier produces identical bytes for every route it registers; tiers
// differ only in throughput.
type Tier uint8

const (
	// TierReference is the portable per-pixel kernel set. Always available.
	TierReference Tier = iota

	// TierWide replaces the hot 32-bit RGB and YCbCr routes with kernels
	// that convert 16 pixels per loop iteration. They are plain Go; any
	// vectorization is up to the compiler.
	TierWide

	tierCount
)

// ErrInvalidTier is returned by ParseTier for unknown tier names.
var ErrInvalidTier = errors.New("blit: unknown tier")

// tierEnv overrides host detection for Default.
const tierEnv = "BLIT_TIER"

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierReference:
		return "reference"
	case TierWide:
		return "wide"
	default:
		return fmt.Sprintf("Tier(%d)", uint8(t))
	}
}

// ParseTier looks up a tier by name.
func ParseTier(name string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "reference", "ref", "scalar":
		return TierReference, nil
	case "wide", "simd":
		return TierWide, nil
	default:
		return TierReference, fmt.Errorf("%w %q", ErrInvalidTier, name)
	}
}

// DetectTier returns the tier to use on the host CPU. TierWide is chosen on
// CPUs with 128-bit or wider integer vector units, where its batched loops
// tend to run faster; it uses no CPU-specific instructions itself.
func DetectTier() Tier {
	switch {
	case cpu.X86.HasAVX2, cpu.X86.HasSSE41:
		return TierWide
	case cpu.ARM64.HasASIMD:
		return TierWide
	default:
		return TierReference
	}
}

// selectTier applies the BLIT_TIER override on top of host detection.
func selectTier() (Tier, string) {
	if v, ok := os.LookupEnv(tierEnv); ok && v != "" {
		t, err := ParseTier(v)
		if err == nil {
			return t, "env"
		}
		Logger().Warn("blit: ignoring invalid tier override", "env", tierEnv, "value", v)
	}
	return DetectTier(), "cpu"
}

// kernels supplies the conversion routines of one tier. A nil result means
// the tier has no direct route for the pair.
type kernels interface {
	chunky(dst, src Format) chunkyCell
	paletted(dst, src Format) palettedCell
	planar(dst, src Format) planarCell
}

// kernelsFor returns the kernel set of a tier.
func kernelsFor(t Tier) kernels {
	switch t {
	case TierWide:
		return wideKernels{}
	default:
		return referenceKernels{}
	}
}
