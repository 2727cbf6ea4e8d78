package tensor

import (
	"reflect"

	"github.com/zclconf/go-cty/cty"
)

// Capsule types used by manifests for the tensor interchange values. A
// capsule holds a pointer, so passing values between nodes never copies
// sample data.
var (
	ImageType = cty.Capsule("image", reflect.TypeOf(Batch{}))
	MaskType  = cty.Capsule("mask", reflect.TypeOf(MaskBatch{}))
	AudioType = cty.Capsule("audio", reflect.TypeOf(Audio{}))
)

// ImageVal wraps a batch in a cty value.
func ImageVal(b *Batch) cty.Value { return cty.CapsuleVal(ImageType, b) }

// MaskVal wraps a mask batch in a cty value.
func MaskVal(m *MaskBatch) cty.Value { return cty.CapsuleVal(MaskType, m) }

// AudioVal wraps an audio clip in a cty value.
func AudioVal(a *Audio) cty.Value { return cty.CapsuleVal(AudioType, a) }

// IsTensorType reports whether ty is one of the tensor capsule types.
func IsTensorType(ty cty.Type) bool {
	return ty.Equals(ImageType) || ty.Equals(MaskType) || ty.Equals(AudioType)
}
