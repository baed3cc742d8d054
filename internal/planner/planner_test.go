package planner

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZacxDev/video-editor/internal/preset"
	"github.com/ZacxDev/video-editor/internal/resolve"
)

type fakeOracle struct {
	dims   preset.Dimensions
	err    error
	probes int
}

func (f *fakeOracle) Probe(path string) (preset.Dimensions, error) {
	f.probes++
	if f.err != nil {
		return preset.Dimensions{}, f.err
	}
	return f.dims, nil
}

func defaultParams() *resolve.Parameters {
	return &resolve.Parameters{
		InputPath:  "input.mp4",
		Speed:      1.0,
		CropRatio:  preset.CropNone,
		TargetSize: preset.Original,
		Quality:    preset.QualityMedium,
	}
}

func kinds(plan *Plan) []OpKind {
	out := make([]OpKind, 0, len(plan.Ops))
	for _, op := range plan.Ops {
		out = append(out, op.Kind)
	}
	return out
}

func TestDefaultPlanOnlyNormalizesFrameRate(t *testing.T) {
	oracle := &fakeOracle{dims: preset.Dimensions{Width: 1920, Height: 1080}}
	plan, err := Build(defaultParams(), oracle)
	require.NoError(t, err)

	assert.Equal(t, []OpKind{OpNormalizeFrameRate}, kinds(plan))
	assert.Equal(t, OutputFrameRate, plan.Ops[0].FPS)
	assert.Equal(t, 0, oracle.probes, "no size-dependent branch, no probe")
}

func TestScaleToPreset(t *testing.T) {
	oracle := &fakeOracle{dims: preset.Dimensions{Width: 1920, Height: 1080}}
	params := defaultParams()
	params.TargetSize = "HD"

	plan, err := Build(params, oracle)
	require.NoError(t, err)

	require.Equal(t, []OpKind{OpScaleAndPad, OpNormalizeFrameRate}, kinds(plan))
	assert.Equal(t, 1280, plan.Ops[0].Width)
	assert.Equal(t, 720, plan.Ops[0].Height)
	assert.Equal(t, 1, oracle.probes)
}

func TestVerticalSwapRotationsSwapTarget(t *testing.T) {
	for _, rotation := range []int{90, 270} {
		oracle := &fakeOracle{dims: preset.Dimensions{Width: 1920, Height: 1080}}
		params := defaultParams()
		params.Rotation = rotation
		params.TargetSize = "HD"

		plan, err := Build(params, oracle)
		require.NoError(t, err)

		require.Equal(t, []OpKind{OpRotate, OpScaleAndPad, OpNormalizeFrameRate}, kinds(plan))
		assert.Equal(t, rotation, plan.Ops[0].Degrees)
		assert.Equal(t, 720, plan.Ops[1].Width, "rotation %d must swap target width", rotation)
		assert.Equal(t, 1280, plan.Ops[1].Height, "rotation %d must swap target height", rotation)
	}
}

func TestRotate180DoesNotSwapTarget(t *testing.T) {
	oracle := &fakeOracle{dims: preset.Dimensions{Width: 1920, Height: 1080}}
	params := defaultParams()
	params.Rotation = 180
	params.TargetSize = "HD"

	plan, err := Build(params, oracle)
	require.NoError(t, err)

	require.Equal(t, []OpKind{OpRotate, OpScaleAndPad, OpNormalizeFrameRate}, kinds(plan))
	assert.Equal(t, 1280, plan.Ops[1].Width)
	assert.Equal(t, 720, plan.Ops[1].Height)
}

func TestSquareCropMatchingTargetSkipsScale(t *testing.T) {
	oracle := &fakeOracle{dims: preset.Dimensions{Width: 512, Height: 720}}
	params := defaultParams()
	params.CropRatio = preset.CropSquare
	params.TargetSize = "512x512"

	plan, err := Build(params, oracle)
	require.NoError(t, err)

	assert.Equal(t, []OpKind{OpCrop, OpNormalizeFrameRate}, kinds(plan))
	assert.Equal(t, 1, oracle.probes)
}

func TestSquareCropMismatchedTargetScales(t *testing.T) {
	oracle := &fakeOracle{dims: preset.Dimensions{Width: 1080, Height: 1920}}
	params := defaultParams()
	params.Rotation = 90
	params.CropRatio = preset.CropSquare
	params.TargetSize = "512x512"

	plan, err := Build(params, oracle)
	require.NoError(t, err)

	require.Equal(t, []OpKind{OpRotate, OpCrop, OpScaleAndPad, OpNormalizeFrameRate}, kinds(plan))
	assert.Equal(t, 512, plan.Ops[2].Width)
	assert.Equal(t, 512, plan.Ops[2].Height)
	assert.Equal(t, 1, oracle.probes)
}

// The redundant-scale short-circuit exists only for the square crop.
// Any other crop combined with an explicit target always scales, even
// when the source already has the target dimensions.
func TestNonSquareCropsAlwaysScale(t *testing.T) {
	for _, ratio := range []string{preset.CropNone, preset.CropWide, preset.CropPortrait} {
		oracle := &fakeOracle{dims: preset.Dimensions{Width: 1920, Height: 1080}}
		params := defaultParams()
		params.CropRatio = ratio
		params.TargetSize = "FHD"

		plan, err := Build(params, oracle)
		require.NoError(t, err)

		assert.True(t, plan.Has(OpScaleAndPad), "crop %q with explicit size must scale", ratio)
	}
}

func TestSquareCropWithoutTargetProbesButDoesNotScale(t *testing.T) {
	oracle := &fakeOracle{dims: preset.Dimensions{Width: 1920, Height: 1080}}
	params := defaultParams()
	params.CropRatio = preset.CropSquare

	plan, err := Build(params, oracle)
	require.NoError(t, err)

	assert.Equal(t, []OpKind{OpCrop, OpNormalizeFrameRate}, kinds(plan))
	assert.Equal(t, 1, oracle.probes)
}

func TestProbeFailureIsFatal(t *testing.T) {
	probeErr := errors.New("no video stream")
	oracle := &fakeOracle{err: probeErr}
	params := defaultParams()
	params.TargetSize = "HD"

	_, err := Build(params, oracle)
	require.Error(t, err)
	assert.ErrorIs(t, err, probeErr)
}

func TestSpeedChangeAppendsTimestampRemap(t *testing.T) {
	oracle := &fakeOracle{}
	params := defaultParams()
	params.Speed = 2.0

	plan, err := Build(params, oracle)
	require.NoError(t, err)

	require.Equal(t, []OpKind{OpNormalizeFrameRate, OpRemapTimestamps}, kinds(plan))
	last := plan.Ops[len(plan.Ops)-1]
	assert.Equal(t, 0.5, last.Factor)
}

func TestPortraitSquareCropScenario(t *testing.T) {
	// 1080x1920 portrait, rotated 90, square crop, 512x512 target:
	// effective square side is 1080, the swapped target stays 512x512,
	// so scaling is required.
	oracle := &fakeOracle{dims: preset.Dimensions{Width: 1080, Height: 1920}}
	params := defaultParams()
	params.Rotation = 90
	params.CropRatio = preset.CropSquare
	params.TargetSize = "512x512"

	plan, err := Build(params, oracle)
	require.NoError(t, err)

	require.Equal(t, []OpKind{OpRotate, OpCrop, OpScaleAndPad, OpNormalizeFrameRate}, kinds(plan))
	assert.Equal(t, 90, plan.Ops[0].Degrees)
	assert.Equal(t, preset.CropSquare, plan.Ops[1].Ratio)
	assert.Equal(t, 512, plan.Ops[2].Width)
	assert.Equal(t, 512, plan.Ops[2].Height)
	assert.Equal(t, 24, plan.Ops[3].FPS)
}
