package planner

import (
	"github.com/ZacxDev/video-editor/internal/preset"
	"github.com/ZacxDev/video-editor/internal/resolve"
)

// DimensionOracle supplies the source's native dimensions. It is
// consulted at most once per plan, and only when a size-dependent
// branch is taken.
type DimensionOracle interface {
	Probe(path string) (preset.Dimensions, error)
}

// OpKind identifies a planned operation.
type OpKind int

const (
	OpRotate OpKind = iota
	OpCrop
	OpScaleAndPad
	OpNormalizeFrameRate
	OpRemapTimestamps
)

// OutputFrameRate is the frame rate every output is normalized to.
const OutputFrameRate = 24

// Operation is a single planned transform. Only the fields relevant to
// its Kind are set.
type Operation struct {
	Kind    OpKind
	Degrees int     // OpRotate
	Ratio   string  // OpCrop
	Width   int     // OpScaleAndPad
	Height  int     // OpScaleAndPad
	FPS     int     // OpNormalizeFrameRate
	Factor  float64 // OpRemapTimestamps
}

// Plan is the ordered operation sequence for one encode. Order is
// fixed: rotate, crop, scale+pad, frame-rate normalize, timestamp
// remap.
type Plan struct {
	Ops []Operation
}

// Has reports whether the plan contains an operation of the given
// kind.
func (p *Plan) Has(kind OpKind) bool {
	for _, op := range p.Ops {
		if op.Kind == kind {
			return true
		}
	}
	return false
}

// Build computes the operation plan for the resolved parameters. An
// operation appears only when it has a visible effect; the frame-rate
// normalization is always present.
func Build(params *resolve.Parameters, oracle DimensionOracle) (*Plan, error) {
	plan := &Plan{}
	verticalSwap := params.Rotation == 90 || params.Rotation == 270

	if params.Rotation != 0 {
		plan.Ops = append(plan.Ops, Operation{Kind: OpRotate, Degrees: params.Rotation})
	}

	if params.CropRatio != preset.CropNone {
		plan.Ops = append(plan.Ops, Operation{Kind: OpCrop, Ratio: params.CropRatio})
	}

	// The source is probed only when square-cropping or scaling to a
	// named preset; the probe happens at most once.
	var source preset.Dimensions
	if params.CropRatio == preset.CropSquare || params.TargetSize != preset.Original {
		dims, err := oracle.Probe(params.InputPath)
		if err != nil {
			return nil, err
		}
		source = dims
	}

	if params.TargetSize != preset.Original {
		target, _ := preset.Size(params.TargetSize)
		if verticalSwap {
			target.Width, target.Height = target.Height, target.Width
		}

		// The redundant-scale check applies only to the square crop:
		// its output size is known up front, so a matching target
		// needs no scale stage. Other crops always scale.
		skip := false
		if params.CropRatio == preset.CropSquare {
			side := source.Width
			if source.Height < side {
				side = source.Height
			}
			effective := preset.Dimensions{Width: side, Height: side}
			if verticalSwap {
				effective.Width, effective.Height = effective.Height, effective.Width
			}
			skip = target == effective
		}

		if !skip {
			plan.Ops = append(plan.Ops, Operation{
				Kind:   OpScaleAndPad,
				Width:  evenDimension(target.Width),
				Height: evenDimension(target.Height),
			})
		}
	}

	plan.Ops = append(plan.Ops, Operation{Kind: OpNormalizeFrameRate, FPS: OutputFrameRate})

	if params.Speed != 1.0 {
		plan.Ops = append(plan.Ops, Operation{Kind: OpRemapTimestamps, Factor: 1 / params.Speed})
	}

	return plan, nil
}

// evenDimension rounds down to an even value, required by h264.
func evenDimension(v int) int {
	return v - (v % 2)
}
