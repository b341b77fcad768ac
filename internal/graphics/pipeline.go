package graphics

import (
	"github.com/go-gl/mathgl/mgl32"

	"mini-render/internal/config"
)

// PipelineState is the rasterizer, depth and blend configuration applied
// before a draw. Setup writes every field, so the GPU state after Setup does
// not depend on what ran before it.
type PipelineState struct {
	FaceCulling struct {
		Enabled    bool
		CulledFace uint32
		FrontFace  uint32
	}
	DepthTesting struct {
		Enabled  bool
		Function uint32
	}
	Blending struct {
		Enabled           bool
		Equation          uint32
		SourceFactor      uint32
		DestinationFactor uint32
		ConstantColor     mgl32.Vec4
	}
	ColorMask [4]bool
	DepthMask bool
}

// DefaultPipelineState returns the state used when a material has no pipelineState record
func DefaultPipelineState() PipelineState {
	var p PipelineState
	p.FaceCulling.CulledFace = Back
	p.FaceCulling.FrontFace = CCW
	p.DepthTesting.Function = LEqual
	p.Blending.Equation = FuncAdd
	p.Blending.SourceFactor = SrcAlpha
	p.Blending.DestinationFactor = OneMinusSrcAlpha
	p.ColorMask = [4]bool{true, true, true, true}
	p.DepthMask = true
	return p
}

// Setup applies the pipeline state to the device
func (p *PipelineState) Setup(dev Device) {
	dev.SetCapability(CapCullFace, p.FaceCulling.Enabled)
	dev.CullFace(p.FaceCulling.CulledFace)
	dev.FrontFace(p.FaceCulling.FrontFace)

	dev.SetCapability(CapDepthTest, p.DepthTesting.Enabled)
	dev.DepthFunc(p.DepthTesting.Function)

	dev.SetCapability(CapBlend, p.Blending.Enabled)
	dev.BlendEquation(p.Blending.Equation)
	dev.BlendFunc(p.Blending.SourceFactor, p.Blending.DestinationFactor)
	dev.BlendColor(p.Blending.ConstantColor)

	dev.ColorMask(p.ColorMask[0], p.ColorMask[1], p.ColorMask[2], p.ColorMask[3])
	dev.DepthMask(p.DepthMask)
}

// Configure reads the pipeline state from a record. Each nested section is
// optional and fields absent from it keep their current value.
func (p *PipelineState) Configure(data any) {
	r, ok := config.AsRecord(data)
	if !ok {
		return
	}

	if fc, ok := r.Record("faceCulling"); ok {
		p.FaceCulling.Enabled = fc.Bool("enabled", p.FaceCulling.Enabled)
		readEnum(fc, "culledFace", &p.FaceCulling.CulledFace)
		readEnum(fc, "frontFace", &p.FaceCulling.FrontFace)
	}

	if dt, ok := r.Record("depthTesting"); ok {
		p.DepthTesting.Enabled = dt.Bool("enabled", p.DepthTesting.Enabled)
		readEnum(dt, "function", &p.DepthTesting.Function)
	}

	if bl, ok := r.Record("blending"); ok {
		p.Blending.Enabled = bl.Bool("enabled", p.Blending.Enabled)
		readEnum(bl, "equation", &p.Blending.Equation)
		readEnum(bl, "sourceFactor", &p.Blending.SourceFactor)
		readEnum(bl, "destinationFactor", &p.Blending.DestinationFactor)
		p.Blending.ConstantColor = bl.Vec4("constantColor", p.Blending.ConstantColor)
	}

	p.ColorMask = r.Bool4("colorMask", p.ColorMask)
	p.DepthMask = r.Bool("depthMask", p.DepthMask)
}
