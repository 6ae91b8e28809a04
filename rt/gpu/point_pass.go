package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/nucleus/rt/core"
	"github.com/gekko3d/nucleus/rt/shaders"
)

// PointVerticesPerInstance is the quad each point expands to.
const PointVerticesPerInstance = 6

// PointBufferLayouts describes the three per-instance streams of a
// PointBuffer: position, size and core flag, in shader locations 0..2.
func PointBufferLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: 3 * 4,
			StepMode:    wgpu.VertexStepModeInstance,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			},
		},
		{
			ArrayStride: 4,
			StepMode:    wgpu.VertexStepModeInstance,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32, Offset: 0, ShaderLocation: 1},
			},
		},
		{
			ArrayStride: 4,
			StepMode:    wgpu.VertexStepModeInstance,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32, Offset: 0, ShaderLocation: 2},
			},
		},
	}
}

// AdditiveBlend adds each fragment's color weighted by its alpha, so the
// glow falloff and hover boost scale what a point contributes. Overlapping
// points brighten, and draw order does not matter.
func AdditiveBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOne,
		},
		Alpha: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
		},
	}
}

type PointRenderPass struct {
	Pipeline      *wgpu.RenderPipeline
	BindGroup     *wgpu.BindGroup
	UniformBuffer *wgpu.Buffer

	PositionBuffer *wgpu.Buffer
	SizeBuffer     *wgpu.Buffer
	CoreBuffer     *wgpu.Buffer
	InstanceCount  uint32

	Device *wgpu.Device
}

// NewPointRenderPass uploads the geometry once; it never changes after
// startup. An empty buffer yields a pass that draws nothing.
func NewPointRenderPass(device *wgpu.Device, format wgpu.TextureFormat, points *core.PointBuffer) (*PointRenderPass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "PointsShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.PointsWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("points shader: %w", err)
	}
	defer shaderModule.Release()

	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "PointsUniformBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: core.GPUUniformsSize,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("points bind group layout: %w", err)
	}
	defer bgl.Release()

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "PointsPipelineLayout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return nil, fmt.Errorf("points pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "PointsPipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers:    PointBufferLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend:     AdditiveBlend(),
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		// points neither write nor test depth
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("points pipeline: %w", err)
	}

	p := &PointRenderPass{
		Pipeline: pipeline,
		Device:   device,
	}

	p.UniformBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "PointsUniforms",
		Size:  core.GPUUniformsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("points uniform buffer: %w", err)
	}

	p.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "PointsUniformBG",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  p.UniformBuffer,
				Size:    core.GPUUniformsSize,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("points bind group: %w", err)
	}

	if points.Len() == 0 {
		return p, nil
	}

	upload := func(label string, data []float32) (*wgpu.Buffer, error) {
		return device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    label,
			Contents: wgpu.ToBytes(data),
			Usage:    wgpu.BufferUsageVertex,
		})
	}
	if p.PositionBuffer, err = upload("PointsPositions", points.Positions); err != nil {
		return nil, fmt.Errorf("points position buffer: %w", err)
	}
	if p.SizeBuffer, err = upload("PointsSizes", points.Sizes); err != nil {
		return nil, fmt.Errorf("points size buffer: %w", err)
	}
	if p.CoreBuffer, err = upload("PointsCoreFlags", points.Core); err != nil {
		return nil, fmt.Errorf("points core buffer: %w", err)
	}
	p.InstanceCount = uint32(points.Len())

	return p, nil
}

// Update uploads this frame's uniforms.
func (p *PointRenderPass) Update(queue *wgpu.Queue, uniforms *core.GPUUniforms) {
	queue.WriteBuffer(p.UniformBuffer, 0, uniforms.Bytes())
}

func (p *PointRenderPass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.InstanceCount == 0 {
		return
	}

	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.PositionBuffer, 0, p.PositionBuffer.GetSize())
	pass.SetVertexBuffer(1, p.SizeBuffer, 0, p.SizeBuffer.GetSize())
	pass.SetVertexBuffer(2, p.CoreBuffer, 0, p.CoreBuffer.GetSize())
	pass.Draw(PointVerticesPerInstance, p.InstanceCount, 0, 0)
}

func (p *PointRenderPass) Release() {
	for _, b := range []**wgpu.Buffer{&p.UniformBuffer, &p.PositionBuffer, &p.SizeBuffer, &p.CoreBuffer} {
		if *b != nil {
			(*b).Release()
			*b = nil
		}
	}
	if p.BindGroup != nil {
		p.BindGroup.Release()
		p.BindGroup = nil
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
		p.Pipeline = nil
	}
	p.InstanceCount = 0
}
