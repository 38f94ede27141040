// Package pulsetest provides a recording implementation of pulse.Device and
// pulse.Surface. It never talks to a GPU: created objects are opaque
// placeholders that must not be released.
package pulsetest

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/triangle/pulse"
)

// ErrInjected is returned by operations listed in Device.FailOn
var ErrInjected = errors.New("injected failure")

// Call is one recorded device, encoder or render pass operation.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

type BufferWrite struct {
	Buffer *wgpu.Buffer
	Offset uint64
	Data   []byte
}

type Device struct {
	// names of operations that should fail, e.g. "CreateRenderPipeline"
	FailOn []string

	Calls []Call

	Buffers          map[*wgpu.Buffer]*wgpu.BufferInitDescriptor
	Textures         []*wgpu.TextureDescriptor
	ShaderModules    map[*wgpu.ShaderModule]*wgpu.ShaderModuleDescriptor
	BindGroupLayouts map[*wgpu.BindGroupLayout]*wgpu.BindGroupLayoutDescriptor
	BindGroups       map[*wgpu.BindGroup]*wgpu.BindGroupDescriptor
	PipelineLayouts  map[*wgpu.PipelineLayout]*wgpu.PipelineLayoutDescriptor
	Pipelines        map[*wgpu.RenderPipeline]*wgpu.RenderPipelineDescriptor

	// every write enqueued with WriteBuffer
	Writes []BufferWrite

	// number of command buffers submitted
	Submitted int
}

var _ pulse.Device = (*Device)(nil)

func NewDevice() *Device {
	return &Device{
		Buffers:          map[*wgpu.Buffer]*wgpu.BufferInitDescriptor{},
		ShaderModules:    map[*wgpu.ShaderModule]*wgpu.ShaderModuleDescriptor{},
		BindGroupLayouts: map[*wgpu.BindGroupLayout]*wgpu.BindGroupLayoutDescriptor{},
		BindGroups:       map[*wgpu.BindGroup]*wgpu.BindGroupDescriptor{},
		PipelineLayouts:  map[*wgpu.PipelineLayout]*wgpu.PipelineLayoutDescriptor{},
		Pipelines:        map[*wgpu.RenderPipeline]*wgpu.RenderPipelineDescriptor{},
	}
}

// Ops returns the names of all recorded operations in order
func (d *Device) Ops() []string {
	var ops []string
	for _, call := range d.Calls {
		ops = append(ops, call.Op)
	}

	return ops
}

// CallsOf returns all recorded calls of the given operation
func (d *Device) CallsOf(op string) []Call {
	var calls []Call
	for _, call := range d.Calls {
		if call.Op == op {
			calls = append(calls, call)
		}
	}

	return calls
}

// Reset forgets all recorded calls, writes and submissions, but keeps the created objects
func (d *Device) Reset() {
	d.Calls = nil
	d.Writes = nil
	d.Submitted = 0
}

func (d *Device) record(op string, args ...any) error {
	d.Calls = append(d.Calls, Call{Op: op, Args: args})

	if slices.Contains(d.FailOn, op) {
		return fmt.Errorf("%s: %w", op, ErrInjected)
	}

	return nil
}

func (d *Device) CreateBufferInit(desc *wgpu.BufferInitDescriptor) (*wgpu.Buffer, error) {
	if err := d.record("CreateBufferInit", desc.Label); err != nil {
		return nil, err
	}

	// copy the descriptor, the caller might reuse the contents slice
	stored := *desc
	stored.Contents = slices.Clone(desc.Contents)

	buffer := &wgpu.Buffer{}
	d.Buffers[buffer] = &stored

	return buffer, nil
}

func (d *Device) CreateTexture(desc *wgpu.TextureDescriptor) (*pulse.Texture, error) {
	if err := d.record("CreateTexture", desc.Label); err != nil {
		return nil, err
	}

	stored := *desc
	d.Textures = append(d.Textures, &stored)

	return pulse.WrapTexture(&wgpu.Texture{}, &wgpu.TextureView{}, &stored), nil
}

func (d *Device) CreateShaderModule(desc *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error) {
	if err := d.record("CreateShaderModule", desc.Label); err != nil {
		return nil, err
	}

	module := &wgpu.ShaderModule{}
	d.ShaderModules[module] = desc

	return module, nil
}

func (d *Device) CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	if err := d.record("CreateBindGroupLayout", desc.Label); err != nil {
		return nil, err
	}

	layout := &wgpu.BindGroupLayout{}
	d.BindGroupLayouts[layout] = desc

	return layout, nil
}

func (d *Device) CreateBindGroup(desc *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error) {
	if err := d.record("CreateBindGroup", desc.Label); err != nil {
		return nil, err
	}

	group := &wgpu.BindGroup{}
	d.BindGroups[group] = desc

	return group, nil
}

func (d *Device) CreatePipelineLayout(desc *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error) {
	if err := d.record("CreatePipelineLayout", desc.Label); err != nil {
		return nil, err
	}

	layout := &wgpu.PipelineLayout{}
	d.PipelineLayouts[layout] = desc

	return layout, nil
}

func (d *Device) CreateRenderPipeline(desc *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error) {
	if err := d.record("CreateRenderPipeline", desc.Label); err != nil {
		return nil, err
	}

	pipeline := &wgpu.RenderPipeline{}
	d.Pipelines[pipeline] = desc

	return pipeline, nil
}

func (d *Device) CreateCommandEncoder(label string) (pulse.CommandEncoder, error) {
	if err := d.record("CreateCommandEncoder", label); err != nil {
		return nil, err
	}

	return &CommandEncoder{device: d}, nil
}

func (d *Device) WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) error {
	if err := d.record("WriteBuffer", offset, len(data)); err != nil {
		return err
	}

	d.Writes = append(d.Writes, BufferWrite{
		Buffer: buffer,
		Offset: offset,
		Data:   slices.Clone(data),
	})

	return nil
}

// CommandEncoder records into the Calls of its Device
type CommandEncoder struct {
	device *Device
}

func (c *CommandEncoder) BeginRenderPass(desc *wgpu.RenderPassDescriptor) pulse.RenderPass {
	_ = c.device.record("BeginRenderPass", desc)
	return &RenderPass{device: c.device}
}

func (c *CommandEncoder) Submit(label string) error {
	if err := c.device.record("Submit", label); err != nil {
		return err
	}

	c.device.Submitted++

	return nil
}

func (c *CommandEncoder) Release() {
	_ = c.device.record("ReleaseEncoder")
}

// RenderPass records into the Calls of its Device
type RenderPass struct {
	device *Device
}

func (p *RenderPass) SetPipeline(pipeline *wgpu.RenderPipeline) {
	_ = p.device.record("SetPipeline", pipeline)
}

func (p *RenderPass) SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset uint64, size uint64) {
	_ = p.device.record("SetVertexBuffer", slot, buffer, offset, size)
}

func (p *RenderPass) SetBindGroup(groupIndex uint32, group *wgpu.BindGroup, dynamicOffsets []uint32) {
	_ = p.device.record("SetBindGroup", groupIndex, group, dynamicOffsets)
}

func (p *RenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	_ = p.device.record("Draw", vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *RenderPass) End() error {
	return p.device.record("End")
}

func (p *RenderPass) Release() {
	_ = p.device.record("ReleasePass")
}
