package wgpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // registers the Vulkan HAL backend

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/backend"
)

// InstanceCreator opens a HAL instance. hal.Backend values returned by
// hal.GetBackend satisfy it, as does the noop HAL API.
type InstanceCreator interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// errFenceTimeout is returned when a submission does not finish in time.
var errFenceTimeout = errors.New("wgpu: fence wait timed out")

// device is an open HAL device and its queue.
type device struct {
	instance hal.Instance
	dev      hal.Device
	queue    hal.Queue
	// shared devices belong to a provider and are never destroyed here.
	shared  bool
	timeout time.Duration
}

// openDevice acquires a device from the configured provider, instance
// creator or the Vulkan HAL backend, in that order.
func openDevice(o *options) (*device, error) {
	if o.provider != nil {
		return sharedDevice(o.provider, o.fenceTimeout)
	}

	creator := o.instances
	if creator == nil {
		vk, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return nil, fmt.Errorf("wgpu: vulkan: %w", backend.ErrBackendNotAvailable)
		}
		creator = vk
	}

	instance, err := creator.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: no adapters: %w", backend.ErrBackendNotAvailable)
	}

	selected := selectAdapter(adapters)
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}

	blit.Logger().Info("wgpu: adapter opened", "adapter", selected.Info.Name)
	return &device{
		instance: instance,
		dev:      openDev.Device,
		queue:    openDev.Queue,
		timeout:  o.fenceTimeout,
	}, nil
}

// selectAdapter prefers a discrete or integrated GPU over software and
// virtual adapters.
func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			return &adapters[i]
		}
	}
	return &adapters[0]
}

// sharedDevice extracts the HAL device and queue of a provider.
func sharedDevice(provider any, timeout time.Duration) (*device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	dev, ok := hp.HalDevice().(hal.Device)
	if !ok || dev == nil {
		return nil, fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}
	return &device{dev: dev, queue: queue, shared: true, timeout: timeout}, nil
}

func (d *device) close() {
	if d.shared {
		return
	}
	if d.dev != nil {
		d.dev.Destroy()
	}
	if d.instance != nil {
		d.instance.Destroy()
	}
}

// submit records commands with record, submits them and waits for the
// GPU to finish.
func (d *device) submit(label string, record func(enc hal.CommandEncoder) error) error {
	encoder, err := d.dev.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	if err := record(encoder); err != nil {
		encoder.DiscardEncoding()
		return err
	}
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer d.dev.FreeCommandBuffer(cmdBuf)

	fence, err := d.dev.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer d.dev.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := d.dev.Wait(fence, 1, d.timeout)
	if err != nil {
		return fmt.Errorf("wait: %w", err)
	}
	if !ok {
		return errFenceTimeout
	}
	return nil
}
