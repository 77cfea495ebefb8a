package kemove

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/gousb"
)

// USBChannel is the gousb-backed Channel for the keyboard's control
// interface. The OS HID driver is detached for the session and reattached
// on Close.
type USBChannel struct {
	ctx   *gousb.Context
	dev   *gousb.Device
	cfg   *gousb.Config
	intf  *gousb.Interface
	epIn  *gousb.InEndpoint
	epOut *gousb.OutEndpoint
}

// DeviceChooser picks one of several attached matching keyboards. Gets a
// human-readable description per candidate, returns the index to use.
type DeviceChooser func(candidates []string) (int, error)

// OpenUSB finds the keyboard described by the model, claims its control
// interface and returns the 64 byte packet channel. With more than one
// matching device attached, choose decides; a nil chooser takes the first.
func OpenUSB(m *Model, debugLevel int, choose DeviceChooser) (*USBChannel, error) {
	c := &USBChannel{ctx: gousb.NewContext()}
	c.ctx.Debug(debugLevel)

	devs, err := c.ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == gousb.ID(m.VendorID) && desc.Product == gousb.ID(m.ProductID)
	})
	if err != nil {
		for _, d := range devs {
			d.Close()
		}
		c.ctx.Close()
		return nil, fmt.Errorf("enumerate %s: %w", m.Name, err)
	}
	if len(devs) == 0 {
		c.ctx.Close()
		return nil, fmt.Errorf("no %s (%04x:%04x) attached", m.Name, m.VendorID, m.ProductID)
	}

	idx := 0
	if len(devs) > 1 && choose != nil {
		candidates := make([]string, len(devs))
		for i, d := range devs {
			candidates[i] = fmt.Sprintf("bus %03d device %03d", d.Desc.Bus, d.Desc.Address)
		}
		idx, err = choose(candidates)
		if err != nil || idx < 0 || idx >= len(devs) {
			for _, d := range devs {
				d.Close()
			}
			c.ctx.Close()
			if err == nil {
				err = errors.New("invalid device selection")
			}
			return nil, err
		}
	}
	for i, d := range devs {
		if i != idx {
			d.Close()
		}
	}
	c.dev = devs[idx]

	if err := c.claim(m); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *USBChannel) claim(m *Model) (err error) {
	if err = c.dev.SetAutoDetach(true); err != nil {
		return fmt.Errorf("detach kernel driver: %w", err)
	}

	c.cfg, err = c.dev.Config(1)
	if err != nil {
		return fmt.Errorf("select configuration: %w", err)
	}

	c.intf, err = c.cfg.Interface(m.InterfaceNumber, 0)
	if err != nil {
		return fmt.Errorf("claim interface %d: %w", m.InterfaceNumber, err)
	}

	c.epOut, err = c.intf.OutEndpoint(m.OutEndpoint)
	if err != nil {
		return fmt.Errorf("open OUT endpoint %d: %w", m.OutEndpoint, err)
	}
	c.epIn, err = c.intf.InEndpoint(m.InEndpoint)
	if err != nil {
		return fmt.Errorf("open IN endpoint %d: %w", m.InEndpoint, err)
	}
	return nil
}

func (c *USBChannel) Write(p []byte) (int, error) {
	return c.epOut.Write(p)
}

func (c *USBChannel) Read(p []byte, timeout time.Duration) (int, error) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return c.epIn.ReadContext(ctx, p)
}

// Close releases everything acquired by OpenUSB, in reverse order. Safe on
// a partially opened channel.
func (c *USBChannel) Close() {
	if c.intf != nil {
		c.intf.Close()
	}
	if c.cfg != nil {
		c.cfg.Close()
	}
	if c.dev != nil {
		c.dev.Close()
	}
	if c.ctx != nil {
		c.ctx.Close()
	}
}
