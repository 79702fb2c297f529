package device

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"go.yhsif.com/lifxlan"
	"go.yhsif.com/lifxlan/light"
)

const (
	connectTimeout = time.Second
	commandTimeout = 10 * time.Second
)

// LifxBulb is a color bulb on the local network
type LifxBulb struct {
	light.Device
	label string // cached so logging never touches the network
}

// ConnectLifx locates the bulb with the given mac address at host
// (ip:port) and confirms it is a light. The bulb's own label is used
// when label is empty.
//
// Connecting happens once at startup. A bulb that does not answer is
// reported, not retried.
func ConnectLifx(label, host, mac string) (*LifxBulb, error) {
	target, err := lifxlan.ParseTarget(mac)
	if err != nil {
		return nil, fmt.Errorf("%s: parse mac address: %w", label, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	bulb := &LifxBulb{label: label}
	dev := lifxlan.NewDevice(host, lifxlan.ServiceUDP, target)
	err = session(dev, func(conn net.Conn) error {
		if err := dev.Echo(ctx, conn); err != nil {
			return fmt.Errorf("echo device: %w", err)
		}

		wrapped, err := light.Wrap(ctx, dev, false)
		if err != nil {
			return fmt.Errorf("device is not a light: %w", err)
		}
		bulb.Device = wrapped

		if err := bulb.GetHardwareVersion(ctx, conn); err != nil {
			return fmt.Errorf("get hardware version: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}

	if bulb.label == "" && bulb.Device.Label().String() != lifxlan.EmptyLabel {
		bulb.label = strings.ToLower(bulb.Device.Label().String())
	}

	return bulb, nil
}

// session dials dev and hands the connection to fn, closing it after
func session(dev lifxlan.Device, fn func(net.Conn) error) error {
	conn, err := dev.Dial()
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// awake pings the bulb until it answers, backing off while it times out
func (d *LifxBulb) awake(ctx context.Context, conn net.Conn) error {
	var err error
	for attempt := 1; attempt <= defaultRetryLimit; attempt++ {
		err = d.Device.Echo(ctx, conn)
		if !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		time.Sleep(time.Duration(attempt) * defaultRetryBackoff)
	}
	return err
}

// Transition fades the bulb to color. Zero brightness powers it off.
// A bulb that is off starts from darkness so it fades up rather than
// flashing its previous color.
func (d *LifxBulb) Transition(color *Color, transition time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	err := session(d.Device, func(conn net.Conn) error {
		if err := d.awake(ctx, conn); err != nil {
			return fmt.Errorf("echo device: %w", err)
		}

		if color.Brightness == 0 {
			return d.off(ctx, conn, transition)
		}
		return d.fade(ctx, conn, d.Device.SanitizeColor(toLifx(color)), transition)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", d.label, err)
	}
	return nil
}

func (d *LifxBulb) off(ctx context.Context, conn net.Conn, transition time.Duration) error {
	err := d.SetLightPower(ctx, conn, lifxlan.PowerOff, transition, true)
	if err != nil {
		return fmt.Errorf("set light power: %w", err)
	}
	return nil
}

func (d *LifxBulb) fade(ctx context.Context, conn net.Conn, target lifxlan.Color, transition time.Duration) error {
	power, err := d.GetPower(ctx, conn)
	if err != nil {
		return fmt.Errorf("get power: %w", err)
	}

	if power == lifxlan.PowerOff {
		dark := target
		dark.Brightness = 0
		if err := d.SetColor(ctx, conn, &dark, time.Millisecond, true); err != nil {
			return fmt.Errorf("reset color: %w", err)
		}
		if err := d.SetPower(ctx, conn, lifxlan.PowerOn, true); err != nil {
			return fmt.Errorf("set power: %w", err)
		}
	}

	if err := d.SetColor(ctx, conn, &target, transition, true); err != nil {
		return fmt.Errorf("set color: %w", err)
	}
	return nil
}

func (d *LifxBulb) StatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), commandTimeout)
	defer cancel()

	var current *lifxlan.Color
	err := session(d.Device, func(conn net.Conn) error {
		var err error
		current, err = d.GetColor(ctx, conn)
		return err
	})
	if err != nil {
		log.Printf("ERR: %s: get color: %s", d.label, err)
		writeError(w, http.StatusInternalServerError, "unable to get device color")
		return
	}

	writeStatus(w, fromLifx(current))
}

func (d *LifxBulb) PowerHandler(w http.ResponseWriter, r *http.Request) {
	powerHandler(d, w, r)
}

func (d *LifxBulb) Label() string {
	return d.label
}

func (d *LifxBulb) String() string {
	return d.Device.HardwareVersion().String()
}

func toLifx(c *Color) lifxlan.Color {
	return lifxlan.Color{
		Hue:        c.Hue,
		Saturation: c.Saturation,
		Brightness: c.Brightness,
		Kelvin:     c.Kelvin,
	}
}

func fromLifx(c *lifxlan.Color) *Color {
	return &Color{
		Hue:        c.Hue,
		Saturation: c.Saturation,
		Brightness: c.Brightness,
		Kelvin:     c.Kelvin,
	}
}
