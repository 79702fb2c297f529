package device

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"
)

const (
	defaultLifxPort        = 56700
	defaultPowerTransition = 2 * time.Second
	defaultRetryBackoff    = 250 * time.Millisecond
	defaultRetryLimit      = 5

	minKelvin = 1500
	maxKelvin = 9000
)

var ErrUnknownType = errors.New("unknown device type")

type Type string

const (
	TypeLifx    Type = "lifx"
	TypeVirtual Type = "virtual"
)

// Color is an HSBK color in lifx LAN units. Hue, Saturation, and
// Brightness span the full uint16 range.
type Color struct {
	Hue        uint16
	Saturation uint16
	Brightness uint16
	Kelvin     uint16
}

// NewColor converts hue in degrees, saturation and brightness in percent
// and a color temperature into a Color. Out of range values are clamped.
//
// conversion formulas are defined by lifx LAN documentation
// https://lan.developer.lifx.com/docs/representing-color-with-hsbk
func NewColor(hue, saturation, brightness float64, kelvin int) *Color {
	return &Color{
		Hue:        uint16(math.Floor(clamp(hue, 0, 360) / 360 * math.MaxUint16)),
		Saturation: uint16(math.Floor(clamp(saturation, 0, 100) / 100 * math.MaxUint16)),
		Brightness: uint16(math.Floor(clamp(brightness, 0, 100) / 100 * math.MaxUint16)),
		Kelvin:     uint16(clamp(float64(kelvin), minKelvin, maxKelvin)),
	}
}

// Scale returns a copy of c with brightness multiplied by factor, which is
// clamped to [0, 1]
func (c Color) Scale(factor float64) *Color {
	c.Brightness = uint16(math.Round(float64(c.Brightness) * clamp(factor, 0, 1)))
	return &c
}

func (c Color) HueDegrees() float64 {
	return float64(c.Hue) * 360.0 / 0x10000
}

func (c Color) SaturationPercent() float64 {
	return float64(c.Saturation) / math.MaxUint16 * 100
}

func (c Color) BrightnessPercent() float64 {
	return float64(c.Brightness) / math.MaxUint16 * 100
}

func (c Color) String() string {
	return fmt.Sprintf(
		`{"hue": %.2f, "saturation": %.2f, "brightness": %.2f, "kelvin": %d}`,
		c.HueDegrees(),
		c.SaturationPercent(),
		c.BrightnessPercent(),
		c.Kelvin,
	)
}

type Device interface {
	StatusHandler(http.ResponseWriter, *http.Request)
	PowerHandler(http.ResponseWriter, *http.Request)
	Transition(*Color, time.Duration) error
	Label() string
	String() string
}

// Connect locates a device of the given type. Host is an address
// without port for lifx devices.
func Connect(label string, typ Type, host, mac string) (Device, error) {
	switch typ {
	case TypeLifx:
		addr := fmt.Sprintf("%s:%d", host, defaultLifxPort)
		bulb, err := ConnectLifx(label, addr, mac)
		if err != nil {
			return nil, err
		}
		return bulb, nil
	case TypeVirtual:
		return NewVirtual(label), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typ)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}
