package device

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"
)

var errBrightnessRequired = errors.New("brightness parameter is required")

// ParseColorForm reads hue, saturation, brightness, kelvin, and
// transition from a request's form values. Brightness is required.
// Transition accepts a go duration or a bare number of milliseconds.
func ParseColorForm(r *http.Request) (*Color, time.Duration, error) {
	err := r.ParseForm()
	if err != nil {
		return nil, 0, fmt.Errorf("parse form: %w", err)
	}

	if _, ok := r.Form["brightness"]; !ok {
		return nil, 0, errBrightnessRequired
	}

	var hue, saturation, brightness float64
	for name, dst := range map[string]*float64{
		"hue":        &hue,
		"saturation": &saturation,
		"brightness": &brightness,
	} {
		if _, ok := r.Form[name]; !ok {
			continue
		}

		param := r.FormValue(name)
		p, err := strconv.ParseFloat(param, 64)
		if err != nil || math.IsNaN(p) {
			return nil, 0, fmt.Errorf("unable to parse %s parameter %q", name, param)
		}
		*dst = p
	}

	kelvin := minKelvin
	if _, ok := r.Form["kelvin"]; ok {
		param := r.FormValue("kelvin")
		p, err := strconv.Atoi(param)
		if err != nil {
			return nil, 0, fmt.Errorf("unable to parse kelvin parameter %q", param)
		}
		kelvin = p
	}

	transition := defaultPowerTransition
	if _, ok := r.Form["transition"]; ok {
		param := r.FormValue("transition")
		_, err := strconv.Atoi(param)
		if err == nil && param != "" {
			param = param + "ms"
		}

		parsed, err := time.ParseDuration(param)
		if err != nil {
			return nil, 0, fmt.Errorf("unable to parse transition parameter %q", param)
		}
		transition = parsed
	}

	return NewColor(hue, saturation, brightness, kelvin), transition, nil
}

// powerHandler applies the request's color to d
func powerHandler(d Device, w http.ResponseWriter, r *http.Request) {
	color, transition, err := ParseColorForm(r)
	if err != nil {
		log.Printf("ERR: %s: %s", d.Label(), err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = d.Transition(color, transition)
	if err != nil {
		log.Printf("ERR: transition: %s", err)
		writeError(w, http.StatusInternalServerError, "unable to set brightness on device")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(
		w,
		`{"hue": %.2f, "saturation": %.2f, "brightness": %.2f, "kelvin": %d, "transition": %q}`,
		color.HueDegrees(),
		color.SaturationPercent(),
		color.BrightnessPercent(),
		color.Kelvin,
		transition,
	)
}

func writeStatus(w http.ResponseWriter, color *Color) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, color.String())
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"error": %q}`, msg)
}
