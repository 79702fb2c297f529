package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/subtlepseudonym/heliocore"
	"github.com/subtlepseudonym/heliocore/metrics"
	"github.com/subtlepseudonym/heliocore/solar"
)

const dateFormat = "2006-01-02"

type orbitalDegreeResponse struct {
	Timestamp     int64   `json:"timestamp"`
	JulianDay     float64 `json:"julian_day"`
	OrbitalDegree float64 `json:"orbital_degree"`
	Ephemeris     string  `json:"ephemeris"`
}

type zenithAngleResponse struct {
	Timestamp      int64   `json:"timestamp"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	ZenithAngle    float64 `json:"zenith_angle"`
	Altitude       float64 `json:"altitude"`
	LightPotential float64 `json:"light_potential"`
	Ephemeris      string  `json:"ephemeris"`
}

type eventsResponse struct {
	Date      string     `json:"date"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Sunrise   *time.Time `json:"sunrise,omitempty"`
	Sunset    *time.Time `json:"sunset,omitempty"`
	Noon      time.Time  `json:"noon"`
	Daylight  string     `json:"daylight"`
	PolarDay  bool       `json:"polar_day"`
}

func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) orbitalDegree(w http.ResponseWriter, r *http.Request) {
	timestamp, err := s.timestamp(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	jd, err := solar.JulianDay(timestamp)
	metrics.Computations.WithLabelValues("orbital_degree", metrics.Result(err)).Inc()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	eph := s.calc.Ephemeris()
	writeJSON(w, http.StatusOK, orbitalDegreeResponse{
		Timestamp:     timestamp,
		JulianDay:     jd,
		OrbitalDegree: eph.OrbitalDegree(jd),
		Ephemeris:     eph.Name(),
	})
}

func (s *Server) zenithAngle(w http.ResponseWriter, r *http.Request) {
	timestamp, err := s.timestamp(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	loc, err := s.locationParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	zenith, err := s.calc.ZenithAngle(loc.Latitude, loc.Longitude, timestamp)
	metrics.Computations.WithLabelValues("zenith_angle", metrics.Result(err)).Inc()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, zenithAngleResponse{
		Timestamp:      timestamp,
		Latitude:       loc.Latitude,
		Longitude:      loc.Longitude,
		ZenithAngle:    zenith,
		Altitude:       90 - zenith,
		LightPotential: heliocore.LightPotential(zenith),
		Ephemeris:      s.calc.Ephemeris().Name(),
	})
}

func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	date := s.now().UTC()
	if param := r.URL.Query().Get("date"); param != "" {
		parsed, err := time.Parse(dateFormat, param)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("parse date %q: expected YYYY-MM-DD", param))
			return
		}
		date = parsed
	}

	loc, err := s.locationParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	events, err := s.calc.SolarEvents(loc, date)
	metrics.Computations.WithLabelValues("solar_events", metrics.Result(err)).Inc()
	if err != nil && !errors.Is(err, heliocore.ErrNoSunriseSunset) {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res := eventsResponse{
		Date:      events.Date.Format(dateFormat),
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Noon:      events.Noon,
		Daylight:  events.Daylight.String(),
		PolarDay:  events.PolarDay,
	}
	if err == nil {
		res.Sunrise = &events.Sunrise
		res.Sunset = &events.Sunset
	} else if events.PolarDay {
		res.Daylight = (24 * time.Hour).String()
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) deviceStatus(w http.ResponseWriter, r *http.Request) {
	dev, ok := s.devices[r.PathValue("label")]
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("unknown device"))
		return
	}
	dev.StatusHandler(w, r)
}

func (s *Server) devicePower(w http.ResponseWriter, r *http.Request) {
	dev, ok := s.devices[r.PathValue("label")]
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("unknown device"))
		return
	}
	dev.PowerHandler(w, r)
}

// timestamp reads the millisecond timestamp parameter, defaulting to now
func (s *Server) timestamp(r *http.Request) (int64, error) {
	param := r.URL.Query().Get("timestamp")
	if param == "" {
		return s.now().UnixMilli(), nil
	}

	timestamp, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse timestamp %q: %w", param, heliocore.ErrInvalidTimestamp)
	}
	return timestamp, nil
}

// locationParam reads lat and lon, defaulting to the server's location
// when both are absent
func (s *Server) locationParam(r *http.Request) (heliocore.Location, error) {
	query := r.URL.Query()
	if !query.Has("lat") && !query.Has("lon") {
		return s.location, nil
	}

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		return heliocore.Location{}, fmt.Errorf("parse lat %q: %w", query.Get("lat"), heliocore.ErrInvalidObserverCoordinate)
	}

	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		return heliocore.Location{}, fmt.Errorf("parse lon %q: %w", query.Get("lon"), heliocore.ErrInvalidObserverCoordinate)
	}

	return heliocore.Location{Latitude: lat, Longitude: lon}, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Printf("ERR: encode response: %s", err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
