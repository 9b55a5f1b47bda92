package loader

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

// frameJSON is one line of the tracking JSONL file.
type frameJSON struct {
	Frame     int          `json:"frame"`
	Timestamp clockSeconds `json:"timestamp"`
	Period    int          `json:"period"`
	Data      []struct {
		TrackableObject int      `json:"trackable_object"`
		X               *float64 `json:"x"`
		Y               *float64 `json:"y"`
	} `json:"data"`
}

// clockSeconds accepts either plain seconds or a "H:MM:SS.f" / "MM:SS.f"
// clock string, both of which occur across open-data vintages.
type clockSeconds float64

func (c *clockSeconds) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*c = 0
		return nil
	}
	if b[0] != '"' {
		v, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return fmt.Errorf("timestamp %s: %w", b, err)
		}
		*c = clockSeconds(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := parseClock(s)
	if err != nil {
		return err
	}
	*c = clockSeconds(v)
	return nil
}

// parseClock converts "H:MM:SS.f", "MM:SS.f" or "SS.f" to seconds.
func parseClock(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("malformed clock %q", s)
	}
	total := 0.0
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed clock %q: %w", s, err)
		}
		total = total*60 + v
	}
	return total, nil
}

// LoadTracking reads a tracking JSONL file into per-entity tracks keyed by
// trackable object ID, and reports the total frame count. Entities absent
// from a frame simply have no sample there; entities present with a null
// coordinate get a NaN, undetected sample so detection-rate accounting sees
// the frame.
func LoadTracking(path string) (map[int]model.Track, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	tracks := make(map[int]model.Track)
	frames := 0

	sc := bufio.NewScanner(f)
	// Frames with full 22-player data run long; give the scanner room.
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var fr frameJSON
		if err := json.Unmarshal([]byte(raw), &fr); err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", line, err)
		}
		frames++

		for _, d := range fr.Data {
			sample := model.TrackSample{
				Frame:     fr.Frame,
				Timestamp: float64(fr.Timestamp),
				Period:    fr.Period,
				X:         deref(d.X),
				Y:         deref(d.Y),
			}
			sample.IsDetected = !math.IsNaN(sample.X) && !math.IsNaN(sample.Y)
			tracks[d.TrackableObject] = append(tracks[d.TrackableObject], sample)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan tracking: %w", err)
	}
	return tracks, frames, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
