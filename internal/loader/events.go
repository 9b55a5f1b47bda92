package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

// LoadEvents reads the dynamic-events CSV. Column order varies across
// open-data vintages, so fields are resolved by header name with a few known
// aliases. Rows missing a frame reference are skipped.
func LoadEvents(path string) ([]model.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := headerIndex(header)

	var events []model.Event
	row := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		row++

		start, ok := intField(rec, col, "start_frame", "frame_start", "frame")
		if !ok {
			continue
		}
		end, _ := intField(rec, col, "end_frame", "frame_end")
		id, _ := intField(rec, col, "event_id", "id")
		playerID, _ := intField(rec, col, "player_id")
		teamID, _ := intField(rec, col, "team_id")

		events = append(events, model.Event{
			EventID:    id,
			PlayerID:   playerID,
			TeamID:     teamID,
			EventType:  stringField(rec, col, "event_type"),
			EndType:    stringField(rec, col, "end_type"),
			StartFrame: start,
			EndFrame:   end,
		})
	}
	return events, nil
}

// LoadPhases reads the phases-of-play CSV.
func LoadPhases(path string) ([]model.PhaseWindow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := headerIndex(header)

	var phases []model.PhaseWindow
	row := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		row++

		start, okS := intField(rec, col, "start_frame", "frame_start")
		end, okE := intField(rec, col, "end_frame", "frame_end")
		if !okS || !okE {
			continue
		}
		phases = append(phases, model.PhaseWindow{
			Index:           len(phases),
			PossessionPhase: stringField(rec, col, "possession_phase", "phase"),
			StartFrame:      start,
			EndFrame:        end,
		})
	}
	return phases, nil
}

func headerIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return col
}

func stringField(rec []string, col map[string]int, names ...string) string {
	for _, n := range names {
		if i, ok := col[n]; ok && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
	}
	return ""
}

func intField(rec []string, col map[string]int, names ...string) (int, bool) {
	for _, n := range names {
		i, ok := col[n]
		if !ok || i >= len(rec) {
			continue
		}
		s := strings.TrimSpace(rec[i])
		if s == "" {
			continue
		}
		// Some exports write frames as floats.
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return int(v), true
		}
	}
	return 0, false
}
