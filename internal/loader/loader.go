// Package loader reads SkillCorner open-data match files: per-frame tracking
// JSONL, match metadata JSON, and the dynamic-events and phases-of-play CSV
// tables. Files are read from a local match directory first, with an HTTP
// fetcher for pulling them from the published open-data repository.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

// Standard file names inside <dir>/<matchID>/.
const (
	trackingFile = "%d_tracking_extrapolated.jsonl"
	metaFile     = "%d_match.json"
	eventsFile   = "%d_dynamic_events.csv"
	phasesFile   = "%d_phases_of_play.csv"
)

// nominalFPS is the SkillCorner broadcast tracking rate. True per-sample
// deltas always come from frame timestamps.
const nominalFPS = 10.0

// Match bundles everything loaded for one match. Events and Phases are nil
// when their files are absent; only tracking and metadata are mandatory.
type Match struct {
	Meta   model.MatchMeta
	Tracks map[int]model.Track // by trackable object ID
	Frames int
	Events []model.Event
	Phases []model.PhaseWindow
}

// MetaPath returns the metadata file path inside a match data directory.
func MetaPath(dir string, matchID int) string {
	return filepath.Join(dir, fmt.Sprintf("%d", matchID), fmt.Sprintf(metaFile, matchID))
}

// LoadMatch reads the match files from <dir>/<matchID>/.
func LoadMatch(dir string, matchID int) (*Match, error) {
	matchDir := filepath.Join(dir, fmt.Sprintf("%d", matchID))

	meta, err := LoadMeta(filepath.Join(matchDir, fmt.Sprintf(metaFile, matchID)), matchID)
	if err != nil {
		return nil, fmt.Errorf("load metadata: %w", err)
	}

	tracks, frames, err := LoadTracking(filepath.Join(matchDir, fmt.Sprintf(trackingFile, matchID)))
	if err != nil {
		return nil, fmt.Errorf("load tracking: %w", err)
	}

	m := &Match{Meta: *meta, Tracks: tracks, Frames: frames}

	// Event and phase tables are optional companions.
	events, err := LoadEvents(filepath.Join(matchDir, fmt.Sprintf(eventsFile, matchID)))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load events: %w", err)
	}
	m.Events = events

	phases, err := LoadPhases(filepath.Join(matchDir, fmt.Sprintf(phasesFile, matchID)))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load phases: %w", err)
	}
	m.Phases = phases

	return m, nil
}

// matchJSON mirrors the open-data match.json layout. Period boundaries show
// up under either "periods_extra" or "periods" depending on data vintage.
type matchJSON struct {
	ID       int    `json:"id"`
	Date     string `json:"date_time"`
	HomeTeam struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		ShortName string `json:"short_name"`
	} `json:"home_team"`
	AwayTeam struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		ShortName string `json:"short_name"`
	} `json:"away_team"`
	Players []struct {
		TrackableObject int    `json:"trackable_object"`
		FirstName       string `json:"first_name"`
		LastName        string `json:"last_name"`
		Number          int    `json:"number"`
		TeamID          int    `json:"team_id"`
		PlayerRole      struct {
			Name string `json:"name"`
		} `json:"player_role"`
	} `json:"players"`
	PeriodsExtra []periodJSON `json:"periods_extra"`
	Periods      []periodJSON `json:"periods"`
}

type periodJSON struct {
	Period     int `json:"period"`
	ID         int `json:"id"`
	StartFrame int `json:"start_frame"`
	EndFrame   int `json:"end_frame"`
}

// LoadMeta parses a match.json file.
func LoadMeta(path string, matchID int) (*model.MatchMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var mj matchJSON
	if err := json.Unmarshal(data, &mj); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	meta := &model.MatchMeta{
		MatchID:    matchID,
		HomeTeamID: mj.HomeTeam.ID,
		HomeTeam:   teamName(mj.HomeTeam.Name, mj.HomeTeam.ShortName),
		AwayTeamID: mj.AwayTeam.ID,
		AwayTeam:   teamName(mj.AwayTeam.Name, mj.AwayTeam.ShortName),
		MatchDate:  mj.Date,
		FPS:        nominalFPS,
	}
	if mj.ID != 0 {
		meta.MatchID = mj.ID
	}

	for _, p := range mj.Players {
		meta.Players = append(meta.Players, model.Player{
			ID:     p.TrackableObject,
			Name:   playerName(p.FirstName, p.LastName),
			Number: p.Number,
			TeamID: p.TeamID,
			Role:   p.PlayerRole.Name,
			IsHome: p.TeamID == mj.HomeTeam.ID,
		})
	}

	periods := mj.PeriodsExtra
	if len(periods) == 0 {
		periods = mj.Periods
	}
	for _, p := range periods {
		id := p.Period
		if id == 0 {
			id = p.ID
		}
		if id == 0 {
			continue
		}
		meta.Periods = append(meta.Periods, model.Period{
			ID:         id,
			StartFrame: p.StartFrame,
			EndFrame:   p.EndFrame,
		})
	}
	return meta, nil
}

func teamName(name, short string) string {
	if name != "" {
		return name
	}
	return short
}

func playerName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
