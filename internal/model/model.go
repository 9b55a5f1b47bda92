package model

import "fmt"

// CoordinateSystem identifies the convention a raw (x, y) stream was
// recorded in. It is inferred once per track from the value range and
// applied uniformly; it is never re-inferred mid-pipeline.
type CoordinateSystem int

const (
	SystemEmpty       CoordinateSystem = 0 // all-missing input, nothing to infer
	SystemUnitSquare  CoordinateSystem = 1 // [0,1] x [0,1]
	SystemPercentage  CoordinateSystem = 2 // [0,100] x [0,100]
	SystemPitchMeters CoordinateSystem = 3 // centered meters, [-52.5,52.5] x [-34,34]
)

func (c CoordinateSystem) String() string {
	switch c {
	case SystemEmpty:
		return "empty"
	case SystemUnitSquare:
		return "unit_square"
	case SystemPercentage:
		return "percentage"
	case SystemPitchMeters:
		return "pitch_meters"
	default:
		return "?"
	}
}

// Pitch dimensions in meters, SkillCorner-standard 105x68 centered at origin.
const (
	PitchLength     = 105.0
	PitchWidth      = 68.0
	HalfPitchLength = PitchLength / 2
	HalfPitchWidth  = PitchWidth / 2
)

// TrackSample is one entity at one tracking frame. Position may be NaN when
// the entity was not localized. Samples are never mutated after construction;
// pipeline stages produce new derived series.
type TrackSample struct {
	Frame      int
	Timestamp  float64 // seconds since recording start
	Period     int
	X, Y       float64 // raw coordinates, system unknown until inferred
	IsDetected bool
}

// Track is a time-ordered sequence of samples for a single entity (player or
// ball) across one match. The pipeline sorts and deduplicates by timestamp as
// its first step, so a Track that has been through Prepare is strictly
// increasing in timestamp.
type Track []TrackSample

// KinematicSeries holds the cleaned kinematic signals for one Track. All
// slices are parallel and index-aligned with the track they were derived
// from; filtering drops entries from both together, never from one alone.
type KinematicSeries struct {
	XSmooth   []float64
	YSmooth   []float64
	TimeDelta []float64 // instantaneous dt per sample, seconds
	SpeedRaw  []float64 // m/s, clamped but not re-smoothed
	Speed     []float64 // m/s, gap-aware re-smoothed
	SpeedKmh  []float64
	Accel     []float64 // m/s², gradient of smoothed speed

	// Degraded marks samples whose smoothed position was copied through
	// unsmoothed because the segment was too short for any valid window.
	Degraded []bool
}

// Len returns the common length of the series.
func (k *KinematicSeries) Len() int {
	if k == nil {
		return 0
	}
	return len(k.XSmooth)
}

// DistanceMetrics is the per-track physical summary every report consumes.
// Distances in meters, speeds in km/h. Immutable once computed.
type DistanceMetrics struct {
	TotalDistance  float64
	SprintDistance float64
	HSRDistance    float64 // inclusive of sprint distance
	MaxSpeed       float64
	AvgSpeed       float64
}

// ---- Diagnostics ----

// Severity grades a Diagnostic. None of these stop execution; tracking data
// is noisy and partial, and the pipeline degrades gracefully instead of
// halting.
type Severity int

const (
	SeverityInfo    Severity = 0
	SeverityWarning Severity = 1
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "info"
}

// Diagnostic codes emitted by the pipeline.
const (
	DiagOutOfBounds     = "coords_out_of_bounds"
	DiagSpeedAnomaly    = "speed_anomaly"
	DiagLowDetection    = "low_detection_rate"
	DiagUnreliableTrack = "unreliable_track"
	DiagDegradedSegment = "degraded_smoothing"
)

// Diagnostic is a structured warning record returned alongside pipeline
// results so callers can inspect or ignore data-quality issues without
// depending on a logging framework.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Count    int // samples affected, when meaningful
}

func (d Diagnostic) String() string {
	if d.Count > 0 {
		return fmt.Sprintf("[%s] %s: %s (n=%d)", d.Severity, d.Code, d.Message, d.Count)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Code, d.Message)
}

// ---- Match metadata ----

// Player is a roster entry from the match metadata.
type Player struct {
	ID     int // trackable object ID
	Name   string
	Number int
	TeamID int
	Role   string
	IsHome bool
}

// Period holds the frame boundaries of one match period.
type Period struct {
	ID         int
	StartFrame int
	EndFrame   int
}

// MatchMeta is the parsed match.json metadata.
type MatchMeta struct {
	MatchID    int
	HomeTeamID int
	HomeTeam   string
	AwayTeamID int
	AwayTeam   string
	MatchDate  string
	FPS        float64
	Players    []Player
	Periods    []Period
}

// PeriodStarts returns the period→start-frame mapping the match clock needs.
func (m *MatchMeta) PeriodStarts() map[int]int {
	starts := make(map[int]int, len(m.Periods))
	for _, p := range m.Periods {
		starts[p.ID] = p.StartFrame
	}
	return starts
}

// PlayerByID returns the roster entry for the given trackable ID, or nil.
func (m *MatchMeta) PlayerByID(id int) *Player {
	for i := range m.Players {
		if m.Players[i].ID == id {
			return &m.Players[i]
		}
	}
	return nil
}

// TeamName returns the display name for a roster entry's side.
func (m *MatchMeta) TeamName(p *Player) string {
	if p.IsHome {
		return m.HomeTeam
	}
	return m.AwayTeam
}

// ---- Events and phases (consumed for clock-aligned reporting only) ----

// Event is one row of the dynamic-events table.
type Event struct {
	EventID    int
	PlayerID   int
	TeamID     int
	EventType  string
	EndType    string
	StartFrame int
	EndFrame   int
}

// PhaseWindow is one possession phase of play, by frame range.
type PhaseWindow struct {
	Index           int
	PossessionPhase string
	StartFrame      int
	EndFrame        int
}

// ---- Aggregated rows (storage/report shapes) ----

// PlayerPhysical is the per-player per-match physical summary row.
type PlayerPhysical struct {
	MatchID  int
	PlayerID int
	Name     string
	Team     string
	Number   int

	MinutesPlayed float64
	Samples       int
	DetectionRate float64
	AnomalyCount  int

	DistanceMetrics

	// Distance per movement category (meters), indexed by pipeline.SpeedZone.
	ZoneDistances [6]float64
}

// PhasePhysical is one player's kinematic averages over one phase of play.
type PhasePhysical struct {
	MatchID         int
	PlayerID        int
	PhaseIndex      int
	PossessionPhase string
	StartFrame      int
	EndFrame        int
	AvgSpeedMs      float64
	AvgSpeedKmh     float64
	AvgX            float64
	AvgY            float64
}

// MatchSummary is a lightweight record for list/show commands.
type MatchSummary struct {
	MatchID   int
	HomeTeam  string
	AwayTeam  string
	MatchDate string
	FPS       float64
	Players   int
	Frames    int
}
