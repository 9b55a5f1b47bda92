package storage

import (
	"testing"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleMatch(id int) model.MatchSummary {
	return model.MatchSummary{
		MatchID:   id,
		HomeTeam:  "Home FC",
		AwayTeam:  "Away United",
		MatchDate: "2024-03-01",
		FPS:       10,
		Players:   22,
		Frames:    54000,
	}
}

func samplePhysical(matchID, playerID int) model.PlayerPhysical {
	return model.PlayerPhysical{
		MatchID:       matchID,
		PlayerID:      playerID,
		Name:          "Player",
		Team:          "Home FC",
		Number:        9,
		MinutesPlayed: 90,
		Samples:       54000,
		DetectionRate: 0.98,
		AnomalyCount:  2,
		DistanceMetrics: model.DistanceMetrics{
			TotalDistance:  10450.5,
			SprintDistance: 280.2,
			HSRDistance:    640.8,
			MaxSpeed:       33.1,
			AvgSpeed:       7.2,
		},
		ZoneDistances: [6]float64{1200, 4100, 2300, 1900, 360, 280},
	}
}

func TestMatchInsertAndExists(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertMatch(sampleMatch(2068)); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}

	exists, err := db.MatchExists(2068)
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if !exists {
		t.Error("expected match to exist after insert")
	}

	exists2, _ := db.MatchExists(9999)
	if exists2 {
		t.Error("expected unknown match to not exist")
	}
}

func TestInsertMatchIdempotent(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertMatch(sampleMatch(1)); err != nil {
		t.Fatalf("first InsertMatch: %v", err)
	}
	updated := sampleMatch(1)
	updated.Players = 20
	if err := db.InsertMatch(updated); err != nil {
		t.Fatalf("second InsertMatch: %v", err)
	}

	got, err := db.GetMatch(1)
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if got == nil || got.Players != 20 {
		t.Errorf("expected replaced row with 20 players, got %+v", got)
	}
}

func TestListMatches(t *testing.T) {
	db := openMemDB(t)

	a := sampleMatch(1)
	a.MatchDate = "2024-01-01"
	b := sampleMatch(2)
	b.MatchDate = "2024-06-01"
	for _, s := range []model.MatchSummary{a, b} {
		if err := db.InsertMatch(s); err != nil {
			t.Fatalf("InsertMatch: %v", err)
		}
	}

	list, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(list))
	}
	// Ordered by match_date DESC — match 2 is newest.
	if list[0].MatchID != 2 {
		t.Errorf("expected match 2 first (newest), got %d", list[0].MatchID)
	}
}

func TestPlayerPhysicalRoundTrip(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertMatch(sampleMatch(10)); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}

	rows := []model.PlayerPhysical{samplePhysical(10, 101), samplePhysical(10, 102)}
	rows[0].TotalDistance = 12000 // highest distance listed first
	if err := db.InsertPlayerPhysical(rows); err != nil {
		t.Fatalf("InsertPlayerPhysical: %v", err)
	}

	got, err := db.GetPlayerPhysical(10)
	if err != nil {
		t.Fatalf("GetPlayerPhysical: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].PlayerID != 101 {
		t.Errorf("expected player 101 first (most distance), got %d", got[0].PlayerID)
	}
	if got[0].TotalDistance != 12000 {
		t.Errorf("total distance: got %v want 12000", got[0].TotalDistance)
	}
	if got[1].ZoneDistances != rows[1].ZoneDistances {
		t.Errorf("zone distances: got %v want %v", got[1].ZoneDistances, rows[1].ZoneDistances)
	}
	if got[1].DetectionRate != 0.98 {
		t.Errorf("detection rate: got %v", got[1].DetectionRate)
	}
}

func TestGetPlayerInMatch(t *testing.T) {
	db := openMemDB(t)

	db.InsertMatch(sampleMatch(10))
	db.InsertPlayerPhysical([]model.PlayerPhysical{samplePhysical(10, 101)})

	got, err := db.GetPlayerInMatch(10, 101)
	if err != nil {
		t.Fatalf("GetPlayerInMatch: %v", err)
	}
	if got == nil || got.PlayerID != 101 {
		t.Fatalf("expected player 101, got %+v", got)
	}

	missing, err := db.GetPlayerInMatch(10, 999)
	if err != nil {
		t.Fatalf("GetPlayerInMatch missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown player")
	}
}

func TestPhasePhysicalRoundTrip(t *testing.T) {
	db := openMemDB(t)

	db.InsertMatch(sampleMatch(10))
	rows := []model.PhasePhysical{
		{MatchID: 10, PlayerID: 101, PhaseIndex: 0, PossessionPhase: "in_possession", StartFrame: 0, EndFrame: 499, AvgSpeedMs: 2.1, AvgSpeedKmh: 7.56, AvgX: -12.5, AvgY: 4.0},
		{MatchID: 10, PlayerID: 101, PhaseIndex: 1, PossessionPhase: "out_of_possession", StartFrame: 500, EndFrame: 999, AvgSpeedMs: 1.4, AvgSpeedKmh: 5.04, AvgX: 8.3, AvgY: -2.2},
	}
	if err := db.InsertPhasePhysical(rows); err != nil {
		t.Fatalf("InsertPhasePhysical: %v", err)
	}

	got, err := db.GetPhasePhysical(10, 101)
	if err != nil {
		t.Fatalf("GetPhasePhysical: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 phase rows, got %d", len(got))
	}
	if got[0].PhaseIndex != 0 || got[1].PhaseIndex != 1 {
		t.Errorf("expected phase order 0,1; got %d,%d", got[0].PhaseIndex, got[1].PhaseIndex)
	}
	if got[1].PossessionPhase != "out_of_possession" {
		t.Errorf("possession phase: got %q", got[1].PossessionPhase)
	}
}

func TestDeleteMatchCascades(t *testing.T) {
	db := openMemDB(t)

	db.InsertMatch(sampleMatch(10))
	db.InsertPlayerPhysical([]model.PlayerPhysical{samplePhysical(10, 101)})
	db.InsertPhasePhysical([]model.PhasePhysical{{MatchID: 10, PlayerID: 101, PhaseIndex: 0, StartFrame: 0, EndFrame: 9}})

	if err := db.DeleteMatch(10); err != nil {
		t.Fatalf("DeleteMatch: %v", err)
	}

	got, _ := db.GetMatch(10)
	if got != nil {
		t.Error("expected match gone after delete")
	}
	players, _ := db.GetPlayerPhysical(10)
	if len(players) != 0 {
		t.Errorf("expected player rows cascaded, got %d", len(players))
	}
	phases, _ := db.GetPhasePhysical(10, 101)
	if len(phases) != 0 {
		t.Errorf("expected phase rows cascaded, got %d", len(phases))
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)

	db.InsertMatch(sampleMatch(10))
	cols, rows, err := db.QueryRaw("SELECT match_id, home_team FROM matches")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 2 || cols[0] != "match_id" {
		t.Errorf("unexpected columns %v", cols)
	}
	if len(rows) != 1 || rows[0][0] != "10" || rows[0][1] != "Home FC" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestInsertEmptySlices(t *testing.T) {
	db := openMemDB(t)
	if err := db.InsertPlayerPhysical(nil); err != nil {
		t.Fatalf("InsertPlayerPhysical(nil): %v", err)
	}
	if err := db.InsertPhasePhysical(nil); err != nil {
		t.Fatalf("InsertPhasePhysical(nil): %v", err)
	}
}
