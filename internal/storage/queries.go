package storage

import (
	"database/sql"
	"fmt"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

// MatchExists returns true if the match is already stored.
func (db *DB) MatchExists(matchID int) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch inserts a match record. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertMatch(s model.MatchSummary) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO matches(match_id, home_team, away_team, match_date, fps, players, frames)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.MatchID, s.HomeTeam, s.AwayTeam, s.MatchDate, s.FPS, s.Players, s.Frames,
	)
	return err
}

// InsertPlayerPhysical bulk-inserts player physical rows in a transaction.
func (db *DB) InsertPlayerPhysical(rows []model.PlayerPhysical) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO player_physical(
			match_id, player_id, name, team, number,
			minutes_played, samples, detection_rate, anomaly_count,
			total_distance_m, sprint_distance_m, hsr_distance_m,
			max_speed_kmh, avg_speed_kmh,
			standing_m, walking_m, jogging_m, running_m, hsr_zone_m, sprint_zone_m
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(
			r.MatchID, r.PlayerID, r.Name, r.Team, r.Number,
			r.MinutesPlayed, r.Samples, r.DetectionRate, r.AnomalyCount,
			r.TotalDistance, r.SprintDistance, r.HSRDistance,
			r.MaxSpeed, r.AvgSpeed,
			r.ZoneDistances[0], r.ZoneDistances[1], r.ZoneDistances[2],
			r.ZoneDistances[3], r.ZoneDistances[4], r.ZoneDistances[5],
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// InsertPhasePhysical bulk-inserts phase aggregation rows in a transaction.
func (db *DB) InsertPhasePhysical(rows []model.PhasePhysical) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO phase_physical(
			match_id, player_id, phase_index, possession_phase,
			start_frame, end_frame, avg_speed_ms, avg_speed_kmh, avg_x, avg_y
		) VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(
			r.MatchID, r.PlayerID, r.PhaseIndex, r.PossessionPhase,
			r.StartFrame, r.EndFrame, r.AvgSpeedMs, r.AvgSpeedKmh, r.AvgX, r.AvgY,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListMatches returns stored matches, newest first.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, home_team, away_team, match_date, fps, players, frames
		FROM matches ORDER BY match_date DESC, match_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		var s model.MatchSummary
		if err := rows.Scan(&s.MatchID, &s.HomeTeam, &s.AwayTeam, &s.MatchDate, &s.FPS, &s.Players, &s.Frames); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetMatch returns one match summary, or nil when not stored.
func (db *DB) GetMatch(matchID int) (*model.MatchSummary, error) {
	var s model.MatchSummary
	err := db.conn.QueryRow(`
		SELECT match_id, home_team, away_team, match_date, fps, players, frames
		FROM matches WHERE match_id = ?`, matchID).
		Scan(&s.MatchID, &s.HomeTeam, &s.AwayTeam, &s.MatchDate, &s.FPS, &s.Players, &s.Frames)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const playerPhysicalColumns = `
	match_id, player_id, name, team, number,
	minutes_played, samples, detection_rate, anomaly_count,
	total_distance_m, sprint_distance_m, hsr_distance_m,
	max_speed_kmh, avg_speed_kmh,
	standing_m, walking_m, jogging_m, running_m, hsr_zone_m, sprint_zone_m`

func scanPlayerPhysical(rows *sql.Rows) (model.PlayerPhysical, error) {
	var r model.PlayerPhysical
	err := rows.Scan(
		&r.MatchID, &r.PlayerID, &r.Name, &r.Team, &r.Number,
		&r.MinutesPlayed, &r.Samples, &r.DetectionRate, &r.AnomalyCount,
		&r.TotalDistance, &r.SprintDistance, &r.HSRDistance,
		&r.MaxSpeed, &r.AvgSpeed,
		&r.ZoneDistances[0], &r.ZoneDistances[1], &r.ZoneDistances[2],
		&r.ZoneDistances[3], &r.ZoneDistances[4], &r.ZoneDistances[5],
	)
	return r, err
}

// GetPlayerPhysical returns all player rows for a match, longest distance first.
func (db *DB) GetPlayerPhysical(matchID int) ([]model.PlayerPhysical, error) {
	rows, err := db.conn.Query(`
		SELECT`+playerPhysicalColumns+`
		FROM player_physical WHERE match_id = ? ORDER BY total_distance_m DESC`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayerPhysical
	for rows.Next() {
		r, err := scanPlayerPhysical(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetPlayerInMatch returns one player's physical row, or nil when absent.
func (db *DB) GetPlayerInMatch(matchID, playerID int) (*model.PlayerPhysical, error) {
	rows, err := db.conn.Query(`
		SELECT`+playerPhysicalColumns+`
		FROM player_physical WHERE match_id = ? AND player_id = ?`, matchID, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	r, err := scanPlayerPhysical(rows)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetPhasePhysical returns one player's phase aggregation rows in phase order.
func (db *DB) GetPhasePhysical(matchID, playerID int) ([]model.PhasePhysical, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, player_id, phase_index, possession_phase,
		       start_frame, end_frame, avg_speed_ms, avg_speed_kmh, avg_x, avg_y
		FROM phase_physical WHERE match_id = ? AND player_id = ? ORDER BY phase_index`, matchID, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PhasePhysical
	for rows.Next() {
		var r model.PhasePhysical
		if err := rows.Scan(&r.MatchID, &r.PlayerID, &r.PhaseIndex, &r.PossessionPhase,
			&r.StartFrame, &r.EndFrame, &r.AvgSpeedMs, &r.AvgSpeedKmh, &r.AvgX, &r.AvgY); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteMatch removes a match and, via cascade, its physical rows.
func (db *DB) DeleteMatch(matchID int) error {
	_, err := db.conn.Exec("DELETE FROM matches WHERE match_id = ?", matchID)
	return err
}

// QueryRaw runs an arbitrary query and returns column names plus stringified
// rows, for the sql command.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
