// Package report renders CLI tables for stored physical metrics.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
	"github.com/pitchlab/go-pitch-metrics/internal/pipeline"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, s model.MatchSummary) {
	fmt.Fprintf(w, "\n%s vs %s  |  Date: %s  |  %.0f fps  |  %d players  |  %d frames  |  Match: %d\n\n",
		s.HomeTeam, s.AwayTeam, s.MatchDate, s.FPS, s.Players, s.Frames, s.MatchID)
}

// PrintPhysicalTable prints the per-player physical summary.
// If focusPlayerID is non-zero, that player's row is marked with ">".
func PrintPhysicalTable(w io.Writer, rows []model.PlayerPhysical, focusPlayerID int) {
	table := newTable(w)
	table.Header(" ", "NAME", "TEAM", "#", "MIN", "DIST_KM", "HSR_M", "SPRINT_M", "MAX_KMH", "AVG_KMH", "DET%", "ANOM")

	for _, r := range rows {
		marker := " "
		if focusPlayerID != 0 && r.PlayerID == focusPlayerID {
			marker = ">"
		}
		table.Append(
			marker,
			r.Name,
			r.Team,
			strconv.Itoa(r.Number),
			fmt.Sprintf("%.0f", r.MinutesPlayed),
			fmt.Sprintf("%.2f", r.TotalDistance/1000),
			fmt.Sprintf("%.0f", r.HSRDistance),
			fmt.Sprintf("%.0f", r.SprintDistance),
			fmt.Sprintf("%.1f", r.MaxSpeed),
			fmt.Sprintf("%.1f", r.AvgSpeed),
			fmt.Sprintf("%.0f%%", r.DetectionRate*100),
			strconv.Itoa(r.AnomalyCount),
		)
	}
	table.Render()
}

// PrintZoneTable prints the distance-per-movement-category breakdown.
func PrintZoneTable(w io.Writer, rows []model.PlayerPhysical, focusPlayerID int) {
	table := newTable(w)
	table.Header(" ", "NAME", "STAND_M", "WALK_M", "JOG_M", "RUN_M", "HSR_M", "SPRINT_M")

	for _, r := range rows {
		marker := " "
		if focusPlayerID != 0 && r.PlayerID == focusPlayerID {
			marker = ">"
		}
		cells := []any{marker, r.Name}
		for _, d := range r.ZoneDistances {
			cells = append(cells, fmt.Sprintf("%.0f", d))
		}
		table.Append(cells...)
	}
	table.Render()
}

// PrintComparison prints two players side by side.
func PrintComparison(w io.Writer, a, b model.PlayerPhysical) {
	table := newTable(w)
	table.Header("METRIC", a.Name, b.Name)

	row := func(name, va, vb string) { table.Append(name, va, vb) }
	row("Team", a.Team, b.Team)
	row("Minutes", fmt.Sprintf("%.0f", a.MinutesPlayed), fmt.Sprintf("%.0f", b.MinutesPlayed))
	row("Total distance (km)", fmt.Sprintf("%.2f", a.TotalDistance/1000), fmt.Sprintf("%.2f", b.TotalDistance/1000))
	row("HSR distance (m)", fmt.Sprintf("%.0f", a.HSRDistance), fmt.Sprintf("%.0f", b.HSRDistance))
	row("Sprint distance (m)", fmt.Sprintf("%.0f", a.SprintDistance), fmt.Sprintf("%.0f", b.SprintDistance))
	row("Max speed (km/h)", fmt.Sprintf("%.1f", a.MaxSpeed), fmt.Sprintf("%.1f", b.MaxSpeed))
	row("Avg speed (km/h)", fmt.Sprintf("%.1f", a.AvgSpeed), fmt.Sprintf("%.1f", b.AvgSpeed))
	row("Detection rate", fmt.Sprintf("%.0f%%", a.DetectionRate*100), fmt.Sprintf("%.0f%%", b.DetectionRate*100))
	table.Render()
}

// PrintPhaseTable prints one player's phase-of-play averages with the match
// clock for each phase window.
func PrintPhaseTable(w io.Writer, rows []model.PhasePhysical, periodStarts map[int]int, fps float64) {
	table := newTable(w)
	table.Header("PHASE", "POSSESSION", "CLOCK", "FRAMES", "AVG_KMH", "AVG_X", "AVG_Y")

	for _, r := range rows {
		// Phase windows carry no period; frame-relative clock from period 1
		// start is the convention the upstream tables use.
		clock := pipeline.MatchClock(r.StartFrame, 1, periodStarts, fps)
		table.Append(
			strconv.Itoa(r.PhaseIndex),
			r.PossessionPhase,
			clock,
			fmt.Sprintf("%d-%d", r.StartFrame, r.EndFrame),
			fmt.Sprintf("%.1f", r.AvgSpeedKmh),
			fmt.Sprintf("%.1f", r.AvgX),
			fmt.Sprintf("%.1f", r.AvgY),
		)
	}
	table.Render()
}

// PrintDiagnostics writes pipeline diagnostics for one player, if any.
func PrintDiagnostics(w io.Writer, name string, diags []model.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", name)
	for _, d := range diags {
		fmt.Fprintf(w, "  %s\n", d)
	}
}
