package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mauv0809/qwstats/ktxstats"
)

// summary is the revision independent view rendered by WriteSummary.
type summary struct {
	Map      string
	Mode     string
	Hostname string
	Date     time.Time
	Duration int
	Teams    []string
	Rows     []summaryRow
}

type summaryRow struct {
	Name   string
	Team   string
	Frags  int
	Deaths int
	Given  int
	Taken  int
	RL     float64
	LG     float64
	Points *int
	IsBot  bool
}

// WriteSummary writes a plain text overview of a match: a header followed by
// one line per player, highest frags first.
func WriteSummary(w io.Writer, doc any) error {
	var s summary
	switch m := doc.(type) {
	case *ktxstats.Match:
		s = summarizeMatch(m)
	case *ktxstats.LegacyMatch:
		s = summarizeLegacy(m)
	default:
		return fmt.Errorf("cannot summarize %T", doc)
	}
	return s.write(w)
}

func summarizeMatch(m *ktxstats.Match) summary {
	s := summary{
		Map:      m.Map,
		Mode:     m.Mode,
		Hostname: m.Hostname,
		Date:     m.Date.Time,
		Duration: m.Duration,
		Teams:    m.Teams,
	}
	for _, p := range m.Players {
		row := summaryRow{
			Name:   ktxstats.CleanName(p.Name),
			Team:   p.Team,
			Frags:  p.Stats.Frags,
			Deaths: p.Stats.Deaths,
			Given:  p.Dmg.Given,
			Taken:  p.Dmg.Taken,
			RL:     p.Weapons.RL.Acc.Percent(),
			LG:     p.Weapons.LG.Acc.Percent(),
			IsBot:  p.IsBot(),
		}
		if p.CTF != nil {
			points := p.CTF.Points
			row.Points = &points
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

func summarizeLegacy(m *ktxstats.LegacyMatch) summary {
	s := summary{
		Map:      m.Map,
		Mode:     m.Mode,
		Hostname: m.Hostname,
		Date:     m.Date.Time,
		Duration: m.Duration,
		Teams:    m.Teams,
	}
	for _, p := range m.Players {
		s.Rows = append(s.Rows, summaryRow{
			Name:   ktxstats.CleanName(p.Name),
			Team:   p.Team,
			Frags:  p.Stats.Frags,
			Deaths: p.Stats.Deaths,
			Given:  p.Dmg.Given,
			Taken:  p.Dmg.Taken,
			RL:     p.Weapons.RL.Acc.Percent(),
			LG:     p.Weapons.LG.Acc.Percent(),
		})
	}
	return s
}

func (s summary) write(w io.Writer) error {
	teams := "-"
	if len(s.Teams) > 0 {
		teams = strings.Join(s.Teams, " vs ")
	}
	date := "unknown date"
	if !s.Date.IsZero() {
		date = s.Date.Format("2006-01-02 15:04 MST")
	}
	if _, err := fmt.Fprintf(w, "%s on %s (%s)\n%s, %s, teams: %s\n\n",
		s.Mode, s.Map, s.Hostname, date, formatDuration(s.Duration), teams); err != nil {
		return err
	}

	// Ties keep document order.
	rows := append([]summaryRow(nil), s.Rows...)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Frags > rows[j].Frags
	})

	showCTF := false
	for _, r := range rows {
		if r.Points != nil {
			showCTF = true
			break
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "NAME\tTEAM\tFRAGS\tDEATHS\tGIVEN\tTAKEN\tRL%\tLG%"
	if showCTF {
		header += "\tPOINTS"
	}
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		name := r.Name
		if r.IsBot {
			name += " (bot)"
		}
		team := r.Team
		if team == "" {
			team = "-"
		}
		line := fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%d\t%.1f\t%.1f", name, team, r.Frags, r.Deaths, r.Given, r.Taken, r.RL, r.LG)
		if showCTF {
			points := "-"
			if r.Points != nil {
				points = fmt.Sprintf("%d", *r.Points)
			}
			line += "\t" + points
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}

func formatDuration(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}
