package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/riskibarqy/tournament-leaderboard/internal/app"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
)

type servicesBuilder func() (*app.Services, error)

type runner struct {
	build servicesBuilder
	out   io.Writer
	now   func() time.Time
}

var tournamentFlag = &cli.StringFlag{
	Name:     "tournament",
	Aliases:  []string{"t"},
	Usage:    "tournament id",
	Required: true,
}

func newCLI(build servicesBuilder, out io.Writer) *cli.App {
	r := &runner{build: build, out: out, now: time.Now}

	return &cli.App{
		Name:      "leaderboardctl",
		Usage:     "inspect tournament leaderboards from the configured score store",
		Writer:    out,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			{
				Name:   "tournaments",
				Usage:  "list configured tournaments",
				Action: r.listTournaments,
			},
			{
				Name:  "standings",
				Usage: "print cumulative standings",
				Flags: []cli.Flag{
					tournamentFlag,
					&cli.IntFlag{Name: "up-to-day", Usage: "last day to include (default: all days)"},
				},
				Action: r.standings,
			},
			{
				Name:  "day",
				Usage: "print the ranking of one day",
				Flags: []cli.Flag{
					tournamentFlag,
					&cli.IntFlag{Name: "day", Aliases: []string{"d"}, Usage: "tournament day", Required: true},
				},
				Action: r.dayRanking,
			},
			{
				Name:  "current-day",
				Usage: "print the tournament day for a date",
				Flags: []cli.Flag{
					tournamentFlag,
					&cli.StringFlag{Name: "at", Usage: `date to resolve, e.g. "2025-01-08" or "next monday" (default: today)`},
				},
				Action: r.currentDay,
			},
			{
				Name:  "chart",
				Usage: "render the cumulative points chart as PNG",
				Flags: []cli.Flag{
					tournamentFlag,
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file", Required: true},
				},
				Action: r.chart,
			},
			{
				Name:  "export",
				Usage: "export standings, daily rankings and scores as XLSX",
				Flags: []cli.Flag{
					tournamentFlag,
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file", Required: true},
				},
				Action: r.export,
			},
		},
	}
}

func (r *runner) services() (*app.Services, func(), error) {
	svc, err := r.build()
	if err != nil {
		return nil, nil, err
	}
	return svc, func() { _ = svc.Close() }, nil
}

func (r *runner) listTournaments(c *cli.Context) error {
	svc, done, err := r.services()
	if err != nil {
		return err
	}
	defer done()

	items, err := svc.Tournaments.List(c.Context)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTART\tDAYS\tENTITIES\tRANKS\tPOINTS/DAY\tSTATUS")
	for _, t := range items {
		status := "active"
		if t.Archived {
			status = "archived"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			t.ID, t.Name, t.StartDate.Format(time.DateOnly), t.TotalDays, len(t.Entities),
			t.Points.MaxRank(), t.Points.Total(), status)
	}
	return tw.Flush()
}

func (r *runner) standings(c *cli.Context) error {
	svc, done, err := r.services()
	if err != nil {
		return err
	}
	defer done()

	result, err := svc.Leaderboard.Standings(c.Context, c.String("tournament"), c.Int("up-to-day"))
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%s standings after day %d\n", result.Tournament.Name, result.UptoDay)
	return writeStandings(r.out, result.Tournament, result.Standings)
}

func (r *runner) dayRanking(c *cli.Context) error {
	svc, done, err := r.services()
	if err != nil {
		return err
	}
	defer done()

	result, err := svc.Leaderboard.DayRanking(c.Context, c.String("tournament"), c.Int("day"))
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%s day %d\n", result.Tournament.Name, result.Day)
	return writeDayRanking(r.out, result.Tournament, result.Ranking)
}

func (r *runner) currentDay(c *cli.Context) error {
	at, err := parseAt(c.String("at"), r.now())
	if err != nil {
		return err
	}

	svc, done, err := r.services()
	if err != nil {
		return err
	}
	defer done()

	day, err := svc.Tournaments.CurrentDay(c.Context, c.String("tournament"), &at)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s: day %d\n", at.Format(time.DateOnly), day)
	return nil
}

func (r *runner) chart(c *cli.Context) error {
	svc, done, err := r.services()
	if err != nil {
		return err
	}
	defer done()

	body, err := svc.Leaderboard.RenderChart(c.Context, c.String("tournament"))
	if err != nil {
		return err
	}
	return r.writeFile(c.String("out"), body)
}

func (r *runner) export(c *cli.Context) error {
	svc, done, err := r.services()
	if err != nil {
		return err
	}
	defer done()

	body, err := svc.Leaderboard.ExportWorkbook(c.Context, c.String("tournament"))
	if err != nil {
		return err
	}
	return r.writeFile(c.String("out"), body)
}

func (r *runner) writeFile(path string, body []byte) error {
	path = strings.TrimSpace(path)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(r.out, "wrote %s (%d bytes)\n", path, len(body))
	return nil
}

func writeStandings(w io.Writer, t tournament.Tournament, items []leaderboard.Standing) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tENTITY\tPOINTS\tGEOSCORE\tDAYS\tAVG")
	for i, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\n",
			i+1, displayName(t, item.EntityID), item.TotalPoints, item.TotalGeoScore, item.DaysPlayed, item.AvgGeoScore)
	}
	return tw.Flush()
}

func writeDayRanking(w io.Writer, t tournament.Tournament, items []leaderboard.DayRanking) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tENTITY\tGEOSCORE\tPOINTS")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n",
			item.Rank, displayName(t, item.EntityID), item.GeoScore, item.TournamentPoints)
	}
	return tw.Flush()
}

func displayName(t tournament.Tournament, entityID string) string {
	if e, ok := t.Entity(entityID); ok {
		return e.DisplayName()
	}
	return entityID
}
