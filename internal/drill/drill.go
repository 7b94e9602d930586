// Package drill runs a study session interactively over a pair of streams,
// normally a terminal.
package drill

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/service/study"
)

// ErrQuit is returned when the user leaves the drill before the queue is empty.
var ErrQuit = errors.New("drill quit")

// Drill reads answers from in and writes prompts to out.
type Drill struct {
	svc    study.Service
	userID uuid.UUID
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger
}

// New creates a Drill for userID.
func New(svc study.Service, userID uuid.UUID, in io.Reader, out io.Writer, logger *slog.Logger) *Drill {
	if svc == nil {
		panic("study service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Drill{
		svc:    svc,
		userID: userID,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.With(slog.String("component", "drill")),
	}
}

// Stats counts what happened in one run.
type Stats struct {
	Answered int
	Lapses   int
}

// Run starts a session for req and drills it until the queue is empty, the
// input ends, or the user types q. The session is ended in every case.
func (d *Drill) Run(ctx context.Context, req study.StartRequest) (Stats, error) {
	var stats Stats

	view, err := d.svc.Start(ctx, d.userID, req)
	if err != nil {
		return stats, err
	}
	defer func() {
		if err := d.svc.End(context.WithoutCancel(ctx), d.userID, view.ID); err != nil {
			d.logger.Warn("failed to end session", slog.String("error", err.Error()))
		}
	}()

	if view.Finished {
		fmt.Fprintf(d.out, "Nothing to study in %s (%s).\n", view.Deck, view.Direction)
		return stats, nil
	}
	fmt.Fprintf(d.out, "%s (%s): %d cards\n", view.Deck, view.Direction, view.Total)

	for view.Current != nil {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		card := view.Current
		fmt.Fprintf(d.out, "\n[%d/%d%s] %s\n", view.Position+1, view.Total, relearnSuffix(view), card.Front)
		if _, ok := d.prompt("(enter to reveal) "); !ok {
			return stats, ErrQuit
		}
		fmt.Fprintf(d.out, "  %s\n", card.Back)

		intervals, err := d.svc.Intervals(ctx, d.userID, view.ID)
		if err != nil {
			return stats, err
		}

		grade, ok := d.readGrade(intervals)
		if !ok {
			return stats, ErrQuit
		}

		result, err := d.svc.Answer(ctx, d.userID, view.ID, grade)
		if err != nil {
			return stats, err
		}
		stats.Answered++
		if grade == domain.GradeAgain {
			stats.Lapses++
		}
		fmt.Fprintf(d.out, "  %s, next in %s\n", result.Stage, result.Interval)

		view = &result.Session
	}

	fmt.Fprintf(d.out, "\nDone: %d answered, %d again.\n", stats.Answered, stats.Lapses)
	return stats, nil
}

func relearnSuffix(view *study.SessionView) string {
	if view.Relearn == 0 {
		return ""
	}
	return fmt.Sprintf(" +%d", view.Relearn)
}

func (d *Drill) readGrade(intervals *study.Intervals) (domain.Grade, bool) {
	var b strings.Builder
	for i, g := range domain.Grades {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%d) %s %s", int(g), g, intervals.Labels[g.String()])
	}
	for {
		fmt.Fprintf(d.out, "  %s\n", b.String())
		line, ok := d.prompt("grade> ")
		if !ok {
			return 0, false
		}
		if g, err := ParseAnswer(line); err == nil {
			return g, true
		}
		fmt.Fprintln(d.out, "  answer 1-4 or again/hard/good/easy, q to quit")
	}
}

// prompt writes p and reads a line. It reports false on EOF or q.
func (d *Drill) prompt(p string) (string, bool) {
	fmt.Fprint(d.out, p)
	if !d.in.Scan() {
		return "", false
	}
	line := strings.TrimSpace(d.in.Text())
	if strings.EqualFold(line, "q") {
		return "", false
	}
	return line, true
}

// ParseAnswer accepts a grade number or name.
func ParseAnswer(s string) (domain.Grade, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		g := domain.Grade(n)
		if !g.Valid() {
			return 0, fmt.Errorf("%w: %d", domain.ErrInvalidGrade, n)
		}
		return g, nil
	}
	return domain.ParseGrade(s)
}
