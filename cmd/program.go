package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/luthersystems/beatlisp/lisp"
	"github.com/luthersystems/beatlisp/music"
	"github.com/luthersystems/beatlisp/parser"
	"github.com/luthersystems/beatlisp/schedule"
)

// program is named source text given on the command line.
type program struct {
	name   string
	source string
}

func readPrograms(args []string, expression bool) ([]program, error) {
	progs := make([]program, len(args))
	if expression {
		for i := range args {
			progs[i] = program{name: fmt.Sprintf("expr%d", i+1), source: args[i]}
		}
		return progs, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		progs[i] = program{name: path, source: string(b)}
	}
	return progs, nil
}

func parserOptions() []parser.Option {
	if cfg.LegacyBrackets {
		return []parser.Option{parser.WithLegacyBrackets()}
	}
	return nil
}

func newRuntime() *lisp.Runtime {
	return lisp.NewRuntime(
		lisp.WithMaxDepth(cfg.MaxDepth),
		lisp.WithLogger(logger),
		lisp.WithReader(parser.NewReader(parserOptions()...)),
	)
}

// evalPrograms parses and evaluates progs in order against a single global
// environment and returns the values of every top-level form.
func evalPrograms(ctx context.Context, rt *lisp.Runtime, progs []program) ([]*lisp.LVal, error) {
	env := rt.NewGlobalEnv()
	var results []*lisp.LVal
	for _, p := range progs {
		start := time.Now()
		forms, err := parser.Parse(p.name, p.source, parserOptions()...)
		tracker.RecordParse(ctx, len(forms), time.Since(start))
		if err != nil {
			return nil, err
		}
		logger.Debug("program parsed", "name", p.name, "forms", len(forms))

		start = time.Now()
		vals, err := rt.EvalProgram(forms, env)
		tracker.RecordEval(ctx, len(vals), time.Since(start), err == nil)
		if err != nil {
			return nil, err
		}
		results = append(results, vals...)
	}
	return results, nil
}

// resultEvent combines the event values in results so that they play
// together.  Non-event values are ignored.
func resultEvent(results []*lisp.LVal) (music.Event, bool) {
	var events []music.Event
	for _, v := range results {
		if v.Type == lisp.LEvent {
			events = append(events, v.Event)
		}
	}
	switch len(events) {
	case 0:
		return nil, false
	case 1:
		return events[0], true
	}
	return music.Parallel{Events: events}, true
}

// scheduleResults evaluates progs and schedules the resulting events.
func scheduleResults(ctx context.Context, progs []program) (*schedule.Timeline, error) {
	results, err := evalPrograms(ctx, newRuntime(), progs)
	if err != nil {
		return nil, err
	}
	ev, ok := resultEvent(results)
	if !ok {
		return nil, fmt.Errorf("program produced no events")
	}
	tl, err := schedule.Schedule(ev,
		schedule.WithTempo(cfg.Tempo),
		schedule.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	tracker.RecordSchedule(ctx, len(tl.Triggers), tl.Length)
	return tl, nil
}

func programNames(progs []program) string {
	if len(progs) == 1 {
		return progs[0].name
	}
	return fmt.Sprintf("%d programs", len(progs))
}

// errorDetail renders err for the terminal, including the source context
// and stack of evaluation errors.
func errorDetail(err error) string {
	if lerr, ok := lisp.AsError(err); ok {
		return lerr.Detail()
	}
	return err.Error()
}
