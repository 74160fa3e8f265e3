package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/meenmo/fischedule/calendar"
	"github.com/meenmo/fischedule/config"
	"github.com/meenmo/fischedule/logx"
)

type options struct {
	inputPath  string
	format     string
	configPath string
	calendars  string
	logLevel   string
	logFormat  string
}

func main() {
	var opts options
	flag.StringVar(&opts.inputPath, "input", "", "JSON or YAML request path (reads stdin if omitted)")
	flag.StringVar(&opts.format, "format", "json", "Output format: json, text or ics")
	flag.StringVar(&opts.configPath, "config", "", "YAML settings path")
	flag.StringVar(&opts.calendars, "calendars", "", "Comma separated custom calendar files (.yaml, .yml or .ics)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")
	flag.StringVar(&opts.logFormat, "log-format", "", "Log format override (console or json)")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: schedule [-input <path>] [-format json|text|ics] [-config <path>] [-calendars a.yaml,b.ics]")
		fmt.Fprintln(os.Stderr, "Generate coupon date schedules.")
		return
	}

	path := strings.TrimSpace(opts.inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: schedule -input <path>")
			os.Exit(2)
		}
	}

	os.Exit(run(opts, os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(opts options, stdin io.Reader, stdout, stderr io.Writer) int {
	settings, err := config.Load(opts.configPath)
	if err != nil {
		return exitError(stdout, opts.format, err.Error())
	}
	if opts.logLevel != "" {
		settings.LogLevel = opts.logLevel
	}
	if opts.logFormat != "" {
		settings.LogFormat = opts.logFormat
	}
	settings.Normalize()
	log := logx.New(settings.LogLevel, settings.LogFormat, stderr)
	config.SetConfig(settings.Config())

	paths := append([]string{}, settings.Calendars...)
	for _, p := range strings.Split(opts.calendars, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	for _, p := range paths {
		c, err := loadCalendar(p)
		if err != nil {
			log.Error("load calendar failed", logx.String("path", p), logx.Err(err))
			return exitError(stdout, opts.format, fmt.Sprintf("load calendar %s: %v", p, err))
		}
		log.Debug("calendar registered", logx.String("id", string(c.ID())), logx.String("path", p))
	}

	format := strings.ToLower(strings.TrimSpace(opts.format))
	switch format {
	case "json", "text", "ics":
	default:
		return exitError(stdout, "json", fmt.Sprintf("unknown format %q", opts.format))
	}

	raw, err := readInput(opts.inputPath, stdin)
	if err != nil {
		return exitError(stdout, format, fmt.Sprintf("read input: %v", err))
	}
	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		return exitError(stdout, format, fmt.Sprintf("parse input: %v", err))
	}
	log.Debug("input parsed", logx.Int("requests", len(inputs)), logx.Bool("array", isArray))

	hadError := false
	printed := 0
	outputs := make([]scheduleOutput, 0, len(inputs))
	for i, in := range inputs {
		started := time.Now()
		s, out, err := process(in, settings.Defaults)
		if err != nil {
			hadError = true
			log.Error("schedule failed", logx.Int("index", i), logx.String("task_id", in.TaskID), logx.Err(err))
			outputs = append(outputs, scheduleOutput{TaskID: in.TaskID, Error: err.Error()})
			if format != "json" {
				fmt.Fprintf(stderr, "request %d: %v\n", i, err)
			}
			continue
		}
		log.Debug("schedule generated",
			logx.Int("index", i),
			logx.String("task_id", in.TaskID),
			logx.Int("dates", len(out.Dates)),
			logx.String("strategy", out.Strategy),
			logx.Duration("elapsed", time.Since(started)))
		outputs = append(outputs, *out)

		switch format {
		case "text":
			if printed > 0 {
				fmt.Fprintln(stdout)
			}
			if err := s.Print(stdout); err != nil {
				return exitError(stdout, "text", err.Error())
			}
			printed++
		case "ics":
			name := in.Name
			if name == "" {
				name = in.TaskID
			}
			if err := s.WriteICS(stdout, name); err != nil {
				return exitError(stdout, "text", err.Error())
			}
		}
	}

	if format == "json" {
		var b []byte
		if isArray {
			b, _ = json.Marshal(outputs)
		} else {
			b, _ = json.Marshal(outputs[0])
		}
		fmt.Fprintln(stdout, string(b))
	}

	if hadError {
		return 1
	}
	return 0
}

// loadCalendar reads a custom calendar file and registers it. ICS calendars
// take their ID from the file name.
func loadCalendar(path string) (*calendar.Calendar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c *calendar.Calendar
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ics", ".ical":
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		c, err = calendar.LoadICS(calendar.CalendarID(id), f)
	case ".yaml", ".yml":
		c, err = calendar.LoadYAML(f)
	default:
		return nil, fmt.Errorf("unsupported calendar file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}
	if err := calendar.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path = strings.TrimSpace(path); path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

func exitError(w io.Writer, format, msg string) int {
	if strings.EqualFold(strings.TrimSpace(format), "json") || format == "" {
		b, _ := json.Marshal(scheduleOutput{Error: msg})
		fmt.Fprintln(w, string(b))
	} else {
		fmt.Fprintln(w, "error: "+msg)
	}
	return 1
}
