package main

import (
	"bufio"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Task texts used when no source file is given. Decorations (dates,
// priorities, tags) are layered on round-robin so every resolution path
// shows up in the generated vault.
var taskTexts = []string{
	"Write launch announcement",
	"Fix homepage styling bug",
	"Review quarterly budget",
	"Book dentist appointment",
	"Refactor ingestion pipeline",
	"Water the plants",
	"Prepare sprint demo",
	"Renew passport",
	"Draft architecture proposal",
	"Clean the garage",
	"Update onboarding docs",
	"Order new keyboard",
	"Triage open bug reports",
	"Plan birthday dinner",
	"Migrate CI to new runners",
	"Read chapter on distributed consensus",
	"Rotate API credentials",
	"Schedule one-on-one meetings",
	"Back up the photo library",
	"Benchmark the query planner",
	"Reply to conference organizers",
	"Audit dependency licenses",
	"Sketch landing page redesign",
	"File expense report",
	"Test restore from backups",
	"Label dataset samples",
	"Tune cache eviction settings",
	"Write release notes",
	"Investigate flaky integration test",
	"Archive last year's projects",
}

var folders = []struct {
	name     string
	noteTags []string
}{
	{"Work", []string{"work"}},
	{"Work/Projects", []string{"work", "project"}},
	{"Personal", []string{"personal"}},
	{"Journal", nil},
}

var dueDates = []string{"2025-01-10", "2025-03-01", "2025-06-15", "2025-12-24"}

var taskTags = []string{"urgent", "errand", "deep-work", "quick"}

var (
	outDir       = flag.String("dir", "./sample_vault", "directory to write the vault into")
	seedFileName = flag.String("src", "", "file of task texts, one per line")
	perNote      = flag.Int("per-note", 5, "tasks per generated note")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// decorate layers a rotating mix of markers onto the bare task text.
func decorate(text string, n int) string {
	var b strings.Builder
	b.WriteString("- [")
	switch n % 5 {
	case 0:
		b.WriteString("x")
	case 1:
		b.WriteString("/")
	default:
		b.WriteString(" ")
	}
	b.WriteString("] ")
	b.WriteString(text)

	if n%3 == 0 {
		b.WriteString(" #" + taskTags[n%len(taskTags)])
	}
	switch n % 4 {
	case 0:
		b.WriteString(" \U0001F4C5 " + dueDates[n%len(dueDates)])
	case 1:
		b.WriteString(" [due::" + dueDates[n%len(dueDates)] + "]")
	}
	switch n % 6 {
	case 0:
		b.WriteString(" ⏫")
	case 1:
		b.WriteString(" \U0001F53D")
	case 2:
		b.WriteString(" [priority::2]")
	}
	if n%7 == 0 {
		b.WriteString(" ➕ 2024-11-0" + string(rune('1'+n%9)))
	}
	return b.String()
}

// writeNote renders one markdown note with frontmatter tags and tasks.
func writeNote(dir, name string, noteTags []string, tasks []string) error {
	var b strings.Builder
	if len(noteTags) > 0 {
		b.WriteString("---\ntags:\n")
		for _, tag := range noteTags {
			b.WriteString("  - " + tag + "\n")
		}
		b.WriteString("---\n")
	}
	b.WriteString("# " + strings.TrimSuffix(name, ".md") + "\n\n")
	b.WriteString("Some context around the tasks.\n\n")
	for _, task := range tasks {
		b.WriteString(task + "\n")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644)
}

func main() {
	var source iter.Seq[string]
	if *seedFileName != "" {
		var err error
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(taskTexts)
	}

	n := 0
	note := 0
	batch := make([]string, 0, *perNote)
	written := 0

	flush := func() {
		if len(batch) == 0 {
			return
		}
		folder := folders[note%len(folders)]
		dir := filepath.Join(*outDir, filepath.FromSlash(folder.name))
		name := fmt.Sprintf("note-%02d.md", note)
		if err := writeNote(dir, name, folder.noteTags, batch); err != nil {
			panic(err)
		}
		written++
		note++
		batch = batch[:0]
	}

	for line := range source {
		if strings.TrimSpace(line) == "" {
			continue
		}
		batch = append(batch, decorate(line, n))
		n++
		if len(batch) == *perNote {
			flush()
		}
	}
	flush()

	slog.Info("vault generated", "dir", *outDir, "notes", written, "tasks", n)
}
