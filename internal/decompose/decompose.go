// Package decompose detects utterances that carry several tasks and splits
// them into sub-utterances.
//
// Extraction is a two-stage pipeline: a language-model stage that runs only
// when a model is loaded, and a deterministic splitter that runs whenever the
// model stage is skipped, fails or returns nothing.
package decompose

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"jarvis/internal/llm"
)

// Connectives are the words that suggest a sequence of tasks.
var Connectives = []string{
	"and then", "also", "after that", "next", "then", "and also", "as well",
	"plus", "additionally", "first", "second", "third", "finally",
}

var (
	connectiveRes = func() []*regexp.Regexp {
		res := make([]*regexp.Regexp, len(Connectives))
		for i, c := range Connectives {
			res[i] = regexp.MustCompile(`(?i)\b` + strings.ReplaceAll(regexp.QuoteMeta(c), " ", `\s+`) + `\b`)
		}
		return res
	}()

	segmentRe = regexp.MustCompile(`(?i)[.!?]|\band\b`)

	splitRe = regexp.MustCompile(`(?i)\band\s+then\b|\balso\b|\bafter\s+that\b|\bnext\b|\bthen\b|\band\s+also\b|\.|,\s*and\b`)

	taskLineRe = regexp.MustCompile(`^\s*(?:-|\d+\.)\s*(.*)$`)
)

const (
	// MultiTaskConnectives is the connective count at which text is multi-task.
	MultiTaskConnectives = 2
	// MultiTaskSegments is the segment count at which text is multi-task.
	MultiTaskSegments = 3
	// minPieceLen drops splitter fragments of this length or shorter.
	minPieceLen = 3
)

// ConnectiveCount counts word-bounded connective occurrences. Overlapping
// connectives count separately: "and then" counts for both "and then" and "then".
func ConnectiveCount(text string) int {
	n := 0
	for _, re := range connectiveRes {
		n += len(re.FindAllStringIndex(text, -1))
	}
	return n
}

// SegmentCount counts the non-blank pieces left after splitting on sentence
// punctuation and the standalone word "and".
func SegmentCount(text string) int {
	n := 0
	for _, s := range segmentRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// IsMultiTask reports whether text looks like several tasks.
func IsMultiTask(text string) bool {
	return ConnectiveCount(text) >= MultiTaskConnectives || SegmentCount(text) >= MultiTaskSegments
}

// Split is the deterministic splitter. Pieces are trimmed, fragments of three
// characters or fewer are dropped and exact duplicates removed, keeping order.
func Split(memo string) []string {
	seen := make(map[string]bool)
	var tasks []string
	for _, piece := range splitRe.Split(memo, -1) {
		piece = strings.Trim(piece, " \t\r\n,;")
		if len(piece) <= minPieceLen || seen[piece] {
			continue
		}
		seen[piece] = true
		tasks = append(tasks, piece)
	}
	return tasks
}

// Stage names the pipeline stage that produced a task list.
type Stage string

const (
	StageModel    Stage = "model"
	StageFallback Stage = "fallback"
)

// ErrNoTasks is returned by the model stage when the reply held no task lines.
var ErrNoTasks = errors.New("model returned no tasks")

// Decomposer runs the extraction pipeline.
type Decomposer struct {
	gen  llm.Generator
	gate llm.ModelGate
	log  *zap.Logger
}

// New creates a Decomposer. gen may be nil, which always selects the splitter.
func New(gen llm.Generator, gate llm.ModelGate, log *zap.Logger) *Decomposer {
	if gate == nil {
		gate = llm.StaticGate(gen != nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Decomposer{gen: gen, gate: gate, log: log}
}

// Extract splits memo into sub-utterances and reports which stage produced them.
func (d *Decomposer) Extract(ctx context.Context, memo string) ([]string, Stage) {
	if d.gen != nil && d.gate.IsLoaded() {
		tasks, err := d.extractWithModel(ctx, memo)
		if err == nil {
			return tasks, StageModel
		}
		d.log.Info("model extraction unavailable, using splitter", zap.Error(err))
	}
	return Split(memo), StageFallback
}

func (d *Decomposer) extractWithModel(ctx context.Context, memo string) ([]string, error) {
	reply, err := llm.Collect(ctx, d.gen, ExtractionPrompt(memo))
	if err != nil {
		return nil, err
	}
	tasks := ParseTaskLines(reply)
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	d.log.Debug("model extracted tasks", zap.Int("count", len(tasks)))
	return tasks, nil
}

// ParseTaskLines keeps lines that start with "-" or "N." and strips the marker.
func ParseTaskLines(reply string) []string {
	var tasks []string
	for _, line := range strings.Split(reply, "\n") {
		m := taskLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if task := strings.TrimSpace(m[1]); task != "" {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

// ExtractionPrompt is the fixed instruction sent to the model.
func ExtractionPrompt(memo string) string {
	return fmt.Sprintf(`Extract every individual task from the following message.
Write each task on its own line, starting with "-".
Keep the user's wording, one action per line, and output nothing else.

Message: %s

Tasks:`, memo)
}
