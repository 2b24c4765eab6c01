package checklist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Collector gathers one yes/no response per checklist item.
type Collector interface {
	Collect(ctx context.Context, title string, items []string) ([]bool, error)
}

// ScriptedCollector reads one answer per line. A line is "yes" when it is
// "y" after trimming and lowercasing; anything else, including EOF, is "no".
type ScriptedCollector struct {
	scanner *bufio.Scanner
	prompt  io.Writer
}

// NewScriptedCollector reads answers from r. When prompt is non-nil each
// item is echoed to it before reading.
func NewScriptedCollector(r io.Reader, prompt io.Writer) *ScriptedCollector {
	return &ScriptedCollector{scanner: bufio.NewScanner(r), prompt: prompt}
}

// Collect implements Collector.
func (c *ScriptedCollector) Collect(ctx context.Context, title string, items []string) ([]bool, error) {
	if c.prompt != nil {
		fmt.Fprintf(c.prompt, "\n%s:\n", title)
	}

	responses := make([]bool, len(items))
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if c.prompt != nil {
			fmt.Fprintf(c.prompt, "%s (y/n): ", item)
		}
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return nil, fmt.Errorf("read response %d: %w", i+1, err)
			}
			continue
		}
		responses[i] = ParseAnswer(c.scanner.Text())
	}
	return responses, nil
}

// ParseAnswer reports whether s is a "y" answer.
func ParseAnswer(s string) bool {
	return strings.ToLower(strings.TrimSpace(s)) == "y"
}

// StaticCollector returns preset answers keyed by checklist title.
type StaticCollector struct {
	answers map[string][]bool
}

// NewStaticCollector creates a collector from title -> answers.
func NewStaticCollector(answers map[string][]bool) *StaticCollector {
	cp := make(map[string][]bool, len(answers))
	for k, v := range answers {
		cp[k] = append([]bool(nil), v...)
	}
	return &StaticCollector{answers: cp}
}

// Collect implements Collector. Unknown titles yield all-false answers;
// a stored answer list of the wrong length is returned as is so that
// scoring reports the mismatch.
func (c *StaticCollector) Collect(ctx context.Context, title string, items []string) ([]bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, ok := c.answers[title]
	if !ok {
		return make([]bool, len(items)), nil
	}
	return append([]bool(nil), a...), nil
}

var (
	_ Collector = (*ScriptedCollector)(nil)
	_ Collector = (*StaticCollector)(nil)
)
