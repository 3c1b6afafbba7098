// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/moobydog0324-a11y/GSENR-NEW/internal/news"
	"github.com/moobydog0324-a11y/GSENR-NEW/internal/pipeline"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxTitleRunes keeps Korean headlines from overflowing the box
	maxTitleRunes = 40
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}

// PrintItems outputs the ranked briefing with scores, categories, and sources.
func (p *Printer) PrintItems(items []news.Item) {
	if len(items) == 0 {
		p.printBox("NEWS BRIEFING", "수집된 뉴스가 없습니다.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total items collected: %d\n\n", len(items)))

	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := items[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, truncate(item.Title, maxTitleRunes)))
		sb.WriteString(fmt.Sprintf("    Score: %d  [%s]\n", item.RelevanceScore, item.Category))
		sb.WriteString(fmt.Sprintf("    %s · %s\n", item.Source, item.PublishedAt.Format("2006-01-02 15:04")))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more items", len(items)-maxItemsToShow))
	}

	p.printBox("NEWS BRIEFING", sb.String())
}

// PrintCategorySummary outputs how many items landed in each category,
// in briefing order.
func (p *Printer) PrintCategorySummary(items []news.Item) {
	if len(items) == 0 {
		return
	}

	counts := make(map[string]int)
	var order []string
	for _, item := range items {
		if _, seen := counts[item.Category]; !seen {
			order = append(order, item.Category)
		}
		counts[item.Category]++
	}

	var sb strings.Builder
	for i, category := range order {
		sb.WriteString(fmt.Sprintf("%-12s %d", truncate(category, 12), counts[category]))
		if i < len(order)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CATEGORY SUMMARY", sb.String())
}

// ProgressPrinter returns a callback that logs each pipeline stage as it
// completes. Suitable for wiring into pipeline.Options.OnProgress.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) ProgressPrinter() pipeline.ProgressCallback {
	return func(event pipeline.ProgressEvent) {
		if event.Count > 0 {
			fmt.Fprintf(p.out, "[%s] %s (%d)\n", event.Stage, event.Message, event.Count)
			return
		}
		fmt.Fprintf(p.out, "[%s] %s\n", event.Stage, event.Message)
	}
}
