// Package pipeline orchestrates one news collection refresh: workflow
// transport, payload unwrapping, per-item normalization, and recency
// ranking. Each stage is a pure transformation; diagnostics flow through the
// progress callback instead of being woven into the stage logic.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/moobydog0324-a11y/GSENR-NEW/internal/miso"
	"github.com/moobydog0324-a11y/GSENR-NEW/internal/news"
	"github.com/moobydog0324-a11y/GSENR-NEW/internal/schemas"
	"github.com/moobydog0324-a11y/GSENR-NEW/internal/unwrap"
)

// DefaultUser identifies this system to the workflow engine when the caller
// does not choose its own identifier.
const DefaultUser = "gs-er-news-system"

// Stage names used in progress events.
const (
	StageTransport = "transport"
	StageUnwrap    = "unwrap"
	StageNormalize = "normalize"
	StageRank      = "rank"
)

// ProgressEvent is one diagnostic update during a refresh.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// ProgressCallback receives progress events as the refresh advances.
type ProgressCallback func(event ProgressEvent)

// Options configures one refresh. Transport is required; everything else
// has a default.
type Options struct {
	Transport  miso.Config
	Mode       string
	User       string
	Inputs     map[string]any
	Window     time.Duration
	Now        func() time.Time
	OnProgress ProgressCallback
}

func (o *Options) emit(stage, message string, count int) {
	if o.OnProgress != nil {
		o.OnProgress(ProgressEvent{Stage: stage, Message: message, Count: count})
	}
}

// Collect runs one refresh and returns the ranked briefing. Transport,
// configuration, and workflow errors abort the call; malformed records are
// contained by the unwrapper and normalizer and never abort the batch. A
// refresh that reaches the engine but yields nothing displayable returns
// *EmptyResultError.
func Collect(ctx context.Context, opts Options) ([]news.Item, error) {
	if opts.Mode == "" {
		opts.Mode = miso.ModeBlocking
	}
	if opts.User == "" {
		opts.User = DefaultUser
	}
	if opts.Window <= 0 {
		opts.Window = news.DefaultWindow
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	client, err := miso.NewClient(opts.Transport)
	if err != nil {
		return nil, err
	}

	opts.emit(StageTransport, fmt.Sprintf("requesting workflow run in %s mode", opts.Mode), 0)
	outputs, err := client.Fetch(ctx, miso.Request{
		Inputs: opts.Inputs,
		Mode:   opts.Mode,
		User:   opts.User,
	})
	if err != nil {
		return nil, err
	}
	opts.emit(StageTransport, "workflow run finished", len(outputs))

	records := unwrap.Unwrap(outputs)
	opts.emit(StageUnwrap, "extracted raw news records", len(records))
	if len(records) == 0 {
		return nil, &EmptyResultError{Reason: "workflow outputs carried no recognizable news records"}
	}
	if err := schemas.ValidateRecords(records); err != nil {
		// Advisory only: the normalizer fills or repairs every flagged field.
		opts.emit(StageUnwrap, err.Error(), 0)
	}

	ingestedAt := now()
	items := make([]news.Item, 0, len(records))
	for i, record := range records {
		items = append(items, news.Normalize(record, i, ingestedAt))
	}
	opts.emit(StageNormalize, "normalized news items", len(items))

	ranked := news.FilterAndRank(items, ingestedAt, opts.Window)
	opts.emit(StageRank, fmt.Sprintf("ranked items within %s window", opts.Window), len(ranked))
	if len(ranked) == 0 {
		return nil, &EmptyResultError{Reason: "every item fell outside the recency window"}
	}
	return ranked, nil
}
