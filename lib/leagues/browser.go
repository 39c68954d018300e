package leagues

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var ErrNotInitialized = errors.New("browser has not loaded its leagues yet")

// Source is where the browser gets its data from, *Client satisfies it.
type Source interface {
	Leagues(ctx context.Context) ([]League, error)
	Detail(ctx context.Context, leagueID int64) (LeagueDetail, error)
	LogoURL(league League) string
}

// Browser shows one league at a time on a Page and steps through the league
// list in a circle.
//
// the cursor moves as soon as Next/Prev is called, the detail fetch happens
// outside the lock. when navigations overlap only the most recently
// requested league is rendered, older replies are dropped.
type Browser struct {
	source Source
	page   *Page

	mu       sync.Mutex
	nav      *Navigator
	seq      uint64
	shown    League
	detail   LeagueDetail
	rendered bool
}

func NewBrowser(source Source, page *Page) *Browser {
	return &Browser{source: source, page: page}
}

// Init fetches the leagues and renders the first one.
func (b *Browser) Init(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Browser:Init")
	defer span.End()

	leagues, err := b.source.Leagues(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch leagues")
		return fmt.Errorf("fetch leagues: %w", err)
	}
	nav, err := NewNavigator(leagues)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.Int("leagues.count", nav.Len()))

	b.mu.Lock()
	b.nav = nav
	b.mu.Unlock()

	return b.show(ctx, func(n *Navigator) (League, error) {
		return n.Current(), nil
	})
}

func (b *Browser) Next(ctx context.Context) error {
	return b.show(ctx, func(n *Navigator) (League, error) {
		return n.Next(), nil
	})
}

func (b *Browser) Prev(ctx context.Context) error {
	return b.show(ctx, func(n *Navigator) (League, error) {
		return n.Prev(), nil
	})
}

// Seek jumps straight to the league at index.
func (b *Browser) Seek(ctx context.Context, index int) error {
	return b.show(ctx, func(n *Navigator) (League, error) {
		return n.Seek(index)
	})
}

// Index is the cursor position, which may be ahead of what is rendered
// while a fetch is in flight.
func (b *Browser) Index() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.nav == nil {
		return 0, ErrNotInitialized
	}
	return b.nav.Index(), nil
}

func (b *Browser) Leagues() ([]League, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.nav == nil {
		return nil, ErrNotInitialized
	}
	return b.nav.Leagues(), nil
}

// Shown returns the league and detail currently rendered on the page.
func (b *Browser) Shown() (League, LeagueDetail, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shown, b.detail, b.rendered
}

func (b *Browser) show(ctx context.Context, move func(n *Navigator) (League, error)) error {
	b.mu.Lock()
	if b.nav == nil {
		b.mu.Unlock()
		return ErrNotInitialized
	}
	league, err := move(b.nav)
	if err != nil {
		b.mu.Unlock()
		return err
	}
	b.seq++
	seq := b.seq
	b.mu.Unlock()

	ctx, span := tracer.Start(ctx, "Browser:show")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("league.id", league.ID),
		attribute.String("league.name", league.Name),
	)

	detail, err := b.source.Detail(ctx, league.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch league detail")
		return fmt.Errorf("fetch league %d: %w", league.ID, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq {
		slog.DebugContext(ctx, "dropping stale league detail", "league_id", league.ID)
		return nil
	}
	err = b.page.Render(league, b.source.LogoURL(league), detail)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to render league")
		return err
	}
	b.shown = league
	b.detail = detail
	b.rendered = true
	return nil
}
