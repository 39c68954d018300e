package commands

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"

	"tennisleagues/lib/leagues"

	"github.com/PuerkitoBio/goquery"
)

//go:embed assets/page.html
var defaultPage []byte

// openBrowser loads the page markup (the built-in page when pageRef is
// empty), renders the first league, then seeks to `start` if given.
func openBrowser(ctx context.Context, a *app, pageRef, start string) (*leagues.Browser, *leagues.Page, error) {
	var doc *goquery.Document
	if pageRef == "" {
		var err error
		doc, err = goquery.NewDocumentFromReader(bytes.NewBuffer(defaultPage))
		if err != nil {
			return nil, nil, err
		}
	} else {
		loaded, err := a.loader().Load(ctx, pageRef)
		if err != nil {
			return nil, nil, fmt.Errorf("load page: %w", err)
		}
		doc = loaded.Doc
	}

	page, err := leagues.NewPage(doc)
	if err != nil {
		return nil, nil, err
	}
	client, err := a.leaguesClient()
	if err != nil {
		return nil, nil, err
	}

	browser := leagues.NewBrowser(client, page)
	err = browser.Init(ctx)
	if err != nil {
		return nil, nil, err
	}

	if start != "" {
		list, err := browser.Leagues()
		if err != nil {
			return nil, nil, err
		}
		index, err := leagues.Find(list, start)
		if err != nil {
			return nil, nil, err
		}
		if index != 0 {
			err = browser.Seek(ctx, index)
			if err != nil {
				return nil, nil, err
			}
		}
	}
	return browser, page, nil
}

// step applies a navigation word to the browser.
func step(ctx context.Context, browser *leagues.Browser, word string) error {
	switch strings.ToLower(strings.TrimSpace(word)) {
	case "n", "next", "right":
		return browser.Next(ctx)
	case "p", "prev", "left":
		return browser.Prev(ctx)
	}
	return fmt.Errorf("unknown navigation %q, expected next or prev", word)
}
