// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jeranaias/forgefit-tui/internal/model"
	"github.com/jeranaias/forgefit-tui/internal/util"
)

// PageFetcher returns the HTML of a server-rendered page.
type PageFetcher interface {
	FetchPage(ctx context.Context, path string) ([]byte, error)
}

// Page paths rendered by the backend.
const (
	PlanPath    = "/workout/plan"
	FoodLogPath = "/food/"
)

// FoodLog is the nutrition log as rendered on the food page.
type FoodLog struct {
	Rows   []model.FoodRow
	Totals model.Totals
}

// ScrapePlan reads the day panels, day tabs and exercise cards from the plan
// page. Missing elements are skipped. When no panel is marked active the
// first one is activated.
func ScrapePlan(r io.Reader) (*model.Days, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse plan page: %w", err)
	}

	var panels []model.DayPanel
	doc.Find(`.day-panel[id^="day-"]`).Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("id")
		index, ok := util.ParseIntPrefix(strings.TrimPrefix(id, "day-"))
		if !ok {
			return
		}
		panel := model.DayPanel{
			ID:       id,
			DayIndex: index,
			Label:    first(sel.Find(".day-title")),
			Active:   sel.HasClass("active"),
		}
		sel.Find(".exercise-card[data-exercise-id]").Each(func(_ int, card *goquery.Selection) {
			if c := scrapeCard(card); c != nil {
				panel.Exercises = append(panel.Exercises, c)
			}
		})
		panels = append(panels, panel)
	})

	days := model.NewDays(panels)

	// Tab labels come from the tab strip when it has one entry per panel.
	tabs := doc.Find(".day-tab")
	tabs.Each(func(i int, sel *goquery.Selection) {
		if i >= len(days.Tabs) {
			return
		}
		if label := first(sel); label != "" {
			days.Tabs[i].Label = label
			if days.Panels[i].Label == "" {
				days.Panels[i].Label = label
			}
		}
	})

	for i, p := range days.Panels {
		if p.Label == "" {
			p.Label = "Day " + strconv.Itoa(p.DayIndex+1)
			days.Tabs[i].Label = p.Label
		}
	}
	if active, _ := days.ActiveCount(); active == 0 && len(days.Panels) > 0 {
		days.Panels[0].Active = true
		days.Tabs[0].Active = true
	}
	return days, nil
}

func scrapeCard(sel *goquery.Selection) *model.ExerciseCard {
	raw, _ := sel.Attr("data-exercise-id")
	id, ok := util.ParseIntPrefix(raw)
	if !ok {
		return nil
	}
	card := model.NewExerciseCard(id, first(sel.Find(".exercise-name")))
	card.Sets, _ = util.ParseIntPrefix(sel.AttrOr("data-sets", ""))
	card.TargetReps, _ = util.ParseIntPrefix(sel.AttrOr("data-reps", ""))
	card.TargetWeightKg = util.FloatOrZero(sel.AttrOr("data-weight", ""))
	card.Compound = sel.HasClass("compound")
	card.Notes = first(sel.Find(".exercise-notes"))
	if sel.Find(".logged-badge").Length() > 0 {
		card.MarkLogged()
	}
	return card
}

// ScrapeFoodLog reads today's log rows and totals from the food page.
func ScrapeFoodLog(r io.Reader) (*FoodLog, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse food page: %w", err)
	}

	log := &FoodLog{}
	doc.Find(`tr[id^="food-row-"]`).Each(func(_ int, tr *goquery.Selection) {
		id, ok := util.ParseIntPrefix(strings.TrimPrefix(tr.AttrOr("id", ""), "food-row-"))
		if !ok {
			return
		}
		tds := tr.Find("td")
		cell := func(i int) string {
			if i >= tds.Length() {
				return ""
			}
			return first(tds.Eq(i))
		}
		log.Rows = append(log.Rows, model.FoodRow{
			ID:       id,
			FoodName: cell(0),
			Serving:  cell(1),
			Calories: cell(2),
			Protein:  cell(3),
			Carbs:    cell(4),
			Fat:      cell(5),
		})
	})

	log.Totals = model.Totals{
		Calories: util.FloatOrZero(first(doc.Find("#total-calories"))),
		Protein:  util.FloatOrZero(first(doc.Find("#total-protein"))),
		Carbs:    util.FloatOrZero(first(doc.Find("#total-carbs"))),
		Fat:      util.FloatOrZero(first(doc.Find("#total-fat"))),
	}
	return log, nil
}

// Bootstrap fetches both pages and loads them into p. A page that fails to
// load is reported and the rest of the page still works.
func (p *Page) Bootstrap(ctx context.Context, fetcher PageFetcher) error {
	var errs []string

	if html, err := fetcher.FetchPage(ctx, PlanPath); err != nil {
		errs = append(errs, err.Error())
	} else if days, err := ScrapePlan(bytes.NewReader(html)); err != nil {
		errs = append(errs, err.Error())
	} else {
		p.SetDays(days)
	}

	if html, err := fetcher.FetchPage(ctx, FoodLogPath); err != nil {
		errs = append(errs, err.Error())
	} else if log, err := ScrapeFoodLog(bytes.NewReader(html)); err != nil {
		errs = append(errs, err.Error())
	} else {
		p.Food.Load(log.Rows, log.Totals)
	}

	if len(errs) > 0 {
		return fmt.Errorf("bootstrap: %s", strings.Join(errs, "; "))
	}
	return nil
}

// first returns the trimmed text of the first node in sel.
func first(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}
