// Package ics writes calendar projections as iCalendar data.
package ics

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/Veraticus/show-me-the-data/internal/projection"
)

const (
	// ProductID identifies the generator in PRODID.
	ProductID = "-//show-me-the-data//smtd//KO"

	defaultDuration = time.Hour
	propertyColor   = ical.ComponentProperty("COLOR")
)

// Options controls an export.
type Options struct {
	// Location is used for anchors without a zone. Defaults to time.Local.
	Location *time.Location
	// Now stamps DTSTAMP. Defaults to time.Now.
	Now time.Time
	// Name is written as X-WR-CALNAME when set.
	Name string
}

// Build converts projections to a calendar with one VEVENT each. Entries whose
// start cannot be parsed are skipped and counted in skipped.
func Build(projections []model.CalendarProjection, opts Options) (cal *ical.Calendar, skipped int) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	cal = ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	for i, p := range projections {
		start, allDay, err := projection.ParseStart(p.Start, opts.Location)
		if err != nil {
			slog.Warn("skipping event with unparseable start",
				"id", p.ID,
				"start", p.Start,
				"error", err)
			skipped++
			continue
		}

		uid := p.ID
		if uid == "" {
			uid = fmt.Sprintf("smtd-%d", i)
		}

		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(opts.Now.UTC())
		ev.SetSummary(p.Title)
		if p.Description != nil && *p.Description != "" {
			ev.SetDescription(*p.Description)
		}
		if p.Category.Valid() {
			ev.SetProperty(ical.ComponentPropertyCategories, p.Category.Label())
		}
		if p.Accent != "" {
			ev.SetProperty(propertyColor, p.Accent)
		}

		if allDay {
			ev.SetAllDayStartAt(start)
			ev.SetAllDayEndAt(start.AddDate(0, 0, 1))
		} else {
			ev.SetStartAt(start)
			ev.SetEndAt(start.Add(defaultDuration))
		}
	}

	return cal, skipped
}

// Export writes projections to w as an iCalendar document and returns the
// number of entries skipped.
func Export(w io.Writer, projections []model.CalendarProjection, opts Options) (int, error) {
	cal, skipped := Build(projections, opts)
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return skipped, fmt.Errorf("failed to write calendar: %w", err)
	}
	return skipped, nil
}
