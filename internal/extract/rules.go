package extract

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/Veraticus/show-me-the-data/internal/model"
)

var (
	clientPrefixPattern = regexp.MustCompile(`^\s*([^\s:]{1,20})\s*(?:클라이언트|고객님?|지원자)\s*[:：]\s*`)
	namePrefixPattern   = regexp.MustCompile(`^\s*([^:：\n\d]{1,20}?)\s*[:：]\s*`)
)

// Rules extracts fields with pattern matching and needs no network access.
type Rules struct {
	// Now is the clock used for relative dates. Defaults to time.Now.
	Now func() time.Time
}

// NewRules returns a pattern-matching extractor.
func NewRules() *Rules {
	return &Rules{Now: time.Now}
}

// Name identifies the extractor in logs.
func (r *Rules) Name() string {
	return "rules"
}

// Extract reads a "<name> 클라이언트:" or "<name>:" prefix as the subject, the
// rest as the description, and a date plus optional time as the schedule.
func (r *Rules) Extract(ctx context.Context, category model.Category, text string) (Extraction, error) {
	if err := checkInput(ctx, category, text); err != nil {
		return Extraction{}, err
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	name, body := splitSubject(text)
	return Extraction{
		SubjectName: name,
		ScheduledAt: ParseSchedule(text, now()),
		Description: nonEmpty(body),
		Confidence:  DefaultConfidence,
	}, nil
}

// splitSubject separates a leading subject label from the message body.
func splitSubject(text string) (*string, string) {
	firstLine := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		firstLine = text[:i]
	}

	for _, pattern := range []*regexp.Regexp{clientPrefixPattern, namePrefixPattern} {
		loc := pattern.FindStringSubmatchIndex(firstLine)
		if loc == nil {
			continue
		}
		name := strings.TrimSpace(firstLine[loc[2]:loc[3]])
		if name == "" {
			continue
		}
		return &name, text[loc[1]:]
	}
	return nil, text
}
