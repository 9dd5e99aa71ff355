package fence

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

// Annotation is the parsed metadata attached to a code fence's info
// string. The grammar is a space-separated list after the language tag:
//
//	{1,3-5}          highlighted lines and inclusive ranges
//	filename=x.js    display filename (bare or double-quoted)
//	/token/          emphasize every occurrence of token
//	/token/3         emphasize only the 3rd occurrence
//	showLineNumbers  line-numbering toggle
//	+2/-1            authored diff summary (diff fences only)
type Annotation struct {
	// Language is the fence's language tag, e.g. "jsx" or "diff".
	Language string

	// Filename is the display filename. Empty when absent.
	Filename string

	// ShowLineNumbers is the line-numbering toggle.
	ShowLineNumbers bool

	// LineRanges holds the declared highlight ranges, unresolved.
	LineRanges []LineRange

	// Tokens holds the declared token emphases.
	Tokens []domain.TokenHighlight

	// DiffSummary is the authored "+N/-M" pair. Nil when absent.
	DiffSummary *domain.DiffSummary
}

// LineRange is an inclusive 1-based range of highlighted lines.
// A single line n is the range [n, n].
type LineRange struct {
	Start int
	End   int
}

var (
	rangeSetRe = regexp.MustCompile(`^\{([\d,\s-]+)\}$`)
	rangeRe    = regexp.MustCompile(`^(\d+)(?:-(\d+))?$`)
	tokenRe    = regexp.MustCompile(`^/(.+)/(\d*)$`)
	summaryRe  = regexp.MustCompile(`^\+(\d+)/-(\d+)$`)
)

// ParseInfoString parses a fence info string into an Annotation.
// The first field is the language tag; the rest are annotations in any
// order. Unknown fields fail with domain.ErrInvalidInput so authoring
// typos surface instead of being silently dropped.
func ParseInfoString(info string) (*Annotation, error) {
	ann := &Annotation{}

	fields := splitFields(info)
	if len(fields) == 0 {
		return ann, nil
	}
	ann.Language = fields[0]

	for _, field := range fields[1:] {
		switch {
		case rangeSetRe.MatchString(field):
			ranges, err := parseRangeSet(rangeSetRe.FindStringSubmatch(field)[1])
			if err != nil {
				return nil, err
			}
			ann.LineRanges = append(ann.LineRanges, ranges...)

		case strings.HasPrefix(field, "filename="):
			name := strings.TrimPrefix(field, "filename=")
			name = strings.Trim(name, `"`)
			if name == "" {
				return nil, fmt.Errorf("%w: empty filename annotation", domain.ErrInvalidInput)
			}
			ann.Filename = name

		case field == "showLineNumbers":
			ann.ShowLineNumbers = true

		case summaryRe.MatchString(field):
			m := summaryRe.FindStringSubmatch(field)
			added, _ := strconv.Atoi(m[1])
			removed, _ := strconv.Atoi(m[2])
			ann.DiffSummary = &domain.DiffSummary{Added: added, Removed: removed}

		case tokenRe.MatchString(field):
			m := tokenRe.FindStringSubmatch(field)
			th := domain.TokenHighlight{Token: m[1]}
			if m[2] != "" {
				n, _ := strconv.Atoi(m[2])
				if n < 1 {
					return nil, fmt.Errorf("%w: token occurrence index must be positive: %s", domain.ErrInvalidInput, field)
				}
				th.Occurrence = n
			}
			ann.Tokens = append(ann.Tokens, th)

		default:
			return nil, fmt.Errorf("%w: unknown fence annotation %q", domain.ErrInvalidInput, field)
		}
	}

	return ann, nil
}

// splitFields splits an info string on whitespace, keeping double-quoted
// spans intact so filenames with spaces stay one field.
func splitFields(info string) []string {
	var fields []string
	var b strings.Builder
	inQuote := false
	for _, r := range info {
		switch {
		case r == '"':
			inQuote = !inQuote
			b.WriteRune(r)
		case !inQuote && (r == ' ' || r == '\t'):
			if b.Len() > 0 {
				fields = append(fields, b.String())
				b.Reset()
			}
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() > 0 {
		fields = append(fields, b.String())
	}
	return fields
}

// parseRangeSet parses the inside of a {1,3-5} group.
func parseRangeSet(body string) ([]LineRange, error) {
	var ranges []LineRange
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := rangeRe.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("%w: bad line range %q", domain.ErrInvalidInput, part)
		}
		start, _ := strconv.Atoi(m[1])
		end := start
		if m[2] != "" {
			end, _ = strconv.Atoi(m[2])
		}
		if start < 1 || end < start {
			return nil, fmt.Errorf("%w: bad line range %q", domain.ErrInvalidInput, part)
		}
		ranges = append(ranges, LineRange{Start: start, End: end})
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("%w: empty line range set", domain.ErrInvalidInput)
	}
	return ranges, nil
}
