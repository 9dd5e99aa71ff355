// Package document parses raw anti-pattern documents into the domain
// model. A document is a markdown-family file with a "<number>. <title>"
// top heading, an optional introduction with references, an Examples
// section of numbered sub-headings, and an optional Notes section.
package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/core/ports/driven"
	"github.com/custodia-labs/antipat/internal/parsers/fence"
)

// Ensure Parser implements the interface.
var _ driven.DocumentParser = (*Parser)(nil)

var (
	titleRe          = regexp.MustCompile(`^#\s+(\d+)\.\s+(.+?)\s*$`)
	exampleHeadingRe = regexp.MustCompile(`^###\s+(\d+)\.\s+(.+?)\s*$`)
	examplesRe       = regexp.MustCompile(`(?i)^##\s+Examples\s*$`)
	notesRe          = regexp.MustCompile(`(?i)^##\s+Notes\s*$`)
	referencesRe     = regexp.MustCompile(`(?i)^References:?\s*$`)
	bulletRe         = regexp.MustCompile(`^\s*[-*]\s+(.+?)\s*$`)
)

// Parser parses raw documents. Stateless and safe for concurrent use.
type Parser struct{}

// New creates a new document parser.
func New() *Parser {
	return &Parser{}
}

// Parse extracts a structured Document from raw text. Pure function:
// text in, Document out, no side effects.
func (p *Parser) Parse(raw domain.RawDocument) (*domain.Document, error) {
	content := strings.ReplaceAll(string(raw.Content), "\r\n", "\n")
	lines := strings.Split(content, "\n")

	titleIdx := firstNonBlank(lines)
	if titleIdx < 0 {
		return nil, fmt.Errorf("%w: %s: empty document", domain.ErrMalformedDocument, raw.Path)
	}
	m := titleRe.FindStringSubmatch(lines[titleIdx])
	if m == nil {
		return nil, fmt.Errorf("%w: %s: missing \"<number>. <title>\" heading", domain.ErrMalformedDocument, raw.Path)
	}
	categoryID, _ := strconv.Atoi(m[1])

	doc := &domain.Document{
		CategoryID: categoryID,
		Title:      m[2],
		SourcePath: raw.Path,
	}

	examplesIdx := findHeading(lines, titleIdx+1, examplesRe)
	notesIdx := -1
	if examplesIdx >= 0 {
		notesIdx = findHeading(lines, examplesIdx+1, notesRe)
	}

	introEnd := len(lines)
	if examplesIdx >= 0 {
		introEnd = examplesIdx
	}
	doc.Introduction, doc.References = parseIntro(lines[titleIdx+1 : introEnd])

	if examplesIdx >= 0 {
		bodyEnd := len(lines)
		if notesIdx >= 0 {
			bodyEnd = notesIdx
		}
		examples, err := parseExamples(lines[examplesIdx+1:bodyEnd], doc)
		if err != nil {
			return nil, err
		}
		doc.Examples = examples
	}

	if notesIdx >= 0 {
		doc.Notes = strings.TrimSpace(strings.Join(lines[notesIdx+1:], "\n"))
	}

	if len(doc.Examples) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyCatalogEntry, raw.Path)
	}

	return doc, nil
}

// parseIntro splits the pre-examples region into prose and reference
// URLs. References are the bullets under a "References:" line; they are
// excluded from the introduction text.
func parseIntro(lines []string) (string, []string) {
	var prose []string
	var refs []string

	inRefs := false
	for _, line := range lines {
		switch {
		case referencesRe.MatchString(line):
			inRefs = true
		case inRefs:
			if m := bulletRe.FindStringSubmatch(line); m != nil {
				refs = append(refs, m[1])
			} else if strings.TrimSpace(line) != "" {
				// First non-bullet line ends the references list.
				inRefs = false
				prose = append(prose, line)
			}
		default:
			prose = append(prose, line)
		}
	}

	return strings.TrimSpace(strings.Join(prose, "\n")), refs
}

// parseExamples splits the examples region on numbered sub-headings and
// parses each section. Headings inside code fences are ignored.
func parseExamples(lines []string, doc *domain.Document) ([]domain.Example, error) {
	type section struct {
		index int
		label string
		start int
		end   int
	}

	var sections []section
	inFence := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if m := exampleHeadingRe.FindStringSubmatch(line); m != nil {
			index, _ := strconv.Atoi(m[1])
			if len(sections) > 0 {
				sections[len(sections)-1].end = i
			}
			sections = append(sections, section{index: index, label: m[2], start: i + 1, end: len(lines)})
		}
	}

	examples := make([]domain.Example, 0, len(sections))
	for _, s := range sections {
		ex, err := parseExample(lines[s.start:s.end], s.index, s.label, doc)
		if err != nil {
			return nil, fmt.Errorf("example %d: %w", s.index, err)
		}
		examples = append(examples, *ex)
	}

	return examples, nil
}

// parseExample extracts the avoid/good snippets, the optional literal
// diff, and the rationale prose from one example section.
func parseExample(lines []string, index int, label string, doc *domain.Document) (*domain.Example, error) {
	ex := &domain.Example{Index: index, Label: label}

	fences, err := fence.Scan(lines)
	if err != nil {
		return nil, err
	}

	avoidFence, ok, err := fence.Locate(lines, fences, fence.RoleAvoid)
	if err != nil {
		return nil, fmt.Errorf("avoid snippet: %w", err)
	}
	if ok {
		ex.Avoid, err = fence.Resolve(avoidFence, doc.BlockID(index, "avoid"))
		if err != nil {
			return nil, err
		}
	}

	goodFence, ok, err := fence.Locate(lines, fences, fence.RoleGood)
	if err != nil {
		return nil, fmt.Errorf("good snippet: %w", err)
	}
	if ok {
		ex.Good, err = fence.Resolve(goodFence, doc.BlockID(index, "good"))
		if err != nil {
			return nil, err
		}
	}

	diffFence, ok, err := fence.Locate(lines, fences, fence.RoleDiff)
	if err != nil {
		return nil, fmt.Errorf("diff block: %w", err)
	}
	if ok {
		ex.Diff = fence.ParseDiff(diffFence)
	}

	ex.RationaleAvoid = proseAfter(lines, avoidFence, goodFence, diffFence)
	ex.RationaleGood = proseAfter(lines, goodFence, diffFence, nil)

	return ex, nil
}

// proseAfter collects the prose between the end of a fence and the next
// snippet's marker or fence, whichever comes first.
func proseAfter(lines []string, after, next1, next2 *fence.Fence) string {
	if after == nil {
		return ""
	}
	start := after.End + 1
	end := len(lines)
	for _, next := range []*fence.Fence{next1, next2} {
		if next != nil && next.Start > after.End && next.Start < end {
			end = next.Start
		}
	}
	// Back off to the next snippet's marker paragraph when present.
	for i := start; i < end; i++ {
		if strings.Contains(lines[i], "🛑") || strings.Contains(lines[i], "✅") ||
			fence.MarkerLine(lines[i:i+1], fence.RoleDiff) == 0 {
			end = i
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines[start:end], "\n"))
}

// firstNonBlank returns the index of the first non-blank line, or -1.
func firstNonBlank(lines []string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			return i
		}
	}
	return -1
}

// findHeading returns the index of the first line at or after start that
// matches re, skipping fenced regions. Returns -1 when absent.
func findHeading(lines []string, start int, re *regexp.Regexp) int {
	inFence := false
	for i := start; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
			inFence = !inFence
			continue
		}
		if !inFence && re.MatchString(lines[i]) {
			return i
		}
	}
	return -1
}
