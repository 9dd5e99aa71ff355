// Package fence locates fenced code blocks inside an example section and
// resolves their annotations into concrete highlight sets.
package fence

import (
	"sort"
	"strings"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

// Role marks which snippet a fence plays in an example.
type Role int

const (
	// RoleAvoid is the problematic snippet, introduced by a 🛑 marker.
	RoleAvoid Role = iota

	// RoleGood is the corrected snippet, introduced by a ✅ marker.
	RoleGood

	// RoleDiff is the authored diff view, introduced by a "diff"-labelled
	// paragraph or a diff-language fence.
	RoleDiff
)

const (
	avoidMarker = "🛑"
	goodMarker  = "✅"
)

// Fence is one fenced code block found in a section.
type Fence struct {
	// Annotation is the parsed info-string metadata.
	Annotation *Annotation

	// Lines is the fence body, one entry per line.
	Lines []string

	// Start and End are the indexes of the opening and closing fence
	// markers within the scanned line slice.
	Start int
	End   int
}

// Scan returns all fenced code blocks in the section, in order.
// An unterminated fence fails with domain.ErrInvalidInput.
func Scan(lines []string) ([]Fence, error) {
	var fences []Fence
	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, "```") {
			continue
		}
		ann, err := ParseInfoString(strings.TrimPrefix(trimmed, "```"))
		if err != nil {
			return nil, err
		}
		f := Fence{Annotation: ann, Start: i}
		closed := false
		for j := i + 1; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) == "```" {
				f.End = j
				f.Lines = append([]string(nil), lines[i+1:j]...)
				closed = true
				i = j
				break
			}
		}
		if !closed {
			return nil, domain.ErrInvalidInput
		}
		fences = append(fences, f)
	}
	return fences, nil
}

// Locate finds the fence between the given role's marker and the next
// role marker. For RoleDiff a diff-language fence qualifies even without
// a marker paragraph. Returns false when the role is not present in the
// section. Returns domain.ErrMissingSnippet when the marker is present
// but no fence sits in its span, so a deleted snippet is reported rather
// than binding the next role's fence. Marker text inside fence bodies is
// ignored.
func Locate(lines []string, fences []Fence, role Role) (*Fence, bool, error) {
	marker := markerAfter(lines, fences, role, -1)
	if marker < 0 {
		if role == RoleDiff {
			// Fall back to the first diff-language fence.
			for i := range fences {
				if fences[i].Annotation.Language == "diff" {
					return &fences[i], true, nil
				}
			}
		}
		return nil, false, nil
	}
	limit := nextMarker(lines, fences, marker)
	for i := range fences {
		if fences[i].Start > marker && (limit < 0 || fences[i].Start < limit) {
			return &fences[i], true, nil
		}
	}
	return nil, false, domain.ErrMissingSnippet
}

// markerAfter returns the line index of the role's first marker after
// the given line, skipping fence bodies. Returns -1 when absent.
func markerAfter(lines []string, fences []Fence, role Role, after int) int {
	for i := after + 1; i < len(lines); i++ {
		if insideFence(fences, i) {
			continue
		}
		if MarkerLine(lines[i:i+1], role) == 0 {
			return i
		}
	}
	return -1
}

// nextMarker returns the line index of the first marker of any role
// after the given line, skipping fence bodies. Returns -1 when none.
func nextMarker(lines []string, fences []Fence, after int) int {
	for i := after + 1; i < len(lines); i++ {
		if insideFence(fences, i) {
			continue
		}
		for _, role := range []Role{RoleAvoid, RoleGood, RoleDiff} {
			if MarkerLine(lines[i:i+1], role) == 0 {
				return i
			}
		}
	}
	return -1
}

// insideFence reports whether a line index falls within a fence,
// including its opening and closing markers.
func insideFence(fences []Fence, line int) bool {
	for i := range fences {
		if line >= fences[i].Start && line <= fences[i].End {
			return true
		}
	}
	return false
}

// MarkerLine returns the line index of the role's marker, or -1.
func MarkerLine(lines []string, role Role) int {
	for i, line := range lines {
		switch role {
		case RoleAvoid:
			if strings.Contains(line, avoidMarker) {
				return i
			}
		case RoleGood:
			if strings.Contains(line, goodMarker) {
				return i
			}
		case RoleDiff:
			lower := strings.ToLower(strings.TrimSpace(line))
			if strings.HasPrefix(lower, "diff view") || strings.HasPrefix(lower, "diff:") {
				return i
			}
		}
	}
	return -1
}

// Resolve applies a fence's annotation to its body, producing a
// CodeBlock with concrete highlight sets. blockID names the block in
// errors. Fails with a *domain.HighlightError when a declared line
// exceeds the body's line count or a declared token never occurs.
func Resolve(f *Fence, blockID string) (*domain.CodeBlock, error) {
	block := &domain.CodeBlock{
		Language:        f.Annotation.Language,
		Filename:        f.Annotation.Filename,
		SourceLines:     f.Lines,
		ShowLineNumbers: f.Annotation.ShowLineNumbers,
	}

	seen := make(map[int]bool)
	for _, r := range f.Annotation.LineRanges {
		if r.End > len(f.Lines) {
			return nil, &domain.HighlightError{BlockID: blockID, Line: r.End}
		}
		for n := r.Start; n <= r.End; n++ {
			if !seen[n] {
				seen[n] = true
				block.HighlightedLines = append(block.HighlightedLines, n)
			}
		}
	}
	sort.Ints(block.HighlightedLines)

	body := strings.Join(f.Lines, "\n")
	for _, th := range f.Annotation.Tokens {
		count := strings.Count(body, th.Token)
		if count == 0 || (th.Occurrence > 0 && count < th.Occurrence) {
			return nil, &domain.HighlightError{BlockID: blockID, Token: th.Token}
		}
		block.HighlightedTokens = append(block.HighlightedTokens, th)
	}

	return block, nil
}

// ParseDiff interprets a diff fence's body: lines prefixed "+" are
// additions, "-" are removals, everything else is unchanged context.
// The authored summary, if any, comes from the fence annotation.
func ParseDiff(f *Fence) *domain.DiffBlock {
	d := &domain.DiffBlock{Summary: f.Annotation.DiffSummary}
	for _, line := range f.Lines {
		switch {
		case strings.HasPrefix(line, "+"):
			d.AddedLines = append(d.AddedLines, strings.TrimPrefix(strings.TrimPrefix(line, "+"), " "))
		case strings.HasPrefix(line, "-"):
			d.RemovedLines = append(d.RemovedLines, strings.TrimPrefix(strings.TrimPrefix(line, "-"), " "))
		default:
			d.UnchangedContext = append(d.UnchangedContext, strings.TrimPrefix(line, "  "))
		}
	}
	return d
}
