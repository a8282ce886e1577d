package tables

import (
	"strings"

	"github.com/rangel3l/sem-colar-system/model"
)

// Delimiter characters whose vertical alignment across lines indicates
// columns.
const alignmentChars = ":|.-+"

// Box-drawing characters that only appear in drawn grids.
const borderChars = "┌┐└┘├┤┬┴┼│─"

// ASCII grid patterns that indicate a drawn table frame.
var gridPatterns = []string{"+-+", "+--+", "|--|"}

// Font family substrings that indicate monospace output, a strong tabular
// signal in extracted PDFs.
var monospaceFonts = []string{"Courier", "Consolas", "Monaco", "Menlo", "MonoSpace"}

// TextDetector classifies text blocks as tabular or prose by analyzing
// their internal line structure.
type TextDetector struct {
	// MinAlignedPositions is how many shared delimiter columns are needed
	// for the alignment signal to fire.
	MinAlignedPositions int

	// MaxSeparatorVariance is the maximum number of distinct per-line
	// separator counts tolerated by the consistency signal. Two allows a
	// header row without trailing separators.
	MaxSeparatorVariance int
}

// NewTextDetector creates a detector with default settings.
func NewTextDetector() *TextDetector {
	return &TextDetector{
		MinAlignedPositions:  2,
		MaxSeparatorVariance: 2,
	}
}

// ClassifyBlock reports whether the block is tabular, considering both its
// text and its span fonts.
func (d *TextDetector) ClassifyBlock(block *model.TextBlock) bool {
	if d.Classify(block.Text()) {
		return true
	}
	for _, font := range block.Fonts() {
		if isMonospaceFont(font) {
			return true
		}
	}
	return false
}

// Classify reports whether the given block text looks tabular. Signals are
// checked cheapest-first; any single one suffices.
func (d *TextDetector) Classify(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	if containsGridGlyphs(text) {
		return true
	}

	lines := splitNonEmptyAware(text)

	if d.alignmentScore(lines) >= d.MinAlignedPositions {
		return true
	}

	return d.separatorsConsistent(text, lines)
}

// alignmentScore counts delimiter positions shared by more than half of
// the lines carrying delimiters. Requires at least two such lines.
func (d *TextDetector) alignmentScore(lines []string) int {
	var positions [][]int
	for _, line := range lines {
		var pos []int
		for i, ch := range line {
			if strings.ContainsRune(alignmentChars, ch) {
				pos = append(pos, i)
			}
		}
		if len(pos) > 0 {
			positions = append(positions, pos)
		}
	}

	if len(positions) < 2 {
		return 0
	}

	all := make(map[int]int)
	for _, pos := range positions {
		for _, p := range pos {
			all[p]++
		}
	}

	score := 0
	for _, count := range all {
		if count > len(positions)/2 {
			score++
		}
	}
	return score
}

// separatorsConsistent checks that lines containing pipe/tab/double-space
// separators carry near-identical separator counts.
func (d *TextDetector) separatorsConsistent(text string, lines []string) bool {
	if len(lines) < 2 {
		return false
	}

	hasSeparators := strings.Contains(text, "\t") ||
		strings.Contains(text, "|") ||
		strings.Contains(text, "  ")
	if !hasSeparators {
		return false
	}

	counts := make(map[int]bool)
	n := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		count := strings.Count(line, "|") +
			strings.Count(line, "\t") +
			countDoubleSpaceRuns(line)
		counts[count] = true
		n++
	}

	if n < 2 {
		return false
	}
	return len(counts) <= d.MaxSeparatorVariance
}

// containsGridGlyphs reports drawn-frame characters or ASCII grid
// patterns anywhere in the text.
func containsGridGlyphs(text string) bool {
	if strings.ContainsAny(text, borderChars) {
		return true
	}
	for _, pattern := range gridPatterns {
		if strings.Contains(text, pattern) {
			return true
		}
	}
	return false
}

// isMonospaceFont reports whether the font name contains a known
// monospace family substring.
func isMonospaceFont(name string) bool {
	for _, mono := range monospaceFonts {
		if strings.Contains(name, mono) {
			return true
		}
	}
	return false
}

// countDoubleSpaceRuns counts runs of two or more consecutive spaces.
func countDoubleSpaceRuns(line string) int {
	count := 0
	run := 0
	for _, ch := range line {
		if ch == ' ' {
			run++
			continue
		}
		if run >= 2 {
			count++
		}
		run = 0
	}
	if run >= 2 {
		count++
	}
	return count
}

// splitNonEmptyAware splits the text into lines, keeping empty lines so
// positional indexes stay meaningful to callers that need them.
func splitNonEmptyAware(text string) []string {
	return strings.Split(text, "\n")
}
