// Package render draws cards and the board as fixed-width text.
package render

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Roryrai/MTGplaytester/internal/config"
	"github.com/Roryrai/MTGplaytester/internal/game"
	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// Renderer turns game state into text. It holds no state of its own
// besides its dimensions.
type Renderer struct {
	width      int
	height     int
	boardWidth int
}

// New creates a renderer with the configured card and board sizes.
func New(cfg config.RenderConfig) *Renderer {
	return &Renderer{
		width:      cfg.CardWidth,
		height:     cfg.CardHeight,
		boardWidth: cfg.BoardWidth,
	}
}

// Card draws every face of card side by side, front face on the left.
func (r *Renderer) Card(card *game.Card) string {
	var images [][]string
	for _, f := range card.Faces() {
		images = append(images, r.image(f))
	}
	return sideBySide(images, r.width+2)
}

// image draws one face, one string per line. Lines are width+2 runes
// wide; the image is height+2 lines tall unless the rules text needs more.
func (r *Renderer) image(f game.Face) []string {
	border := " " + strings.Repeat("-", r.width) + " "
	rule := "|" + strings.Repeat("-", r.width) + "|"
	blank := "|" + spaces(r.width) + "|"

	lines := []string{border}

	name, cost := f.Name, f.Cost
	if room := r.width - runes(cost) - 1; runes(name) > room {
		name = truncate(name, max(room, 0))
	}
	lines = append(lines, "|"+name+spaces(r.width-runes(name)-runes(cost))+cost+"|", rule)

	for i := 2; i < r.height/2-2; i++ {
		lines = append(lines, blank)
	}

	typeLine := f.TypeLine
	if f.Subtype != "" {
		typeLine += " - " + f.Subtype
	}
	lines = append(lines, rule, r.row(truncate(typeLine, r.width)), rule)

	text := strings.Split(WrapText(f.Text, r.width), "\n")
	for _, line := range text {
		lines = append(lines, r.row(line))
	}

	creature := strings.Contains(f.TypeLine, rules.TypeCreature)
	walker := strings.Contains(f.TypeLine, rules.TypePlaneswalker)
	bottom := r.height
	if creature || walker {
		bottom -= 2
	}
	for i := r.height/2 + 1 + len(text); i < bottom; i++ {
		lines = append(lines, blank)
	}

	switch {
	case creature:
		lines = append(lines, r.box(strconv.Itoa(f.Power)+"/"+strconv.Itoa(f.Toughness))...)
	case walker:
		lines = append(lines, r.box(strconv.Itoa(f.Loyalty))...)
	}
	return append(lines, border)
}

// row pads s into a bordered line.
func (r *Renderer) row(s string) string {
	return "|" + s + spaces(r.width-runes(s)) + "|"
}

// box draws the two-line stat box in the bottom right corner.
func (r *Renderer) box(value string) []string {
	size := runes(value) + 2
	return []string{
		"|" + spaces(r.width-size) + strings.Repeat("-", size) + "|",
		"|" + spaces(r.width-size-1) + "| " + value + " |",
	}
}

// WrapText breaks text into lines of at most width runes. Existing line
// breaks are kept. Words longer than a line are split.
func WrapText(text string, width int) string {
	if width < 1 {
		return text
	}
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Split(paragraph, " ") {
			for runes(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				out = append(out, truncate(word, width))
				word = string([]rune(word)[width:])
			}
			if word == "" {
				continue
			}
			switch {
			case line == "":
				line = word
			case runes(line)+1+runes(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		out = append(out, line)
	}
	return strings.TrimRight(strings.Join(out, "\n"), " \n")
}

// sideBySide joins images line by line with a single space between them.
// Shorter images are padded with blank lines of the given width.
func sideBySide(images [][]string, width int) string {
	height := 0
	for _, img := range images {
		height = max(height, len(img))
	}
	var b strings.Builder
	for i := 0; i < height; i++ {
		for j, img := range images {
			if j > 0 {
				b.WriteString(" ")
			}
			if i < len(img) {
				b.WriteString(img[i])
			} else {
				b.WriteString(spaces(width))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func runes(s string) int { return utf8.RuneCountInString(s) }

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// padRight pads s with spaces to n runes.
func padRight(s string, n int) string {
	return s + spaces(n-runes(s))
}

func truncate(s string, n int) string {
	if runes(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
