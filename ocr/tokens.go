package ocr

import (
	"image"
	"strings"

	"github.com/thierryx96/cellar-ai/model"
)

// PageSegMode represents Tesseract page segmentation modes. Values match
// Tesseract's own numbering.
type PageSegMode int

// Page segmentation modes useful for menus
const (
	PSMAuto         PageSegMode = 3  // Fully automatic
	PSMSingleColumn PageSegMode = 4  // Single column of variable sizes
	PSMSingleBlock  PageSegMode = 6  // Single uniform block of text
	PSMSparseText   PageSegMode = 11 // Find as much text as possible, in no order
)

// blockedChars are stripped from every recognized word
const blockedChars = ";!@#^&*()_+=`~\"<>?/:{}[]|\\"

// WordBox is one word recognized by the engine
type WordBox struct {
	Text       string
	Box        image.Rectangle
	Confidence float64 // 0-100
}

// ToTokens converts word boxes into tokens: the box centroid gives the
// position, the box height the glyph height. Blocked punctuation is removed
// and words left empty are dropped.
func ToTokens(words []WordBox) []model.Token {
	tokens := make([]model.Token, 0, len(words))
	for _, w := range words {
		text := strings.Map(func(r rune) rune {
			if strings.ContainsRune(blockedChars, r) {
				return -1
			}
			return r
		}, w.Text)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		x := float64(w.Box.Min.X+w.Box.Max.X) / 2
		y := float64(w.Box.Min.Y+w.Box.Max.Y) / 2
		h := float64(w.Box.Dy())
		tokens = append(tokens, model.NewToken(text, x, y, h, clampConfidence(w.Confidence/100)))
	}
	return tokens
}

func clampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}
