package ocr

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Word is one recognized token from an hOCR document.
type Word struct {
	// Text is the recognized token.
	Text string

	// Confidence is Tesseract's x_wconf for the token, 0-100.
	Confidence float64

	// Line is the zero-based index of the line the token belongs to.
	Line int

	// BBox is the token's bounding box in image pixels.
	BBox image.Rectangle
}

// Tesseract's line-level hOCR classes. Words under any of them count as a
// new line for [JoinWords].
var hocrLineClasses = map[string]bool{
	"ocr_line":      true,
	"ocr_caption":   true,
	"ocr_textfloat": true,
	"ocr_header":    true,
}

// ParseHOCR extracts the recognized words from an hOCR document in
// reading order. Tesseract emits hOCR as XHTML with line spans wrapping
// ocrx_word spans; each word's confidence and bounding box travel in its
// title attribute ("bbox 16 14 112 41; x_wconf 96"). Content that is not
// hOCR simply yields no words.
func ParseHOCR(data []byte) ([]Word, error) {
	tz := html.NewTokenizer(bytes.NewReader(data))

	var (
		words []Word
		line  = -1
		cur   *Word
		depth int // open elements inside the current word span
	)
	for {
		switch tz.Next() {
		case html.ErrorToken:
			if err := tz.Err(); err != io.EOF {
				return nil, fmt.Errorf("parse hocr: %w", err)
			}
			return words, nil

		case html.StartTagToken:
			tok := tz.Token()
			if cur != nil {
				depth++
				continue
			}
			classes := strings.Fields(tokenAttr(tok, "class"))
			for _, cls := range classes {
				if hocrLineClasses[cls] {
					line++
					break
				}
				if cls == "ocrx_word" {
					conf, bbox := parseHOCRTitle(tokenAttr(tok, "title"))
					cur = &Word{Confidence: conf, Line: line, BBox: bbox}
					break
				}
			}

		case html.TextToken:
			if cur != nil {
				cur.Text += string(tz.Text())
			}

		case html.EndTagToken:
			if cur == nil {
				continue
			}
			if depth > 0 {
				depth--
				continue
			}
			if text := strings.TrimSpace(cur.Text); text != "" {
				cur.Text = text
				if cur.Line < 0 {
					cur.Line = 0
				}
				words = append(words, *cur)
			}
			cur = nil
		}
	}
}

// parseHOCRTitle reads the bbox and x_wconf properties from an hOCR title
// attribute. Missing or malformed properties are left at their zero
// values.
func parseHOCRTitle(title string) (conf float64, bbox image.Rectangle) {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(prop)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "bbox":
			if len(fields) == 5 {
				x0, _ := strconv.Atoi(fields[1])
				y0, _ := strconv.Atoi(fields[2])
				x1, _ := strconv.Atoi(fields[3])
				y1, _ := strconv.Atoi(fields[4])
				bbox = image.Rect(x0, y0, x1, y1)
			}
		case "x_wconf":
			if len(fields) == 2 {
				conf, _ = strconv.ParseFloat(fields[1], 64)
			}
		}
	}
	return conf, bbox
}

func tokenAttr(tok html.Token, name string) string {
	for _, a := range tok.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// FilterWords returns the words whose confidence is at least cutoff.
// A cutoff of zero or less keeps everything.
func FilterWords(words []Word, cutoff float64) []Word {
	if cutoff <= 0 {
		return words
	}
	kept := make([]Word, 0, len(words))
	for _, w := range words {
		if w.Confidence >= cutoff {
			kept = append(kept, w)
		}
	}
	return kept
}

// JoinWords reassembles words into text: spaces within a line, newlines
// between lines.
func JoinWords(words []Word) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			if w.Line != words[i-1].Line {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(w.Text)
	}
	return b.String()
}
