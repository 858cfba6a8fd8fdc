package ocr

import (
	"image"
	"testing"
)

const sampleHOCR = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" lang="en">
 <body>
  <div class='ocr_page' id='page_1' title='image "display.png"; bbox 0 0 320 240; ppageno 0'>
   <div class='ocr_carea' id='block_1_1' title="bbox 14 10 300 120">
    <p class='ocr_par' id='par_1_1' lang='eng' title="bbox 14 10 300 120">
     <span class='ocr_line' id='line_1_1' title="bbox 14 10 300 60; baseline 0 -2">
      <span class='ocrx_word' id='word_1_1' title='bbox 14 10 90 60; x_wconf 96'>SYS</span>
      <span class='ocrx_word' id='word_1_2' title='bbox 110 10 220 60; x_wconf 91'>120</span>
     </span>
     <span class='ocr_line' id='line_1_2' title="bbox 14 70 300 120; baseline 0 -2">
      <span class='ocrx_word' id='word_1_3' title='bbox 14 70 90 120; x_wconf 88'>DIA</span>
      <span class='ocrx_word' id='word_1_4' title='bbox 110 70 200 120; x_wconf 42'>8O</span>
     </span>
    </p>
   </div>
  </div>
 </body>
</html>`

func TestParseHOCR(t *testing.T) {
	words, err := ParseHOCR([]byte(sampleHOCR))
	if err != nil {
		t.Fatalf("ParseHOCR() error: %v", err)
	}
	if len(words) != 4 {
		t.Fatalf("ParseHOCR() returned %d words, want 4", len(words))
	}

	want := []Word{
		{Text: "SYS", Confidence: 96, Line: 0, BBox: image.Rect(14, 10, 90, 60)},
		{Text: "120", Confidence: 91, Line: 0, BBox: image.Rect(110, 10, 220, 60)},
		{Text: "DIA", Confidence: 88, Line: 1, BBox: image.Rect(14, 70, 90, 120)},
		{Text: "8O", Confidence: 42, Line: 1, BBox: image.Rect(110, 70, 200, 120)},
	}
	for i, w := range want {
		if words[i] != w {
			t.Errorf("word %d = %+v, want %+v", i, words[i], w)
		}
	}
}

func TestParseHOCR_NestedMarkup(t *testing.T) {
	doc := `<span class='ocr_line' title='bbox 0 0 50 20'>
	<span class='ocrx_word' title='bbox 0 0 50 20; x_wconf 70'><em>142/88</em></span>
	</span>`

	words, err := ParseHOCR([]byte(doc))
	if err != nil {
		t.Fatalf("ParseHOCR() error: %v", err)
	}
	if len(words) != 1 {
		t.Fatalf("ParseHOCR() returned %d words, want 1", len(words))
	}
	if words[0].Text != "142/88" {
		t.Errorf("word text = %q, want %q", words[0].Text, "142/88")
	}
	if words[0].Confidence != 70 {
		t.Errorf("word confidence = %v, want 70", words[0].Confidence)
	}
}

func TestParseHOCR_NotHOCR(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"plain text", "just some text"},
		{"html without hocr classes", "<p>hello <b>there</b></p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := ParseHOCR([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseHOCR(%q) error: %v", tt.data, err)
			}
			if len(words) != 0 {
				t.Errorf("ParseHOCR(%q) returned %d words, want 0", tt.data, len(words))
			}
		})
	}
}

func TestFilterWords(t *testing.T) {
	words, err := ParseHOCR([]byte(sampleHOCR))
	if err != nil {
		t.Fatalf("ParseHOCR() error: %v", err)
	}

	kept := FilterWords(words, 80)
	if len(kept) != 3 {
		t.Fatalf("FilterWords(words, 80) kept %d words, want 3", len(kept))
	}
	for _, w := range kept {
		if w.Confidence < 80 {
			t.Errorf("kept word %q with confidence %v below cutoff", w.Text, w.Confidence)
		}
	}

	if got := FilterWords(words, 0); len(got) != len(words) {
		t.Errorf("FilterWords(words, 0) kept %d words, want all %d", len(got), len(words))
	}
}

func TestJoinWords(t *testing.T) {
	words, err := ParseHOCR([]byte(sampleHOCR))
	if err != nil {
		t.Fatalf("ParseHOCR() error: %v", err)
	}

	if got, want := JoinWords(words), "SYS 120\nDIA 8O"; got != want {
		t.Errorf("JoinWords() = %q, want %q", got, want)
	}
	if got, want := JoinWords(FilterWords(words, 80)), "SYS 120\nDIA"; got != want {
		t.Errorf("JoinWords(filtered) = %q, want %q", got, want)
	}
	if got := JoinWords(nil); got != "" {
		t.Errorf("JoinWords(nil) = %q, want empty", got)
	}
}
