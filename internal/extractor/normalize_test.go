package extractor

import (
	"strings"
	"testing"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \r\n\t ", ""},
		{"crlf runs", "Hemoglobin: 13.5\r\n\r\n\r\nRange: 12-16", "Hemoglobin: 13.5\nRange: 12-16"},
		{"bare carriage returns", "WBC\rRBC", "WBC\nRBC"},
		{"paragraph break collapses", "Lipid panel\n\nLDL: 130", "Lipid panel\nLDL: 130"},
		{"long newline run", "a\n\n\n\n\n\n\nb", "a\nb"},
		{"space runs", "Glucose:     98   mg/dL", "Glucose: 98 mg/dL"},
		{"trims edges", "  \n  TSH 2.1  \n ", "TSH 2.1"},
		{"tabs untouched inside", "Na\t\t140", "Na\t\t140"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePage(tt.raw); got != tt.want {
				t.Errorf("NormalizePage(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizePageIdempotentAndCollapsed(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"\r\r\r",
		"a\r\n\r\nb  c",
		"a\n \n \nb",
		"   x   \n\n\n   y   ",
		"Ferritin:\t 20 \r\n ng/mL\r\n\r\n\r\n\r\n",
		"one  two   three    four",
		strings.Repeat("\n", 17) + "z" + strings.Repeat(" ", 33),
	}

	for _, in := range inputs {
		once := NormalizePage(in)
		if twice := NormalizePage(once); twice != once {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
		if strings.Contains(once, "  ") {
			t.Errorf("double space left in %q", once)
		}
		if strings.Contains(once, "\n\n") {
			t.Errorf("double newline left in %q", once)
		}
		if strings.Contains(once, "\r") {
			t.Errorf("carriage return left in %q", once)
		}
	}
}

func TestJoinPages(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{"no pages", nil, ""},
		{"all blank", []string{"", "  ", "\r\n"}, ""},
		{"drops blank page", []string{"Hemoglobin: 13.5\r\n\r\n\r\nRange: 12-16", "   "}, "Hemoglobin: 13.5\nRange: 12-16"},
		{"keeps order", []string{"page one", "", "page  two", "page three\n\n"}, "page one\npage two\npage three"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinPages(tt.pages); got != tt.want {
				t.Errorf("JoinPages(%q) = %q, want %q", tt.pages, got, tt.want)
			}
		})
	}
}
