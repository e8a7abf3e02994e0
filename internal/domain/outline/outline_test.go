package outline

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/reelcut/reelcut/internal/domain/timecode"
	"github.com/reelcut/reelcut/internal/types"
)

const customDoc = `Segment 1: Opening Hook (01:30)
**STARTING TIMESTAMP:** 00:16:30 **CONTENT DESCRIPTION:** The speaker lays out the core promise of the talk.
`

const standardDoc = `#### Introduction (2 minutes)
STARTING TIMESTAMP: 00:01:30
`

const simpleDoc = `SEGMENT: Opening Segment
TIME: 00:01:30
DURATION: 2 minutes
`

func TestDetect_Table(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Format
	}{
		{"custom", customDoc, FormatCustom},
		{"standard", standardDoc, FormatStandard},
		{"simple", simpleDoc, FormatSimple},
		{"custom outranks standard", standardDoc + "\n" + customDoc, FormatCustom},
		{"standard outranks simple", standardDoc + "\n" + simpleDoc, FormatStandard},
		{"markers survive emphasis", "__Segment 1: Hook__\n*STARTING TIMESTAMP:* 00:01:00 *CONTENT DESCRIPTION:* x\n", FormatCustom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.text)
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Detect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetect_Unrecognized(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"prose", "Here are some thoughts about the talk.\nIt was good.\n"},
		{"custom intro without marker pair", "Segment 1: Hook (01:30)\nSTARTING TIMESTAMP: 00:16:30\n"},
		{"heading without timestamp line", "#### Introduction (2 minutes)\nJust prose below.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Detect(tt.text); !errors.Is(err, ErrUnrecognizedFormat) {
				t.Fatalf("Detect err = %v, want ErrUnrecognizedFormat", err)
			}
		})
	}
}

func TestExtract_NormativeExamples(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		text   string
		want   types.RawSegment
	}{
		{"custom", FormatCustom, customDoc, types.RawSegment{Title: "Opening Hook", Start: 990, Span: 90}},
		{"standard", FormatStandard, standardDoc, types.RawSegment{Title: "Introduction", Start: 90, Span: 120}},
		{"simple", FormatSimple, simpleDoc, types.RawSegment{Title: "Opening Segment", Start: 90, Span: 120}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, warns, err := Extract(tt.format, tt.text, Options{})
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if len(warns) != 0 {
				t.Fatalf("unexpected warnings: %v", warns)
			}
			if len(segs) != 1 {
				t.Fatalf("expected 1 segment, got %d", len(segs))
			}
			if segs[0] != tt.want {
				t.Fatalf("segment = %+v, want %+v", segs[0], tt.want)
			}
		})
	}
}

func TestExtract_DefaultSpan(t *testing.T) {
	text := "Segment 1: The Big Reveal\n**STARTING TIMESTAMP:** 00:24:10 **CONTENT DESCRIPTION:** x\n"

	segs, warns, err := Extract(FormatCustom, text, Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(segs) != 1 || segs[0].Span != DefaultSpan {
		t.Fatalf("expected default span %d, got %+v", DefaultSpan, segs)
	}
	if len(warns) != 1 {
		t.Fatalf("expected 1 warning, got %v", warns)
	}

	segs, _, err = Extract(FormatCustom, text, Options{DefaultSpan: 30})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if segs[0].Span != 30 {
		t.Fatalf("expected configured span 30, got %d", segs[0].Span)
	}
}

func TestExtract_SkipsMalformedBlocks(t *testing.T) {
	text := `SEGMENT: Good One
TIME: 00:01:00
DURATION: 30 seconds

SEGMENT: No Time
DURATION: 30 seconds

SEGMENT: Bad Time
TIME: whenever
DURATION: 30 seconds
`
	segs, warns, err := Extract(FormatSimple, text, Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(segs) != 1 || segs[0].Title != "Good One" {
		t.Fatalf("expected only the well-formed block, got %+v", segs)
	}
	if len(warns) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warns)
	}
}

func TestExtract_ProseParentheticalStaysInTitle(t *testing.T) {
	text := "#### Benchmarks (the fun part)\nSTARTING TIMESTAMP: 00:10:00\n"

	segs, warns, err := Extract(FormatStandard, text, Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(segs) != 1 || segs[0].Title != "Benchmarks (the fun part)" {
		t.Fatalf("expected parenthetical kept in title, got %+v", segs)
	}
	if len(warns) != 1 {
		t.Fatalf("expected default-span warning, got %v", warns)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	text, err := os.ReadFile(filepath.Join("testdata", "custom_mixed.md"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	s1, w1, err := Extract(FormatCustom, string(text), Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	s2, w2, err := Extract(FormatCustom, string(text), Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !reflect.DeepEqual(s1, s2) || !reflect.DeepEqual(w1, w2) {
		t.Fatalf("extraction is not deterministic:\n%+v\n%+v", s1, s2)
	}
}

func TestExtract_UnknownFormat(t *testing.T) {
	if _, _, err := Extract(FormatUnknown, "x", Options{}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		f    Format
		want string
	}{
		{FormatUnknown, "unknown"},
		{FormatCustom, "custom"},
		{FormatStandard, "standard"},
		{FormatSimple, "simple"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Fatalf("Format(%d).String() = %q, want %q", int(tt.f), got, tt.want)
		}
	}
}

func TestSplitTrailingSpan(t *testing.T) {
	tests := []struct {
		in        string
		wantTitle string
		wantSpan  string
	}{
		{"Opening Hook (01:30)", "Opening Hook", "01:30"},
		{"Opening Hook", "Opening Hook", ""},
		{"Hook (see notes) (2 minutes)", "Hook (see notes)", "2 minutes"},
		{"Hook (an aside)", "Hook (an aside)", ""},
		{"(01:30)", "", "01:30"},
	}
	for _, tt := range tests {
		title, span := splitTrailingSpan(tt.in)
		if title != tt.wantTitle || span != tt.wantSpan {
			t.Fatalf("splitTrailingSpan(%q) = (%q, %q), want (%q, %q)",
				tt.in, title, span, tt.wantTitle, tt.wantSpan)
		}
	}
}

// The fixture files under testdata pin the full extraction output,
// warnings included, against golden files.
func TestExtract_Golden(t *testing.T) {
	fixtures := []string{
		"custom",
		"standard",
		"simple",
		"custom_mixed",
		"standard_mixed",
		"simple_partial",
	}
	g := goldie.New(t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithNameSuffix(".golden"),
	)
	for _, name := range fixtures {
		t.Run(name, func(t *testing.T) {
			raw, err := os.ReadFile(filepath.Join("testdata", name+".md"))
			if err != nil {
				t.Fatalf("read fixture: %v", err)
			}
			format, err := Detect(string(raw))
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			segs, warns, err := Extract(format, string(raw), Options{})
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			g.Assert(t, name, dumpExtraction(format, segs, warns))
		})
	}
}

func dumpExtraction(f Format, segs []types.RawSegment, warns []string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "format: %s\n", f)
	for _, s := range segs {
		fmt.Fprintf(&b, "segment: title=%q start=%s span=%s\n",
			s.Title, timecode.Format(s.Start), timecode.FormatSpan(s.Span))
	}
	for _, w := range warns {
		fmt.Fprintf(&b, "warning: %s\n", w)
	}
	return b.Bytes()
}
