package domain

import (
	"errors"
	"testing"
)

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in     string
		want   Layout
		wantOK bool
	}{
		{in: "GRID_CARDS", want: LayoutGridCards, wantOK: true},
		{in: " connected_flow ", want: LayoutConnectedFlow, wantOK: true},
		{in: "zigzag_timeline", want: LayoutZigzagTimeline, wantOK: true},
		{in: "MASONRY", wantOK: false},
		{in: "", wantOK: false},
	}
	for _, tc := range tests {
		got, ok := ParseLayout(tc.in)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("ParseLayout(%q) = (%q, %t), want (%q, %t)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestLayoutOrDefault(t *testing.T) {
	if got := Layout("").OrDefault(); got != LayoutGridCards {
		t.Fatalf("empty layout = %q, want %q", got, LayoutGridCards)
	}
	if got := Layout("grid_cards").OrDefault(); got != LayoutGridCards {
		t.Fatalf("lowercase layout = %q, want %q", got, LayoutGridCards)
	}
	if got := LayoutZigzagTimeline.OrDefault(); got != LayoutZigzagTimeline {
		t.Fatalf("zigzag layout = %q, want %q", got, LayoutZigzagTimeline)
	}
}

func TestWithLayoutDoesNotShareState(t *testing.T) {
	orig := Infographic{Topic: "Quang hợp", Points: []Point{{Title: "Bước 1"}}}
	next := orig.WithLayout(LayoutConnectedFlow)
	next.Points[0].Title = "changed"

	if orig.Layout != "" {
		t.Fatalf("original layout mutated to %q", orig.Layout)
	}
	if orig.Points[0].Title != "Bước 1" {
		t.Fatalf("original points mutated: %+v", orig.Points)
	}
	if next.Layout != LayoutConnectedFlow {
		t.Fatalf("layout = %q, want %q", next.Layout, LayoutConnectedFlow)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(ErrNoInput); got != MissingInputMessage {
		t.Fatalf("UserMessage(ErrNoInput) = %q", got)
	}
	if got := UserMessage(errors.New("  ")); got != GenericFailureMessage {
		t.Fatalf("blank error message = %q, want generic", got)
	}
	if !errors.Is(ErrNoInput, ErrValidation) {
		t.Fatal("ErrNoInput should wrap ErrValidation")
	}
	if !IsExtractionFailure(ErrSchema) || IsExtractionFailure(ErrValidation) {
		t.Fatal("IsExtractionFailure classification mismatch")
	}
}
