package summarize

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestDefinitions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "all patterns",
			text: "Photosynthesis is defined as the process of converting light.\n" +
				"Osmosis means the movement of water.\n" +
				"Definition: a precise statement of meaning.",
			want: []string{
				"Photosynthesis: the process of converting light",
				"Osmosis: the movement of water",
				"Definition: a precise statement of meaning",
				"a precise statement of meaning",
			},
		},
		{
			name: "case insensitive",
			text: "Entropy IS DEFINED AS disorder.",
			want: []string{"Entropy: disorder"},
		},
		{
			name: "long term skipped",
			text: strings.Repeat("x", 60) + " means something.",
			want: []string{},
		},
		{
			name: "none",
			text: "Plain prose without any of the markers.",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Definitions(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Definitions() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefinitions_Limit(t *testing.T) {
	var lines []string
	for i := range 12 {
		lines = append(lines, fmt.Sprintf("Term%d means thing %d.", i, i))
	}
	got := Definitions(strings.Join(lines, "\n"))
	if len(got) != MaxDefinitions {
		t.Fatalf("expected %d definitions, got %d", MaxDefinitions, len(got))
	}
	if got[0] != "Term0: thing 0" {
		t.Errorf("expected first definition kept in order, got %q", got[0])
	}
}

func TestFormulas(t *testing.T) {
	text := strings.Join([]string{
		"E = mc^2",
		"Speed = distance / time",
		"2 + 2 equals four",
		"No math here.",
		"--- Page 1 ---",
		"y = " + strings.Repeat("x + ", 30) + "1",
		"  F = ma  ",
	}, "\n")

	want := []string{"E = mc^2", "Speed = distance / time", "2 + 2 equals four", "F = ma"}
	if got := Formulas(text); !reflect.DeepEqual(got, want) {
		t.Errorf("Formulas() = %q, want %q", got, want)
	}
}

func TestFormulas_Limit(t *testing.T) {
	text := strings.Repeat("a = b\n", 20)
	if got := Formulas(text); len(got) != MaxFormulas {
		t.Errorf("expected %d formulas, got %d", MaxFormulas, len(got))
	}
}

func TestKeyPoints(t *testing.T) {
	text := strings.Join([]string{
		"- first point",
		"• bullet point",
		"* star point",
		"1. numbered",
		"12. twelve",
		"3) not a list marker",
		"-no space",
		"--- Slide 2 ---",
		"plain line",
	}, "\n")

	want := []string{"- first point", "• bullet point", "* star point", "1. numbered", "12. twelve"}
	if got := KeyPoints(text); !reflect.DeepEqual(got, want) {
		t.Errorf("KeyPoints() = %q, want %q", got, want)
	}
}

func TestKeyPoints_Limit(t *testing.T) {
	text := strings.Repeat("- item\n", 30)
	if got := KeyPoints(text); len(got) != MaxKeyPoints {
		t.Errorf("expected %d key points, got %d", MaxKeyPoints, len(got))
	}
}

func TestDetailedNotes(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Velocity is defined as displacement over time.\n")
	sb.WriteString("v = d / t\n")
	sb.WriteString("- Velocity has a direction\n")
	for i := range 15 {
		fmt.Fprintf(&sb, "Velocity changes when a force acts on body number %d. ", i)
	}

	notes := DetailedNotes(sb.String())

	if len(notes.Summary.Sentences) != NotesSentences {
		t.Errorf("expected %d summary sentences, got %d", NotesSentences, len(notes.Summary.Sentences))
	}
	if len(notes.Keywords) == 0 || notes.Keywords[0] != "velocity" {
		t.Errorf("expected velocity as top keyword, got %q", notes.Keywords)
	}
	if len(notes.Keywords) > NotesKeywords {
		t.Errorf("expected at most %d keywords, got %d", NotesKeywords, len(notes.Keywords))
	}
	if len(notes.Definitions) == 0 || notes.Definitions[0] != "Velocity: displacement over time" {
		t.Errorf("unexpected definitions %q", notes.Definitions)
	}
	if !reflect.DeepEqual(notes.Formulas, []string{"v = d / t"}) {
		t.Errorf("unexpected formulas %q", notes.Formulas)
	}
	if !reflect.DeepEqual(notes.KeyPoints, []string{"- Velocity has a direction"}) {
		t.Errorf("unexpected key points %q", notes.KeyPoints)
	}
}

func TestNotes_Clone(t *testing.T) {
	n := Notes{
		Keywords:  []string{"cell"},
		KeyPoints: []string{"- a"},
		Summary:   Summary{Sentences: []string{"One long sentence here."}},
	}
	c := n.Clone()
	c.Keywords[0] = "changed"
	c.KeyPoints[0] = "changed"
	c.Summary.Sentences[0] = "changed"

	if n.Keywords[0] != "cell" || n.KeyPoints[0] != "- a" || n.Summary.Sentences[0] != "One long sentence here." {
		t.Errorf("clone shares memory with original: %+v", n)
	}
}

func TestFormatNotes(t *testing.T) {
	out := FormatNotes("physics.txt", Notes{
		Keywords: []string{"velocity", "force"},
		Formulas: []string{"v = d / t"},
		Summary:  Summary{Sentences: []string{"Velocity has a direction."}},
	})

	for _, want := range []string{
		"STUDY NOTES: physics.txt\n",
		"KEYWORDS:\nvelocity, force\n",
		"DEFINITIONS:\n(none)\n",
		"FORMULAS:\n- v = d / t\n",
		"KEY POINTS:\n(none)\n",
		"SUMMARY:\n1. Velocity has a direction.\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
