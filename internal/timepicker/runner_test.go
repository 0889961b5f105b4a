package timepicker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

func sendAll(rm *runnerModel, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = rm.Update(msg)
	}
	return cmd
}

func TestRunner_SubmitNormalizesFocusedField(t *testing.T) {
	rm := newRunnerModel(Props{DefaultValue: "14:45", Name: "alarm"}, "")
	rm.Init()

	cmd := sendAll(rm,
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		keyRunes("7"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if cmd == nil {
		t.Fatalf("expected enter to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	want := Result{Value: "07:45", Fields: map[string]string{"alarm-hour": "07", "alarm-minute": "45"}}
	if diff := cmp.Diff(want, rm.result); diff != "" {
		t.Fatalf("result (-want +got):\n%s", diff)
	}
	if rm.cancelled {
		t.Fatalf("submit should not cancel")
	}
}

func TestRunner_ResultCarriesHourUnderID(t *testing.T) {
	rm := newRunnerModel(Props{DefaultValue: "14:45", ID: "start"}, "")
	rm.Init()

	sendAll(rm, tea.KeyMsg{Type: tea.KeyCtrlS})
	want := Result{Value: "14:45", Fields: map[string]string{"start": "14"}}
	if diff := cmp.Diff(want, rm.result); diff != "" {
		t.Fatalf("result (-want +got):\n%s", diff)
	}
}

func TestRunner_EscCancelsOnlyWhenClosed(t *testing.T) {
	rm := newRunnerModel(Props{DefaultValue: "14:45"}, "")
	rm.Init()

	sendAll(rm, tea.KeyMsg{Type: tea.KeyCtrlO}, tea.KeyMsg{Type: tea.KeyEsc})
	if rm.cancelled {
		t.Fatalf("esc with the panel open should close it, not cancel")
	}
	if rm.picker.IsOpen() {
		t.Fatalf("esc should close the panel")
	}

	sendAll(rm, tea.KeyMsg{Type: tea.KeyEsc})
	if !rm.cancelled {
		t.Fatalf("esc with the panel closed should cancel")
	}
}

func TestRunner_ControlledOwnerFeedsBack(t *testing.T) {
	v := "09:30"
	var seen []string
	rm := newRunnerModel(Props{Value: &v, OnChange: func(s string) { seen = append(seen, s) }}, "")
	rm.Init()

	sendAll(rm,
		tea.KeyMsg{Type: tea.KeyCtrlO},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyCtrlS},
	)
	if rm.result.Value != "10:30" {
		t.Fatalf("result = %q, want 10:30", rm.result.Value)
	}
	if *rm.value != "10:30" {
		t.Fatalf("owned value = %q, want 10:30", *rm.value)
	}
	if diff := cmp.Diff([]string{"10:30", "10:30"}, seen); diff != "" {
		t.Fatalf("notifications (-want +got):\n%s", diff)
	}
	if v != "09:30" {
		t.Fatalf("runner must not write through the caller's pointer")
	}
}

func TestRunner_ControlledTyping(t *testing.T) {
	v := "09:30"
	rm := newRunnerModel(Props{Value: &v}, "")
	rm.Init()

	sendAll(rm,
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		keyRunes("1"),
		keyRunes("5"),
		tea.KeyMsg{Type: tea.KeyCtrlS},
	)
	if rm.result.Value != "15:30" || *rm.value != "15:30" {
		t.Fatalf("result = %q owned = %q, want 15:30", rm.result.Value, *rm.value)
	}
}

func TestRunner_MousePressOutsideClosesPanel(t *testing.T) {
	rm := newRunnerModel(Props{}, "")
	rm.Init()
	sendAll(rm, tea.KeyMsg{Type: tea.KeyCtrlO})

	sendAll(rm, tea.MouseMsg{X: 70, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if rm.picker.IsOpen() {
		t.Fatalf("outside press should close the panel")
	}
	if rm.bus.Len() != 1 {
		t.Fatalf("runner picker should stay mounted, got %d listeners", rm.bus.Len())
	}
}

func TestRunner_View(t *testing.T) {
	rm := newRunnerModel(Props{DefaultValue: "14:45"}, "Alarm")
	view := rm.View()
	for _, want := range []string{"Alarm", "14", "45", "confirm", "cancel"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	// The field's top border sits on the origin row, the inputs one below.
	if lines := strings.Split(view, "\n"); !strings.Contains(lines[runnerOriginY+1], "14") {
		t.Fatalf("hour input should be on row %d:\n%s", runnerOriginY+1, view)
	}
}
