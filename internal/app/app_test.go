package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/play"
	"github.com/wordwhizkids/wordwhiz/internal/roster"
	"github.com/wordwhizkids/wordwhiz/internal/router"
	"github.com/wordwhizkids/wordwhiz/internal/speech"
)

func newTestModel() AppModel {
	bank := challenge.DefaultBank()
	env := play.New(context.Background(), challenge.NewResolver(nil, bank), bank, speech.Kit{}, nil, false)
	return newAppModel(Options{Env: env})
}

func sized(m AppModel) AppModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(AppModel)
}

func TestStartsOnWelcome(t *testing.T) {
	m := sized(newTestModel())
	if m.router.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", m.router.Depth())
	}
	if m.Init() == nil {
		t.Error("Init should start the clock")
	}
	if m.env.NewRoster == nil || m.env.NewMenu == nil || m.env.NewSummary == nil {
		t.Error("screen factories should be wired")
	}
}

func TestViewBeforeSize(t *testing.T) {
	m := newTestModel()
	if m.render() != "" {
		t.Error("nothing should render before the first WindowSizeMsg")
	}
}

func TestHeaderShowsStudent(t *testing.T) {
	m := sized(newTestModel())
	st, _ := roster.Find("ana")
	m.env.Start(st, 20)

	view := m.render()
	if !strings.Contains(view, "Ana") || !strings.Contains(view, "20:00") {
		t.Error("header should show the student and the clock")
	}
}

func TestTickRunsClock(t *testing.T) {
	m := sized(newTestModel())
	st, _ := roster.Find("guest-1")
	m.env.Start(st, 20)

	next, cmd := m.Update(play.TickMsg(time.Now()))
	m = next.(AppModel)
	if cmd == nil {
		t.Fatal("the clock should keep ticking")
	}
	if m.env.State.Remaining != 20*time.Minute-play.TickInterval {
		t.Errorf("Remaining = %v", m.env.State.Remaining)
	}
}

func TestTimeUpShowsSummary(t *testing.T) {
	m := sized(newTestModel())
	st, _ := roster.Find("guest-2")
	m.env.Start(st, 20)
	m.env.State.Remaining = play.TickInterval

	next, cmd := m.Update(play.TickMsg(time.Now()))
	m = next.(AppModel)
	msgs := []tea.Msg{}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil {
				msgs = append(msgs, c())
			}
		}
	}

	var reset *router.RestartMsg
	for _, msg := range msgs {
		if r, ok := msg.(router.RestartMsg); ok {
			reset = &r
		}
	}
	if reset == nil {
		t.Fatal("time up should reset to the summary")
	}
	if reset.Screen.Title() != "Session Summary" {
		t.Errorf("reset to %q, want Session Summary", reset.Screen.Title())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := sized(newTestModel())
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Ctrl+C should quit")
	}
}
