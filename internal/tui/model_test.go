package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"foodrec/internal/domain"
	"foodrec/internal/service"
)

type fakeSession struct {
	reqs   []domain.Request
	err    error
	result service.QueryResult
	resets int
}

func (f *fakeSession) Query(req domain.Request) (service.QueryResult, error) {
	f.reqs = append(f.reqs, req)
	return f.result, f.err
}

func (f *fakeSession) Reset() { f.resets++ }

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestModel_QueryFlow(t *testing.T) {
	fs := &fakeSession{result: service.QueryResult{
		Added: 1,
		Cards: []domain.Recommendation{{Hit: domain.Hit{Index: 3, Distance: 0.12}, Record: domain.FoodRecord{Description: "TUNA,CANNED", Category: "Fish"}}},
	}}
	m := New(fs, []string{"Fish", "Milk"}, "2 foods across 2 categories.")
	m = send(t, m,
		tea.WindowSizeMsg{Width: 100, Height: 40},
		key(tea.KeyRight), key(tea.KeyRight), // goal -> heart healthy
		key(tea.KeyTab), key(tea.KeyLeft), // diet -> low sodium
		key(tea.KeyTab), key(tea.KeyCtrlN), // category -> Fish
		key(tea.KeyTab), runes("oily"),
		key(tea.KeyEnter),
	)
	if len(fs.reqs) != 1 {
		t.Fatalf("queries=%d", len(fs.reqs))
	}
	want := domain.Request{Goal: domain.GoalHeartHealthy, Diet: domain.DietLowSodium, Category: "Fish", Description: "oily"}
	if fs.reqs[0] != want {
		t.Errorf("request=%+v, want %+v", fs.reqs[0], want)
	}
	view := m.View()
	if !strings.Contains(view, "TUNA,CANNED") || !strings.Contains(view, "Category: Fish") {
		t.Errorf("card not rendered:\n%s", view)
	}
	if !strings.Contains(m.status, "1 new, 1 total") {
		t.Errorf("status=%q", m.status)
	}
}

func TestModel_ErrorStatus(t *testing.T) {
	fs := &fakeSession{err: domain.ErrInvalidGoal}
	m := send(t, New(fs, nil, ""), tea.WindowSizeMsg{Width: 80, Height: 30}, key(tea.KeyEnter))
	if !strings.HasPrefix(m.status, "Error: ") {
		t.Errorf("status=%q", m.status)
	}
	if !errors.Is(fs.err, domain.ErrInvalidGoal) {
		t.Fatal("unexpected fixture")
	}
}

func TestModel_DefaultsAndReset(t *testing.T) {
	fs := &fakeSession{}
	m := send(t, New(fs, nil, ""), tea.WindowSizeMsg{Width: 80, Height: 30}, key(tea.KeyEnter), key(tea.KeyCtrlR))
	if got := fs.reqs[0]; got.Goal != domain.GoalHighProtein || got.Diet != domain.DietNoPreference {
		t.Errorf("default request=%+v", got)
	}
	if fs.resets != 1 || m.status != "Session cleared." {
		t.Errorf("resets=%d status=%q", fs.resets, m.status)
	}
}

func TestModel_LoadingBeforeResize(t *testing.T) {
	if got := New(&fakeSession{}, nil, "").View(); got != "Loading..." {
		t.Errorf("View=%q", got)
	}
}
