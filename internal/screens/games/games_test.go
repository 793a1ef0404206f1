package games

import (
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/play"
	"github.com/wordwhizkids/wordwhiz/internal/router"
	"github.com/wordwhizkids/wordwhiz/internal/speech"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func newTestGames(bank *challenge.Bank) *GamesScreen {
	env := play.New(context.Background(), challenge.NewResolver(nil, bank), bank, speech.Kit{}, nil, false)
	return NewWithRand(env, testRand())
}

func TestScrambleKeepsLetters(t *testing.T) {
	rng := testRand()
	for _, w := range []string{"happy", "school", "friend", "ab"} {
		got := Scramble(w, rng)
		if got == w {
			t.Errorf("Scramble(%q) returned the word unchanged", w)
		}
		a, b := []rune(got), []rune(w)
		slices.Sort(a)
		slices.Sort(b)
		if string(a) != string(b) {
			t.Errorf("Scramble(%q) = %q changes the letters", w, got)
		}
	}
}

func TestScrambleDegenerate(t *testing.T) {
	rng := testRand()
	tests := []struct{ in, want string }{
		{"", ""},
		{"a", "a"},
		{"zzz", "zzz"},
	}
	for _, tt := range tests {
		if got := Scramble(tt.in, rng); got != tt.want {
			t.Errorf("Scramble(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWords(t *testing.T) {
	bank := challenge.NewBank(map[challenge.ModeID][]challenge.Payload{
		challenge.ModeSpell: {
			challenge.Spelling{Word: "Happy"},
			challenge.Spelling{Word: "go"},
			challenge.Spelling{Word: "ice cream"},
		},
	}, map[int][]string{1: {"happy", "don't", "train"}})

	got := Words(bank)
	want := []string{"happy", "train"}
	if !slices.Equal(got, want) {
		t.Errorf("Words = %v, want %v", got, want)
	}
	if Words(nil) != nil {
		t.Error("Words(nil) should be nil")
	}
}

func TestDefaultBankHasWords(t *testing.T) {
	if len(Words(challenge.DefaultBank())) < 10 {
		t.Error("expected plenty of words from the default bank")
	}
}

func TestSolve(t *testing.T) {
	g := newTestGames(challenge.DefaultBank())
	word, scrambled := g.Current()
	if word == "" || scrambled == word {
		t.Fatalf("Current = %q, %q", word, scrambled)
	}

	g.input.Model.SetValue(strings.ToUpper(word))
	g.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if g.solved != 1 || !g.good {
		t.Errorf("solved = %d, good = %v", g.solved, g.good)
	}
	if w, _ := g.Current(); w == word {
		t.Error("a new word should be dealt after solving")
	}
}

func TestWrongGuess(t *testing.T) {
	g := newTestGames(challenge.DefaultBank())
	word, _ := g.Current()

	g.input.Model.SetValue("zzzz")
	g.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if g.solved != 0 || g.good {
		t.Errorf("solved = %d, good = %v", g.solved, g.good)
	}
	if w, _ := g.Current(); w != word {
		t.Error("a wrong guess keeps the same word")
	}
	if !strings.Contains(g.View(100, 30), "Try again") {
		t.Error("view should encourage another try")
	}
}

func TestSkipRevealsWord(t *testing.T) {
	g := newTestGames(challenge.DefaultBank())
	word, _ := g.Current()

	g.Update(tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})

	if !strings.Contains(g.message, word) {
		t.Errorf("message = %q should name %q", g.message, word)
	}
}

func TestEmptyBank(t *testing.T) {
	g := newTestGames(challenge.NewBank(nil, nil))
	if w, _ := g.Current(); w != "" {
		t.Errorf("Current = %q, want empty", w)
	}
	if !strings.Contains(g.View(100, 30), "No words") {
		t.Error("view should explain there is nothing to play")
	}
}

func TestEscPops(t *testing.T) {
	g := newTestGames(challenge.DefaultBank())
	_, cmd := g.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.BackMsg); !ok {
		t.Error("Esc should return to the menu")
	}
}
