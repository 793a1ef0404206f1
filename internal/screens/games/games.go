// Package games is the reward corner unlocked by a streak. It hosts
// Word Scramble, built from the offline spelling words.
package games

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/grading"
	"github.com/wordwhizkids/wordwhiz/internal/play"
	"github.com/wordwhizkids/wordwhiz/internal/router"
	"github.com/wordwhizkids/wordwhiz/internal/screen"
	"github.com/wordwhizkids/wordwhiz/internal/speech"
	"github.com/wordwhizkids/wordwhiz/internal/ui/components"
	"github.com/wordwhizkids/wordwhiz/internal/ui/layout"
	"github.com/wordwhizkids/wordwhiz/internal/ui/theme"
)

const minWordLen = 3

// GamesScreen runs Word Scramble.
type GamesScreen struct {
	env   *play.Env
	rng   *rand.Rand
	words []string

	word      string
	scrambled string
	input     components.Entry
	message   string
	good      bool
	solved    int
}

var _ screen.Screen = (*GamesScreen)(nil)
var _ screen.KeyHintProvider = (*GamesScreen)(nil)

// New creates the games screen.
func New(env *play.Env) *GamesScreen {
	return NewWithRand(env, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)))
}

// NewWithRand creates the games screen with a fixed random source.
func NewWithRand(env *play.Env, rng *rand.Rand) *GamesScreen {
	g := &GamesScreen{
		env:   env,
		rng:   rng,
		words: Words(env.Bank),
		input: components.NewEntry("Unscramble the word...", 24),
	}
	g.deal()
	return g
}

// Words collects distinct single words from the bank's spelling entries
// and unit lists.
func Words(b *challenge.Bank) []string {
	if b == nil {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	add := func(w string) {
		w = strings.ToLower(strings.TrimSpace(w))
		if len(w) < minWordLen || strings.ContainsAny(w, " '-") || seen[w] {
			return
		}
		seen[w] = true
		out = append(out, w)
	}
	for _, p := range b.Entries(challenge.ModeSpell) {
		if s, ok := p.(challenge.Spelling); ok {
			add(s.Word)
		}
	}
	for _, u := range challenge.Units() {
		for _, w := range b.UnitWords(u) {
			add(w)
		}
	}
	slices.Sort(out)
	return out
}

// Scramble shuffles the letters of word so that the result differs from
// word whenever that is possible.
func Scramble(word string, rng *rand.Rand) string {
	letters := []rune(word)
	if len(letters) < 2 {
		return word
	}
	for range 10 {
		rng.Shuffle(len(letters), func(i, j int) { letters[i], letters[j] = letters[j], letters[i] })
		if string(letters) != word {
			return string(letters)
		}
	}
	// A rotation by one differs unless every letter is the same.
	r := []rune(word)
	return string(append(r[1:], r[0]))
}

func (g *GamesScreen) deal() {
	g.input.Reset()
	if len(g.words) == 0 {
		g.word, g.scrambled = "", ""
		return
	}
	prev := g.word
	for range 5 {
		g.word = g.words[g.rng.IntN(len(g.words))]
		if g.word != prev || len(g.words) == 1 {
			break
		}
	}
	g.scrambled = Scramble(g.word, g.rng)
}

func (g *GamesScreen) Init() tea.Cmd {
	return g.input.Init()
}

func (g *GamesScreen) Title() string {
	return "Word Scramble"
}

func (g *GamesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "Ctrl+H", Description: "Hint"},
		{Key: "Ctrl+N", Description: "Skip"},
		{Key: "Esc", Description: "Menu"},
	}
}

func (g *GamesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		g.input, cmd = g.input.Update(msg)
		return g, cmd
	}

	switch kmsg.String() {
	case "esc":
		g.env.Stop()
		return g, router.Back()
	case "ctrl+g":
		return g, g.env.GoHome()
	case "ctrl+n":
		if g.word == "" {
			return g, nil
		}
		g.message = fmt.Sprintf("It was %q.", g.word)
		g.good = false
		g.deal()
		return g, nil
	case "ctrl+h":
		if g.word == "" {
			return g, nil
		}
		return g, g.env.Say(fmt.Sprintf("It starts with the letter %s.", strings.ToUpper(g.word[:1])))
	case "enter":
		return g, g.check()
	}

	var cmd tea.Cmd
	g.input, cmd = g.input.Update(kmsg)
	return g, cmd
}

func (g *GamesScreen) check() tea.Cmd {
	if g.word == "" {
		return nil
	}
	if grading.Normalize(g.input.Value()) == g.word {
		g.solved++
		g.good = true
		g.message = fmt.Sprintf("Nice unscrambling! %q is right.", g.word)
		g.deal()
		return tea.Batch(g.env.Effect(speech.EffectWin), g.env.Say("Nice unscrambling!"))
	}
	g.good = false
	g.message = "Not yet. Try again!"
	g.input.Reset()
	return g.env.Effect(speech.EffectError)
}

// Current returns the word being unscrambled and its scrambled form.
func (g *GamesScreen) Current() (word, scrambled string) {
	return g.word, g.scrambled
}

func (g *GamesScreen) View(width, height int) string {
	cw := components.Column(width)
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Gold).
		Bold(true).
		Render("🎮 WORD SCRAMBLE"))

	if g.word == "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("No words to play with yet."))
		return components.Chalkboard(strings.Join(sections, "\n\n"), width, height)
	}

	tiles := make([]string, 0, len(g.scrambled))
	for _, r := range strings.ToUpper(g.scrambled) {
		tiles = append(tiles, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Sky).
			Foreground(theme.Text).
			Bold(true).
			Padding(0, 1).
			Render(string(r)))
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	sections = append(sections, "Answer: "+g.input.View())

	if g.message != "" {
		c := theme.Error
		if g.good {
			c = theme.Success
		}
		sections = append(sections, lipgloss.NewStyle().Foreground(c).Bold(true).Render(g.message))
	}

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Solved: %d", g.solved)))

	return components.Chalkboard(components.Card(strings.Join(sections, "\n\n"), cw), width, height)
}
