package challenge

import (
	"fmt"
	"math/rand/v2"
)

// Bank is the static offline question bank.
type Bank struct {
	entries map[ModeID][]Payload
	units   map[int][]string
}

// DefaultBank returns the bank shipped with the binary.
func DefaultBank() *Bank {
	return &Bank{entries: offlineEntries, units: unitWords}
}

// NewBank builds a bank from explicit tables. Used by tests.
func NewBank(entries map[ModeID][]Payload, units map[int][]string) *Bank {
	return &Bank{entries: entries, units: units}
}

// Entries returns the offline entries for mode.
func (b *Bank) Entries(mode ModeID) []Payload {
	return b.entries[mode]
}

// Random draws a uniformly random offline entry for mode.
func (b *Bank) Random(mode ModeID, rng *rand.Rand) (Payload, bool) {
	list := b.entries[mode]
	if len(list) == 0 {
		return nil, false
	}
	return list[rng.IntN(len(list))], true
}

// UnitWord synthesizes a spelling payload from a random word in unit.
func (b *Bank) UnitWord(unit int, rng *rand.Rand) (Spelling, bool) {
	words := b.units[unit]
	if len(words) == 0 {
		return Spelling{}, false
	}
	w := words[rng.IntN(len(words))]
	return Spelling{Word: w, Context: fmt.Sprintf("Spell the word %s.", w)}, true
}

// UnitWords returns the word list for unit.
func (b *Bank) UnitWords(unit int) []string {
	return b.units[unit]
}

// Units lists the selectable unit numbers.
func Units() []int {
	out := make([]int, 0, MaxUnit)
	for u := 1; u <= MaxUnit; u++ {
		out = append(out, u)
	}
	return out
}

// MaxUnit is the highest spelling unit number.
const MaxUnit = 10

var offlineEntries = map[ModeID][]Payload{
	ModeDigraph: {
		Digraph{Word: "ship", Missing: "sh", Context: "The big ___ sails on the sea.", Phoneme: "sh"},
		Digraph{Word: "chop", Missing: "ch", Context: "Please ___ the vegetables.", Phoneme: "ch"},
		Digraph{Word: "that", Missing: "th", Context: "___ is my favorite toy.", Phoneme: "th"},
		Digraph{Word: "whale", Missing: "wh", Context: "The blue ___ is huge.", Phoneme: "wh"},
		Digraph{Word: "fish", Missing: "sh", Context: "The ___ swims in the water.", Phoneme: "sh"},
	},
	ModeSpell: {
		Spelling{Word: "happy", Context: "I am very happy today."},
		Spelling{Word: "little", Context: "The little dog barked."},
		Spelling{Word: "play", Context: "We like to play outside."},
		Spelling{Word: "school", Context: "We learn at school."},
		Spelling{Word: "friend", Context: "You are my best friend."},
	},
	ModeSyllable: {
		Syllable{Word: "rabbit", Syllables: []string{"rab", "bit"}, Count: 2, Context: "The rabbit hops fast.", Type: "Closed"},
		Syllable{Word: "tiger", Syllables: []string{"ti", "ger"}, Count: 2, Context: "The tiger has stripes.", Type: "Open"},
		Syllable{Word: "napkin", Syllables: []string{"nap", "kin"}, Count: 2, Context: "Use a napkin to wipe your face.", Type: "Closed"},
		Syllable{Word: "robot", Syllables: []string{"ro", "bot"}, Count: 2, Context: "The robot can dance.", Type: "Open"},
		Syllable{Word: "picnic", Syllables: []string{"pic", "nic"}, Count: 2, Context: "We had a picnic in the park.", Type: "Closed"},
	},
	ModeSchwa: {
		Syllable{Word: "balloon", Syllables: []string{"bal", "loon"}, Count: 2, Context: "The red balloon floated away.", Type: "Schwa"},
		Syllable{Word: "about", Syllables: []string{"a", "bout"}, Count: 2, Context: "Tell me about your day.", Type: "Schwa"},
		Syllable{Word: "panda", Syllables: []string{"pan", "da"}, Count: 2, Context: "The panda eats bamboo.", Type: "Schwa"},
		Syllable{Word: "sofa", Syllables: []string{"so", "fa"}, Count: 2, Context: "Sit on the sofa.", Type: "Schwa"},
		Syllable{Word: "zebra", Syllables: []string{"ze", "bra"}, Count: 2, Context: "The zebra has black and white stripes.", Type: "Schwa"},
	},
	ModeVCE: {
		Syllable{Word: "cake", Syllables: []string{"cake"}, Count: 1, Context: "I like chocolate cake.", Type: "VCE"},
		Syllable{Word: "bike", Syllables: []string{"bike"}, Count: 1, Context: "I ride my bike to school.", Type: "VCE"},
		Syllable{Word: "home", Syllables: []string{"home"}, Count: 1, Context: "Let's go home now.", Type: "VCE"},
		Syllable{Word: "cute", Syllables: []string{"cute"}, Count: 1, Context: "The puppy is very cute.", Type: "VCE"},
		Syllable{Word: "nose", Syllables: []string{"nose"}, Count: 1, Context: "Touch your nose.", Type: "VCE"},
	},
	ModeContractions: {
		Contraction{Word: "do not", Contraction: "don't", Context: "Please do not run."},
		Contraction{Word: "can not", Contraction: "can't", Context: "I can not fly."},
		Contraction{Word: "is not", Contraction: "isn't", Context: "It is not raining."},
		Contraction{Word: "we are", Contraction: "we're", Context: "We are going to the park."},
		Contraction{Word: "he is", Contraction: "he's", Context: "He is my brother."},
	},
	ModeDictation: {
		Dictation{Sentence: "The cat sat on the mat."},
		Dictation{Sentence: "I like to read books."},
		Dictation{Sentence: "The sun is hot."},
		Dictation{Sentence: "My dog can run fast."},
		Dictation{Sentence: "We play in the sand."},
	},
	ModeStory: {
		Narrative{Starter: "One sunny morning, you found a magic frog wearing a tiny hat. The frog winked and said..."},
		Narrative{Starter: "Deep in the forest, there was a tree that glowed in the dark. When you touched it, it started to whisper..."},
		Narrative{Starter: "You looked out the window and saw a spaceship land in your backyard. A little green alien stepped out and..."},
	},
	ModeTeacherCurriculum: {
		Narrative{Starter: "Have students sort picture cards into 'sh', 'ch' and 'th' piles, then say each word aloud.", Context: "Phonics / Sorting"},
		Narrative{Starter: "Read a short story aloud and ask students to retell the beginning, middle and end with a partner.", Context: "Reading Comprehension"},
		Narrative{Starter: "Ask students to write three sentences about their weekend using at least one describing word each.", Context: "Writing Practice"},
	},
}

// unitWords are the second-grade spelling unit lists.
var unitWords = map[int][]string{
	1:  {"cat", "map", "hat", "bag", "fan", "jam"},
	2:  {"pig", "win", "sit", "lip", "dig", "fix"},
	3:  {"hop", "log", "pot", "fox", "mop", "dot"},
	4:  {"bug", "sun", "cup", "rug", "mud", "hug"},
	5:  {"bed", "ten", "web", "jet", "pen", "leg"},
	6:  {"ship", "chin", "that", "when", "fish", "much"},
	7:  {"cake", "bike", "home", "cute", "game", "ride"},
	8:  {"rain", "play", "day", "wait", "tail", "say"},
	9:  {"tree", "seat", "keep", "read", "green", "team"},
	10: {"boat", "snow", "road", "grow", "coat", "slow"},
}
