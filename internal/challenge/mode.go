package challenge

import "fmt"

// ModeID identifies a challenge type.
type ModeID string

const (
	ModeDigraph           ModeID = "digraph"
	ModeSpell             ModeID = "spell"
	ModeUnitSpelling      ModeID = "unit-spelling"
	ModeSyllable          ModeID = "syllable"
	ModeSchwa             ModeID = "schwa"
	ModeVCE               ModeID = "vce"
	ModeContractions      ModeID = "contractions"
	ModeDictation         ModeID = "dictation"
	ModeStory             ModeID = "story"
	ModeTeacherCurriculum ModeID = "teacher-curriculum"
)

// AllModes returns every mode in menu order.
func AllModes() []ModeID {
	return []ModeID{
		ModeDigraph,
		ModeSpell,
		ModeUnitSpelling,
		ModeSyllable,
		ModeSchwa,
		ModeVCE,
		ModeContractions,
		ModeDictation,
		ModeStory,
		ModeTeacherCurriculum,
	}
}

// ParseMode converts a string into a ModeID.
func ParseMode(s string) (ModeID, error) {
	for _, m := range AllModes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// IsSyllableFamily reports whether the mode is graded syllable by syllable.
func (m ModeID) IsSyllableFamily() bool {
	return m == ModeSyllable || m == ModeSchwa || m == ModeVCE
}

// IsNarrative reports whether the mode is ungraded free response.
func (m ModeID) IsNarrative() bool {
	return m == ModeStory || m == ModeTeacherCurriculum
}

// TeacherOnly reports whether only the teacher profile may pick the mode.
func (m ModeID) TeacherOnly() bool {
	return m == ModeTeacherCurriculum
}

// Label is the menu name of the mode.
func (m ModeID) Label() string {
	switch m {
	case ModeDigraph:
		return "Digraph Detective"
	case ModeSpell:
		return "Word Builder"
	case ModeUnitSpelling:
		return "Unit Spelling"
	case ModeSyllable:
		return "Syllable Splitter"
	case ModeSchwa:
		return "Schwa Sounds"
	case ModeVCE:
		return "Magic E"
	case ModeContractions:
		return "Contraction Action"
	case ModeDictation:
		return "Dictation Station"
	case ModeStory:
		return "Story Spark"
	case ModeTeacherCurriculum:
		return "Curriculum Asst."
	}
	return string(m)
}

// Heading is the title shown above an active challenge.
func (m ModeID) Heading() string {
	switch m {
	case ModeDigraph:
		return "Sound Decoding"
	case ModeSpell:
		return "Spelling Mastery"
	case ModeUnitSpelling:
		return "Unit Spelling"
	case ModeSyllable, ModeSchwa, ModeVCE:
		return "Syllable Practice"
	case ModeContractions:
		return "Contractions"
	case ModeDictation:
		return "Dictation"
	case ModeStory:
		return "Creative Reading"
	case ModeTeacherCurriculum:
		return "Teacher Assistant"
	}
	return m.Label()
}

// Icon is the emoji shown next to the menu label.
func (m ModeID) Icon() string {
	switch m {
	case ModeDigraph:
		return "🔍"
	case ModeSpell:
		return "📝"
	case ModeUnitSpelling:
		return "📚"
	case ModeSyllable:
		return "✂️"
	case ModeSchwa:
		return "🎈"
	case ModeVCE:
		return "🪄"
	case ModeContractions:
		return "🔗"
	case ModeDictation:
		return "🎧"
	case ModeStory:
		return "📖"
	case ModeTeacherCurriculum:
		return "🍎"
	}
	return "•"
}
