package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 10)
	assert.Equal(t, "Kyngston", all[0].Name)
	assert.Equal(t, "Guest 2", all[9].Name)

	seen := map[string]bool{}
	for _, s := range all {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
		assert.Regexp(t, `^#[0-9a-f]{6}$`, s.Color)
		assert.NotEmpty(t, s.Icon)
	}

	// Callers get a copy.
	all[0].Name = "changed"
	assert.Equal(t, "Kyngston", All()[0].Name)
}

func TestFind(t *testing.T) {
	s, err := Find("  Carter ")
	require.NoError(t, err)
	assert.Equal(t, "Carter", s.Name)

	_, err = Find("nobody")
	assert.ErrorIs(t, err, ErrUnknownStudent)
}

func TestRequiresPIN(t *testing.T) {
	for _, s := range All() {
		isGuest := s.ID == "guest-1" || s.ID == "guest-2"
		assert.Equal(t, !isGuest, s.RequiresPIN(), s.ID)
	}
}

func TestIsTeacher(t *testing.T) {
	var teachers []string
	for _, s := range All() {
		if s.IsTeacher() {
			teachers = append(teachers, s.ID)
		}
	}
	assert.Equal(t, []string{TeacherID}, teachers)
}

func TestVerify(t *testing.T) {
	s, err := Verify("teacher", "5280")
	require.NoError(t, err)
	assert.True(t, s.IsTeacher())

	_, err = Verify("teacher", "0000")
	assert.ErrorIs(t, err, ErrBadPIN)

	_, err = Verify("guest-1", "")
	assert.NoError(t, err, "guests have no PIN")

	_, err = Verify("ghost", "1234")
	assert.ErrorIs(t, err, ErrUnknownStudent)
}

func TestCheckPIN(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("2468"), bcrypt.MinCost)
	require.NoError(t, err)
	s := Student{ID: "test", PINHash: string(hash)}

	assert.NoError(t, s.CheckPIN("2468"))
	assert.NoError(t, s.CheckPIN(" 2468\n"), "surrounding whitespace is ignored")
	assert.ErrorIs(t, s.CheckPIN("1357"), ErrBadPIN)
	assert.ErrorIs(t, s.CheckPIN(""), ErrBadPIN)
}
