// Package roster holds the fixed list of student profiles and their PINs.
package roster

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnknownStudent = errors.New("unknown student")
	ErrBadPIN         = errors.New("incorrect PIN")
)

// TeacherID is the profile that unlocks teacher-only modes.
const TeacherID = "teacher"

// PINLength is the number of digits in every PIN.
const PINLength = 4

// Student is one rostered profile.
type Student struct {
	ID    string
	Name  string
	Icon  string
	Color string // hex, e.g. "#ef4444"

	// PINHash is a bcrypt hash. Empty means no PIN is asked for.
	PINHash string
}

// RequiresPIN reports whether the profile is PIN protected.
func (s Student) RequiresPIN() bool { return s.PINHash != "" }

// IsTeacher reports whether this is the teacher profile.
func (s Student) IsTeacher() bool { return s.ID == TeacherID }

// CheckPIN compares pin against the stored hash. Profiles without a PIN
// accept anything.
func (s Student) CheckPIN(pin string) error {
	if !s.RequiresPIN() {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.PINHash), []byte(strings.TrimSpace(pin))); err != nil {
		return ErrBadPIN
	}
	return nil
}

var students = []Student{
	{ID: "kyngston", Name: "Kyngston", Icon: "👑", Color: "#ef4444", PINHash: "$2a$10$000Rpg2AyIRLJZSat7M/4eV4HO3ROrH/EQSIfRsX5tcCfDVz5sCsa"},
	{ID: "carter", Name: "Carter", Icon: "🚀", Color: "#3b82f6", PINHash: "$2a$10$ZcoDDxdMrUgf5cb6tuVJfepZR6qW644rlQY20nQssWjubnqRv4acG"},
	{ID: "nazir", Name: "Nazir", Icon: "🧭", Color: "#10b981", PINHash: "$2a$10$ZfNm5gI8XYpsXQzAUrdHtemxL1cXzhXlk/T00Hp9cZ7TWaUsmEK5m"},
	{ID: "derick", Name: "Derick", Icon: "⚡", Color: "#f59e0b", PINHash: "$2a$10$MFZV9pOcoZ96u/PUz/4Ace4D4NpO5Hc5dRH6y2XPcaZRn.uwMQQXm"},
	{ID: "desmond", Name: "Desmond", Icon: "🛡️", Color: "#8b5cf6", PINHash: "$2a$10$fsZC1xXY6/XTVFrJq7WRqOnKeelivpG7lY1ZZkw55FiHrDEt9l3gG"},
	{ID: "james", Name: "James", Icon: "🐸", Color: "#06b6d4", PINHash: "$2a$10$weB6hE53wnyYjr5ceMXeaudEb69Jomv9CIWR/SHVE5LeSP/1BZtay"},
	{ID: "ana", Name: "Ana", Icon: "🌟", Color: "#ec4899", PINHash: "$2a$10$k6MzsN1ff1DjZlQImZROWuEwLR1Qb3EO8dktFHPNEFWl/lHrKcoRO"},
	{ID: TeacherID, Name: "Teacher", Icon: "🎓", Color: "#64748b", PINHash: "$2a$10$qpoeYgf4qNEBLAMKpyLGC.sxO6n22kTOkAa64yDY.mjC/S7jhVy.6"},
	{ID: "guest-1", Name: "Guest 1", Icon: "👤", Color: "#d946ef"},
	{ID: "guest-2", Name: "Guest 2", Icon: "👤", Color: "#f97316"},
}

// All returns the roster in display order.
func All() []Student {
	out := make([]Student, len(students))
	copy(out, students)
	return out
}

// Find looks a profile up by ID, ignoring case.
func Find(id string) (Student, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, s := range students {
		if s.ID == id {
			return s, nil
		}
	}
	return Student{}, ErrUnknownStudent
}

// Verify finds the profile and checks its PIN.
func Verify(id, pin string) (Student, error) {
	s, err := Find(id)
	if err != nil {
		return Student{}, err
	}
	if err := s.CheckPIN(pin); err != nil {
		return Student{}, err
	}
	return s, nil
}
