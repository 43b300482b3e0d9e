package models

import (
	"testing"
	"time"
)

func TestNoteValidate(t *testing.T) {
	valid := Note{Title: "File BAS statement", Owner: "alex", Priority: PriorityHigh}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid note rejected: %v", err)
	}

	cases := []struct {
		name string
		note Note
	}{
		{"missing title", Note{Owner: "alex"}},
		{"missing owner", Note{Title: "x"}},
		{"global owner", Note{Title: "x", Owner: OwnerGlobal}},
		{"bad priority", Note{Title: "x", Owner: "alex", Priority: "urgent"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.note.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNoteIsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 3)

	overdue := Note{Title: "x", Owner: "alex", Deadline: &past}
	if !overdue.IsOverdue(now) {
		t.Error("past deadline not overdue")
	}

	done := Note{Title: "x", Owner: "alex", Deadline: &past, IsCompleted: true}
	if done.IsOverdue(now) {
		t.Error("completed note reported overdue")
	}

	upcoming := Note{Title: "x", Owner: "alex", Deadline: &future}
	if upcoming.IsOverdue(now) {
		t.Error("future deadline reported overdue")
	}

	noDeadline := Note{Title: "x", Owner: "alex"}
	if noDeadline.IsOverdue(now) {
		t.Error("note without deadline reported overdue")
	}
}
