package services

import (
	"testing"

	"audit-checklist/internal/apperr"
	"audit-checklist/internal/models"
)

func TestApplyTransition(t *testing.T) {
	cases := []struct {
		name string
		tr   Transition
		from models.NCStatus
		want models.NCStatus
		ok   bool
	}{
		{"start from open", StartRemediation, models.NCOpen, models.NCInProgress, true},
		{"start from in progress", StartRemediation, models.NCInProgress, models.NCInProgress, false},
		{"start from resolved", StartRemediation, models.NCResolved, models.NCResolved, false},
		{"resolve open", Resolve, models.NCOpen, models.NCResolved, true},
		{"resolve in progress", Resolve, models.NCInProgress, models.NCResolved, true},
		{"resolve resolved", Resolve, models.NCResolved, models.NCResolved, true},
	}
	for _, tc := range cases {
		got, err := ApplyTransition(tc.tr, tc.from)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !apperr.Is(err, apperr.KindInvalidTransition) {
			t.Fatalf("%s: expected InvalidTransition, got %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestTransitionToRejectsBackwardEdges(t *testing.T) {
	backward := [][2]models.NCStatus{
		{models.NCInProgress, models.NCOpen},
		{models.NCResolved, models.NCOpen},
		{models.NCResolved, models.NCInProgress},
	}
	for _, edge := range backward {
		if _, err := TransitionTo(edge[0], edge[1]); !apperr.Is(err, apperr.KindInvalidTransition) {
			t.Fatalf("%s -> %s: expected InvalidTransition, got %v", edge[0], edge[1], err)
		}
	}

	tr, err := TransitionTo(models.NCOpen, models.NCOpen)
	if err != nil || tr != nil {
		t.Fatalf("same status must be a no-op")
	}
	if tr, _ := TransitionTo(models.NCOpen, models.NCResolved); tr != Resolve {
		t.Fatalf("OPEN -> RESOLVED must use Resolve")
	}
	if tr, _ := TransitionTo(models.NCOpen, models.NCInProgress); tr != StartRemediation {
		t.Fatalf("OPEN -> IN_PROGRESS must use StartRemediation")
	}
}
