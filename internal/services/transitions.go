package services

import (
	"audit-checklist/internal/apperr"
	"audit-checklist/internal/models"
)

// Transition is an edge of the non-conformity lifecycle. Only the
// variants declared in this file exist.
type Transition interface {
	Name() string
	Target() models.NCStatus
	allowedFrom(models.NCStatus) bool
}

type startRemediation struct{}

func (startRemediation) Name() string            { return "start_remediation" }
func (startRemediation) Target() models.NCStatus { return models.NCInProgress }
func (startRemediation) allowedFrom(s models.NCStatus) bool {
	return s == models.NCOpen
}

type resolve struct{}

func (resolve) Name() string            { return "resolve" }
func (resolve) Target() models.NCStatus { return models.NCResolved }
func (resolve) allowedFrom(s models.NCStatus) bool {
	_, ok := models.ParseNCStatus(string(s))
	return ok
}

var (
	// StartRemediation moves OPEN to IN_PROGRESS when the first corrective
	// action is recorded.
	StartRemediation Transition = startRemediation{}
	// Resolve closes a non-conformity from any status.
	Resolve Transition = resolve{}
)

func ApplyTransition(t Transition, from models.NCStatus) (models.NCStatus, error) {
	if !t.allowedFrom(from) {
		return from, apperr.New(apperr.KindInvalidTransition, "cannot %s a non-conformity in status %s", t.Name(), from)
	}
	return t.Target(), nil
}

// nil transition: status unchanged
func TransitionTo(from, to models.NCStatus) (Transition, error) {
	if from == to {
		return nil, nil
	}
	switch to {
	case models.NCInProgress:
		if StartRemediation.allowedFrom(from) {
			return StartRemediation, nil
		}
	case models.NCResolved:
		return Resolve, nil
	}
	return nil, apperr.New(apperr.KindInvalidTransition, "status cannot move from %s to %s", from, to)
}
