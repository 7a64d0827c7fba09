package services

import (
	"context"
	"testing"

	"audit-checklist/internal/apperr"
	"audit-checklist/internal/models"
)

func openNonConformity(t *testing.T, env *testEnv) (models.Checklist, models.NonConformity) {
	t.Helper()
	c := env.checklist(t)
	res := env.answer(t, c.ID, AnswerInput{QuestionID: c.Questions[1].ID, Response: false})
	return c, res.NonConformities[0]
}

func TestFirstCorrectiveActionStartsRemediation(t *testing.T) {
	env := newTestEnv(t)
	_, nc := openNonConformity(t, env)
	ctx := context.Background()

	action, err := env.svc.NonConformities.AddCorrectiveAction(ctx, nc.ID, "  Atualizar o cronograma do projeto  ", env.owner)
	if err != nil {
		t.Fatalf("add action: %v", err)
	}
	if action.Action != "Atualizar o cronograma do projeto" {
		t.Fatalf("action text not trimmed: %q", action.Action)
	}
	if _, err := env.svc.NonConformities.AddCorrectiveAction(ctx, nc.ID, "Revisar os riscos identificados", env.owner); err != nil {
		t.Fatalf("second action: %v", err)
	}

	got, err := env.svc.NonConformities.Get(ctx, nc.ID, env.owner)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.NCInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", got.Status)
	}
	if len(got.CorrectiveActions) != 2 || got.CorrectiveActions[0].Action != "Atualizar o cronograma do projeto" {
		t.Fatalf("actions not kept in order: %+v", got.CorrectiveActions)
	}
	if got.Question == nil || got.Question.Text != "Q2?" {
		t.Fatalf("question not loaded")
	}
}

func TestCorrectiveActionValidation(t *testing.T) {
	env := newTestEnv(t)
	_, nc := openNonConformity(t, env)
	ctx := context.Background()

	if _, err := env.svc.NonConformities.AddCorrectiveAction(ctx, nc.ID, "   curta  ", env.owner); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected Validation, got %v", err)
	}
	if _, err := env.svc.NonConformities.AddCorrectiveAction(ctx, "missing", "Ação longa o bastante", env.owner); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if _, err := env.svc.NonConformities.AddCorrectiveAction(ctx, nc.ID, "Ação longa o bastante", env.stranger); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}

	got, _ := env.svc.NonConformities.Get(ctx, nc.ID, env.owner)
	if got.Status != models.NCOpen || len(got.CorrectiveActions) != 0 {
		t.Fatalf("rejected actions must not change the non-conformity")
	}
}

func TestResolve(t *testing.T) {
	env := newTestEnv(t)
	_, nc := openNonConformity(t, env)
	ctx := context.Background()

	if _, err := env.svc.NonConformities.Resolve(ctx, nc.ID, "curta", env.owner); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected Validation, got %v", err)
	}

	got, err := env.svc.NonConformities.Resolve(ctx, nc.ID, "Plano de riscos aprovado pela diretoria", env.owner)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Status != models.NCResolved || got.ResolvedAt == nil {
		t.Fatalf("expected RESOLVED with resolvedAt, got %s %v", got.Status, got.ResolvedAt)
	}
	if deref(got.Observation) != "Plano de riscos aprovado pela diretoria" {
		t.Fatalf("conclusion not stored as observation")
	}

	// resolving again is allowed and keeps the status
	again, err := env.svc.NonConformities.Resolve(ctx, nc.ID, "Confirmado na auditoria de retorno", env.owner)
	if err != nil || again.Status != models.NCResolved {
		t.Fatalf("second resolve: %v", err)
	}
}

func TestUpdateEditsFieldsAndGuardsStatus(t *testing.T) {
	env := newTestEnv(t)
	_, nc := openNonConformity(t, env)
	ctx := context.Background()

	desc := "Cronograma sem marcos"
	got, err := env.svc.NonConformities.Update(ctx, nc.ID, NCUpdate{Description: &desc}, env.owner)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if deref(got.Description) != desc || got.Status != models.NCOpen {
		t.Fatalf("description not updated")
	}

	bad := "CLOSED"
	if _, err := env.svc.NonConformities.Update(ctx, nc.ID, NCUpdate{Status: &bad}, env.owner); !apperr.Is(err, apperr.KindInvalidStatus) {
		t.Fatalf("expected InvalidStatus, got %v", err)
	}

	inProgress := string(models.NCInProgress)
	got, err = env.svc.NonConformities.Update(ctx, nc.ID, NCUpdate{Status: &inProgress}, env.owner)
	if err != nil || got.Status != models.NCInProgress {
		t.Fatalf("forward edge rejected: %v", err)
	}

	open := string(models.NCOpen)
	if _, err := env.svc.NonConformities.Update(ctx, nc.ID, NCUpdate{Status: &open, Description: &bad}, env.owner); !apperr.Is(err, apperr.KindInvalidTransition) {
		t.Fatalf("expected InvalidTransition, got %v", err)
	}
	got, _ = env.svc.NonConformities.Get(ctx, nc.ID, env.owner)
	if got.Status != models.NCInProgress || deref(got.Description) != desc {
		t.Fatalf("rejected update must not change anything")
	}

	resolved := string(models.NCResolved)
	got, err = env.svc.NonConformities.Update(ctx, nc.ID, NCUpdate{Status: &resolved}, env.owner)
	if err != nil || got.Status != models.NCResolved || got.ResolvedAt == nil {
		t.Fatalf("resolve through update failed: %v", err)
	}
}

func TestListForChecklistOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	c := env.checklist(t)
	env.answer(t, c.ID, AnswerInput{QuestionID: c.Questions[2].ID, Response: false})
	env.answer(t, c.ID, AnswerInput{QuestionID: c.Questions[0].ID, Response: false})

	list, err := env.svc.NonConformities.ListForChecklist(context.Background(), c.ID, env.owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].QuestionID != c.Questions[2].ID {
		t.Fatalf("expected the first created non-conformity first")
	}
	if _, err := env.svc.NonConformities.ListForChecklist(context.Background(), c.ID, env.stranger); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
}
