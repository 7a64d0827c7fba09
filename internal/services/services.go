// Package services holds the audit pipeline: documents, checklist
// generation, answer/non-conformity synchronization, the non-conformity
// lifecycle and report generation.
package services

import (
	"context"
	"sync"
	"time"

	"audit-checklist/internal/apperr"
	"audit-checklist/internal/authz"
	"audit-checklist/internal/database"
	"audit-checklist/internal/questions"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Deps struct {
	DB         *gorm.DB
	Authorizer authz.Authorizer
	Engine     *questions.Engine
	UploadDir  string
	ReportsDir string
	Now        func() time.Time
}

type Services struct {
	Documents       *DocumentService
	Checklists      *ChecklistService
	Answers         *AnswerService
	NonConformities *NonConformityService
	Reports         *ReportService
}

func New(d Deps) *Services {
	if d.Authorizer == nil {
		d.Authorizer = authz.OwnerOnly{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	locks := newKeyedMutex()

	docs := &DocumentService{db: d.DB, authz: d.Authorizer, uploadDir: d.UploadDir}
	checklists := &ChecklistService{db: d.DB, authz: d.Authorizer, docs: docs, engine: d.Engine}
	ncs := &NonConformityService{db: d.DB, authz: d.Authorizer, checklists: checklists, locks: locks, now: d.Now}

	return &Services{
		Documents:       docs,
		Checklists:      checklists,
		Answers:         &AnswerService{db: d.DB, checklists: checklists, locks: locks},
		NonConformities: ncs,
		Reports: &ReportService{
			db:         d.DB,
			checklists: checklists,
			ncs:        ncs,
			locks:      locks,
			reportsDir: d.ReportsDir,
			now:        d.Now,
		},
	}
}

// keyedMutex serializes work per checklist id inside this process.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*lockEntry)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &lockEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// forUpdate locks the selected rows until the transaction ends. SQLite
// ignores the clause.
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// retry on serialization conflicts
func withRetry(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	const attempts = 3
	var err error
	for i := 0; i < attempts; i++ {
		err = db.WithContext(ctx).Transaction(fn)
		if err == nil || !database.IsRetryable(err) {
			return err
		}
	}
	return err
}

func notFoundOr(err error, format string, args ...any) error {
	if database.IsNotFound(err) {
		return apperr.NotFound(format, args...)
	}
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
