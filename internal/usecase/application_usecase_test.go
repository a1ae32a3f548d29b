package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"job-scout/internal/infrastructure/extraction"
	"job-scout/internal/pipeline"
	"job-scout/internal/repository"

	"github.com/google/uuid"
)

type fakeAppRepo struct {
	byID map[uuid.UUID]repository.Application

	created []repository.Application
	updates []pipeline.Status
}

func (f *fakeAppRepo) Create(_ context.Context, a repository.Application) (repository.Application, error) {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	f.created = append(f.created, a)
	return a, nil
}

func (f *fakeAppRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Application, error) {
	a, ok := f.byID[id]
	if !ok {
		return repository.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (f *fakeAppRepo) List(_ context.Context, status *pipeline.Status, _, _ int) ([]repository.Application, error) {
	out := make([]repository.Application, 0)
	for _, a := range f.byID {
		if status == nil || a.Status == *status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppRepo) UpdateStatus(_ context.Context, id uuid.UUID, status pipeline.Status, appliedAt *time.Time) error {
	a, ok := f.byID[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.Status = status
	if appliedAt != nil {
		a.AppliedAt = appliedAt
	}
	f.byID[id] = a
	f.updates = append(f.updates, status)
	return nil
}

type fakeExtractor struct {
	posting extraction.Posting
	err     error
	calls   int
}

func (f *fakeExtractor) ExtractPosting(context.Context, string) (extraction.Posting, error) {
	f.calls++
	return f.posting, f.err
}

func TestApplications_Create_RequiresTitleOrURL(t *testing.T) {
	uc := NewApplicationUsecase(&fakeAppRepo{}, nil, nil)
	_, err := uc.Create(context.Background(), ApplicationCreateParams{Notes: "looked interesting"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestApplications_Create_StartsSaved(t *testing.T) {
	repo := &fakeAppRepo{}
	uc := NewApplicationUsecase(repo, nil, nil)

	a, err := uc.Create(context.Background(), ApplicationCreateParams{
		Title:   "  Backend Engineer ",
		Company: "Acme",
		JobURL:  "https://example.com/jobs/1",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != pipeline.StatusSaved {
		t.Errorf("Status = %s, want saved", a.Status)
	}
	if a.Title != "Backend Engineer" {
		t.Errorf("Title = %q, want trimmed", a.Title)
	}
}

func TestApplications_Create_ExtractionFillsBlanks(t *testing.T) {
	repo := &fakeAppRepo{}
	ext := &fakeExtractor{posting: extraction.Posting{Title: "Go Engineer", Company: "Extracted Inc"}}
	uc := NewApplicationUsecase(repo, ext, nil)

	a, err := uc.Create(context.Background(), ApplicationCreateParams{
		Company: "Manual Corp",
		RawText: "We are hiring a Go Engineer at Extracted Inc ...",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ext.calls != 1 {
		t.Fatalf("extractor calls = %d, want 1", ext.calls)
	}
	if a.Title != "Go Engineer" {
		t.Errorf("Title = %q, want extracted", a.Title)
	}
	// Manually supplied fields are never overwritten.
	if a.Company != "Manual Corp" {
		t.Errorf("Company = %q, want manual value kept", a.Company)
	}
}

func TestApplications_Create_ExtractionFailureKeepsManualFields(t *testing.T) {
	repo := &fakeAppRepo{}
	ext := &fakeExtractor{err: errors.New("model unavailable")}
	uc := NewApplicationUsecase(repo, ext, nil)

	a, err := uc.Create(context.Background(), ApplicationCreateParams{
		Title:   "Backend Engineer",
		RawText: "some posting text",
	})
	if err != nil {
		t.Fatalf("extraction failure must not block create: %v", err)
	}
	if a.Title != "Backend Engineer" {
		t.Errorf("Title = %q", a.Title)
	}
}

func TestApplications_List_StatusFilter(t *testing.T) {
	id1, id2 := uuid.New(), uuid.New()
	repo := &fakeAppRepo{byID: map[uuid.UUID]repository.Application{
		id1: {ID: id1, Title: "A", Status: pipeline.StatusSaved},
		id2: {ID: id2, Title: "B", Status: pipeline.StatusApplied},
	}}
	uc := NewApplicationUsecase(repo, nil, nil)

	out, err := uc.List(context.Background(), "applied", 50, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 || out[0].Title != "B" {
		t.Fatalf("unexpected filter result: %v", out)
	}

	if _, err := uc.List(context.Background(), "bogus", 50, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad status, got %v", err)
	}
}

func TestApplications_UpdateStatus(t *testing.T) {
	id := uuid.New()
	repo := &fakeAppRepo{byID: map[uuid.UUID]repository.Application{
		id: {ID: id, Title: "A", Status: pipeline.StatusSaved},
	}}
	uc := NewApplicationUsecase(repo, nil, nil)

	a, err := uc.UpdateStatus(context.Background(), id, "applied")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != pipeline.StatusApplied {
		t.Errorf("Status = %s, want applied", a.Status)
	}
	if a.AppliedAt == nil {
		t.Error("moving to applied must stamp AppliedAt")
	}
}

func TestApplications_UpdateStatus_InvalidTransition(t *testing.T) {
	id := uuid.New()
	repo := &fakeAppRepo{byID: map[uuid.UUID]repository.Application{
		id: {ID: id, Title: "A", Status: pipeline.StatusSaved},
	}}
	uc := NewApplicationUsecase(repo, nil, nil)

	_, err := uc.UpdateStatus(context.Background(), id, "offer")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if len(repo.updates) != 0 {
		t.Fatal("invalid transition must not hit the store")
	}
}

func TestApplications_UpdateStatus_NotFound(t *testing.T) {
	uc := NewApplicationUsecase(&fakeAppRepo{}, nil, nil)
	_, err := uc.UpdateStatus(context.Background(), uuid.New(), "applied")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplications_UpdateStatus_UnknownStatus(t *testing.T) {
	uc := NewApplicationUsecase(&fakeAppRepo{}, nil, nil)
	_, err := uc.UpdateStatus(context.Background(), uuid.New(), "ghosted")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
