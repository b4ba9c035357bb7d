package db

import (
	"context"
	"errors"
	"testing"
)

func TestTemplateRepositorySaveAndGet(t *testing.T) {
	ctx := context.Background()

	database, err := OpenInMemory(ctx)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	repo := NewTemplateRepository(database)

	tpl := &Template{
		Name:        "Cooldown",
		Description: "Camera cooldown routine",
		Category:    "Camera",
		Tags:        []string{"camera", "startup"},
		Payload:     []byte(`{"$type": "NINA.Sequencer.Container.SequentialContainer, NINA.Sequencer"}`),
	}
	if err := repo.Save(ctx, tpl); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if tpl.ID == "" {
		t.Error("expected ID to be set")
	}
	if tpl.CreatedAt.IsZero() || tpl.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	retrieved, err := repo.Get(ctx, tpl.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if retrieved.Name != "Cooldown" || retrieved.Category != "Camera" {
		t.Errorf("retrieved: %+v", retrieved)
	}
	if len(retrieved.Tags) != 2 || retrieved.Tags[0] != "camera" {
		t.Errorf("tags: %v", retrieved.Tags)
	}
	if string(retrieved.Payload) != string(tpl.Payload) {
		t.Error("payload changed")
	}
}

func TestTemplateRepositorySaveValidation(t *testing.T) {
	ctx := context.Background()

	database, err := OpenInMemory(ctx)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	repo := NewTemplateRepository(database)

	if err := repo.Save(ctx, &Template{Payload: []byte("{}")}); !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("expected ErrInvalidTemplate for missing name, got %v", err)
	}
	if err := repo.Save(ctx, &Template{Name: "x"}); !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("expected ErrInvalidTemplate for missing payload, got %v", err)
	}
}

func TestTemplateRepositoryListOrdersByName(t *testing.T) {
	ctx := context.Background()

	database, err := OpenInMemory(ctx)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	repo := NewTemplateRepository(database)
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		if err := repo.Save(ctx, &Template{Name: name, Payload: []byte("{}")}); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}

	templates, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(templates) != 3 {
		t.Fatalf("len = %d", len(templates))
	}
	if templates[0].Name != "Alpha" || templates[2].Name != "Zeta" {
		t.Errorf("order: %s %s %s", templates[0].Name, templates[1].Name, templates[2].Name)
	}
}

func TestTemplateRepositoryDelete(t *testing.T) {
	ctx := context.Background()

	database, err := OpenInMemory(ctx)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	repo := NewTemplateRepository(database)

	tpl := &Template{Name: "Deletable", Payload: []byte("{}")}
	if err := repo.Save(ctx, tpl); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete(ctx, tpl.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, tpl.ID); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, "missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestTemplateRepositoryBuiltinProtection(t *testing.T) {
	ctx := context.Background()

	database, err := OpenInMemory(ctx)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	repo := NewTemplateRepository(database)

	tpl := &Template{Name: "Builtin", Builtin: true, Payload: []byte("{}")}
	if err := repo.Save(ctx, tpl); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete(ctx, tpl.ID); !errors.Is(err, ErrTemplateBuiltin) {
		t.Errorf("expected ErrTemplateBuiltin, got %v", err)
	}
	if _, err := repo.Get(ctx, tpl.ID); err != nil {
		t.Error("builtin template must survive the delete attempt")
	}
}

func TestTemplateRepositoryUpsert(t *testing.T) {
	ctx := context.Background()

	database, err := OpenInMemory(ctx)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	repo := NewTemplateRepository(database)

	tpl := &Template{Name: "First", Payload: []byte("{}")}
	if err := repo.Save(ctx, tpl); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tpl.Name = "Renamed"
	if err := repo.Save(ctx, tpl); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	templates, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(templates) != 1 || templates[0].Name != "Renamed" {
		t.Errorf("upsert produced: %+v", templates)
	}
}
