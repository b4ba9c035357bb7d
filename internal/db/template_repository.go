package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Template repository errors.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateBuiltin  = errors.New("cannot delete builtin template")
	ErrInvalidTemplate  = errors.New("invalid template")
)

// Template is a stored reusable sequence fragment. Payload holds the wire
// JSON of a single container document.
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Builtin     bool      `json:"isBuiltin"`
	Payload     []byte    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TemplateRepository handles template persistence.
type TemplateRepository struct {
	db *DB
}

// NewTemplateRepository creates a new TemplateRepository.
func NewTemplateRepository(db *DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Save inserts a template, assigning an id and timestamps when missing.
func (r *TemplateRepository) Save(ctx context.Context, t *Template) error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTemplate)
	}
	if len(t.Payload) == 0 {
		return fmt.Errorf("%w: payload is required", ErrInvalidTemplate)
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	var tagsJSON *string
	if t.Tags != nil {
		data, err := json.Marshal(t.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		s := string(data)
		tagsJSON = &s
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO templates (
			id, name, description, category, tags_json, builtin, payload, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			category = excluded.category,
			tags_json = excluded.tags_json,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`,
		t.ID,
		t.Name,
		t.Description,
		t.Category,
		tagsJSON,
		boolToInt(t.Builtin),
		string(t.Payload),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

// Get retrieves a template by ID.
func (r *TemplateRepository) Get(ctx context.Context, id string) (*Template, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, category, tags_json, builtin, payload, created_at, updated_at
		FROM templates WHERE id = ?
	`, id)
	return r.scanTemplate(row.Scan)
}

// List returns all templates ordered by name. Payloads are included so the
// caller can import without a second round trip.
func (r *TemplateRepository) List(ctx context.Context) ([]*Template, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, category, tags_json, builtin, payload, created_at, updated_at
		FROM templates ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		t, err := r.scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}
	return templates, nil
}

// Delete removes a template. Builtin templates are protected.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	t, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if t.Builtin {
		return ErrTemplateBuiltin
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

func (r *TemplateRepository) scanTemplate(scan func(...any) error) (*Template, error) {
	var t Template
	var tagsJSON sql.NullString
	var builtin int
	var payload, createdAt, updatedAt string

	err := scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.Category,
		&tagsJSON,
		&builtin,
		&payload,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to scan template: %w", err)
	}

	t.Builtin = builtin != 0
	t.Payload = []byte(payload)
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		t.UpdatedAt = ts
	}
	if tagsJSON.Valid {
		if err := json.Unmarshal([]byte(tagsJSON.String), &t.Tags); err != nil {
			r.db.logger.Warn().Err(err).Str("template_id", t.ID).Msg("failed to parse template tags")
		}
	}
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
