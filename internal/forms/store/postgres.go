package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"civicdesk/internal/forms/models"
	"civicdesk/internal/platform/postgres"
	"civicdesk/pkg/domain"
	"civicdesk/pkg/platform/sentinel"
)

// PostgresStore persists forms in form_definitions and responses in form_responses.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const formColumns = `f.id, f.title, f.description, f.category, f.fields, f.is_public, f.is_active, f.owner_id, f.created_at, f.updated_at`

func (s *PostgresStore) Create(ctx context.Context, form *models.Form) error {
	fields, err := json.Marshal(form.Schema)
	if err != nil {
		return fmt.Errorf("marshal form fields: %w", err)
	}
	_, err = postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO form_definitions (id, title, description, category, fields, is_public, is_active, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.UUID(form.ID), form.Title, form.Description, string(form.Category), fields,
		form.IsPublic, form.IsActive, uuid.UUID(form.OwnerID), form.CreatedAt, form.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert form: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, form *models.Form) error {
	fields, err := json.Marshal(form.Schema)
	if err != nil {
		return fmt.Errorf("marshal form fields: %w", err)
	}
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE form_definitions
		SET title = $2, description = $3, category = $4, fields = $5, is_public = $6, is_active = $7, updated_at = $8
		WHERE id = $1`,
		uuid.UUID(form.ID), form.Title, form.Description, string(form.Category), fields,
		form.IsPublic, form.IsActive, form.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update form: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes the form; form_responses cascade.
func (s *PostgresStore) Delete(ctx context.Context, id domain.FormID) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM form_definitions WHERE id = $1`, uuid.UUID(id))
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	return expectOneRow(res)
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.FormID) (*models.Form, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+formColumns+` FROM form_definitions f WHERE f.id = $1`, uuid.UUID(id))
	form, err := scanForm(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find form: %w", err)
	}
	return form, nil
}

func (s *PostgresStore) List(ctx context.Context, filter models.Filter) ([]*models.FormSummary, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Category != "" {
		where = append(where, "f.category = "+arg(string(filter.Category)))
	}
	if !filter.OwnerID.IsNil() {
		where = append(where, "f.owner_id = "+arg(uuid.UUID(filter.OwnerID)))
	}
	if filter.PublicOnly {
		where = append(where, "f.is_public")
	}
	if filter.ActiveOnly {
		where = append(where, "f.is_active")
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		p := arg(q)
		where = append(where, fmt.Sprintf("(strpos(lower(f.title), lower(%s)) > 0 OR strpos(lower(f.description), lower(%s)) > 0)", p, p))
	}

	query := `SELECT ` + formColumns + `,
		(SELECT count(*) FROM form_responses r WHERE r.form_id = f.id)
		FROM form_definitions f`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY f.created_at DESC, f.id"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()

	out := make([]*models.FormSummary, 0)
	for rows.Next() {
		var count int
		form, err := scanForm(rows, &count)
		if err != nil {
			return nil, fmt.Errorf("scan form: %w", err)
		}
		out = append(out, &models.FormSummary{Form: form, ResponseCount: count})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) AppendResponse(ctx context.Context, resp *models.Response) error {
	answers, err := json.Marshal(resp.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	_, err = postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO form_responses (id, form_id, answers, submitter_name, submitter_email, submitted_at, source_ip, schema_fingerprint)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.UUID(resp.ID), uuid.UUID(resp.FormID), answers, resp.SubmitterName,
		nullString(resp.SubmitterEmail), resp.SubmittedAt, nullString(resp.SourceIP), resp.SchemaFingerprint,
	)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListResponses(ctx context.Context, formID domain.FormID) ([]*models.Response, error) {
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT id, form_id, answers, submitter_name, submitter_email, submitted_at, source_ip, schema_fingerprint
		FROM form_responses
		WHERE form_id = $1
		ORDER BY submitted_at DESC, id`, uuid.UUID(formID))
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Response, 0)
	for rows.Next() {
		var (
			r          models.Response
			id, formID uuid.UUID
			answers    []byte
			email, ip  sql.NullString
		)
		if err := rows.Scan(&id, &formID, &answers, &r.SubmitterName, &email, &r.SubmittedAt, &ip, &r.SchemaFingerprint); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		if err := json.Unmarshal(answers, &r.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		r.ID = domain.ResponseID(id)
		r.FormID = domain.FormID(formID)
		r.SubmitterEmail = email.String
		r.SourceIP = ip.String
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) CountResponses(ctx context.Context, formID domain.FormID) (int, error) {
	var n int
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT count(*) FROM form_responses WHERE form_id = $1`, uuid.UUID(formID)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count responses: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanForm(row scanner, extra ...any) (*models.Form, error) {
	var (
		f         models.Form
		id, owner uuid.UUID
		category  string
		fields    []byte
	)
	dest := append([]any{&id, &f.Title, &f.Description, &category, &fields, &f.IsPublic, &f.IsActive, &owner, &f.CreatedAt, &f.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fields, &f.Schema); err != nil {
		return nil, fmt.Errorf("unmarshal form fields: %w", err)
	}
	f.ID = domain.FormID(id)
	f.OwnerID = domain.UserID(owner)
	f.Category = models.Category(category)
	return &f, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
