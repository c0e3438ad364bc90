package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"civicdesk/internal/intake/models"
	"civicdesk/internal/intake/workflow"
	"civicdesk/internal/platform/postgres"
	"civicdesk/pkg/domain"
	"civicdesk/pkg/platform/sentinel"
)

// PostgresStore persists entity_profiles, feedback_reports and submissions.
// Writes that must be atomic run through RunInTx; the store methods pick the
// transaction up from the context.
type PostgresStore struct {
	*postgres.TxRunner
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{TxRunner: postgres.NewTxRunner(db), db: db}
}

const referenceConstraint = "submissions_reference_number_key"

const entityColumns = `id, entity_name, entity_type, governorate, address,
	phone_number, email, website,
	manager_name, manager_position, manager_phone, manager_email,
	establishment_date, employee_count, annual_budget,
	services_provided, target_audience,
	has_electronic_system, system_description,
	publishes_reports, has_complaints_system,
	has_quality_certificate, quality_certificate_type,
	current_projects, future_plans, partnerships, international_cooperation,
	performance_indicators, challenges, needs, additional_notes,
	submitted_by, is_approved, approved_by, approval_date, created_at, updated_at`

// entitySelect formats the date and budget columns as text for scanning.
const entitySelect = `id, entity_name, entity_type, governorate, address,
	phone_number, email, website,
	manager_name, manager_position, manager_phone, manager_email,
	to_char(establishment_date, 'YYYY-MM-DD'), employee_count, annual_budget::text,
	services_provided, target_audience,
	has_electronic_system, system_description,
	publishes_reports, has_complaints_system,
	has_quality_certificate, quality_certificate_type,
	current_projects, future_plans, partnerships, international_cooperation,
	performance_indicators, challenges, needs, additional_notes,
	submitted_by, is_approved, approved_by, approval_date, created_at, updated_at`

const feedbackColumns = `id, citizen_name, citizen_phone, citizen_email, citizen_address, citizen_id,
	age, gender, education_level, occupation, governorate, city,
	preferred_contact_method, previous_attempts, previous_attempts_description,
	consent_data_processing, consent_contact,
	feedback_type, title, description, related_entity,
	priority, status, assigned_to, admin_notes, resolution, resolved_by,
	is_anonymous, created_at, updated_at, resolved_at`

const submissionColumns = `id, reference_number, submission_type, submitter_name, submitter_email,
	entity_id, feedback_id, processed_by, created_at, processed_at`

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}

func entityArgs(e *models.EntityProfile) []any {
	return []any{
		uuid.UUID(e.ID), e.EntityName, string(e.EntityType), string(e.Governorate), e.Address,
		e.PhoneNumber, e.Email, e.Website,
		e.ManagerName, e.ManagerPosition, e.ManagerPhone, e.ManagerEmail,
		e.EstablishmentDate, e.EmployeeCount, e.AnnualBudget,
		e.ServicesProvided, e.TargetAudience,
		e.HasElectronicSystem, e.SystemDescription,
		e.PublishesReports, e.HasComplaintsSystem,
		e.HasQualityCertificate, e.QualityCertificateType,
		e.CurrentProjects, e.FuturePlans, e.Partnerships, e.InternationalCooperation,
		e.PerformanceIndicators, e.Challenges, e.Needs, e.AdditionalNotes,
		nullUserID(&e.SubmittedBy), e.IsApproved, nullUserID(e.ApprovedBy), nullTime(e.ApprovalDate), e.CreatedAt, e.UpdatedAt,
	}
}

func feedbackArgs(f *models.FeedbackReport) []any {
	var age sql.NullInt64
	if f.Age != nil {
		age = sql.NullInt64{Int64: int64(*f.Age), Valid: true}
	}
	return []any{
		uuid.UUID(f.ID), f.CitizenName, f.CitizenPhone, f.CitizenEmail, f.CitizenAddress, f.CitizenID,
		age, f.Gender, f.EducationLevel, f.Occupation, f.Governorate, f.City,
		f.PreferredContactMethod, f.PreviousAttempts, f.PreviousAttemptsDescription,
		f.ConsentDataProcessing, f.ConsentContact,
		string(f.FeedbackType), f.Title, f.Description, f.RelatedEntity,
		string(f.Priority), string(f.Status), nullUserID(f.AssignedTo), f.AdminNotes, f.Resolution, nullUserID(f.ResolvedBy),
		f.IsAnonymous, f.CreatedAt, f.UpdatedAt, nullTime(f.ResolvedAt),
	}
}

func (s *PostgresStore) CreateEntity(ctx context.Context, e *models.EntityProfile) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx,
		`INSERT INTO entity_profiles (`+entityColumns+`) VALUES (`+placeholders(37)+`)`,
		entityArgs(e)...)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert entity: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateFeedback(ctx context.Context, f *models.FeedbackReport) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx,
		`INSERT INTO feedback_reports (`+feedbackColumns+`) VALUES (`+placeholders(31)+`)`,
		feedbackArgs(f)...)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// InsertSubmission runs under a savepoint so a reference collision leaves
// the surrounding transaction usable for the next attempt.
func (s *PostgresStore) InsertSubmission(ctx context.Context, sub *models.Submission) error {
	return postgres.Savepoint(ctx, "ref_attempt", func() error {
		_, err := postgres.Conn(ctx, s.db).ExecContext(ctx,
			`INSERT INTO submissions (`+submissionColumns+`) VALUES (`+placeholders(10)+`)`,
			uuid.UUID(sub.ID), sub.ReferenceNumber, string(sub.Type), sub.SubmitterName, sub.SubmitterEmail,
			nullEntityID(sub.EntityID), nullFeedbackID(sub.FeedbackID), nullUserID(sub.ProcessedBy),
			sub.CreatedAt, nullTime(sub.ProcessedAt),
		)
		switch {
		case err == nil:
			return nil
		case postgres.IsUniqueViolation(err, referenceConstraint):
			return sentinel.ErrConflict
		case postgres.IsForeignKeyViolation(err):
			return sentinel.ErrNotFound
		default:
			return fmt.Errorf("insert submission: %w", err)
		}
	})
}

func (s *PostgresStore) FindEntity(ctx context.Context, id domain.EntityID) (*models.EntityProfile, error) {
	return s.findEntity(ctx, id, "")
}

// FindEntityForUpdate locks the row until the surrounding transaction ends.
func (s *PostgresStore) FindEntityForUpdate(ctx context.Context, id domain.EntityID) (*models.EntityProfile, error) {
	return s.findEntity(ctx, id, " FOR UPDATE")
}

func (s *PostgresStore) findEntity(ctx context.Context, id domain.EntityID, suffix string) (*models.EntityProfile, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+entitySelect+` FROM entity_profiles WHERE id = $1`+suffix, uuid.UUID(id))
	e, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find entity: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) FindFeedback(ctx context.Context, id domain.FeedbackID) (*models.FeedbackReport, error) {
	return s.findFeedback(ctx, id, "")
}

func (s *PostgresStore) FindFeedbackForUpdate(ctx context.Context, id domain.FeedbackID) (*models.FeedbackReport, error) {
	return s.findFeedback(ctx, id, " FOR UPDATE")
}

func (s *PostgresStore) findFeedback(ctx context.Context, id domain.FeedbackID, suffix string) (*models.FeedbackReport, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+feedbackColumns+` FROM feedback_reports WHERE id = $1`+suffix, uuid.UUID(id))
	f, err := scanFeedback(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	return f, nil
}

// UpdateEntity rewrites every column except id, submitted_by and created_at.
func (s *PostgresStore) UpdateEntity(ctx context.Context, e *models.EntityProfile) error {
	args := entityArgs(e)
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE entity_profiles SET
			entity_name = $2, entity_type = $3, governorate = $4, address = $5,
			phone_number = $6, email = $7, website = $8,
			manager_name = $9, manager_position = $10, manager_phone = $11, manager_email = $12,
			establishment_date = $13, employee_count = $14, annual_budget = $15,
			services_provided = $16, target_audience = $17,
			has_electronic_system = $18, system_description = $19,
			publishes_reports = $20, has_complaints_system = $21,
			has_quality_certificate = $22, quality_certificate_type = $23,
			current_projects = $24, future_plans = $25, partnerships = $26, international_cooperation = $27,
			performance_indicators = $28, challenges = $29, needs = $30, additional_notes = $31,
			is_approved = $32, approved_by = $33, approval_date = $34, updated_at = $35
		WHERE id = $1`,
		append(args[:31:31], args[32], args[33], args[34], args[36])...)
	if err != nil {
		return fmt.Errorf("update entity: %w", err)
	}
	return expectOneRow(res)
}

// UpdateFeedback rewrites every column except id and created_at.
func (s *PostgresStore) UpdateFeedback(ctx context.Context, f *models.FeedbackReport) error {
	args := feedbackArgs(f)
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE feedback_reports SET
			citizen_name = $2, citizen_phone = $3, citizen_email = $4, citizen_address = $5, citizen_id = $6,
			age = $7, gender = $8, education_level = $9, occupation = $10, governorate = $11, city = $12,
			preferred_contact_method = $13, previous_attempts = $14, previous_attempts_description = $15,
			consent_data_processing = $16, consent_contact = $17,
			feedback_type = $18, title = $19, description = $20, related_entity = $21,
			priority = $22, status = $23, assigned_to = $24, admin_notes = $25, resolution = $26, resolved_by = $27,
			is_anonymous = $28, updated_at = $29, resolved_at = $30
		WHERE id = $1`,
		append(args[:28:28], args[29], args[30])...)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	return expectOneRow(res)
}

// MarkProcessed stamps the ledger entry wrapping ref unless it already
// carries a stamp.
func (s *PostgresStore) MarkProcessed(ctx context.Context, ref models.RecordRef, by domain.UserID, at time.Time) error {
	col, id, err := refColumn(ref)
	if err != nil {
		return err
	}
	conn := postgres.Conn(ctx, s.db)
	res, err := conn.ExecContext(ctx,
		`UPDATE submissions SET processed_by = $2, processed_at = $3 WHERE `+col+` = $1 AND processed_at IS NULL`,
		id, uuid.UUID(by), at)
	if err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	var exists bool
	if err := conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM submissions WHERE `+col+` = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return nil
}

func refColumn(ref models.RecordRef) (string, uuid.UUID, error) {
	switch {
	case ref.Entity != nil:
		return "entity_id", uuid.UUID(*ref.Entity), nil
	case ref.Feedback != nil:
		return "feedback_id", uuid.UUID(*ref.Feedback), nil
	}
	return "", uuid.Nil, sentinel.ErrInvalidState
}

// DeleteEntity removes the entity; its ledger entry cascades.
func (s *PostgresStore) DeleteEntity(ctx context.Context, id domain.EntityID) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM entity_profiles WHERE id = $1`, uuid.UUID(id))
	if err != nil {
		return fmt.Errorf("delete entity: %w", err)
	}
	return expectOneRow(res)
}

// DeleteFeedback removes the report; its ledger entry cascades.
func (s *PostgresStore) DeleteFeedback(ctx context.Context, id domain.FeedbackID) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM feedback_reports WHERE id = $1`, uuid.UUID(id))
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return expectOneRow(res)
}

func (s *PostgresStore) ListEntities(ctx context.Context, filter models.EntityFilter) ([]*models.EntityProfile, error) {
	var c conditions
	if filter.Approved != nil {
		c.add("is_approved = " + c.arg(*filter.Approved))
	}
	if filter.EntityType != "" {
		c.add("entity_type = " + c.arg(string(filter.EntityType)))
	}
	if filter.Governorate != "" {
		c.add("governorate = " + c.arg(string(filter.Governorate)))
	}
	c.search(filter.Search, "entity_name", "services_provided", "manager_name")

	query := `SELECT ` + entitySelect + ` FROM entity_profiles` + c.where() +
		` ORDER BY created_at DESC, id` + c.page(filter.Limit, filter.Offset)
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	defer rows.Close()
	return collect(rows, scanEntity)
}

func (s *PostgresStore) ListFeedback(ctx context.Context, filter models.FeedbackFilter) ([]*models.FeedbackReport, error) {
	var c conditions
	if filter.FeedbackType != "" {
		c.add("feedback_type = " + c.arg(string(filter.FeedbackType)))
	}
	if filter.Status != "" {
		c.add("status = " + c.arg(string(filter.Status)))
	}
	if filter.Priority != "" {
		c.add("priority = " + c.arg(string(filter.Priority)))
	}
	if filter.Governorate != "" {
		c.add("governorate = " + c.arg(filter.Governorate))
	}
	c.search(filter.Search, "citizen_name", "title", "description")

	query := `SELECT ` + feedbackColumns + ` FROM feedback_reports` + c.where() +
		` ORDER BY created_at DESC, id` + c.page(filter.Limit, filter.Offset)
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()
	return collect(rows, scanFeedback)
}

func (s *PostgresStore) ListSubmissions(ctx context.Context, filter models.SubmissionFilter) ([]*models.Submission, error) {
	var c conditions
	if filter.Type != "" {
		c.add("submission_type = " + c.arg(string(filter.Type)))
	}
	c.search(filter.Search, "reference_number", "submitter_name", "submitter_email")

	query := `SELECT ` + submissionColumns + ` FROM submissions` + c.where() +
		` ORDER BY created_at DESC, id` + c.page(filter.Limit, filter.Offset)
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()
	return collect(rows, scanSubmission)
}

func (s *PostgresStore) FindSubmissionByReference(ctx context.Context, ref string) (*models.Submission, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE reference_number = $1`, ref)
	sub, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find submission: %w", err)
	}
	return sub, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntity(row scanner) (*models.EntityProfile, error) {
	var (
		e                       models.EntityProfile
		id                      uuid.UUID
		entityType, governorate string
		submittedBy, approvedBy uuid.NullUUID
		approvalDate            sql.NullTime
	)
	err := row.Scan(
		&id, &e.EntityName, &entityType, &governorate, &e.Address,
		&e.PhoneNumber, &e.Email, &e.Website,
		&e.ManagerName, &e.ManagerPosition, &e.ManagerPhone, &e.ManagerEmail,
		&e.EstablishmentDate, &e.EmployeeCount, &e.AnnualBudget,
		&e.ServicesProvided, &e.TargetAudience,
		&e.HasElectronicSystem, &e.SystemDescription,
		&e.PublishesReports, &e.HasComplaintsSystem,
		&e.HasQualityCertificate, &e.QualityCertificateType,
		&e.CurrentProjects, &e.FuturePlans, &e.Partnerships, &e.InternationalCooperation,
		&e.PerformanceIndicators, &e.Challenges, &e.Needs, &e.AdditionalNotes,
		&submittedBy, &e.IsApproved, &approvedBy, &approvalDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.ID = domain.EntityID(id)
	e.EntityType = models.EntityType(entityType)
	e.Governorate = models.Governorate(governorate)
	if submittedBy.Valid {
		e.SubmittedBy = domain.UserID(submittedBy.UUID)
	}
	e.ApprovedBy = userIDPtr(approvedBy)
	e.ApprovalDate = timePtr(approvalDate)
	return &e, nil
}

func scanFeedback(row scanner) (*models.FeedbackReport, error) {
	var (
		f                              models.FeedbackReport
		id                             uuid.UUID
		age                            sql.NullInt64
		feedbackType, priority, status string
		assignedTo, resolvedBy         uuid.NullUUID
		resolvedAt                     sql.NullTime
	)
	err := row.Scan(
		&id, &f.CitizenName, &f.CitizenPhone, &f.CitizenEmail, &f.CitizenAddress, &f.CitizenID,
		&age, &f.Gender, &f.EducationLevel, &f.Occupation, &f.Governorate, &f.City,
		&f.PreferredContactMethod, &f.PreviousAttempts, &f.PreviousAttemptsDescription,
		&f.ConsentDataProcessing, &f.ConsentContact,
		&feedbackType, &f.Title, &f.Description, &f.RelatedEntity,
		&priority, &status, &assignedTo, &f.AdminNotes, &f.Resolution, &resolvedBy,
		&f.IsAnonymous, &f.CreatedAt, &f.UpdatedAt, &resolvedAt,
	)
	if err != nil {
		return nil, err
	}
	f.ID = domain.FeedbackID(id)
	if age.Valid {
		a := int(age.Int64)
		f.Age = &a
	}
	f.FeedbackType = models.FeedbackType(feedbackType)
	f.Priority = models.Priority(priority)
	f.Status = workflow.FeedbackStatus(status)
	f.AssignedTo = userIDPtr(assignedTo)
	f.ResolvedBy = userIDPtr(resolvedBy)
	f.ResolvedAt = timePtr(resolvedAt)
	return &f, nil
}

func scanSubmission(row scanner) (*models.Submission, error) {
	var (
		sub                               models.Submission
		id                                uuid.UUID
		subType                           string
		entityID, feedbackID, processedBy uuid.NullUUID
		processedAt                       sql.NullTime
	)
	err := row.Scan(&id, &sub.ReferenceNumber, &subType, &sub.SubmitterName, &sub.SubmitterEmail,
		&entityID, &feedbackID, &processedBy, &sub.CreatedAt, &processedAt)
	if err != nil {
		return nil, err
	}
	sub.ID = domain.SubmissionID(id)
	sub.Type = models.SubmissionType(subType)
	if entityID.Valid {
		v := domain.EntityID(entityID.UUID)
		sub.EntityID = &v
	}
	if feedbackID.Valid {
		v := domain.FeedbackID(feedbackID.UUID)
		sub.FeedbackID = &v
	}
	sub.ProcessedBy = userIDPtr(processedBy)
	sub.ProcessedAt = timePtr(processedAt)
	return &sub, nil
}

func collect[T any](rows *sql.Rows, scan func(scanner) (*T, error)) ([]*T, error) {
	out := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// conditions accumulates WHERE clauses and their positional arguments.
type conditions struct {
	clauses []string
	args    []any
}

func (c *conditions) arg(v any) string {
	c.args = append(c.args, v)
	return fmt.Sprintf("$%d", len(c.args))
}

func (c *conditions) add(clause string) {
	c.clauses = append(c.clauses, clause)
}

// search ORs a case-insensitive substring match across cols.
func (c *conditions) search(needle string, cols ...string) {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return
	}
	p := c.arg(needle)
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("strpos(lower(%s), lower(%s)) > 0", col, p)
	}
	c.add("(" + strings.Join(parts, " OR ") + ")")
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

func (c *conditions) page(limit, offset int) string {
	var out string
	if limit > 0 {
		out += " LIMIT " + c.arg(limit)
	}
	if offset > 0 {
		out += " OFFSET " + c.arg(offset)
	}
	return out
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

func nullUserID(id *domain.UserID) uuid.NullUUID {
	if id == nil || id.IsNil() {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*id), Valid: true}
}

func nullEntityID(id *domain.EntityID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*id), Valid: true}
}

func nullFeedbackID(id *domain.FeedbackID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*id), Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func userIDPtr(n uuid.NullUUID) *domain.UserID {
	if !n.Valid {
		return nil
	}
	id := domain.UserID(n.UUID)
	return &id
}

func timePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}
