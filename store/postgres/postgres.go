// Package postgres implements the persistence gateway on PostgreSQL using
// pgx connection pooling. Schema management lives in Migrate with embedded
// SQL migrations.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/internal/util"
	"github.com/hupe1980/agentcouncil/logging"
)

// Store implements core.Store on a pgx connection pool. It is safe for
// concurrent use by multiple goroutines.
type Store struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// New connects a pool to connURL and returns the gateway. The pool is
// verified with a ping before use.
func New(ctx context.Context, connURL string, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	pool, err := pgxpool.New(ctx, connURL)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool, logger: logger}, nil
}

// NewFromPool wraps an existing pool, which the caller remains responsible
// for closing.
func NewFromPool(pool *pgxpool.Pool, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Store{pool: pool, logger: logger}
}

// Close releases the underlying pool.
func (s *Store) Close() {
	s.pool.Close()
}

// CreateConversation implements core.Store.
func (s *Store) CreateConversation(ctx context.Context, title string, mode core.Mode, projectID *string) (*core.Conversation, error) {
	conv := &core.Conversation{
		ID:        util.NewID(),
		Title:     title,
		Mode:      mode,
		ProjectID: projectID,
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO conversations (id, title, mode, project_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		conv.ID, conv.Title, string(conv.Mode), conv.ProjectID)
	if err := row.Scan(&conv.CreatedAt, &conv.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert conversation: %w", err)
	}

	s.logger.Debug("created conversation", "id", conv.ID, "mode", string(conv.Mode))
	return conv, nil
}

// SaveMessage implements core.Store. The insert and the conversation's
// updated_at bump run in one transaction; an unknown conversation maps to
// core.ErrNotFound via the foreign key violation.
func (s *Store) SaveMessage(ctx context.Context, conversationID, sender, content string) (*core.ChatMessage, error) {
	msg := &core.ChatMessage{
		ID:             util.NewID(),
		ConversationID: conversationID,
		Sender:         sender,
		Content:        content,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO messages (id, conversation_id, sender, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		msg.ID, msg.ConversationID, msg.Sender, msg.Content)
	if err := row.Scan(&msg.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("insert message: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE conversations SET updated_at = $1 WHERE id = $2`,
		msg.CreatedAt, conversationID); err != nil {
		return nil, fmt.Errorf("bump conversation updated_at: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return msg, nil
}

// GetHistory implements core.Store, returning the most recent messages in
// chronological order. The query selects newest-first under the limit and
// the slice is reversed before returning.
func (s *Store) GetHistory(ctx context.Context, conversationID string, limit int) ([]core.ChatMessage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, conversation_id, sender, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var msgs []core.ChatMessage
	for rows.Next() {
		var m core.ChatMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// GetPreferences implements core.Store.
func (s *Store) GetPreferences(ctx context.Context) ([]core.Preference, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT category, key, value, created_at, updated_at
		FROM preferences
		ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("query preferences: %w", err)
	}
	defer rows.Close()

	var prefs []core.Preference
	for rows.Next() {
		var p core.Preference
		if err := rows.Scan(&p.Category, &p.Key, &p.Value, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		prefs = append(prefs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate preferences: %w", err)
	}
	return prefs, nil
}

// UpsertPreference implements core.Store. The key is the record identity;
// re-saving overwrites category and value in place.
func (s *Store) UpsertPreference(ctx context.Context, category, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO preferences (key, category, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET category = EXCLUDED.category,
		    value = EXCLUDED.value,
		    updated_at = now()`,
		key, category, value)
	if err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}
	return nil
}

// DeletePreference implements core.Store.
func (s *Store) DeletePreference(ctx context.Context, key string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM preferences WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// SaveDecision implements core.Store.
func (s *Store) SaveDecision(ctx context.Context, in core.DecisionInput) (*core.SavedRecord, error) {
	id := util.NewID()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO decisions (id, project_id, title, description, reason)
		VALUES ($1, $2, $3, $4, $5)`,
		id, in.ProjectID, in.Title, in.Description, in.Reason)
	if err != nil {
		return nil, fmt.Errorf("insert decision: %w", err)
	}
	return &core.SavedRecord{Kind: core.RecordDecision, ID: id, Title: in.Title}, nil
}

// SaveBug implements core.Store.
func (s *Store) SaveBug(ctx context.Context, in core.BugInput) (*core.SavedRecord, error) {
	id := util.NewID()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO bugs (id, project_id, description, solution, file, line, severity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, in.ProjectID, in.Description, in.Solution, in.File, in.Line, in.Severity)
	if err != nil {
		return nil, fmt.Errorf("insert bug: %w", err)
	}
	return &core.SavedRecord{Kind: core.RecordBug, ID: id, Title: util.Truncate(in.Description, 120)}, nil
}

// SaveRule implements core.Store.
func (s *Store) SaveRule(ctx context.Context, in core.RuleInput) (*core.SavedRecord, error) {
	id := util.NewID()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO rules (id, project_id, title, content, category)
		VALUES ($1, $2, $3, $4, $5)`,
		id, in.ProjectID, in.Title, in.Content, in.Category)
	if err != nil {
		return nil, fmt.Errorf("insert rule: %w", err)
	}
	return &core.SavedRecord{Kind: core.RecordRule, ID: id, Title: in.Title}, nil
}

// SaveTechItem implements core.Store. Re-mentioning a known technology for
// the same project updates its note instead of duplicating the row.
func (s *Store) SaveTechItem(ctx context.Context, in core.TechItemInput) (*core.SavedRecord, error) {
	id := util.NewID()
	row := s.pool.QueryRow(ctx, `
		INSERT INTO tech_items (id, project_id, name, category, note)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (project_id, name) DO UPDATE SET note = EXCLUDED.note
		RETURNING id`,
		id, in.ProjectID, in.Name, in.Category, in.Note)
	if err := row.Scan(&id); err != nil {
		return nil, fmt.Errorf("upsert tech item: %w", err)
	}
	return &core.SavedRecord{Kind: core.RecordTechItem, ID: id, Title: in.Name}, nil
}

// SavePrompt implements core.Store.
func (s *Store) SavePrompt(ctx context.Context, in core.PromptInput) (*core.SavedRecord, error) {
	id := util.NewID()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO prompts (id, project_id, title, content)
		VALUES ($1, $2, $3, $4)`,
		id, in.ProjectID, in.Title, in.Content)
	if err != nil {
		return nil, fmt.Errorf("insert prompt: %w", err)
	}
	return &core.SavedRecord{Kind: core.RecordPrompt, ID: id, Title: in.Title}, nil
}

// GetConversation looks up a conversation by id, mapping a missing row to
// core.ErrNotFound.
func (s *Store) GetConversation(ctx context.Context, id string) (*core.Conversation, error) {
	var conv core.Conversation
	var mode string
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, mode, project_id, created_at, updated_at
		FROM conversations WHERE id = $1`, id)
	if err := row.Scan(&conv.ID, &conv.Title, &mode, &conv.ProjectID, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("query conversation: %w", err)
	}
	conv.Mode = core.Mode(mode)
	return &conv, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

var _ core.Store = (*Store)(nil)
