package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dadihq/dadi-gateway/internal/types"
)

// PostgresIdeaStore implements IdeaStore on PostgreSQL.
type PostgresIdeaStore struct {
	db *pgxpool.Pool
}

func NewPostgresIdeaStore(db *pgxpool.Pool) *PostgresIdeaStore {
	return &PostgresIdeaStore{db: db}
}

func (s *PostgresIdeaStore) Save(ctx context.Context, idea types.IdeaRecord) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ideas (id, text, author, author_email, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, idea.ID, idea.Text, idea.Author, idea.AuthorEmail, idea.Timestamp)
	if err != nil {
		return fmt.Errorf("insert idea: %w", err)
	}
	return nil
}

func (s *PostgresIdeaStore) List(ctx context.Context) ([]types.IdeaRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, text, author, author_email, created_at
		FROM ideas
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query ideas: %w", err)
	}
	defer rows.Close()

	var ideas []types.IdeaRecord
	for rows.Next() {
		var idea types.IdeaRecord
		if err := rows.Scan(&idea.ID, &idea.Text, &idea.Author, &idea.AuthorEmail, &idea.Timestamp); err != nil {
			return nil, fmt.Errorf("scan idea: %w", err)
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ideas: %w", err)
	}
	return ideas, nil
}

func (s *PostgresIdeaStore) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM ideas WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete idea: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// PostgresPreferenceStore implements PreferenceStore on PostgreSQL.
type PostgresPreferenceStore struct {
	db *pgxpool.Pool
}

func NewPostgresPreferenceStore(db *pgxpool.Pool) *PostgresPreferenceStore {
	return &PostgresPreferenceStore{db: db}
}

func (s *PostgresPreferenceStore) Get(ctx context.Context, userID string) (types.UserPreferences, error) {
	var prefs types.UserPreferences
	err := s.db.QueryRow(ctx, `
		SELECT chat_mode FROM user_prefs WHERE user_id = $1
	`, userID).Scan(&prefs.ChatMode)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.UserPreferences{ChatMode: string(types.ModeFun)}, nil
	}
	if err != nil {
		return types.UserPreferences{}, fmt.Errorf("query user_prefs: %w", err)
	}
	return prefs, nil
}

func (s *PostgresPreferenceStore) SetChatMode(ctx context.Context, userID, mode string) (types.UserPreferences, error) {
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_prefs (user_id, chat_mode, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET chat_mode = $2, updated_at = NOW()
	`, userID, mode)
	if err != nil {
		return types.UserPreferences{}, fmt.Errorf("upsert user_prefs: %w", err)
	}
	return types.UserPreferences{ChatMode: mode}, nil
}
