package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/boards-dev/boards/internal/domain"
	internal_errors "github.com/boards-dev/boards/internal/errors"
)

// CreateTopic inserts the topic and its opening post in one transaction.
func (s *Storage) CreateTopic(ctx context.Context, data domain.TopicCreationData) (domain.TopicId, error) {
	var id domain.TopicId
	err := WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM boards WHERE id = $1)", data.Board,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to validate board: %w", err)
		}
		if !exists {
			return internal_errors.NotFound("Board not found")
		}

		var createdTs time.Time
		if err := tx.QueryRowContext(ctx, `
            INSERT INTO topics (subject, board_id, starter_id)
            VALUES ($1, $2, $3)
            RETURNING id, last_updated
        `, data.Subject, data.Board, data.Starter).Scan(&id, &createdTs); err != nil {
			return fmt.Errorf("failed to insert topic: %w", err)
		}

		if _, err := insertPost(ctx, tx, id, data.Message, data.Starter, createdTs); err != nil {
			return fmt.Errorf("failed to create opening post: %w", err)
		}
		return nil
	})
	if err != nil {
		return -1, err
	}
	return id, nil
}

const topicColumns = `
    t.id, t.board_id, t.subject, t.last_updated, t.views,
    u.id, u.username,
    (SELECT COUNT(*) FROM posts p WHERE p.topic_id = t.id) AS post_count
`

type scanner interface {
	Scan(dest ...any) error
}

func scanTopic(row scanner) (domain.Topic, error) {
	var (
		t         domain.Topic
		postCount int
	)
	if err := row.Scan(
		&t.Id, &t.Board, &t.Subject, &t.LastUpdated, &t.Views,
		&t.Starter.Id, &t.Starter.Username, &postCount,
	); err != nil {
		return domain.Topic{}, err
	}
	t.Replies = domain.ReplyCount(postCount)
	return t, nil
}

func (s *Storage) GetTopic(ctx context.Context, board domain.BoardId, id domain.TopicId) (domain.Topic, error) {
	topic, err := scanTopic(s.db.QueryRowContext(ctx, `
        SELECT `+topicColumns+`
        FROM topics t
        JOIN users u ON u.id = t.starter_id
        WHERE t.board_id = $1 AND t.id = $2
    `, board, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Topic{}, internal_errors.NotFound("Topic not found")
		}
		return domain.Topic{}, fmt.Errorf("failed to fetch topic: %w", err)
	}
	return topic, nil
}

func (s *Storage) TopicCount(ctx context.Context, board domain.BoardId) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM topics WHERE board_id = $1", board,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count topics: %w", err)
	}
	return count, nil
}

// GetTopics returns one page of a board's topics, most recently updated first.
func (s *Storage) GetTopics(ctx context.Context, board domain.BoardId, limit, offset int) ([]domain.Topic, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+topicColumns+`
        FROM topics t
        JOIN users u ON u.id = t.starter_id
        WHERE t.board_id = $1
        ORDER BY t.last_updated DESC, t.id DESC
        LIMIT $2 OFFSET $3
    `, board, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch topics: %w", err)
	}
	defer rows.Close()

	topics := []domain.Topic{}
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return topics, nil
}

// IncrementViews adds one view in a single statement.
func (s *Storage) IncrementViews(ctx context.Context, id domain.TopicId) error {
	result, err := s.db.ExecContext(ctx, "UPDATE topics SET views = views + 1 WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Topic not found")
	}
	return nil
}
