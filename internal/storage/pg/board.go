package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/boards-dev/boards/internal/domain"
	internal_errors "github.com/boards-dev/boards/internal/errors"
)

func (s *Storage) CreateBoard(ctx context.Context, name domain.BoardName, description domain.BoardDescription) (domain.Board, error) {
	board := domain.Board{Name: name, Description: description}
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO boards (name, description) VALUES ($1, $2) RETURNING id",
		name, description,
	).Scan(&board.Id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Board{}, internal_errors.Conflict("Board with this name already exists.")
		}
		return domain.Board{}, fmt.Errorf("failed to insert board: %w", err)
	}
	return board, nil
}

func (s *Storage) GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	var board domain.Board
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description FROM boards WHERE id = $1", id,
	).Scan(&board.Id, &board.Name, &board.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, internal_errors.NotFound("Board not found")
		}
		return domain.Board{}, fmt.Errorf("failed to fetch board: %w", err)
	}
	return board, nil
}

// GetBoards lists every board with its topic and post totals and the most recent post.
func (s *Storage) GetBoards(ctx context.Context) ([]domain.BoardSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT
            b.id, b.name, b.description,
            (SELECT COUNT(*) FROM topics t WHERE t.board_id = b.id) AS topic_count,
            (SELECT COUNT(*) FROM posts p JOIN topics t ON t.id = p.topic_id WHERE t.board_id = b.id) AS post_count,
            lp.topic_id, lp.username, lp.created_at
        FROM boards b
        LEFT JOIN LATERAL (
            SELECT p.topic_id, u.username, p.created_at
            FROM posts p
            JOIN topics t ON t.id = p.topic_id
            JOIN users u ON u.id = p.created_by_id
            WHERE t.board_id = b.id
            ORDER BY p.created_at DESC, p.id DESC
            LIMIT 1
        ) lp ON TRUE
        ORDER BY b.id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.BoardSummary{}
	for rows.Next() {
		var (
			b         domain.BoardSummary
			topicId   sql.NullInt64
			author    sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(
			&b.Id, &b.Name, &b.Description, &b.TopicCount, &b.PostCount,
			&topicId, &author, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		if topicId.Valid {
			b.LastPost = &domain.LastPost{TopicId: topicId.Int64, Author: author.String, CreatedAt: createdAt.Time}
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return boards, nil
}

// DeleteBoard removes a board; its topics and posts go with it via foreign keys.
func (s *Storage) DeleteBoard(ctx context.Context, id domain.BoardId) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM boards WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Board not found")
	}
	return nil
}
