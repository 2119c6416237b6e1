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

func insertPost(ctx context.Context, q Querier, topic domain.TopicId, message domain.PostMessage, author domain.UserId, createdAt time.Time) (domain.PostId, error) {
	var id domain.PostId
	err := q.QueryRowContext(ctx, `
        INSERT INTO posts (message, topic_id, created_by_id, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, message, topic, author, createdAt).Scan(&id)
	return id, err
}

// CreateReply adds a post to a topic, bumps the topic's last_updated and
// returns the new post id with the topic's post count after the insert.
func (s *Storage) CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.PostId, int, error) {
	var (
		id    domain.PostId
		count int
	)
	err := WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var bumpedAt time.Time
		err := tx.QueryRowContext(ctx, `
            UPDATE topics SET last_updated = NOW()
            WHERE id = $1 AND board_id = $2
            RETURNING last_updated
        `, data.Topic, data.Board).Scan(&bumpedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NotFound("Topic not found")
			}
			return fmt.Errorf("failed to bump topic: %w", err)
		}

		if id, err = insertPost(ctx, tx, data.Topic, data.Message, data.Author, bumpedAt); err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}

		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM posts WHERE topic_id = $1", data.Topic,
		).Scan(&count); err != nil {
			return fmt.Errorf("failed to count posts: %w", err)
		}
		return nil
	})
	if err != nil {
		return -1, 0, err
	}
	return id, count, nil
}

const postColumns = `
    p.id, p.topic_id, p.message, p.created_at, p.updated_at,
    c.id, c.username, e.id, e.username
`

const postJoins = `
    FROM posts p
    JOIN users c ON c.id = p.created_by_id
    LEFT JOIN users e ON e.id = p.updated_by_id
`

func scanPost(row scanner) (domain.Post, error) {
	var (
		p          domain.Post
		updatedAt  sql.NullTime
		editorId   sql.NullInt64
		editorName sql.NullString
	)
	if err := row.Scan(
		&p.Id, &p.Topic, &p.Message, &p.CreatedAt, &updatedAt,
		&p.CreatedBy.Id, &p.CreatedBy.Username, &editorId, &editorName,
	); err != nil {
		return domain.Post{}, err
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	if editorId.Valid {
		p.UpdatedBy = &domain.User{Id: editorId.Int64, Username: editorName.String}
	}
	return p, nil
}

func scanPosts(rows *sql.Rows) ([]domain.Post, error) {
	defer rows.Close()
	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return posts, nil
}

// GetPost looks a post up through its board and topic. A post that exists
// under a different topic or board is reported as not found.
func (s *Storage) GetPost(ctx context.Context, ref domain.PostRef) (domain.Post, error) {
	post, err := scanPost(s.db.QueryRowContext(ctx, `
        SELECT `+postColumns+postJoins+`
        JOIN topics t ON t.id = p.topic_id
        WHERE p.id = $1 AND p.topic_id = $2 AND t.board_id = $3
    `, ref.Post, ref.Topic, ref.Board))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, internal_errors.NotFound("Post not found")
		}
		return domain.Post{}, fmt.Errorf("failed to fetch post: %w", err)
	}
	return post, nil
}

func (s *Storage) PostCount(ctx context.Context, topic domain.TopicId) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM posts WHERE topic_id = $1", topic,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// GetPosts returns one page of a topic's posts in chronological order.
func (s *Storage) GetPosts(ctx context.Context, topic domain.TopicId, limit, offset int) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+postColumns+postJoins+`
        WHERE p.topic_id = $1
        ORDER BY p.created_at, p.id
        LIMIT $2 OFFSET $3
    `, topic, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	return scanPosts(rows)
}

// RecentPosts returns the newest n posts of a topic, newest first.
func (s *Storage) RecentPosts(ctx context.Context, topic domain.TopicId, n int) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+postColumns+postJoins+`
        WHERE p.topic_id = $1
        ORDER BY p.created_at DESC, p.id DESC
        LIMIT $2
    `, topic, n)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent posts: %w", err)
	}
	return scanPosts(rows)
}

// UpdatePost replaces the message and records who edited it and when.
func (s *Storage) UpdatePost(ctx context.Context, ref domain.PostRef, message domain.PostMessage, editor domain.UserId) (domain.Post, error) {
	result, err := s.db.ExecContext(ctx, `
        UPDATE posts p
        SET message = $1, updated_by_id = $2, updated_at = NOW()
        FROM topics t
        WHERE t.id = p.topic_id AND p.id = $3 AND p.topic_id = $4 AND t.board_id = $5
    `, message, editor, ref.Post, ref.Topic, ref.Board)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to update post: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return domain.Post{}, internal_errors.NotFound("Post not found")
	}
	return s.GetPost(ctx, ref)
}
