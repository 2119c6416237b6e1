package service

import (
	"context"
	"fmt"

	"github.com/boards-dev/boards/internal/domain"
	"github.com/boards-dev/boards/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var topicViewsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "boards_topic_views_total",
		Help: "Topic views counted, at most one per topic per session.",
	},
)

type ViewService interface {
	RecordView(ctx context.Context, topic domain.TopicId, bag session.Bag) (bool, error)
}

type ViewStorage interface {
	IncrementViews(ctx context.Context, id domain.TopicId) error
}

type Views struct {
	storage ViewStorage
}

func NewViews(storage ViewStorage) ViewService {
	return &Views{storage}
}

func ViewedTopicKey(topic domain.TopicId) string {
	return fmt.Sprintf("viewed_topic_%d", topic)
}

// RecordView counts the first view of a topic within a session and reports
// whether it was counted. Without a session nothing is counted.
func (v *Views) RecordView(ctx context.Context, topic domain.TopicId, bag session.Bag) (bool, error) {
	if bag == nil {
		return false, nil
	}
	key := ViewedTopicKey(topic)
	seen, err := bag.Has(ctx, key)
	if err != nil {
		return false, err
	}
	if seen {
		return false, nil
	}
	if err := v.storage.IncrementViews(ctx, topic); err != nil {
		return false, err
	}
	topicViewsTotal.Inc()
	if err := bag.Set(ctx, key); err != nil {
		return true, err
	}
	return true, nil
}
