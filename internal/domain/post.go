package domain

import "time"

type ReplyCreationData struct {
	Board   BoardId
	Topic   TopicId
	Message PostMessage
	Author  UserId
}

// PostRef addresses a post through its board and topic, the way URLs do.
type PostRef struct {
	Board BoardId
	Topic TopicId
	Post  PostId
}

type Post struct {
	Id        PostId      `json:"id"`
	Topic     TopicId     `json:"topic_id"`
	Message   PostMessage `json:"message"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at,omitempty"`
	CreatedBy User        `json:"created_by"`
	UpdatedBy *User       `json:"updated_by,omitempty"`
}

func (p Post) IsEdited() bool {
	return p.UpdatedAt != nil
}
