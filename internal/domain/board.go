package domain

import "time"

type Board struct {
	Id          BoardId          `json:"id"`
	Name        BoardName        `json:"name"`
	Description BoardDescription `json:"description"`
}

// BoardSummary is a board as listed on the home page.
type BoardSummary struct {
	Board
	TopicCount int       `json:"topic_count"`
	PostCount  int       `json:"post_count"`
	LastPost   *LastPost `json:"last_post,omitempty"`
}

type LastPost struct {
	TopicId   TopicId   `json:"topic_id"`
	Author    Username  `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
