package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type TopicCreationData struct {
	Board   BoardId
	Subject TopicSubject
	Message PostMessage
	Starter UserId
}

type Topic struct {
	Id          TopicId      `json:"id"`
	Board       BoardId      `json:"board_id"`
	Subject     TopicSubject `json:"subject"`
	LastUpdated time.Time    `json:"last_updated"`
	Starter     User         `json:"starter"`
	Views       int          `json:"views"`
	Replies     int          `json:"replies"` // posts minus the opening post
}

// ReplyCount derives the reply count from the total number of posts in a topic.
func ReplyCount(postCount int) int {
	if postCount <= 0 {
		return 0
	}
	return postCount - 1
}
