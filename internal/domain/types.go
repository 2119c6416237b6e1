package domain

type (
	UserId   = int64
	Username = string
	Email    = string
	Password = string

	BoardId          = int64
	BoardName        = string
	BoardDescription = string

	TopicId      = int64
	TopicSubject = string

	PostId      = int64
	PostMessage = string
)
