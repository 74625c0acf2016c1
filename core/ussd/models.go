package ussd

import "errors"

// Request is one gateway round-trip. It is ephemeral: the accumulated Text is
// the only state carrier, SessionID is kept purely as a logging correlation id.
type Request struct {
	SessionID string
	Phone     string
	Text      string
}

// Level tags what a response presents. It is derived from the selection path
// on every request; nothing here is ever stored between round-trips.
type Level int

const (
	LevelError Level = iota
	LevelTopMenu
	LevelSubjectList
	LevelTopicList
	LevelQuizList
	LevelProgress
	LevelContact
	LevelLesson
	LevelQuestion
	LevelAnswer
)

var levelNames = map[Level]string{
	LevelError:       "error",
	LevelTopMenu:     "top-menu",
	LevelSubjectList: "subject-list",
	LevelTopicList:   "topic-list",
	LevelQuizList:    "quiz-list",
	LevelProgress:    "progress",
	LevelContact:     "contact",
	LevelLesson:      "lesson",
	LevelQuestion:    "question",
	LevelAnswer:      "answer",
}

func (l Level) String() string { return levelNames[l] }

// Result is a fully-formed reply. Depth always equals the length of the
// selection path that produced it.
type Result struct {
	Level     Level
	Depth     int
	Body      string
	Continues bool
}

// Wire renders the gateway protocol form: the leading marker tells the
// gateway whether to keep the session open.
func (r Result) Wire() string {
	if r.Continues {
		return markerContinue + r.Body
	}
	return markerEnd + r.Body
}

const (
	markerContinue = "CON "
	markerEnd      = "END "
)

// Top-menu branches; the first token selects one.
const (
	branchLessons  = "1"
	branchQuizzes  = "2"
	branchProgress = "3"
	branchContact  = "4"
)

var (
	// errors
	ErrUnregisteredLearner = errors.New("unregistered learner")
	ErrInvalidSelection    = errors.New("invalid selection")
)
