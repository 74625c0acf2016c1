package content

import "time"

// The content hierarchy is owned by the main platform and read-only here:
// Subject → Topic → Subtopic → {Lesson | Quiz → Question}.
// Nodes are fetched fresh on every request and never cached across requests.

type Subject struct {
	ID          int    `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	ClassroomID int    `db:"classroom_id" json:"classroom_id"`
}

type Topic struct {
	ID        int    `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	SubjectID int    `db:"subject_id" json:"subject_id"`
}

type Subtopic struct {
	ID      int    `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	TopicID int    `db:"topic_id" json:"topic_id"`
}

type Lesson struct {
	ID         int       `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Body       string    `db:"body" json:"body"`
	SubtopicID int       `db:"subtopic_id" json:"subtopic_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"` // UTC
}

type Quiz struct {
	ID         int    `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	SubtopicID int    `db:"subtopic_id" json:"subtopic_id"`
}

type Question struct {
	ID      int      `db:"id" json:"id"`
	QuizID  int      `db:"quiz_id" json:"quiz_id"`
	Prompt  string   `db:"prompt" json:"prompt"`
	Options []string `json:"options"`
	// Answer holds the correct option's text; correctness is judged by string
	// equality against the chosen option. Two options sharing the same text
	// would be indistinguishable here.
	Answer string `json:"answer"`
}

// OptionAt returns the 1-based option, ok=false when out of range.
func (q Question) OptionAt(n int) (string, bool) {
	if n < 1 || n > len(q.Options) {
		return "", false
	}
	return q.Options[n-1], true
}

// Attempt is a learner's recorded answer to a quiz question.
// Immutable after creation; one row per terminal answer submission.
type Attempt struct {
	ID         int       `db:"id" json:"id"`
	LearnerID  int       `db:"learner_id" json:"learner_id"`
	QuizID     int       `db:"quiz_id" json:"quiz_id"`
	QuestionID int       `db:"question_id" json:"question_id"`
	Chosen     string    `db:"chosen" json:"chosen"`
	Score      int       `db:"score" json:"score"`
	Total      int       `db:"total" json:"total"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"` // UTC
}

// Progress aggregates a learner's attempts.
type Progress struct {
	Attempts   int `db:"attempts" json:"attempts"`
	Score      int `db:"score" json:"score"`
	TotalScore int `db:"total_score" json:"total_score"`
}
