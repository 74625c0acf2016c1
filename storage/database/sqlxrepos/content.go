package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/somo/core/content"
)

type contentRepository struct {
	db *sqlx.DB
}

var _ content.Repository = (*contentRepository)(nil) // interface compliance check

func NewContentRepository(db *sqlx.DB) *contentRepository {
	return &contentRepository{db: db}
}

type questionRow struct {
	ID      int         `db:"id"`
	QuizID  int         `db:"quiz_id"`
	Prompt  string      `db:"prompt"`
	OptionA string      `db:"option_a"`
	OptionB null.String `db:"option_b"`
	OptionC null.String `db:"option_c"`
	OptionD null.String `db:"option_d"`
	Answer  string      `db:"answer"`
}

func (r questionRow) unpack() content.Question {
	opts := []string{r.OptionA}
	for _, o := range []null.String{r.OptionB, r.OptionC, r.OptionD} {
		if o.Valid {
			opts = append(opts, o.String)
		}
	}
	return content.Question{
		ID:      r.ID,
		QuizID:  r.QuizID,
		Prompt:  r.Prompt,
		Options: opts,
		Answer:  r.Answer,
	}
}

func (repo contentRepository) ListClassroomSubjects(ctx context.Context, classroomID, limit int) ([]content.Subject, error) {
	subjects := make([]content.Subject, 0, limit)
	err := repo.db.SelectContext(ctx, &subjects, `
		SELECT id, name, classroom_id
		FROM subject
		WHERE classroom_id = $1
		ORDER BY id
		LIMIT $2`, classroomID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "listing classroom subjects")
	}
	return subjects, nil
}

func (repo contentRepository) ListSubjectTopics(ctx context.Context, subjectID, limit int) ([]content.Topic, error) {
	topics := make([]content.Topic, 0, limit)
	err := repo.db.SelectContext(ctx, &topics, `
		SELECT id, name, subject_id
		FROM topic
		WHERE subject_id = $1
		ORDER BY id
		LIMIT $2`, subjectID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "listing subject topics")
	}
	return topics, nil
}

func (repo contentRepository) ListSubjectQuizzes(ctx context.Context, subjectID, limit int) ([]content.Quiz, error) {
	quizzes := make([]content.Quiz, 0, limit)
	err := repo.db.SelectContext(ctx, &quizzes, `
		SELECT q.id, q.name, q.subtopic_id
		FROM quiz q
		INNER JOIN subtopic st ON st.id = q.subtopic_id
		INNER JOIN topic t ON t.id = st.topic_id
		WHERE t.subject_id = $1
		ORDER BY q.id
		LIMIT $2`, subjectID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "listing subject quizzes")
	}
	return quizzes, nil
}

func (repo contentRepository) GetTopicLatestLesson(ctx context.Context, topicID int) (content.Lesson, error) {
	var lesson content.Lesson
	err := repo.db.GetContext(ctx, &lesson, `
		SELECT le.id, le.title, le.body, le.subtopic_id, le.created_at
		FROM lesson le
		WHERE le.subtopic_id = (
			SELECT id FROM subtopic WHERE topic_id = $1 ORDER BY id LIMIT 1
		)
		ORDER BY le.created_at DESC
		LIMIT 1`, topicID)
	if err != nil {
		if err == sql.ErrNoRows {
			return content.Lesson{}, content.ErrNotFound
		}
		return content.Lesson{}, errors.Wrap(err, "getting topic lesson")
	}
	lesson.CreatedAt = lesson.CreatedAt.UTC()
	return lesson, nil
}

func (repo contentRepository) GetQuizFirstQuestion(ctx context.Context, quizID int) (content.Question, error) {
	var row questionRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT id, quiz_id, prompt, option_a, option_b, option_c, option_d, answer
		FROM question
		WHERE quiz_id = $1
		ORDER BY id
		LIMIT 1`, quizID)
	if err != nil {
		if err == sql.ErrNoRows {
			return content.Question{}, content.ErrNotFound
		}
		return content.Question{}, errors.Wrap(err, "getting quiz question")
	}
	return row.unpack(), nil
}

func (repo contentRepository) CreateAttempt(ctx context.Context, att content.Attempt) (content.Attempt, error) {
	if att.CreatedAt.IsZero() {
		att.CreatedAt = time.Now().UTC()
	}
	err := repo.db.QueryRowContext(ctx, `
		INSERT INTO quiz_attempt (learner_id, quiz_id, question_id, chosen, score, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		att.LearnerID, att.QuizID, att.QuestionID, att.Chosen, att.Score, att.Total, att.CreatedAt,
	).Scan(&att.ID)
	if err != nil {
		return content.Attempt{}, errors.Wrap(err, "creating quiz attempt")
	}
	return att, nil
}

func (repo contentRepository) GetLearnerProgress(ctx context.Context, learnerID int) (content.Progress, error) {
	var prog content.Progress
	err := repo.db.GetContext(ctx, &prog, `
		SELECT COUNT(*)                AS attempts,
		       COALESCE(SUM(score), 0) AS score,
		       COALESCE(SUM(total), 0) AS total_score
		FROM quiz_attempt
		WHERE learner_id = $1`, learnerID)
	if err != nil {
		return content.Progress{}, errors.Wrap(err, "getting learner progress")
	}
	return prog, nil
}
