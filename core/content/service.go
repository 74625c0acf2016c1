package content

import (
	"context"
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound = errors.New("content not found")
)

type (
	Repository interface {
		// ListClassroomSubjects returns at most `limit` subjects taught in the classroom.
		ListClassroomSubjects(ctx context.Context, classroomID, limit int) ([]Subject, error)
		// ListSubjectTopics returns at most `limit` topics under the subject.
		ListSubjectTopics(ctx context.Context, subjectID, limit int) ([]Topic, error)
		// ListSubjectQuizzes returns at most `limit` quizzes under the subject,
		// flattened across its topics and subtopics.
		ListSubjectQuizzes(ctx context.Context, subjectID, limit int) ([]Quiz, error)
		// GetTopicLatestLesson returns the most recent lesson of the topic's
		// first subtopic; ErrNotFound when the chain is broken at any hop.
		GetTopicLatestLesson(ctx context.Context, topicID int) (Lesson, error)
		// GetQuizFirstQuestion returns the quiz's first question with its options.
		GetQuizFirstQuestion(ctx context.Context, quizID int) (Question, error)
		// CreateAttempt persists a new Attempt; append-only, no coordination needed.
		CreateAttempt(ctx context.Context, att Attempt) (Attempt, error)
		// GetLearnerProgress aggregates all of the learner's attempts.
		GetLearnerProgress(ctx context.Context, learnerID int) (Progress, error)
	}

	Service struct {
		repo Repository
		// menuSize caps every list served to a menu; user-supplied indices are
		// validated against the actual fetched length, never a cached one.
		menuSize int
	}
)

func NewService(repo Repository, menuSize int) *Service {
	return &Service{repo: repo, menuSize: menuSize}
}

func (svc *Service) MenuSize() int { return svc.menuSize }

func (svc *Service) ClassroomSubjects(ctx context.Context, classroomID int) ([]Subject, error) {
	return svc.repo.ListClassroomSubjects(ctx, classroomID, svc.menuSize)
}

func (svc *Service) SubjectTopics(ctx context.Context, subjectID int) ([]Topic, error) {
	return svc.repo.ListSubjectTopics(ctx, subjectID, svc.menuSize)
}

func (svc *Service) SubjectQuizzes(ctx context.Context, subjectID int) ([]Quiz, error) {
	return svc.repo.ListSubjectQuizzes(ctx, subjectID, svc.menuSize)
}

func (svc *Service) TopicLatestLesson(ctx context.Context, topicID int) (Lesson, error) {
	return svc.repo.GetTopicLatestLesson(ctx, topicID)
}

func (svc *Service) QuizFirstQuestion(ctx context.Context, quizID int) (Question, error) {
	return svc.repo.GetQuizFirstQuestion(ctx, quizID)
}

func (svc *Service) RecordAttempt(ctx context.Context, att Attempt) (Attempt, error) {
	if att.CreatedAt.IsZero() {
		att.CreatedAt = time.Now().UTC()
	}
	return svc.repo.CreateAttempt(ctx, att)
}

func (svc *Service) LearnerProgress(ctx context.Context, learnerID int) (Progress, error) {
	return svc.repo.GetLearnerProgress(ctx, learnerID)
}
