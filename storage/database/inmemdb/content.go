package inmemdb

import (
	"context"
	"time"

	"github.com/trezcool/somo/core/content"
)

type contentRepository struct {
	db *DB
}

var _ content.Repository = (*contentRepository)(nil)

func NewContentRepository(db *DB) *contentRepository {
	return &contentRepository{db: db}
}

func (repo *contentRepository) ListClassroomSubjects(_ context.Context, classroomID, limit int) ([]content.Subject, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subjects := make([]content.Subject, 0, limit)
	for _, s := range repo.db.subjects {
		if s.ClassroomID == classroomID {
			subjects = append(subjects, s)
			if len(subjects) == limit {
				break
			}
		}
	}
	return subjects, nil
}

func (repo *contentRepository) ListSubjectTopics(_ context.Context, subjectID, limit int) ([]content.Topic, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	topics := make([]content.Topic, 0, limit)
	for _, t := range repo.db.topics {
		if t.SubjectID == subjectID {
			topics = append(topics, t)
			if len(topics) == limit {
				break
			}
		}
	}
	return topics, nil
}

func (repo *contentRepository) ListSubjectQuizzes(_ context.Context, subjectID, limit int) ([]content.Quiz, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	// flatten across the subject's topics & subtopics
	quizzes := make([]content.Quiz, 0, limit)
	for _, q := range repo.db.quizzes {
		if repo.subtopicInSubject(q.SubtopicID, subjectID) {
			quizzes = append(quizzes, q)
			if len(quizzes) == limit {
				break
			}
		}
	}
	return quizzes, nil
}

func (repo *contentRepository) subtopicInSubject(subtopicID, subjectID int) bool {
	for _, st := range repo.db.subtopics {
		if st.ID != subtopicID {
			continue
		}
		for _, t := range repo.db.topics {
			if t.ID == st.TopicID {
				return t.SubjectID == subjectID
			}
		}
	}
	return false
}

func (repo *contentRepository) GetTopicLatestLesson(_ context.Context, topicID int) (content.Lesson, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	// first subtopic of the topic
	var subtopic content.Subtopic
	var found bool
	for _, st := range repo.db.subtopics {
		if st.TopicID == topicID && (!found || st.ID < subtopic.ID) {
			subtopic = st
			found = true
		}
	}
	if !found {
		return content.Lesson{}, content.ErrNotFound
	}

	// its most recent lesson
	var latest content.Lesson
	found = false
	for _, l := range repo.db.lessons {
		if l.SubtopicID == subtopic.ID && (!found || l.CreatedAt.After(latest.CreatedAt)) {
			latest = l
			found = true
		}
	}
	if !found {
		return content.Lesson{}, content.ErrNotFound
	}
	return latest, nil
}

func (repo *contentRepository) GetQuizFirstQuestion(_ context.Context, quizID int) (content.Question, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var first content.Question
	var found bool
	for _, q := range repo.db.questions {
		if q.QuizID == quizID && (!found || q.ID < first.ID) {
			first = q
			found = true
		}
	}
	if !found {
		return content.Question{}, content.ErrNotFound
	}
	return first, nil
}

func (repo *contentRepository) CreateAttempt(_ context.Context, att content.Attempt) (content.Attempt, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.attemptPK++
	att.ID = repo.db.attemptPK
	if att.CreatedAt.IsZero() {
		att.CreatedAt = time.Now().UTC()
	}
	repo.db.attempts = append(repo.db.attempts, att)
	return att, nil
}

func (repo *contentRepository) GetLearnerProgress(_ context.Context, learnerID int) (content.Progress, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var prog content.Progress
	for _, att := range repo.db.attempts {
		if att.LearnerID == learnerID {
			prog.Attempts++
			prog.Score += att.Score
			prog.TotalScore += att.Total
		}
	}
	return prog, nil
}
