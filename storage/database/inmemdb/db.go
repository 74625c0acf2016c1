// Package inmemdb provides in-memory repository implementations for tests.
package inmemdb

import (
	"sync"

	"github.com/trezcool/somo/core/content"
	"github.com/trezcool/somo/core/learner"
)

type DB struct {
	mutex sync.RWMutex

	learners  []learner.Learner
	teachers  []learner.Teacher
	subjects  []content.Subject
	topics    []content.Topic
	subtopics []content.Subtopic
	lessons   []content.Lesson
	quizzes   []content.Quiz
	questions []content.Question
	attempts  []content.Attempt

	attemptPK int
}

func Open() *DB {
	return &DB{}
}

// Seed helpers; ids are caller-assigned except for attempts.

func (db *DB) AddLearner(l learner.Learner) learner.Learner {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.learners = append(db.learners, l)
	return l
}

func (db *DB) AddTeacher(t learner.Teacher) learner.Teacher {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.teachers = append(db.teachers, t)
	return t
}

func (db *DB) AddSubject(s content.Subject) content.Subject {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.subjects = append(db.subjects, s)
	return s
}

func (db *DB) AddTopic(t content.Topic) content.Topic {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.topics = append(db.topics, t)
	return t
}

func (db *DB) AddSubtopic(st content.Subtopic) content.Subtopic {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.subtopics = append(db.subtopics, st)
	return st
}

func (db *DB) AddLesson(l content.Lesson) content.Lesson {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.lessons = append(db.lessons, l)
	return l
}

func (db *DB) AddQuiz(q content.Quiz) content.Quiz {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.quizzes = append(db.quizzes, q)
	return q
}

func (db *DB) AddQuestion(q content.Question) content.Question {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.questions = append(db.questions, q)
	return q
}

// Attempts returns a copy of all persisted attempts.
func (db *DB) Attempts() []content.Attempt {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	atts := make([]content.Attempt, len(db.attempts))
	copy(atts, db.attempts)
	return atts
}
