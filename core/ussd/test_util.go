package ussd

import (
	"net/mail"
	"strings"
	"time"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/content"
	"github.com/trezcool/somo/core/learner"
	emailsvc "github.com/trezcool/somo/services/email"
	smssvc "github.com/trezcool/somo/services/sms"
	"github.com/trezcool/somo/storage/database/inmemdb"
)

type nopLogger struct{}

var _ core.Logger = (*nopLogger)(nil)

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func newTestConfig() *core.Config {
	return &core.Config{
		Env:              "TEST",
		TestMode:         true,
		AppName:          "Somo",
		DefaultFromEmail: mail.Address{Name: "Somo", Address: "noreply@localhost"},
		USSD:             core.USSDConfig{PageBudget: 200, MenuSize: 5},
	}
}

// Fixtures; the learner dials in as +254722000001.
var (
	testTeacher = learner.Teacher{
		ID: 1, Name: "Alice Wanjiru", Phone: "0711000000", Email: "alice@school.example", ClassroomID: 1,
	}
	testLearner = learner.Learner{
		ID: 1, Name: "Brian Otieno", Phone: "0722000001", ClassroomID: 1, Classroom: "Class 7B",
	}
	// enrolled in a classroom with no teacher and no content yet
	testOrphanLearner = learner.Learner{
		ID: 2, Name: "Cynthia Mwende", Phone: "0722000002", ClassroomID: 2, Classroom: "Class 8A",
	}

	testQuestion = content.Question{
		ID: 1, QuizID: 1, Prompt: "What is 1/4 + 2/4?",
		Options: []string{"3/4", "3/8", "1/2"},
		Answer:  "3/4",
	}

	shortLessonBody = "When two fractions share a denominator, add the numerators and keep the denominator."
	longLessonBody  = strings.Repeat("A decimal number has a whole part and a fractional part separated by a point. ", 5)
)

// newTestService seeds a classroom with two subjects: Mathematics has two
// topics (one short lesson, one overflowing lesson) and one quiz; Science is
// empty past the subject list.
func newTestService() (*Service, *inmemdb.DB) {
	conf := newTestConfig()
	db := inmemdb.Open()

	db.AddTeacher(testTeacher)
	db.AddLearner(testLearner)
	db.AddLearner(testOrphanLearner)

	db.AddSubject(content.Subject{ID: 1, Name: "Mathematics", ClassroomID: 1})
	db.AddSubject(content.Subject{ID: 2, Name: "Science", ClassroomID: 1})

	db.AddTopic(content.Topic{ID: 1, Name: "Fractions", SubjectID: 1})
	db.AddTopic(content.Topic{ID: 2, Name: "Decimals", SubjectID: 1})

	db.AddSubtopic(content.Subtopic{ID: 1, Name: "Adding Fractions", TopicID: 1})
	db.AddSubtopic(content.Subtopic{ID: 2, Name: "Decimal Places", TopicID: 2})

	now := time.Now().UTC()
	db.AddLesson(content.Lesson{ID: 1, Title: "Adding fractions", Body: shortLessonBody, SubtopicID: 1, CreatedAt: now})
	db.AddLesson(content.Lesson{ID: 2, Title: "Reading decimals", Body: longLessonBody, SubtopicID: 2, CreatedAt: now})

	db.AddQuiz(content.Quiz{ID: 1, Name: "Fractions check", SubtopicID: 1})
	db.AddQuestion(testQuestion)

	svc := NewService(
		conf,
		nopLogger{},
		learner.NewService(inmemdb.NewLearnerRepository(db)),
		content.NewService(inmemdb.NewContentRepository(db), conf.USSD.MenuSize),
		smssvc.NewConsoleServiceMock(),
		emailsvc.NewConsoleServiceMock(conf),
	)
	return svc, db
}
