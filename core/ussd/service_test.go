package ussd

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/somo/core"
	emailsvc "github.com/trezcool/somo/services/email"
	smssvc "github.com/trezcool/somo/services/sms"
)

// handle dials in as the seeded learner; the gateway always submits the
// international form.
func handle(svc *Service, text string) Result {
	return handleAs(svc, "+254722000001", text)
}

func handleAs(svc *Service, phone, text string) Result {
	return svc.Handle(context.Background(), Request{SessionID: "ATUid_1", Phone: phone, Text: text})
}

func sentTo(phone string) []core.SMSMessage {
	var msgs []core.SMSMessage
	for _, m := range smssvc.GetSentMessages() {
		if m.To == phone {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// awaitTeacherPing blocks until the off-request teacher notification lands,
// so it cannot leak into a later test's outbox assertions.
func awaitTeacherPing(t *testing.T) {
	assert.Eventually(t, func() bool {
		return len(sentTo(testTeacher.Phone)) > 0
	}, time.Second, 10*time.Millisecond, "teacher ping never sent")
}

func TestService_Handle_navigation(t *testing.T) {
	svc, _ := newTestService()
	smssvc.ClearSentMessages()

	welcome := "Welcome to Somo, Brian!\n1. Lessons\n2. Quizzes\n3. My progress\n4. Ask my teacher"
	subjects := "Pick a subject:\n1. Mathematics\n2. Science"

	tests := []struct {
		name          string
		text          string
		wantLevel     Level
		wantBody      string
		wantContinues bool
	}{
		{name: "welcome", text: "", wantLevel: LevelTopMenu, wantBody: welcome, wantContinues: true},
		{name: "lessons: subject list", text: "1", wantLevel: LevelSubjectList, wantBody: subjects, wantContinues: true},
		{name: "quizzes: subject list", text: "2", wantLevel: LevelSubjectList, wantBody: subjects, wantContinues: true},
		{
			name: "topic list", text: "1*1", wantLevel: LevelTopicList,
			wantBody: "Mathematics - pick a topic:\n1. Fractions\n2. Decimals", wantContinues: true,
		},
		{
			name: "quiz list", text: "2*1", wantLevel: LevelQuizList,
			wantBody: "Mathematics - pick a quiz:\n1. Fractions check", wantContinues: true,
		},
		{
			name: "lesson fitting one screen", text: "1*1*1", wantLevel: LevelLesson,
			wantBody: "Adding fractions\n" + shortLessonBody,
		},
		{
			name: "question with options", text: "2*1*1", wantLevel: LevelQuestion,
			wantBody: "What is 1/4 + 2/4?\n1. 3/4\n2. 3/8\n3. 1/2", wantContinues: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := handle(svc, tt.text)
			assert.Equal(t, tt.wantLevel, res.Level)
			assert.Equal(t, tt.wantBody, res.Body)
			assert.Equal(t, tt.wantContinues, res.Continues)
			assert.Equal(t, len(ParsePath(tt.text)), res.Depth)

			wantMarker := markerEnd
			if tt.wantContinues {
				wantMarker = markerContinue
			}
			assert.True(t, strings.HasPrefix(res.Wire(), wantMarker))
		})
	}

	// browsing sends nothing
	assert.Empty(t, smssvc.GetSentMessages())
}

func TestService_Handle_localPhoneForm(t *testing.T) {
	svc, _ := newTestService()

	res := handleAs(svc, "0722000001", "")
	assert.Equal(t, LevelTopMenu, res.Level)
	assert.Contains(t, res.Body, "Brian")
}

func TestService_Handle_unregistered(t *testing.T) {
	svc, _ := newTestService()
	smssvc.ClearSentMessages()

	for _, text := range []string{"", "1", "1*1*1"} {
		res := handleAs(svc, "+254799999999", text)
		assert.Equal(t, LevelError, res.Level)
		assert.Equal(t, msgUnregistered, res.Body)
		assert.False(t, res.Continues)
		assert.Equal(t, len(ParsePath(text)), res.Depth)
	}
	assert.Empty(t, smssvc.GetSentMessages())
}

func TestService_Handle_invalidSelections(t *testing.T) {
	svc, db := newTestService()
	smssvc.ClearSentMessages()

	texts := []string{
		"5",         // no such branch
		"0",         // indices are 1-based
		"abc",       // non-numeric
		"1*3",       // only 2 subjects
		"1*0",       // zero index
		"2*1*2",     // only 1 quiz
		"2*1*1*4",   // only 3 options
		"1*1*1*1",   // a lesson is terminal
		"3*1",       // progress is terminal
		"4*1",       // contact is terminal
		"1*1*2*1*1", // deeper than the menu goes
	}
	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			res := handle(svc, text)
			assert.Equal(t, LevelError, res.Level)
			assert.Equal(t, msgInvalid, res.Body)
			assert.False(t, res.Continues)
			assert.Equal(t, len(ParsePath(text)), res.Depth)
		})
	}

	// rejected input never reaches persistence or dispatch
	assert.Empty(t, db.Attempts())
	assert.Empty(t, smssvc.GetSentMessages())
}

func TestService_Handle_missingContentGuidance(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name  string
		phone string
		text  string
		want  string
	}{
		{
			name: "no subjects in classroom", phone: testOrphanLearner.Phone, text: "1",
			want: "No subjects are set up for your class yet. Please try again later.",
		},
		{
			name: "no topics under subject", phone: testLearner.Phone, text: "1*2",
			want: "No topics are available for this subject yet. Please try again later.",
		},
		{
			name: "no quizzes under subject", phone: testLearner.Phone, text: "2*2",
			want: "No quizzes are available for this subject yet. Please try again later.",
		},
		{
			name: "no teacher on file", phone: testOrphanLearner.Phone, text: "4",
			want: "No teacher is linked to your class yet. Please contact your school.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := handleAs(svc, tt.phone, tt.text)
			assert.Equal(t, LevelError, res.Level)
			assert.Equal(t, tt.want, res.Body)
			assert.False(t, res.Continues)
			assert.Equal(t, len(ParsePath(tt.text)), res.Depth)
		})
	}
}

func TestService_Handle_lessonOverflow(t *testing.T) {
	svc, _ := newTestService()

	t.Run("short lesson: no SMS", func(t *testing.T) {
		smssvc.ClearSentMessages()

		res := handle(svc, "1*1*1")
		assert.Equal(t, LevelLesson, res.Level)
		assert.False(t, res.Continues)
		assert.Empty(t, smssvc.GetSentMessages())
	})

	t.Run("long lesson: truncated screen, full text by SMS", func(t *testing.T) {
		smssvc.ClearSentMessages()

		res := handle(svc, "1*1*2")
		assert.Equal(t, LevelLesson, res.Level)
		assert.False(t, res.Continues)
		assert.LessOrEqual(t, len([]rune(res.Body)), svc.conf.USSD.PageBudget)
		assert.True(t, strings.HasSuffix(res.Body, overflowNotice))

		msgs := smssvc.GetSentMessages()
		require.Len(t, msgs, 1)
		assert.Equal(t, testLearner.Phone, msgs[0].To)
		assert.Equal(t, "Reading decimals\n"+longLessonBody, msgs[0].Body)
	})
}

func TestService_Handle_quizAnswer(t *testing.T) {
	svc, db := newTestService()

	t.Run("correct answer", func(t *testing.T) {
		smssvc.ClearSentMessages()

		res := handle(svc, "2*1*1*1")
		assert.Equal(t, LevelAnswer, res.Level)
		assert.False(t, res.Continues)
		assert.Contains(t, res.Body, "Correct, well done Brian!")
		assert.Contains(t, res.Body, "1 out of 1")

		atts := db.Attempts()
		require.Len(t, atts, 1)
		att := atts[0]
		assert.Equal(t, testLearner.ID, att.LearnerID)
		assert.Equal(t, testQuestion.QuizID, att.QuizID)
		assert.Equal(t, testQuestion.ID, att.QuestionID)
		assert.Equal(t, "3/4", att.Chosen)
		assert.Equal(t, 1, att.Score)
		assert.Equal(t, 1, att.Total)

		learnerMsgs := sentTo(testLearner.Phone)
		require.Len(t, learnerMsgs, 1)
		assert.Contains(t, learnerMsgs[0].Body, `"3/4"`)
		assert.Contains(t, learnerMsgs[0].Body, "is correct")

		awaitTeacherPing(t)
		teacherMsgs := sentTo(testTeacher.Phone)
		assert.Contains(t, teacherMsgs[0].Body, "Brian Otieno (Class 7B)")
		assert.Contains(t, teacherMsgs[0].Body, "scored 1 out of 1")
	})

	t.Run("wrong answer", func(t *testing.T) {
		smssvc.ClearSentMessages()

		res := handle(svc, "2*1*1*2")
		assert.Equal(t, LevelAnswer, res.Level)
		assert.False(t, res.Continues)
		assert.Contains(t, res.Body, "not the right answer")
		assert.Contains(t, res.Body, "0 out of 1")

		atts := db.Attempts()
		require.Len(t, atts, 2)
		att := atts[1]
		assert.Equal(t, "3/8", att.Chosen)
		assert.Equal(t, 0, att.Score)
		assert.Equal(t, 1, att.Total)

		// result SMS names the chosen option and the correct answer
		learnerMsgs := sentTo(testLearner.Phone)
		require.Len(t, learnerMsgs, 1)
		assert.Contains(t, learnerMsgs[0].Body, `"3/8"`)
		assert.Contains(t, learnerMsgs[0].Body, `The correct answer is "3/4"`)

		awaitTeacherPing(t)
	})
}

func TestService_Handle_progress(t *testing.T) {
	svc, _ := newTestService()
	smssvc.ClearSentMessages()

	res := handle(svc, "3")
	assert.Equal(t, LevelProgress, res.Level)
	assert.False(t, res.Continues)
	assert.Contains(t, res.Body, "Brian, you have not attempted any quizzes yet")

	handle(svc, "2*1*1*1")
	res = handle(svc, "3")
	assert.Contains(t, res.Body, "attempted 1 quizzes and scored 1 out of 1")

	awaitTeacherPing(t)
}

func TestService_Handle_contactTeacher(t *testing.T) {
	svc, _ := newTestService()
	smssvc.ClearSentMessages()
	emailsvc.ClearSentMessages()

	res := handle(svc, "4")
	assert.Equal(t, LevelContact, res.Level)
	assert.False(t, res.Continues)
	assert.Equal(t, "Thank you Brian. Alice Wanjiru has been notified and will get back to you shortly.", res.Body)

	msgs := smssvc.GetSentMessages()
	require.Len(t, msgs, 1)
	assert.Equal(t, testTeacher.Phone, msgs[0].To)
	assert.Contains(t, msgs[0].Body, "Brian Otieno (Class 7B, 0722000001)")

	require.Len(t, emailsvc.SentMessages, 1)
	assert.Equal(t, "Brian Otieno has requested to talk to you", emailsvc.SentMessages[0].Subject)
	assert.Equal(t, testTeacher.Email, emailsvc.SentMessages[0].To[0].Address)
}
