package ussd

import (
	"context"
	"fmt"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/content"
)

// recordAnswer evaluates the picked option, persists one Attempt row and
// queues the result SMS to the learner plus a ping to the classroom teacher.
// Correctness is judged by the chosen option's text matching the stored
// answer text; two options sharing display text would be indistinguishable
// here. Persistence and dispatch failures are logged and never change the
// on-screen reply: each is a best-effort side effect, not part of the
// protocol contract.
func (svc *Service) recordAnswer(ctx context.Context, nav *navigation) (correct bool) {
	correct = nav.chosen == nav.question.Answer

	score := 0
	if correct {
		score = 1
	}

	att := content.Attempt{
		LearnerID:  nav.learner.ID,
		QuizID:     nav.quiz.ID,
		QuestionID: nav.question.ID,
		Chosen:     nav.chosen,
		Score:      score,
		Total:      1,
	}
	if _, err := svc.contents.RecordAttempt(ctx, att); err != nil {
		svc.logger.Error(fmt.Sprintf("recording attempt for %s: %v", nav.learner.Phone, err), err)
	}

	svc.sms.SendMessages(core.SMSMessage{To: nav.learner.Phone, Body: resultSMS(nav, correct)})

	// teacher ping is unrelated to the learner's result message and runs
	// entirely off the critical path; the request context is long gone by
	// the time this lookup lands.
	go svc.pingTeacher(nav, score)

	return correct
}

func resultSMS(nav *navigation, correct bool) string {
	if correct {
		return fmt.Sprintf("Hi %s, your answer %q to %q is correct. You scored 1 out of 1. Keep it up!",
			nav.learner.FirstName(), nav.chosen, nav.question.Prompt)
	}
	return fmt.Sprintf("Hi %s, your answer %q to %q is not correct. The correct answer is %q. You scored 0 out of 1.",
		nav.learner.FirstName(), nav.chosen, nav.question.Prompt, nav.question.Answer)
}

func (svc *Service) pingTeacher(nav *navigation, score int) {
	teacher, err := svc.learners.ClassroomTeacher(context.Background(), nav.learner.ClassroomID)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("pinging teacher for classroom %d: %v", nav.learner.ClassroomID, err), err)
		return
	}
	svc.sms.SendMessages(core.SMSMessage{
		To: teacher.Phone,
		Body: fmt.Sprintf("%s (%s) attempted %q and scored %d out of 1.",
			nav.learner.Name, nav.learner.Classroom, nav.quiz.Name, score),
	})
}
