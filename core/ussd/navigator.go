package ussd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/somo/core/content"
	"github.com/trezcool/somo/core/learner"
)

// Failed hierarchy hops, named for the guidance they render.
const (
	nodeSubjects = "subjects"
	nodeTopics   = "topics"
	nodeQuizzes  = "quizzes"
	nodeLesson   = "lesson"
	nodeQuestion = "question"
	nodeTeacher  = "teacher"
)

// navigation carries everything resolved for the current round-trip.
// It lives for exactly one request; there is no session object anywhere.
type navigation struct {
	req     Request
	path    Path
	learner learner.Learner
	branch  string // first token: lessons, quizzes, progress or contact

	subject  content.Subject
	topic    content.Topic
	quiz     content.Quiz
	question content.Question
	chosen   string // text of the picked option
}

type (
	advanceFunc func(*Service, context.Context, *navigation, string) error
	respondFunc func(*Service, context.Context, *navigation) (Result, error)
)

// step is one depth of the menu tree: advance consumes the token dialed at
// that depth, respond renders the reply when the accumulated path ends there.
type step struct {
	advance advanceFunc
	respond respondFunc
}

// menuTree is the single declarative definition of the menu: depth-indexed,
// replayed from scratch on every request. Any future channel (chat bot, IVR)
// should be driven from this table rather than forked from it.
var menuTree = []step{
	{advance: (*Service).advanceTopMenu, respond: (*Service).respondWelcome},
	{advance: (*Service).advanceSubject, respond: (*Service).respondBranch},
	{advance: (*Service).advanceBrowse, respond: (*Service).respondBrowseList},
	{advance: (*Service).advanceOption, respond: (*Service).respondContent},
	{respond: (*Service).respondAnswer},
}

// navigate replays the selection path against the menu tree and renders the
// reply for the depth the path ends at. It is a pure function of the path and
// the content fetched for this request; the only side effects live behind the
// recorder and dispatchers.
func (svc *Service) navigate(ctx context.Context, req Request, path Path) (Result, error) {
	depth := len(path)
	if depth >= len(menuTree) {
		return Result{}, ErrInvalidSelection
	}

	nav := &navigation{req: req, path: path}

	// the learner must exist before anything else is fetched
	lrn, err := svc.learners.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Cause(err) == learner.ErrNotFound {
			return Result{}, ErrUnregisteredLearner
		}
		return Result{}, errors.Wrap(err, "looking up learner")
	}
	nav.learner = lrn

	for d, token := range path {
		adv := menuTree[d].advance
		if adv == nil {
			// dialing past a terminal screen
			return Result{}, ErrInvalidSelection
		}
		if err := adv(svc, ctx, nav, token); err != nil {
			return Result{}, err
		}
	}

	res, err := menuTree[depth].respond(svc, ctx, nav)
	if err != nil {
		return Result{}, err
	}
	res.Depth = depth
	return res, nil
}

// Advance steps

func (svc *Service) advanceTopMenu(_ context.Context, nav *navigation, token string) error {
	switch token {
	case branchLessons, branchQuizzes, branchProgress, branchContact:
		nav.branch = token
		return nil
	}
	return ErrInvalidSelection
}

func (svc *Service) advanceSubject(ctx context.Context, nav *navigation, token string) error {
	switch nav.branch {
	case branchLessons, branchQuizzes:
	default:
		// progress & contact end the session at depth 1
		return ErrInvalidSelection
	}

	subjects, err := svc.contents.ClassroomSubjects(ctx, nav.learner.ClassroomID)
	if err != nil {
		return errors.Wrap(err, "listing subjects")
	}
	n, err := pickIndex(token, len(subjects), nodeSubjects)
	if err != nil {
		return err
	}
	nav.subject = subjects[n-1]
	return nil
}

func (svc *Service) advanceBrowse(ctx context.Context, nav *navigation, token string) error {
	switch nav.branch {
	case branchLessons:
		topics, err := svc.contents.SubjectTopics(ctx, nav.subject.ID)
		if err != nil {
			return errors.Wrap(err, "listing topics")
		}
		n, err := pickIndex(token, len(topics), nodeTopics)
		if err != nil {
			return err
		}
		nav.topic = topics[n-1]
	case branchQuizzes:
		quizzes, err := svc.contents.SubjectQuizzes(ctx, nav.subject.ID)
		if err != nil {
			return errors.Wrap(err, "listing quizzes")
		}
		n, err := pickIndex(token, len(quizzes), nodeQuizzes)
		if err != nil {
			return err
		}
		nav.quiz = quizzes[n-1]
	}
	return nil
}

func (svc *Service) advanceOption(ctx context.Context, nav *navigation, token string) error {
	if nav.branch != branchQuizzes {
		// a lesson display is terminal
		return ErrInvalidSelection
	}

	question, err := svc.fetchQuestion(ctx, nav.quiz.ID)
	if err != nil {
		return err
	}
	nav.question = question

	n, err := pickIndex(token, len(question.Options), nodeQuestion)
	if err != nil {
		return err
	}
	nav.chosen, _ = question.OptionAt(n)
	return nil
}

// Respond steps

func (svc *Service) respondWelcome(_ context.Context, nav *navigation) (Result, error) {
	heading := fmt.Sprintf("Welcome to %s, %s!", svc.conf.AppName, sanitize(nav.learner.FirstName()))
	body := renderMenu(heading, []string{"Lessons", "Quizzes", "My progress", "Ask my teacher"})
	return Result{Level: LevelTopMenu, Body: body, Continues: true}, nil
}

func (svc *Service) respondBranch(ctx context.Context, nav *navigation) (Result, error) {
	switch nav.branch {
	case branchProgress:
		return svc.respondProgress(ctx, nav)
	case branchContact:
		return svc.respondContact(ctx, nav)
	}

	subjects, err := svc.contents.ClassroomSubjects(ctx, nav.learner.ClassroomID)
	if err != nil {
		return Result{}, errors.Wrap(err, "listing subjects")
	}
	if len(subjects) == 0 {
		return Result{}, &ResolveError{Reason: ResolveListEmpty, Node: nodeSubjects}
	}
	names := make([]string, 0, len(subjects))
	for _, s := range subjects {
		names = append(names, s.Name)
	}
	return Result{Level: LevelSubjectList, Body: renderMenu("Pick a subject:", names), Continues: true}, nil
}

func (svc *Service) respondProgress(ctx context.Context, nav *navigation) (Result, error) {
	prog, err := svc.contents.LearnerProgress(ctx, nav.learner.ID)
	if err != nil {
		return Result{}, errors.Wrap(err, "fetching progress")
	}

	var body string
	if prog.Attempts == 0 {
		body = fmt.Sprintf("%s, you have not attempted any quizzes yet. Dial again and pick Quizzes to get started.", sanitize(nav.learner.FirstName()))
	} else {
		body = fmt.Sprintf("%s, you have attempted %d quizzes and scored %d out of %d.",
			sanitize(nav.learner.FirstName()), prog.Attempts, prog.Score, prog.TotalScore)
	}
	return Result{Level: LevelProgress, Body: body}, nil
}

func (svc *Service) respondContact(ctx context.Context, nav *navigation) (Result, error) {
	teacher, err := svc.learners.ClassroomTeacher(ctx, nav.learner.ClassroomID)
	if err != nil {
		if errors.Cause(err) == learner.ErrTeacherNotFound {
			return Result{}, &ResolveError{Reason: ResolveParentNotFound, Node: nodeTeacher}
		}
		return Result{}, errors.Wrap(err, "looking up teacher")
	}

	svc.notifyTeacher(teacher, nav.learner)

	body := fmt.Sprintf("Thank you %s. %s has been notified and will get back to you shortly.",
		sanitize(nav.learner.FirstName()), sanitize(teacher.Name))
	return Result{Level: LevelContact, Body: body}, nil
}

func (svc *Service) respondBrowseList(ctx context.Context, nav *navigation) (Result, error) {
	switch nav.branch {
	case branchLessons:
		topics, err := svc.contents.SubjectTopics(ctx, nav.subject.ID)
		if err != nil {
			return Result{}, errors.Wrap(err, "listing topics")
		}
		if len(topics) == 0 {
			return Result{}, &ResolveError{Reason: ResolveListEmpty, Node: nodeTopics}
		}
		names := make([]string, 0, len(topics))
		for _, t := range topics {
			names = append(names, t.Name)
		}
		heading := fmt.Sprintf("%s - pick a topic:", sanitize(nav.subject.Name))
		return Result{Level: LevelTopicList, Body: renderMenu(heading, names), Continues: true}, nil

	default: // branchQuizzes
		quizzes, err := svc.contents.SubjectQuizzes(ctx, nav.subject.ID)
		if err != nil {
			return Result{}, errors.Wrap(err, "listing quizzes")
		}
		if len(quizzes) == 0 {
			return Result{}, &ResolveError{Reason: ResolveListEmpty, Node: nodeQuizzes}
		}
		names := make([]string, 0, len(quizzes))
		for _, q := range quizzes {
			names = append(names, q.Name)
		}
		heading := fmt.Sprintf("%s - pick a quiz:", sanitize(nav.subject.Name))
		return Result{Level: LevelQuizList, Body: renderMenu(heading, names), Continues: true}, nil
	}
}

func (svc *Service) respondContent(ctx context.Context, nav *navigation) (Result, error) {
	switch nav.branch {
	case branchLessons:
		lesson, err := svc.contents.TopicLatestLesson(ctx, nav.topic.ID)
		if err != nil {
			if errors.Cause(err) == content.ErrNotFound {
				return Result{}, &ResolveError{Reason: ResolveParentNotFound, Node: nodeLesson}
			}
			return Result{}, errors.Wrap(err, "fetching lesson")
		}

		full := lesson.Title + "\n" + lesson.Body
		body, overflowed := fitPage(sanitize(full), svc.conf.USSD.PageBudget)
		if overflowed {
			svc.dispatchOverflow(nav.learner.Phone, full)
		}
		return Result{Level: LevelLesson, Body: body}, nil

	default: // branchQuizzes
		question, err := svc.fetchQuestion(ctx, nav.quiz.ID)
		if err != nil {
			return Result{}, err
		}
		body := renderMenu(sanitize(question.Prompt), question.Options)
		return Result{Level: LevelQuestion, Body: body, Continues: true}, nil
	}
}

func (svc *Service) respondAnswer(ctx context.Context, nav *navigation) (Result, error) {
	correct := svc.recordAnswer(ctx, nav)

	var body string
	if correct {
		body = fmt.Sprintf("Correct, well done %s! You scored 1 out of 1. A result SMS has been sent to you.", sanitize(nav.learner.FirstName()))
	} else {
		body = "Sorry, that is not the right answer. You scored 0 out of 1. Check your SMS for the correct answer."
	}
	return Result{Level: LevelAnswer, Body: body}, nil
}

// fetchQuestion resolves a quiz down to its first question. Quizzes are
// served one question per USSD session for now, so only the first question
// is ever fetched.
func (svc *Service) fetchQuestion(ctx context.Context, quizID int) (content.Question, error) {
	question, err := svc.contents.QuizFirstQuestion(ctx, quizID)
	if err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return content.Question{}, &ResolveError{Reason: ResolveParentNotFound, Node: nodeQuestion}
		}
		return content.Question{}, errors.Wrap(err, "fetching question")
	}
	return question, nil
}
