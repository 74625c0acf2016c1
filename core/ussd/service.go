package ussd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/content"
	"github.com/trezcool/somo/core/learner"
)

// Learner-facing terminal messages.
const (
	msgUnregistered = "Sorry, this phone number is not registered. Please ask your school to enrol you."
	msgInvalid      = "Invalid selection. Please dial again and choose one of the listed options."
	msgUnavailable  = "Sorry, something went wrong. Please try again later."
)

// Service interprets accumulated USSD input against the content hierarchy.
// It holds no per-session state whatsoever: the gateway may route every
// keystroke of one logical session to a different instance.
type Service struct {
	conf     *core.Config
	logger   core.Logger
	learners *learner.Service
	contents *content.Service
	sms      core.SMSService
	mail     core.EmailService
}

func NewService(
	conf *core.Config,
	logger core.Logger,
	learners *learner.Service,
	contents *content.Service,
	sms core.SMSService,
	mail core.EmailService,
) *Service {
	return &Service{
		conf:     conf,
		logger:   logger,
		learners: learners,
		contents: contents,
		sms:      sms,
		mail:     mail,
	}
}

// Handle turns one gateway round-trip into a well-formed reply. Every branch
// produces a reply; no error ever crosses the request boundary.
func (svc *Service) Handle(ctx context.Context, req Request) Result {
	path := ParsePath(req.Text)

	res, err := svc.navigate(ctx, req, path)
	if err != nil {
		res = svc.renderFailure(req, path, err)
	}

	svc.logger.Debug(fmt.Sprintf("ussd [%s] %s %q -> %s (depth %d, continues %t)",
		correlationID(req), req.Phone, req.Text, res.Level, res.Depth, res.Continues))
	return res
}

// renderFailure maps the error taxonomy onto terminal replies. Unregistered
// learners, invalid selections and missing content are user-facing and never
// retried; anything else is an internal failure that gets logged and hidden
// behind a generic message.
func (svc *Service) renderFailure(req Request, path Path, err error) Result {
	res := Result{Level: LevelError, Depth: len(path)}

	switch cause := errors.Cause(err); cause {
	case ErrUnregisteredLearner:
		res.Body = msgUnregistered
		return res
	case ErrInvalidSelection:
		res.Body = msgInvalid
		return res
	}

	if rerr, ok := errors.Cause(err).(*ResolveError); ok {
		res.Body = contentGuidance(rerr)
		return res
	}

	svc.logger.Error(fmt.Sprintf("ussd [%s] %s %q: %v", correlationID(req), req.Phone, req.Text, err), err)
	res.Body = msgUnavailable
	return res
}

// contentGuidance renders hop-specific guidance so a learner can tell missing
// content apart from their own typo.
func contentGuidance(err *ResolveError) string {
	switch err.Node {
	case nodeSubjects:
		return "No subjects are set up for your class yet. Please try again later."
	case nodeTopics:
		return "No topics are available for this subject yet. Please try again later."
	case nodeQuizzes:
		return "No quizzes are available for this subject yet. Please try again later."
	case nodeLesson:
		return "No lesson has been published for this topic yet. Please try again later."
	case nodeQuestion:
		return "This quiz has no questions yet. Please try again later."
	case nodeTeacher:
		return "No teacher is linked to your class yet. Please contact your school."
	}
	return "The requested content is not available. Please try again later."
}

// correlationID keeps log lines greppable per session. The gateway's
// sessionId is opaque and only ever used here; when it is blank a random id
// takes its place.
func correlationID(req Request) string {
	if req.SessionID != "" {
		return req.SessionID
	}
	return uuid.New().String()
}
