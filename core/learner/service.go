package learner

import (
	"context"
	"errors"
)

var (
	// errors
	ErrNotFound        = errors.New("learner not found")
	ErrTeacherNotFound = errors.New("teacher not found")
)

type (
	Repository interface {
		// GetLearnerByPhone looks a learner up by their normalized phone number,
		// including the active classroom enrollment.
		GetLearnerByPhone(ctx context.Context, phone string) (Learner, error)
		// GetClassroomTeacher returns the teacher in charge of the classroom.
		GetClassroomTeacher(ctx context.Context, classroomID int) (Teacher, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetByPhone normalizes `phone` before hitting the repository; callers may
// pass either the gateway (+254...) or the local (0...) form.
func (svc *Service) GetByPhone(ctx context.Context, phone string) (Learner, error) {
	return svc.repo.GetLearnerByPhone(ctx, NormalizePhone(phone))
}

func (svc *Service) ClassroomTeacher(ctx context.Context, classroomID int) (Teacher, error) {
	return svc.repo.GetClassroomTeacher(ctx, classroomID)
}
