package inmemdb

import (
	"context"

	"github.com/trezcool/somo/core/learner"
)

type learnerRepository struct {
	db *DB
}

var _ learner.Repository = (*learnerRepository)(nil)

func NewLearnerRepository(db *DB) *learnerRepository {
	return &learnerRepository{db: db}
}

func (repo *learnerRepository) GetLearnerByPhone(_ context.Context, phone string) (learner.Learner, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, l := range repo.db.learners {
		if l.Phone == phone {
			return l, nil
		}
	}
	return learner.Learner{}, learner.ErrNotFound
}

func (repo *learnerRepository) GetClassroomTeacher(_ context.Context, classroomID int) (learner.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, t := range repo.db.teachers {
		if t.ClassroomID == classroomID {
			return t, nil
		}
	}
	return learner.Teacher{}, learner.ErrTeacherNotFound
}
