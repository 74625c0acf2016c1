package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/somo/core/learner"
)

type learnerRepository struct {
	db *sqlx.DB
}

var _ learner.Repository = (*learnerRepository)(nil) // interface compliance check

func NewLearnerRepository(db *sqlx.DB) *learnerRepository {
	return &learnerRepository{db: db}
}

type learnerRow struct {
	ID          int       `db:"id"`
	Name        string    `db:"name"`
	Phone       string    `db:"phone"`
	ClassroomID int       `db:"classroom_id"`
	Classroom   string    `db:"classroom"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r learnerRow) unpack() learner.Learner {
	return learner.Learner{
		ID:          r.ID,
		Name:        r.Name,
		Phone:       r.Phone,
		ClassroomID: r.ClassroomID,
		Classroom:   r.Classroom,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

type teacherRow struct {
	ID          int         `db:"id"`
	Name        string      `db:"name"`
	Phone       string      `db:"phone"`
	Email       null.String `db:"email"`
	ClassroomID int         `db:"classroom_id"`
}

func (r teacherRow) unpack() learner.Teacher {
	return learner.Teacher{
		ID:          r.ID,
		Name:        r.Name,
		Phone:       r.Phone,
		Email:       r.Email.String,
		ClassroomID: r.ClassroomID,
	}
}

func (repo learnerRepository) GetLearnerByPhone(ctx context.Context, phone string) (learner.Learner, error) {
	var row learnerRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT l.id, l.name, l.phone, l.classroom_id, c.name AS classroom, l.created_at
		FROM learner l
		INNER JOIN classroom c ON c.id = l.classroom_id
		WHERE l.phone = $1`, phone)
	if err != nil {
		if err == sql.ErrNoRows {
			return learner.Learner{}, learner.ErrNotFound
		}
		return learner.Learner{}, errors.Wrap(err, "getting learner by phone")
	}
	return row.unpack(), nil
}

func (repo learnerRepository) GetClassroomTeacher(ctx context.Context, classroomID int) (learner.Teacher, error) {
	var row teacherRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT id, name, phone, email, classroom_id
		FROM teacher
		WHERE classroom_id = $1
		ORDER BY id
		LIMIT 1`, classroomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return learner.Teacher{}, learner.ErrTeacherNotFound
		}
		return learner.Teacher{}, errors.Wrap(err, "getting classroom teacher")
	}
	return row.unpack(), nil
}
