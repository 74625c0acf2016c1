package main

import (
	"fmt"

	"github.com/pkg/errors"
)

const demoClassroom = "Demo Class 7"

// seedDemo loads a small classroom a developer can dial through end to end:
// one teacher, two learners, two subjects with a lesson and a quiz each.
// Running it twice is a no-op.
func (cli *commandLine) seedDemo() error {
	var exists bool
	if err := cli.db.Get(&exists, "SELECT EXISTS (SELECT 1 FROM classroom WHERE name = $1)", demoClassroom); err != nil {
		return errors.Wrap(err, "checking demo classroom")
	}
	if exists {
		fmt.Println("demo data already loaded")
		return nil
	}

	tx, err := cli.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback() }()

	var classID int
	if err = tx.Get(&classID, "INSERT INTO classroom (name) VALUES ($1) RETURNING id", demoClassroom); err != nil {
		return errors.Wrap(err, "creating classroom")
	}

	_, err = tx.Exec(
		"INSERT INTO teacher (name, phone, email, classroom_id) VALUES ($1, $2, $3, $4)",
		"Alice Wanjiru", "0711000000", "alice@school.example", classID,
	)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}

	for _, lrn := range [][2]string{
		{"Brian Otieno", "0722000001"},
		{"Cynthia Mwende", "0722000002"},
	} {
		_, err = tx.Exec("INSERT INTO learner (name, phone, classroom_id) VALUES ($1, $2, $3)", lrn[0], lrn[1], classID)
		if err != nil {
			return errors.Wrap(err, "creating learner")
		}
	}

	type question struct {
		prompt  string
		options [4]string // empty entries are omitted
		answer  string
	}
	subjects := []struct {
		name     string
		topic    string
		subtopic string
		lesson   [2]string // title, body
		quiz     string
		question question
	}{
		{
			name:     "Mathematics",
			topic:    "Fractions",
			subtopic: "Adding Fractions",
			lesson: [2]string{
				"Adding fractions with the same denominator",
				"When two fractions share a denominator, add the numerators and keep the denominator. " +
					"For example 1/5 + 2/5 = 3/5. Always simplify the result when you can.",
			},
			quiz: "Fractions check",
			question: question{
				prompt:  "What is 1/4 + 2/4?",
				options: [4]string{"3/4", "3/8", "1/2", ""},
				answer:  "3/4",
			},
		},
		{
			name:     "Science",
			topic:    "Plants",
			subtopic: "Photosynthesis",
			lesson: [2]string{
				"How plants make food",
				"Green plants make their own food through photosynthesis. Leaves take in carbon dioxide, " +
					"roots absorb water, and sunlight provides the energy to turn them into glucose and oxygen.",
			},
			quiz: "Plants check",
			question: question{
				prompt:  "Which gas do plants take in during photosynthesis?",
				options: [4]string{"Oxygen", "Carbon dioxide", "Nitrogen", "Hydrogen"},
				answer:  "Carbon dioxide",
			},
		},
	}

	for _, sub := range subjects {
		var subjectID int
		if err = tx.Get(&subjectID, "INSERT INTO subject (name, classroom_id) VALUES ($1, $2) RETURNING id", sub.name, classID); err != nil {
			return errors.Wrap(err, "creating subject")
		}

		var topicID int
		if err = tx.Get(&topicID, "INSERT INTO topic (name, subject_id) VALUES ($1, $2) RETURNING id", sub.topic, subjectID); err != nil {
			return errors.Wrap(err, "creating topic")
		}

		var subtopicID int
		if err = tx.Get(&subtopicID, "INSERT INTO subtopic (name, topic_id) VALUES ($1, $2) RETURNING id", sub.subtopic, topicID); err != nil {
			return errors.Wrap(err, "creating subtopic")
		}

		_, err = tx.Exec("INSERT INTO lesson (title, body, subtopic_id) VALUES ($1, $2, $3)", sub.lesson[0], sub.lesson[1], subtopicID)
		if err != nil {
			return errors.Wrap(err, "creating lesson")
		}

		var quizID int
		if err = tx.Get(&quizID, "INSERT INTO quiz (name, subtopic_id) VALUES ($1, $2) RETURNING id", sub.quiz, subtopicID); err != nil {
			return errors.Wrap(err, "creating quiz")
		}

		q := sub.question
		_, err = tx.Exec(
			"INSERT INTO question (quiz_id, prompt, option_a, option_b, option_c, option_d, answer) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)",
			quizID, q.prompt, q.options[0], q.options[1], q.options[2], q.options[3], q.answer,
		)
		if err != nil {
			return errors.Wrap(err, "creating question")
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing demo data")
	}
	fmt.Println("demo data loaded")
	return nil
}
