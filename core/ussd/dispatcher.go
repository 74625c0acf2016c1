package ussd

import (
	"fmt"
	"net/mail"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/learner"
)

// dispatchOverflow pushes the complete, untruncated text to the learner by
// SMS after the on-screen body was cut down to the page budget.
// Fire-and-forget: the SMS service delivers on its own goroutines and logs
// its own failures; nothing here can delay or alter the USSD reply.
func (svc *Service) dispatchOverflow(phone, full string) {
	svc.sms.SendMessages(core.SMSMessage{To: phone, Body: full})
}

// notifyTeacher tells the classroom teacher that a learner asked for help,
// by SMS and (when an address is on file) by email. Best-effort on both
// channels.
func (svc *Service) notifyTeacher(teacher learner.Teacher, lrn learner.Learner) {
	body := fmt.Sprintf("Hello %s, your student %s (%s, %s) has requested to talk to you. Please reach out to them.",
		teacher.Name, lrn.Name, lrn.Classroom, lrn.Phone)

	svc.sms.SendMessages(core.SMSMessage{To: teacher.Phone, Body: body})

	if teacher.Email != "" {
		svc.mail.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: teacher.Name, Address: teacher.Email}},
			Subject: fmt.Sprintf("%s has requested to talk to you", lrn.Name),
			Body:    body,
		})
	}
}
