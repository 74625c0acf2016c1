package learner

import (
	"strings"
	"time"
)

// Learner is a student reachable over the phone network, enrolled in exactly
// one active classroom for menu purposes.
type Learner struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"` // local 0-prefixed form
	ClassroomID int       `json:"classroom_id"`
	Classroom   string    `json:"classroom"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

func (l Learner) FirstName() string {
	if i := strings.IndexByte(l.Name, ' '); i > 0 {
		return l.Name[:i]
	}
	return l.Name
}

// Teacher is the contact person for a classroom.
type Teacher struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	ClassroomID int    `json:"classroom_id"`
}

// NormalizePhone rewrites an E.164-like Kenyan MSISDN to the local 0-prefixed
// form used for Data Store lookups. This mapping is part of the gateway
// collaborator contract: the gateway always submits "+254..." while the
// platform stores "07..."/"01...".
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	switch {
	case strings.HasPrefix(phone, "+254"):
		return "0" + phone[len("+254"):]
	case strings.HasPrefix(phone, "254"):
		return "0" + phone[len("254"):]
	}
	return phone
}
