package echoapi

import (
	"net/http"
	"net/http/httptest"
	"net/mail"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/content"
	"github.com/trezcool/somo/core/learner"
	"github.com/trezcool/somo/core/ussd"
	emailsvc "github.com/trezcool/somo/services/email"
	smssvc "github.com/trezcool/somo/services/sms"
	"github.com/trezcool/somo/storage/database/inmemdb"
)

type nopLogger struct{}

var _ core.Logger = (*nopLogger)(nil)

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func setup(t *testing.T) (Server, *inmemdb.DB) {
	t.Helper()

	conf := &core.Config{
		Env:              "TEST",
		TestMode:         true,
		AppName:          "Somo",
		DefaultFromEmail: mail.Address{Name: "Somo", Address: "noreply@localhost"},
		USSD:             core.USSDConfig{PageBudget: 200, MenuSize: 5},
	}

	now := time.Now().UTC()
	db := inmemdb.Open()
	db.AddTeacher(learner.Teacher{ID: 1, Name: "Alice Wanjiru", Phone: "0711000000", ClassroomID: 1})
	db.AddLearner(learner.Learner{ID: 1, Name: "Brian Otieno", Phone: "0722000001", ClassroomID: 1, Classroom: "Class 7B"})
	db.AddSubject(content.Subject{ID: 1, Name: "Mathematics", ClassroomID: 1})
	db.AddTopic(content.Topic{ID: 1, Name: "Fractions", SubjectID: 1})
	db.AddTopic(content.Topic{ID: 2, Name: "Decimals", SubjectID: 1})
	db.AddSubtopic(content.Subtopic{ID: 1, Name: "Adding Fractions", TopicID: 1})
	db.AddSubtopic(content.Subtopic{ID: 2, Name: "Decimal Places", TopicID: 2})
	db.AddLesson(content.Lesson{
		ID: 1, Title: "Adding fractions", Body: "Add the numerators and keep the denominator.",
		SubtopicID: 1, CreatedAt: now,
	})
	db.AddLesson(content.Lesson{
		ID: 2, Title: "Reading decimals", Body: strings.Repeat("The digits after the point are tenths, hundredths and thousandths. ", 6),
		SubtopicID: 2, CreatedAt: now,
	})
	db.AddQuiz(content.Quiz{ID: 1, Name: "Fractions check", SubtopicID: 1})
	db.AddQuestion(content.Question{
		ID: 1, QuizID: 1, Prompt: "What is 1/4 + 2/4?",
		Options: []string{"3/4", "3/8", "1/2", "4/8"},
		Answer:  "3/4",
	})

	logger := nopLogger{}
	ussdSvc := ussd.NewService(
		conf,
		logger,
		learner.NewService(inmemdb.NewLearnerRepository(db)),
		content.NewService(inmemdb.NewContentRepository(db), conf.USSD.MenuSize),
		smssvc.NewConsoleServiceMock(),
		emailsvc.NewConsoleServiceMock(conf),
	)

	validate := validator.New()
	enLocale := en.New()
	translator, _ := ut.New(enLocale, enLocale).GetTranslator(enLocale.Locale())
	core.InitValidators(validate, translator)

	app := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		USSDSvc:    ussdSvc,
		Validate:   validate,
		Translator: translator,
	})
	return app, db
}

func newFormRequest(path string, form url.Values) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	return req, rec
}

func callbackForm(phone, text string) url.Values {
	return url.Values{
		"sessionId":   {"ATUid_1"},
		"serviceCode": {"*384*96#"},
		"phoneNumber": {phone},
		"text":        {text},
	}
}

func Test_home(t *testing.T) {
	app, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Somo API!", rec.Body.String())
}

func Test_ussdApi_callback(t *testing.T) {
	app, _ := setup(t)

	tests := []struct {
		name     string
		path     string
		form     url.Values
		wantCode int
		wantBody string // exact match when set
		wantJSON string // JSON match when set
	}{
		{
			name: "empty text: welcome menu", path: "/ussd", form: callbackForm("+254722000001", ""),
			wantCode: http.StatusOK,
			wantBody: "CON Welcome to Somo, Brian!\n1. Lessons\n2. Quizzes\n3. My progress\n4. Ask my teacher",
		},
		{
			name: "trailing slash stripped", path: "/ussd/", form: callbackForm("+254722000001", ""),
			wantCode: http.StatusOK,
			wantBody: "CON Welcome to Somo, Brian!\n1. Lessons\n2. Quizzes\n3. My progress\n4. Ask my teacher",
		},
		{
			name: "subject picker", path: "/ussd", form: callbackForm("+254722000001", "1"),
			wantCode: http.StatusOK,
			wantBody: "CON Pick a subject:\n1. Mathematics",
		},
		{
			name: "topic picker", path: "/ussd", form: callbackForm("+254722000001", "1*1"),
			wantCode: http.StatusOK,
			wantBody: "CON Mathematics - pick a topic:\n1. Fractions\n2. Decimals",
		},
		{
			name: "terminal lesson screen", path: "/ussd", form: callbackForm("+254722000001", "1*1*1"),
			wantCode: http.StatusOK,
			wantBody: "END Adding fractions\nAdd the numerators and keep the denominator.",
		},
		{
			name: "first quiz question", path: "/ussd", form: callbackForm("+254722000001", "2*1*1"),
			wantCode: http.StatusOK,
			wantBody: "CON What is 1/4 + 2/4?\n1. 3/4\n2. 3/8\n3. 1/2\n4. 4/8",
		},
		{
			name: "invalid selection still replies 200", path: "/ussd", form: callbackForm("+254722000001", "9"),
			wantCode: http.StatusOK,
			wantBody: "END Invalid selection. Please dial again and choose one of the listed options.",
		},
		{
			name: "unregistered phone", path: "/ussd", form: callbackForm("+254799999999", "1"),
			wantCode: http.StatusOK,
			wantBody: "END Sorry, this phone number is not registered. Please ask your school to enrol you.",
		},
		{
			name: "malformed phone", path: "/ussd", form: callbackForm("12345", ""),
			wantCode: http.StatusBadRequest,
			wantJSON: `{"phoneNumber": "a valid phone number is required"}`,
		},
		{
			name: "missing phone", path: "/ussd", form: callbackForm("", ""),
			wantCode: http.StatusBadRequest,
			wantJSON: `{"phoneNumber": "this field is required"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newFormRequest(tt.path, tt.form)
			app.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantJSON != "" {
				assert.JSONEq(t, tt.wantJSON, rec.Body.String())
			}
		})
	}
}

func Test_ussdApi_callback_lessonOverflow(t *testing.T) {
	app, _ := setup(t)
	smssvc.ClearSentMessages()

	req, rec := newFormRequest("/ussd", callbackForm("+254722000001", "1*1*2"))
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "END Reading decimals"))
	assert.True(t, strings.HasSuffix(body, "(Full text sent to you by SMS)"))

	// complete text goes out exactly once
	msgs := smssvc.GetSentMessages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "0722000001", msgs[0].To)
	assert.Contains(t, msgs[0].Body, "thousandths")
}

func Test_ussdApi_callback_quizAnswer(t *testing.T) {
	app, db := setup(t)
	smssvc.ClearSentMessages()

	req, rec := newFormRequest("/ussd", callbackForm("+254722000001", "2*1*1*2"))
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "END Sorry, that is not the right answer. You scored 0 out of 1. Check your SMS for the correct answer.", rec.Body.String())

	atts := db.Attempts()
	require.Len(t, atts, 1)
	assert.Equal(t, "3/8", atts[0].Chosen)
	assert.Equal(t, 0, atts[0].Score)
	assert.Equal(t, 1, atts[0].Total)

	// result SMS states the chosen and the correct answer
	var resultMsg string
	for _, m := range smssvc.GetSentMessages() {
		if m.To == "0722000001" {
			resultMsg = m.Body
		}
	}
	assert.Contains(t, resultMsg, `"3/8"`)
	assert.Contains(t, resultMsg, `The correct answer is "3/4"`)

	// teacher ping lands off the critical path
	assert.Eventually(t, func() bool {
		for _, m := range smssvc.GetSentMessages() {
			if m.To == "0711000000" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func Test_ussdApi_deliveryReport(t *testing.T) {
	app, _ := setup(t)

	form := url.Values{
		"id":          {"ATXid_1"},
		"status":      {"Success"},
		"phoneNumber": {"+254722000001"},
		"networkCode": {"63902"},
	}
	req, rec := newFormRequest("/sms/delivery-report", form)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
