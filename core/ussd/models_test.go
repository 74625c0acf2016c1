package ussd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Wire(t *testing.T) {
	cont := Result{Level: LevelTopMenu, Body: "pick one", Continues: true}
	assert.Equal(t, "CON pick one", cont.Wire())

	end := Result{Level: LevelLesson, Body: "all done"}
	assert.Equal(t, "END all done", end.Wire())
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "top-menu", LevelTopMenu.String())
	assert.Equal(t, "error", LevelError.String())
	assert.Equal(t, "answer", LevelAnswer.String())
}
