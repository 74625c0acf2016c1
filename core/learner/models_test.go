package learner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{name: "international form", phone: "+254722000001", want: "0722000001"},
		{name: "bare country code", phone: "254722000001", want: "0722000001"},
		{name: "local form untouched", phone: "0722000001", want: "0722000001"},
		{name: "landline prefix", phone: "+254110000001", want: "0110000001"},
		{name: "whitespace trimmed", phone: " +254722000001 ", want: "0722000001"},
		{name: "unknown format passed through", phone: "12345", want: "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.phone))
		})
	}
}

func TestLearner_FirstName(t *testing.T) {
	assert.Equal(t, "Brian", Learner{Name: "Brian Otieno"}.FirstName())
	assert.Equal(t, "Brian", Learner{Name: "Brian"}.FirstName())
	assert.Equal(t, "", Learner{}.FirstName())
}
