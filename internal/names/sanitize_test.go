package names_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wheelibin/huesence/internal/names"
)

func Test_Sanitize(t *testing.T) {

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases", input: "Bedroom", expected: "bedroom"},
		{name: "trims", input: "  Kitchen  ", expected: "kitchen"},
		{name: "collapses whitespace", input: "Living \t  Room", expected: "living room"},
		{name: "strips punctuation", input: "Kid's Room!", expected: "kids room"},
		{name: "keeps hyphen and underscore", input: "Guest-Room_2", expected: "guest-room_2"},
		{name: "punctuation only", input: "?!.", expected: ""},
		{name: "empty", input: "", expected: ""},
		{name: "daytime variant", input: "Bedroom  Daytime", expected: "bedroom daytime"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, names.Sanitize(test.input))
		})
	}

}

func Test_Sanitize_Idempotent(t *testing.T) {

	inputs := []string{"Bedroom", " Kid's   Room ", "r1", "Ünïcode Room", "a\n\nb", "--__--", "Bedroom Daytime"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := names.Sanitize(input)
			assert.Equal(t, once, names.Sanitize(once))
		})
	}

}
