package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeURIComponent(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      string
	}{
		{description: "unreserved kept", input: "abcXYZ019-_.!~*'()", expect: "abcXYZ019-_.!~*'()"},
		{description: "path", input: "/src/App.tsx", expect: "%2Fsrc%2FApp.tsx"},
		{description: "space and plus", input: "a b+c", expect: "a%20b%2Bc"},
		{description: "markup", input: `<div id="a">`, expect: "%3Cdiv%20id%3D%22a%22%3E"},
		{description: "utf-8", input: "é", expect: "%C3%A9"},
	}
	for _, testCase := range testCases {
		actual := EncodeURIComponent(testCase.input)
		assert.Equal(t, testCase.expect, actual, testCase.description)
		decoded, err := DecodeURIComponent(actual)
		assert.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.input, decoded, testCase.description)
	}
}

func TestLink(t *testing.T) {
	link := Link(Location{File: "/work/app/src/My App.tsx", Line: 12, Column: 5})
	assert.Equal(t, "idea://open?file=%2Fwork%2Fapp%2Fsrc%2FMy%20App.tsx&line=12&column=5", link)

	loc, err := ParseLink(link)
	require.NoError(t, err)
	assert.Equal(t, &Location{File: "/work/app/src/My App.tsx", Line: 12, Column: 5}, loc)

	_, err = ParseLink("https://open?file=a&line=1&column=1")
	assert.Error(t, err)
	_, err = ParseLink("idea://open?file=a&line=x&column=1")
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "/src/App.tsx:3:7 | [App]", Label("/src/App.tsx", 3, 7, "App"))
	assert.Equal(t, "/src/App.tsx:3:7", Label("/src/App.tsx", 3, 7, ""))
}
