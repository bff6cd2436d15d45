package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "First test post!", want: "First test post!"},
		{name: "script removed, trailing text kept", in: "<script>alert(1)</script>Title", want: "Title"},
		{name: "img with handler removed", in: `<img src="https://x.invalid/none.png" onerror="alert(document.cookie);">Bad image`, want: "Bad image"},
		{name: "inline tags stripped", in: "<b>bold</b> and <i>italic</i>", want: "bold and italic"},
		{name: "empty", in: "", want: ""},
		{name: "apostrophe", in: "Joe's links", want: "Joe's links"},
		{name: "ampersand", in: "Tom & Jerry", want: "Tom & Jerry"},
		{name: "double quotes", in: `He said "hi"`, want: `He said "hi"`},
		{name: "stray angle bracket escaped", in: "1 < 2", want: "1 &lt; 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestText_NoMarkupSurvives(t *testing.T) {
	got := Text(`Naughty naughty very naughty <script>alert("xss");</script>`)
	assert.NotContains(t, got, "<script")
	assert.NotContains(t, got, "alert")
	assert.Contains(t, got, "Naughty naughty very naughty")
}
