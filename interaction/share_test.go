package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareURL(t *testing.T) {
	pageURL := "https://faculty.example.edu/profile/faculty-42"
	title := "Dr. Ann Chen — Faculty Profile"

	tests := []struct {
		target   ShareTarget
		contains string
	}{
		{ShareTwitter, "twitter.com/intent/tweet"},
		{ShareFacebook, "facebook.com/sharer"},
		{ShareLinkedIn, "linkedin.com/sharing"},
		{ShareEmail, "mailto:"},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			got, err := ShareURL(tt.target, pageURL, title)
			require.NoError(t, err)
			assert.Contains(t, got, tt.contains)
			// The page URL must be escaped, never embedded raw.
			assert.NotContains(t, got[len("https://"):], "://faculty")
		})
	}
}

func TestShareCopyReturnsPageURL(t *testing.T) {
	got, err := ShareURL(ShareCopyLink, "https://faculty.example.edu/profile/faculty-42", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "https://faculty.example.edu/profile/faculty-42", got)
}

func TestShareUnknownTarget(t *testing.T) {
	_, err := ShareURL("myspace", "https://example.edu", "t")
	assert.Error(t, err)
}
