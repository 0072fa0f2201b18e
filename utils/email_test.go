package utils

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessageWithAttachments(t *testing.T) {
	msg := Email{
		To:      []string{"admissions@example.com"},
		ReplyTo: "applicant@example.com",
		Subject: "Заявка",
		Body:    "Текст",
		Attachments: []Attachment{{
			Filename: "passport.pdf",
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader("%PDF-1.4")), nil
			},
		}},
	}

	var buf bytes.Buffer
	_, err := buildMessage("noreply@example.com", msg).WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "To: admissions@example.com")
	assert.Contains(t, out, "Reply-To: applicant@example.com")
	assert.Contains(t, out, `filename="passport.pdf"`)
}
