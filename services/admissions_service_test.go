package services

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IbroIT/SU-back-back-sub001/utils"
)

type fakeMailer struct {
	sent []utils.Email
	err  error
}

func (m *fakeMailer) Send(msg utils.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type upload struct {
	field, name string
	size        int
}

func buildForm(t *testing.T, fields map[string]string, files ...upload) *multipart.Form {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = fw.Write(bytes.Repeat([]byte{'x'}, f.size))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form
}

var applicant = map[string]string{
	"full_name": "Асель Токтогулова",
	"email":     "asel@example.com",
	"phone":     "+996555000111",
	"program":   "Лечебное дело",
}

func violations(t *testing.T, err error) ViolationList {
	t.Helper()
	var v ViolationList
	require.ErrorAs(t, err, &v)
	return v
}

func TestAdmissionsRejectsOversizedFile(t *testing.T) {
	svc := NewAdmissionsService(&fakeMailer{}, "admissions@example.com", 5, 20)
	form := buildForm(t, applicant, upload{"passport", "passport.pdf", 6 << 20})

	_, err := svc.Validate(form)
	v := violations(t, err)
	require.Len(t, v, 1)
	assert.True(t, strings.HasPrefix(v[0], "passport:"), v[0])
	assert.Contains(t, v[0], "limit is 5 MB")
}

func TestAdmissionsRejectsTypesUnknownFieldsAndTotal(t *testing.T) {
	svc := NewAdmissionsService(&fakeMailer{}, "admissions@example.com", 5, 8)
	form := buildForm(t, map[string]string{"email": "not-an-email"},
		upload{"diploma", "diploma.docx", 10},
		upload{"passport", "passport.PDF", 4 << 20},
		upload{"photo", "photo.jpg", 4 << 20},
		upload{"resume", "cv.pdf", 10},
	)

	_, err := svc.Validate(form)
	v := violations(t, err)
	joined := strings.Join(v, "\n")
	assert.Contains(t, joined, "full_name: required")
	assert.Contains(t, joined, "email: invalid address")
	assert.Contains(t, joined, "phone: required")
	assert.Contains(t, joined, "resume: unexpected file field")
	assert.Contains(t, joined, `diploma: file type ".docx" not allowed`)
	assert.Contains(t, joined, "files: total size")
	assert.NotContains(t, joined, "passport:")
}

func TestAdmissionsSendsEmailWithAttachments(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewAdmissionsService(mailer, "admissions@example.com", 5, 20)
	form := buildForm(t, applicant,
		upload{"photo", "me.PNG", 100},
		upload{"passport", "scan.pdf", 200},
	)

	app, err := svc.Validate(form)
	require.NoError(t, err)
	require.NoError(t, svc.Submit(app))

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, []string{"admissions@example.com"}, msg.To)
	assert.Equal(t, "asel@example.com", msg.ReplyTo)
	assert.Contains(t, msg.Subject, "Асель Токтогулова")
	assert.Contains(t, msg.Body, "Лечебное дело")

	require.Len(t, msg.Attachments, 2)
	assert.Equal(t, "passport.pdf", msg.Attachments[0].Filename)
	assert.Equal(t, "photo.png", msg.Attachments[1].Filename)

	r, err := msg.Attachments[0].Open()
	require.NoError(t, err)
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Len(t, b, 200)
}

func TestAdmissionsMailFailure(t *testing.T) {
	svc := NewAdmissionsService(&fakeMailer{err: errors.New("smtp down")}, "admissions@example.com", 5, 20)
	app, err := svc.Validate(buildForm(t, applicant))
	require.NoError(t, err)
	assert.Error(t, svc.Submit(app))
}
