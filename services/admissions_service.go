package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/mail"
	"path/filepath"
	"sort"
	"strings"

	"github.com/IbroIT/SU-back-back-sub001/metrics"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// AdmissionFileFields are the attachments an applicant may send, in the
// order they are attached to the email.
var AdmissionFileFields = []string{"passport", "diploma", "photo", "certificate", "recommendation"}

var admissionExtensions = map[string]bool{".pdf": true, ".jpg": true, ".jpeg": true, ".png": true}

// ViolationList is a list of human readable problems with an application.
type ViolationList []string

func (v ViolationList) Error() string {
	return "invalid application: " + strings.Join(v, "; ")
}

// Application is a validated admissions request.
type Application struct {
	FullName string
	Email    string
	Phone    string
	Program  string
	Message  string
	Files    map[string]*multipart.FileHeader
}

// AdmissionsService validates applications and mails them to the admissions
// office.
type AdmissionsService struct {
	mailer   utils.Mailer
	to       string
	maxFile  int64
	maxTotal int64
}

// NewAdmissionsService takes the size limits in megabytes.
func NewAdmissionsService(mailer utils.Mailer, to string, maxFileMB, maxTotalMB int64) *AdmissionsService {
	return &AdmissionsService{
		mailer:   mailer,
		to:       to,
		maxFile:  maxFileMB << 20,
		maxTotal: maxTotalMB << 20,
	}
}

// MaxRequestSize bounds the whole multipart body.
func (s *AdmissionsService) MaxRequestSize() int64 {
	return s.maxTotal + 1<<20
}

// Validate checks applicant fields and attachments. All problems are
// collected; each names the field it is about.
func (s *AdmissionsService) Validate(form *multipart.Form) (*Application, error) {
	var errs ViolationList
	value := func(key string) string {
		if vs := form.Value[key]; len(vs) > 0 {
			return strings.TrimSpace(vs[0])
		}
		return ""
	}

	app := &Application{
		FullName: value("full_name"),
		Email:    value("email"),
		Phone:    value("phone"),
		Program:  value("program"),
		Message:  value("message"),
		Files:    make(map[string]*multipart.FileHeader),
	}
	if app.FullName == "" {
		errs = append(errs, "full_name: required")
	}
	if app.Email == "" {
		errs = append(errs, "email: required")
	} else if _, err := mail.ParseAddress(app.Email); err != nil {
		errs = append(errs, "email: invalid address")
	}
	if app.Phone == "" {
		errs = append(errs, "phone: required")
	}

	allowed := make(map[string]bool, len(AdmissionFileFields))
	for _, f := range AdmissionFileFields {
		allowed[f] = true
	}
	var unknown []string
	for field := range form.File {
		if !allowed[field] {
			unknown = append(unknown, field)
		}
	}
	sort.Strings(unknown)
	for _, field := range unknown {
		errs = append(errs, field+": unexpected file field")
	}

	var total int64
	for _, field := range AdmissionFileFields {
		files := form.File[field]
		if len(files) == 0 {
			continue
		}
		if len(files) > 1 {
			errs = append(errs, field+": only one file allowed")
		}
		fh := files[0]
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !admissionExtensions[ext] {
			errs = append(errs, fmt.Sprintf("%s: file type %q not allowed (pdf, jpg, jpeg, png)", field, ext))
		}
		if fh.Size > s.maxFile {
			errs = append(errs, fmt.Sprintf("%s: file %q is %.1f MB, limit is %d MB", field, fh.Filename, float64(fh.Size)/(1<<20), s.maxFile>>20))
		}
		total += fh.Size
		app.Files[field] = fh
	}
	if total > s.maxTotal {
		errs = append(errs, fmt.Sprintf("files: total size %.1f MB exceeds %d MB", float64(total)/(1<<20), s.maxTotal>>20))
	}

	if len(errs) > 0 {
		metrics.AdmissionsSubmissions.WithLabelValues("invalid").Inc()
		return nil, errs
	}
	return app, nil
}

// Submit emails the application with its files attached.
func (s *AdmissionsService) Submit(app *Application) error {
	var body strings.Builder
	fmt.Fprintf(&body, "Новая заявка на поступление\n\n")
	fmt.Fprintf(&body, "ФИО: %s\n", app.FullName)
	fmt.Fprintf(&body, "Email: %s\n", app.Email)
	fmt.Fprintf(&body, "Телефон: %s\n", app.Phone)
	if app.Program != "" {
		fmt.Fprintf(&body, "Программа: %s\n", app.Program)
	}
	if app.Message != "" {
		fmt.Fprintf(&body, "\n%s\n", app.Message)
	}

	msg := utils.Email{
		To:      []string{s.to},
		ReplyTo: app.Email,
		Subject: "Заявка на поступление: " + app.FullName,
		Body:    body.String(),
	}
	for _, field := range AdmissionFileFields {
		fh, ok := app.Files[field]
		if !ok {
			continue
		}
		msg.Attachments = append(msg.Attachments, utils.Attachment{
			Filename: field + strings.ToLower(filepath.Ext(fh.Filename)),
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	if err := s.mailer.Send(msg); err != nil {
		metrics.AdmissionsSubmissions.WithLabelValues("mail_error").Inc()
		return fmt.Errorf("send admissions email: %w", err)
	}
	metrics.AdmissionsSubmissions.WithLabelValues("sent").Inc()
	return nil
}
