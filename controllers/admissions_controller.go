package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/IbroIT/SU-back-back-sub001/metrics"
	"github.com/IbroIT/SU-back-back-sub001/services"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

type AdmissionsController struct {
	admissions *services.AdmissionsService
}

func NewAdmissionsController(admissions *services.AdmissionsService) *AdmissionsController {
	return &AdmissionsController{admissions: admissions}
}

// POST /admissions/apply
// multipart/form-data: full_name, email, phone, program, message + файлы
// passport, diploma, photo, certificate, recommendation
func (ac *AdmissionsController) Apply(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ac.admissions.MaxRequestSize())
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.AdmissionsSubmissions.WithLabelValues("invalid").Inc()
			invalid(c, services.ViolationList{"files: request body is too large"})
			return
		}
		invalid(c, services.ViolationList{"body: expected multipart/form-data"})
		return
	}
	defer c.Request.MultipartForm.RemoveAll()

	app, err := ac.admissions.Validate(c.Request.MultipartForm)
	if err != nil {
		handleError(c, err, "validate application")
		return
	}
	if err := ac.admissions.Submit(app); err != nil {
		utils.Logger().Error("admissions email failed",
			zap.String("email", app.Email),
			zap.Int("files", len(app.Files)),
			zap.Error(err))
		fail(c, http.StatusInternalServerError, "internal server error")
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Заявка отправлена"})
}
