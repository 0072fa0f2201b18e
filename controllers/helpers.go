package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/middleware"
	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/services"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

const excerptLength = 200

func init() {
	// ошибки валидации называют поле так же, как в JSON
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	}
}

func ok(c *gin.Context, status int, result any) {
	c.JSON(status, gin.H{"success": true, "result": result})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "result": nil, "error": msg})
}

func invalid(c *gin.Context, errs any) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "validation failed", "errors": errs})
}

// handleError maps service errors onto responses. Unknown errors are logged
// with context and hidden from the client.
func handleError(c *gin.Context, err error, context string) {
	var fe services.FieldErrors
	var vl services.ViolationList
	switch {
	case errors.As(err, &fe):
		invalid(c, fe)
	case errors.As(err, &vl):
		invalid(c, vl)
	case errors.Is(err, gorm.ErrRecordNotFound):
		fail(c, http.StatusNotFound, "not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// поле известно только вызывающему, см. services.DuplicateAs
		fail(c, http.StatusConflict, "already exists")
	default:
		utils.LogError(err, context)
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}

// bindJSON decodes the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		errs := services.FieldErrors{}
		for _, fe := range ve {
			msg := fe.Tag()
			if fe.Param() != "" {
				msg += "=" + fe.Param()
			}
			errs.Add(fe.Field(), msg)
		}
		invalid(c, errs)
		return false
	}
	invalid(c, services.FieldErrors{"body": "invalid JSON"})
	return false
}

// requestLang reads ?lang, then the Lang header, then Accept-Language.
func requestLang(c *gin.Context) models.Lang {
	if v := c.Query("lang"); v != "" {
		return models.ParseLang(v)
	}
	if v := c.GetHeader("Lang"); v != "" {
		return models.ParseLang(v)
	}
	return models.ParseLang(c.GetHeader("Accept-Language"))
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func parsePage(c *gin.Context) (services.Page, bool) {
	p, err := services.ParsePage(c.Request.URL.Query())
	if err != nil {
		handleError(c, err, "parse page")
		return p, false
	}
	return p, true
}

func isStaff(c *gin.Context) bool {
	return middleware.IsStaff(c)
}

// includeDrafts is true for staff requests with ?all=1.
func includeDrafts(c *gin.Context) bool {
	if !isStaff(c) {
		return false
	}
	all, _ := strconv.ParseBool(c.Query("all"))
	return all
}

func listResult(p services.Page, total int64, items []gin.H) gin.H {
	return gin.H{
		"page":        p.Page,
		"page_size":   p.PageSize,
		"total_count": total,
		"data":        items,
	}
}

// putTranslated writes name_ru, name_kg, name_en and the resolved name.
func putTranslated(h gin.H, name string, t models.TranslatedText, lang models.Lang) {
	h[name+"_ru"] = t.RU
	h[name+"_kg"] = t.KG
	h[name+"_en"] = t.EN
	h[name] = t.Resolve(lang)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// i18nInput is one translated field in a request body. Missing languages
// keep their stored value.
type i18nInput struct {
	RU *string `json:"ru"`
	KG *string `json:"kg"`
	EN *string `json:"en"`
}

func (in *i18nInput) applyTo(t *models.TranslatedText) {
	if in == nil {
		return
	}
	if in.RU != nil {
		t.RU = strings.TrimSpace(*in.RU)
	}
	if in.KG != nil {
		t.KG = strings.TrimSpace(*in.KG)
	}
	if in.EN != nil {
		t.EN = strings.TrimSpace(*in.EN)
	}
}

// dateInput accepts YYYY-MM-DD or RFC 3339.
type dateInput string

func (d dateInput) parse() (time.Time, error) {
	s := strings.TrimSpace(string(d))
	if t, err := utils.ParseDate(s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// checkURLs validates optional absolute http(s) URLs. An empty string is
// allowed and clears the stored value.
func checkURLs(fields map[string]*string) error {
	errs := services.FieldErrors{}
	for name, v := range fields {
		if v == nil || strings.TrimSpace(*v) == "" {
			continue
		}
		u, err := url.Parse(strings.TrimSpace(*v))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs.Add(name, "must be an absolute http(s) URL")
		}
	}
	return errs.Err()
}
