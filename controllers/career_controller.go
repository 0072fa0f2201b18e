package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/services"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

type vacancyRequest struct {
	Title          *i18nInput `json:"title"`
	Department     *i18nInput `json:"department"`
	Description    *i18nInput `json:"description"`
	Requirements   *i18nInput `json:"requirements"`
	EmploymentType *string    `json:"employment_type" binding:"omitempty,oneof=full_time part_time contract internship"`
	Deadline       *dateInput `json:"deadline"`
	ContactEmail   *string    `json:"contact_email" binding:"omitempty,email"`
	IsActive       *bool      `json:"is_active"`
}

func (r *vacancyRequest) apply(v *models.Vacancy) error {
	r.Title.applyTo(&v.Title)
	r.Department.applyTo(&v.Department)
	r.Description.applyTo(&v.Description)
	r.Requirements.applyTo(&v.Requirements)
	if r.EmploymentType != nil {
		v.EmploymentType = models.EmploymentType(*r.EmploymentType)
	}
	if r.Deadline != nil {
		if strings.TrimSpace(string(*r.Deadline)) == "" {
			v.Deadline = nil
		} else {
			d, err := r.Deadline.parse()
			if err != nil {
				return services.FieldErrors{"deadline": "must be a date in YYYY-MM-DD format"}
			}
			d = utils.DateOnly(d)
			v.Deadline = &d
		}
	}
	setString(&v.ContactEmail, r.ContactEmail)
	setBool(&v.IsActive, r.IsActive)
	if v.Title.Trimmed().RU == "" {
		return services.FieldErrors{"title_ru": "required"}
	}
	return nil
}

// CareerController - вакансии университета
type CareerController struct {
	db *gorm.DB
}

func NewCareerController(db *gorm.DB) *CareerController {
	return &CareerController{db: db}
}

// GET /vacancies?employment_type=internship
// Публично видны только активные вакансии с непрошедшим сроком.
func (cc *CareerController) List(c *gin.Context) {
	page, okPage := parsePage(c)
	if !okPage {
		return
	}
	q := cc.db.WithContext(c.Request.Context()).Model(&models.Vacancy{})
	if !includeDrafts(c) {
		today := utils.DateOnly(utils.LocalNow())
		q = q.Where("is_active = ?", true).Where("deadline IS NULL OR deadline >= ?", utils.SQLDate(today))
	}
	if t := c.Query("employment_type"); t != "" {
		et := models.EmploymentType(strings.ToLower(t))
		if !et.Valid() {
			invalid(c, services.FieldErrors{"employment_type": "must be one of full_time, part_time, contract, internship"})
			return
		}
		q = q.Where("employment_type = ?", et)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		handleError(c, err, "count vacancies")
		return
	}
	var items []models.Vacancy
	if err := q.Order("created_at DESC").Order("id DESC").Offset(page.Offset()).Limit(page.PageSize).Find(&items).Error; err != nil {
		handleError(c, err, "list vacancies")
		return
	}
	lang := requestLang(c)
	data := make([]gin.H, 0, len(items))
	for i := range items {
		data = append(data, vacancyItem(&items[i], lang))
	}
	ok(c, http.StatusOK, listResult(page, total, data))
}

// GET /vacancies/:id
func (cc *CareerController) Get(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	q := cc.db.WithContext(c.Request.Context())
	if !isStaff(c) {
		q = q.Where("is_active = ?", true)
	}
	var v models.Vacancy
	if err := q.First(&v, id).Error; err != nil {
		handleError(c, err, "get vacancy")
		return
	}
	ok(c, http.StatusOK, vacancyItem(&v, requestLang(c)))
}

// POST /vacancies
func (cc *CareerController) Create(c *gin.Context) {
	var req vacancyRequest
	if !bindJSON(c, &req) {
		return
	}
	v := models.Vacancy{EmploymentType: models.EmploymentFullTime, IsActive: true}
	if err := req.apply(&v); err != nil {
		handleError(c, err, "create vacancy")
		return
	}
	if err := cc.db.WithContext(c.Request.Context()).Create(&v).Error; err != nil {
		handleError(c, err, "create vacancy")
		return
	}
	ok(c, http.StatusCreated, vacancyItem(&v, requestLang(c)))
}

// PUT /vacancies/:id
func (cc *CareerController) Update(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	var req vacancyRequest
	if !bindJSON(c, &req) {
		return
	}
	db := cc.db.WithContext(c.Request.Context())
	var v models.Vacancy
	if err := db.First(&v, id).Error; err != nil {
		handleError(c, err, "get vacancy")
		return
	}
	if err := req.apply(&v); err != nil {
		handleError(c, err, "update vacancy")
		return
	}
	if err := db.Save(&v).Error; err != nil {
		handleError(c, err, "update vacancy")
		return
	}
	ok(c, http.StatusOK, vacancyItem(&v, requestLang(c)))
}

// DELETE /vacancies/:id
func (cc *CareerController) Delete(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	res := cc.db.WithContext(c.Request.Context()).Delete(&models.Vacancy{}, id)
	if res.Error != nil {
		handleError(c, res.Error, "delete vacancy")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	ok(c, http.StatusOK, gin.H{"id": id})
}

func vacancyItem(v *models.Vacancy, lang models.Lang) gin.H {
	h := gin.H{
		"id":              v.ID,
		"employment_type": v.EmploymentType,
		"contact_email":   v.ContactEmail,
		"is_active":       v.IsActive,
		"created_at":      formatTime(v.CreatedAt),
		"updated_at":      formatTime(v.UpdatedAt),
	}
	if v.Deadline != nil {
		h["deadline"] = formatDate(*v.Deadline)
	} else {
		h["deadline"] = nil
	}
	putTranslated(h, "title", v.Title, lang)
	putTranslated(h, "department", v.Department, lang)
	putTranslated(h, "description", v.Description, lang)
	putTranslated(h, "requirements", v.Requirements, lang)
	return h
}
