package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const msgInvalidBody = "Invalid request body"

var (
	errInvalidNumber = errors.New("minSalary, maxSalary and applicationQuota must be numbers")
	errInvalidDate   = errors.New("expiresAt must be a date (YYYY-MM-DD or RFC 3339)")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			_, err := models.ParseRole(fl.Field().String())
			return err == nil
		}); err != nil {
			panic(err)
		}
	})
	return validate
}

// bindJSON decodes the request body into dst. An empty body leaves dst
// zero so the service reports what is missing. Bodies that are not valid
// JSON, or carry a value of the wrong type, are a BadRequest.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, errInvalidNumber):
			return e.New(e.ErrBadRequest, errInvalidNumber.Error())
		case errors.Is(err, errInvalidDate):
			return e.New(e.ErrBadRequest, errInvalidDate.Error())
		default:
			return e.New(e.ErrBadRequest, msgInvalidBody)
		}
	}
	return nil
}

// bindForRole decodes the body of a role-gated write. A body that fails to
// decode is reported only to callers holding one of roles; anyone else gets
// the Forbidden msg the service would have answered with.
func bindForRole(c *gin.Context, identity *models.Identity, dst any, msg string, roles ...models.Role) error {
	err := bindJSON(c, dst)
	if err == nil {
		return nil
	}
	if roleErr := auth.RequireRole(identity, msg, roles...); roleErr != nil {
		return roleErr
	}
	return err
}

// bindAndValidate decodes dst and runs its validate tags. A missing required
// field is reported with missingMsg.
func bindAndValidate(c *gin.Context, dst any, missingMsg string) error {
	if err := bindJSON(c, dst); err != nil {
		return err
	}

	err := getValidator().Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return e.New(e.ErrBadRequest, missingMsg)
		}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "role":
		_, roleErr := models.ParseRole(fe.Value().(string))
		return e.New(e.ErrBadRequest, roleErr.Error())
	default:
		return e.Newf(e.ErrBadRequest, "Invalid value for %s", fe.Field())
	}
}

type registerRequest struct {
	Name      string  `json:"name" validate:"required"`
	Email     string  `json:"email" validate:"required"`
	Password  string  `json:"password" validate:"required"`
	Role      string  `json:"role" validate:"required,role"`
	ResumeURL *string `json:"resumeUrl"`
	Bio       *string `json:"bio"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type companyRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Location    string            `json:"location"`
	Website     string            `json:"website"`
	LogoURL     *string           `json:"logoUrl"`
	Mission     *string           `json:"mission"`
	SocialLinks map[string]string `json:"socialLinks"`
}

func (r *companyRequest) toModel() *models.Company {
	return &models.Company{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Website:     r.Website,
		LogoURL:     r.LogoURL,
		Mission:     r.Mission,
		SocialLinks: r.SocialLinks,
	}
}

type companyUpdateRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Location    *string            `json:"location"`
	Website     *string            `json:"website"`
	LogoURL     *string            `json:"logoUrl"`
	Mission     *string            `json:"mission"`
	SocialLinks *map[string]string `json:"socialLinks"`
}

func (r *companyUpdateRequest) toModel() *models.CompanyUpdate {
	return &models.CompanyUpdate{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Website:     r.Website,
		LogoURL:     r.LogoURL,
		Mission:     r.Mission,
		SocialLinks: r.SocialLinks,
	}
}

type jobRequest struct {
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Location         string       `json:"location"`
	JobType          string       `json:"jobType"`
	EmploymentType   string       `json:"employmentType"`
	Category         string       `json:"category"`
	Tags             *string      `json:"tags"`
	MinSalary        nullableInt  `json:"minSalary"`
	MaxSalary        nullableInt  `json:"maxSalary"`
	ApplicationQuota nullableInt  `json:"applicationQuota"`
	ExpiresAt        nullableDate `json:"expiresAt"`
}

func (r *jobRequest) toModel() *models.Job {
	return &models.Job{
		Title:            r.Title,
		Description:      r.Description,
		Location:         r.Location,
		JobType:          r.JobType,
		EmploymentType:   r.EmploymentType,
		Category:         r.Category,
		Tags:             r.Tags,
		MinSalary:        r.MinSalary.Value,
		MaxSalary:        r.MaxSalary.Value,
		ApplicationQuota: r.ApplicationQuota.Value,
		ExpiresAt:        r.ExpiresAt.Value,
	}
}

type jobUpdateRequest struct {
	Title            *string      `json:"title"`
	Description      *string      `json:"description"`
	Location         *string      `json:"location"`
	JobType          *string      `json:"jobType"`
	EmploymentType   *string      `json:"employmentType"`
	Category         *string      `json:"category"`
	Tags             *string      `json:"tags"`
	MinSalary        nullableInt  `json:"minSalary"`
	MaxSalary        nullableInt  `json:"maxSalary"`
	ApplicationQuota nullableInt  `json:"applicationQuota"`
	ExpiresAt        nullableDate `json:"expiresAt"`
}

func (r *jobUpdateRequest) toModel() *models.JobUpdate {
	return &models.JobUpdate{
		Title:            r.Title,
		Description:      r.Description,
		Location:         r.Location,
		JobType:          r.JobType,
		EmploymentType:   r.EmploymentType,
		Category:         r.Category,
		Tags:             r.Tags,
		MinSalary:        models.Field[int](r.MinSalary),
		MaxSalary:        models.Field[int](r.MaxSalary),
		ApplicationQuota: models.Field[int](r.ApplicationQuota),
		ExpiresAt:        models.Field[time.Time](r.ExpiresAt),
	}
}

type applyRequest struct {
	ResumeURL   string `json:"resumeUrl"`
	CoverLetter string `json:"coverLetter"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// nullableInt accepts a JSON number or a numeric string. null leaves the
// field unset; 0, "" and false set it to NULL.
type nullableInt models.Field[int]

func (n *nullableInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return errInvalidNumber
	}

	var text string
	switch v := raw.(type) {
	case bool:
		if v {
			return errInvalidNumber
		}
		n.Set, n.Value = true, nil
		return nil
	case json.Number:
		text = v.String()
	case string:
		text = strings.TrimSpace(v)
	default:
		return errInvalidNumber
	}

	if text == "" {
		n.Set, n.Value = true, nil
		return nil
	}
	value, err := parseInt(text)
	if err != nil {
		return errInvalidNumber
	}
	n.Set = true
	if value == 0 {
		n.Value = nil
	} else {
		n.Value = &value
	}
	return nil
}

// parseInt accepts integral values, in decimal or exponent form, that fit
// the integer columns they are stored in.
func parseInt(text string) (int, error) {
	var value float64
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		value = float64(v)
	} else if errors.Is(err, strconv.ErrRange) {
		return 0, errInvalidNumber
	} else {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, errInvalidNumber
		}
		value = f
	}
	if value < math.MinInt32 || value > math.MaxInt32 {
		return 0, errInvalidNumber
	}
	return int(value), nil
}

// nullableDate accepts an RFC 3339 timestamp or a YYYY-MM-DD date. null
// leaves the field unset; "" sets it to NULL.
type nullableDate models.Field[time.Time]

func (d *nullableDate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return errInvalidDate
	}
	text = strings.TrimSpace(text)
	if text == "" {
		d.Set, d.Value = true, nil
		return nil
	}

	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, text); err == nil {
			t = t.UTC()
			d.Set, d.Value = true, &t
			return nil
		}
	}
	return errInvalidDate
}

// searchQuery is the query string of the public job search. Page and limit
// stay strings so malformed values fall back to the defaults.
type searchQuery struct {
	Category        string `form:"category"`
	JobType         string `form:"jobType"`
	EmploymentType  string `form:"employmentType"`
	Tags            string `form:"tags"`
	JobLocation     string `form:"jobLocation"`
	CompanyLocation string `form:"companyLocation"`
	Page            string `form:"page"`
	Limit           string `form:"limit"`
}

func (q *searchQuery) filter() models.JobFilter {
	return models.JobFilter{
		Category:        q.Category,
		JobType:         q.JobType,
		EmploymentType:  q.EmploymentType,
		Tags:            q.Tags,
		JobLocation:     q.JobLocation,
		CompanyLocation: q.CompanyLocation,
	}
}

func (q *searchQuery) page() models.PageRequest {
	page, _ := strconv.Atoi(strings.TrimSpace(q.Page))
	limit, _ := strconv.Atoi(strings.TrimSpace(q.Limit))
	return models.PageRequest{Page: page, Limit: limit}
}
