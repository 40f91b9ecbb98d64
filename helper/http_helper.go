package helper

import (
	"net/http"
	"reflect"
	"strings"

	"reviewdb-api/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	entranslations "gopkg.in/go-playground/validator.v9/translations/en"
)

// HTTPHelper validates request payloads and renders the error
// taxonomy as structured responses.
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

func NewHTTPHelper() *HTTPHelper {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, translator)

	return &HTTPHelper{Validate: validate, Translator: translator}
}

// ValidateStruct runs field-level validation and reports failures as
// a field-to-messages validation error.
func (u *HTTPHelper) ValidateStruct(s interface{}) error {
	err := u.Validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := map[string][]string{}
	for _, fieldErr := range validationErrors {
		fields[fieldErr.Field()] = append(fields[fieldErr.Field()], fieldErr.Translate(u.Translator))
	}
	return models.ErrorValidation{Fields: fields}
}

// SendError maps a domain error to its HTTP response. Anything
// outside the taxonomy is a server error.
func (u *HTTPHelper) SendError(c *gin.Context, err error) {
	switch e := err.(type) {
	case models.ErrorValidation:
		c.JSON(http.StatusBadRequest, e.Fields)
	case models.ErrorNotFound:
		c.JSON(http.StatusNotFound, gin.H{"detail": e.Message})
	case models.ErrorUnauthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{"detail": e.Message})
	case models.ErrorPermissionDenied:
		c.JSON(http.StatusForbidden, gin.H{"detail": e.Message})
	case models.ErrorMethodNotAllowed:
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": e.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": message})
}

// Paginate wraps list results the way every collection endpoint
// reports them.
func (u *HTTPHelper) Paginate(count int64, results interface{}) gin.H {
	return gin.H{
		"count":   count,
		"results": results,
	}
}
