package rekuest

import (
	"net/url"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/swhelper/siege-backend/internal/pkg/pgerr"
	"github.com/swhelper/siege-backend/internal/util"
)

var (
	Validate = util.NewValidator()

	universal  = ut.New(en.New())
	translator ut.Translator
)

func init() {
	translator, _ = universal.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(Validate, translator); err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation")
	}

	err := Validate.RegisterTranslation("caseinsensitiveoneof", translator, func(ut ut.Translator) error {
		return nil
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("oneof", fe.Field(), fe.Param())
		return t
	})
	if err != nil {
		log.Warn().Err(err).Msg("could not register translation for function caseinsensitiveoneof")
	}

	err = Validate.RegisterTranslation("decklabel", translator, func(ut ut.Translator) error {
		return ut.Add("decklabel", "{0} must not contain '"+util.DeckKeySep+"'", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("decklabel", fe.Field())
		return t
	})
	if err != nil {
		log.Warn().Err(err).Msg("could not register translation for function decklabel")
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

func translate(ve validator.ValidationErrors) []*ErrorResponse {
	trans := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		trans = append(trans, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   fe.Translate(translator),
		})
	}
	return trans
}

// ValidateStruct validates s with the shared validator and returns the violations, if any.
// It is usable outside of a request, e.g. by the ingest worker.
func ValidateStruct(s any) []*ErrorResponse {
	err := Validate.Struct(s)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			panic(err)
		}
		return translate(errs)
	}
	return nil
}

// ValidBody will get the body from *fiber.Ctx using fiber#BodyParser(),
// and validate it using the validator singleton. If the validation passed it will write the unmarshalled body
// to dest and return a nil, otherwise it will return an error. Notice that dest shall
// always be a pointer.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	if violations := ValidateStruct(dest); violations != nil {
		return pgerr.NewInvalidViolations(violations)
	}

	return nil
}

func ValidVar(field any, tag string) error {
	if err := Validate.Var(field, tag); err != nil {
		return pgerr.NewInvalidViolations(translate(err.(validator.ValidationErrors)))
	}

	return nil
}

// Param returns the path-unescaped and trimmed value of the route param key.
func Param(ctx *fiber.Ctx, key string) string {
	raw := ctx.Params(key)
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	return strings.TrimSpace(raw)
}
