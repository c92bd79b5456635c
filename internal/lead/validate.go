package lead

import (
	"errors"
	"html"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// mensagens por campo e tag do validator.
var fieldMessages = map[string]map[string]string{
	"name":  {"required": "Name is required"},
	"email": {"required": "Invalid email", "email": "Invalid email"},
}

// FromFields monta o Lead juntando interest e timeline à mensagem.
func FromFields(f Fields) Lead {
	l := Lead{
		Name:       f["name"],
		Email:      f["email"],
		Phone:      f["phone"],
		Interest:   f["interest"],
		Timeline:   f["timeline"],
		Message:    f["message"],
		SourcePage: f["sourcePage"],
	}
	l.Message = MergeMessage(l.Message, l.Interest, l.Timeline)
	return l
}

// MergeMessage acrescenta "Interest: …" e "Timeline: …" depois de um
// separador "---". Sem interest nem timeline a mensagem volta intacta.
func MergeMessage(message, interest, timeline string) string {
	var extras []string
	if interest != "" {
		extras = append(extras, "Interest: "+interest)
	}
	if timeline != "" {
		extras = append(extras, "Timeline: "+timeline)
	}
	if len(extras) == 0 {
		return message
	}
	parts := make([]string, 0, len(extras)+2)
	if message != "" {
		parts = append(parts, message)
	}
	parts = append(parts, "---")
	parts = append(parts, extras...)
	return strings.Join(parts, "\n")
}

// Validator valida leads e devolve erros por campo.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		return name
	})
	return &Validator{v: v}
}

// Validate devolve nil quando o lead é válido.
func (val *Validator) Validate(l Lead) map[string][]string {
	err := val.v.Struct(l)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{"_": {err.Error()}}
	}
	out := make(map[string][]string)
	for _, fe := range verrs {
		field := fe.Field()
		msg, ok := fieldMessages[field][fe.Tag()]
		if !ok {
			msg = "Invalid " + field
		}
		if !slices.Contains(out[field], msg) {
			out[field] = append(out[field], msg)
		}
	}
	return out
}

// Sanitizer remove markup dos campos livres.
type Sanitizer struct {
	p *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{p: bluemonday.StrictPolicy()}
}

// entidades que a política gera para texto comum; &lt; e &gt; continuam
// escapados.
var restoreText = strings.NewReplacer("&amp;", "&", "&#34;", `"`, "&#39;", "'")

// Clean decodifica entidades antes de aplicar a política, para que markup
// escrito como "&lt;script&gt;" também seja removido, e depois devolve "&" e
// aspas ao texto.
func (s *Sanitizer) Clean(v string) string {
	return strings.TrimSpace(restoreText.Replace(s.p.Sanitize(html.UnescapeString(v))))
}

// Lead devolve uma cópia com todos os campos de texto limpos.
func (s *Sanitizer) Lead(l Lead) Lead {
	l.Name = s.Clean(l.Name)
	l.Email = strings.TrimSpace(l.Email)
	l.Phone = s.Clean(l.Phone)
	l.Interest = s.Clean(l.Interest)
	l.Timeline = s.Clean(l.Timeline)
	l.Message = s.Clean(l.Message)
	l.SourcePage = s.Clean(l.SourcePage)
	return l
}
