package lead

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

const (
	// HoneypotField é o campo escondido do formulário; humanos não o preenchem.
	HoneypotField = "_website"

	// MaxBodyBytes limita o corpo aceito pelo endpoint.
	MaxBodyBytes = 64 << 10

	maxMultipartMemory = 1 << 20
)

var ErrMalformedBody = errors.New("lead: malformed request body")

// Fields são os valores string recebidos, antes de qualquer validação.
type Fields map[string]string

type fieldsKey struct{}

// WithFields guarda os campos decodificados no contexto.
func WithFields(ctx context.Context, f Fields) context.Context {
	return context.WithValue(ctx, fieldsKey{}, f)
}

// FieldsFrom devolve os campos guardados por DecodeMiddleware.
func FieldsFrom(ctx context.Context) (Fields, bool) {
	f, ok := ctx.Value(fieldsKey{}).(Fields)
	return f, ok
}

// Decode lê o corpo como JSON quando o Content-Type contém application/json,
// senão como formulário (urlencoded ou multipart). Só valores string são
// mantidos.
func Decode(r *http.Request) (Fields, error) {
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		return decodeJSON(r)
	}
	return decodeForm(r, ct)
}

func decodeJSON(r *http.Request) (Fields, error) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	f := make(Fields, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			f[k] = s
		}
	}
	// o honeypot vale para qualquer valor truthy, não só string.
	if v, ok := raw[HoneypotField]; ok && truthy(v) {
		if _, isString := v.(string); !isString {
			f[HoneypotField] = fmt.Sprint(v)
		}
	}
	return f, nil
}

// truthy segue a regra do JSON do navegador: null, false, 0 e "" são falsos;
// objetos e listas, mesmo vazios, são verdadeiros.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

func decodeForm(r *http.Request, ct string) (Fields, error) {
	mt, _, _ := mime.ParseMediaType(ct)
	var err error
	if mt == "multipart/form-data" {
		err = r.ParseMultipartForm(maxMultipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	f := make(Fields, len(r.PostForm))
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			f[k] = vs[0]
		}
	}
	return f, nil
}

// DecodeMiddleware decodifica o corpo antes do rate limit. Corpo inválido
// responde 400; honeypot preenchido responde 201 falso sem consumir quota.
func (h *Handler) DecodeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
		f, err := Decode(r)
		if err != nil {
			h.log.Warn("lead body rejected", "error", err, "content_type", r.Header.Get("Content-Type"))
			h.obs.ObserveLead(OutcomeMalformed)
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
			return
		}
		if f[HoneypotField] != "" {
			h.log.Info("lead honeypot triggered")
			h.obs.ObserveLead(OutcomeHoneypot)
			writeJSON(w, http.StatusCreated, successBody{Success: true})
			return
		}
		delete(f, HoneypotField)
		next.ServeHTTP(w, r.WithContext(WithFields(r.Context(), f)))
	})
}
