package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

const RegistrationNotification = "registration_notification"

// RegistrationData is the data rendered into a registration notification.
type RegistrationData struct {
	AppName        string `json:"AppName"`
	RecipientEmail string `json:"RecipientEmail"`

	RegistrationID       string `json:"RegistrationID"`
	FullName             string `json:"FullName"`
	LastName             string `json:"LastName"`
	DateOfBirth          string `json:"DateOfBirth"`
	Major                string `json:"Major"`
	Department           string `json:"Department"`
	Campus               string `json:"Campus"`
	ProgrammingKnowledge string `json:"ProgrammingKnowledge"`
	ProgrammingGoals     string `json:"ProgrammingGoals"`
	Recommendation       string `json:"Recommendation"`
	Rule                 string `json:"Rule"`

	Time      string    `json:"Time"`
	TimeAt    time.Time `json:"TimeAt"`
	IP        string    `json:"IP"`
	UserAgent string    `json:"UserAgent"`
}

// ToMap converts RegistrationData to a map[string]any for EmailJob.Data
func ToMap(d RegistrationData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() || rv.IsZero() {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

func renderFile(filename string, isHTML bool, data any) (string, error) {
	var (
		buf bytes.Buffer
		err error
	)

	if isHTML {
		tpl, e := htmpl.New(filename).Funcs(htmlFuncMap).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse html %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	} else {
		tpl, e := texttpl.New(filename).Funcs(textFuncMap).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse text %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	}
	if err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render renders the text and html bodies for the given base name.
// Expects: <name>.text.tmpl, <name>.html.tmpl
func Render(name string, data any) (text string, html string, err error) {
	text, err = renderFile(name+".text.tmpl", false, data)
	if err != nil {
		return "", "", err
	}
	html, err = renderFile(name+".html.tmpl", true, data)
	if err != nil {
		return "", "", err
	}
	return text, html, nil
}
