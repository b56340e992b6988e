package web

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestTemplates_RenderEveryPage(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	for _, page := range []string{"index.html", "signup.html", "login.html"} {
		var buf bytes.Buffer
		data := map[string]any{"title": "t", "messages": []string{"<hello>"}}
		if err := tmpl.ExecuteTemplate(&buf, page, data); err != nil {
			t.Fatalf("render %s: %v", page, err)
		}
		if !strings.Contains(buf.String(), "&lt;hello&gt;") {
			t.Fatalf("%s: flash not rendered escaped: %s", page, buf.String())
		}
	}
}

func TestStatic_ServesClientValidation(t *testing.T) {
	f, err := Static().Open("js/auth.js")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "Passwords do not match!") {
		t.Fatalf("auth.js missing confirm-password check")
	}
}
