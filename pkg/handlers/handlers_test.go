package handlers

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"minihttpd/pkg/http11"
	"minihttpd/pkg/models"
	"minihttpd/pkg/static"
	"minihttpd/pkg/store"
)

const loginPage = "<html>login form</html>"

func newEnv(t *testing.T) *Env {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"index.html":    "<html>index</html>",
		"login.html":    loginPage,
		"register.html": "<html>register</html>",
		"401.html":      "<html>401</html>",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	users := store.NewMemory()
	if err := users.Save(models.User{Account: "admin", Password: "password", Email: "admin@example.com"}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return &Env{Users: users, Assets: static.NewResolver(root)}
}

// parse builds a request the same way the connection worker does.
func parse(t *testing.T, raw string) *http11.Request {
	t.Helper()
	br := bufio.NewReader(strings.NewReader(raw))
	hdr, err := http11.ReadHeader(br)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	body, err := http11.ReadBody(br, hdr)
	if err != nil {
		t.Fatalf("ReadBody: %v", err)
	}
	return &http11.Request{Header: hdr, Body: body}
}

func TestHomeAlwaysGreets(t *testing.T) {
	env := newEnv(t)
	resp := env.Home(parse(t, "GET / HTTP/1.1\r\n\r\n"))
	if resp.Status != 200 {
		t.Fatalf("status = %d, want 200", resp.Status)
	}
	if string(resp.Body) != "Hello world!" {
		t.Fatalf("body = %q, want greeting", resp.Body)
	}
}

func TestLoginWithoutQueryRendersForm(t *testing.T) {
	env := newEnv(t)
	resp := env.Login(parse(t, "GET /login HTTP/1.1\r\n\r\n"))
	if resp.Status != 200 {
		t.Fatalf("status = %d, want 200", resp.Status)
	}
	if resp.Header("Location") != "" {
		t.Fatalf("unexpected Location %q on form render", resp.Header("Location"))
	}
	if string(resp.Body) != loginPage {
		t.Fatalf("body = %q, want login page", resp.Body)
	}
}

func TestLoginWrongPasswordRedirectsTo401(t *testing.T) {
	env := newEnv(t)
	resp := env.Login(parse(t, "GET /login?account=admin&password=wrong HTTP/1.1\r\n\r\n"))
	if resp.Status != 302 {
		t.Fatalf("status = %d, want 302", resp.Status)
	}
	if resp.Header("Location") != "401.html" {
		t.Fatalf("Location = %q, want 401.html", resp.Header("Location"))
	}
	// redirect responses still carry the login page body
	if string(resp.Body) != loginPage {
		t.Fatalf("body = %q, want login page attached", resp.Body)
	}
}

func TestLoginCorrectPasswordRedirectsToIndex(t *testing.T) {
	env := newEnv(t)
	resp := env.Login(parse(t, "GET /login?account=admin&password=password HTTP/1.1\r\n\r\n"))
	if resp.Status != 302 {
		t.Fatalf("status = %d, want 302", resp.Status)
	}
	if resp.Header("Location") != "index.html" {
		t.Fatalf("Location = %q, want index.html", resp.Header("Location"))
	}
	if string(resp.Body) != loginPage {
		t.Fatalf("body = %q, want login page attached", resp.Body)
	}
}

func TestLoginUnknownAccountRedirectsTo401(t *testing.T) {
	env := newEnv(t)
	resp := env.Login(parse(t, "GET /login?account=ghost&password=password HTTP/1.1\r\n\r\n"))
	if resp.Status != 302 || resp.Header("Location") != "401.html" {
		t.Fatalf("status = %d Location = %q, want 302 401.html", resp.Status, resp.Header("Location"))
	}
}

func TestRegisterPersistsUserAndRedirects(t *testing.T) {
	env := newEnv(t)
	form := "account=foo&password=bar&email=x@y.com"
	raw := "POST /register HTTP/1.1\r\nContent-Length: " + strconv.Itoa(len(form)) + "\r\n\r\n" + form

	resp := env.Register(parse(t, raw))
	if resp.Status != 302 {
		t.Fatalf("status = %d, want 302", resp.Status)
	}
	if resp.Header("Location") != "/index.html" {
		t.Fatalf("Location = %q, want /index.html", resp.Header("Location"))
	}

	u, ok := env.Users.FindByAccount("foo")
	if !ok {
		t.Fatalf("registered user not findable")
	}
	if u.Email != "x@y.com" || !u.CheckPassword("bar") {
		t.Fatalf("stored user = %+v", u)
	}
}

func TestStaticFileServesAsset(t *testing.T) {
	env := newEnv(t)
	resp := env.StaticFile(parse(t, "GET /index.html HTTP/1.1\r\n\r\n"))
	if resp.Status != 200 {
		t.Fatalf("status = %d, want 200", resp.Status)
	}
	if string(resp.Body) != "<html>index</html>" {
		t.Fatalf("body = %q", resp.Body)
	}
	if resp.Header("Content-Type") != "text/html" {
		t.Fatalf("Content-Type = %q, want text/html", resp.Header("Content-Type"))
	}
}

func TestStaticFileMissingAssetYieldsEmptyBody(t *testing.T) {
	env := newEnv(t)
	resp := env.StaticFile(parse(t, "GET /nope.html HTTP/1.1\r\n\r\n"))
	if resp.Status != 200 {
		t.Fatalf("status = %d, want 200 despite the miss", resp.Status)
	}
	if len(resp.Body) != 0 {
		t.Fatalf("body = %q, want empty", resp.Body)
	}
}

func TestRoutesWiring(t *testing.T) {
	env := newEnv(t)
	tbl := env.Routes()

	resp := tbl.Dispatch(parse(t, "GET / HTTP/1.1\r\n\r\n"))
	if string(resp.Body) != "Hello world!" {
		t.Fatalf("GET / body = %q, want greeting", resp.Body)
	}

	resp = tbl.Dispatch(parse(t, "GET /401.html HTTP/1.1\r\n\r\n"))
	if string(resp.Body) != "<html>401</html>" {
		t.Fatalf("static fallback body = %q", resp.Body)
	}
}
