package tests

import (
	"errors"
	"fmt"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestEnv(t)

	c := env.newClient()

	login, err := c.register("crew@mail.com", "crew_password123")
	if err != nil {
		t.Fatal(err)
	}

	if err := c.login(login); err != nil {
		t.Fatal(err)
	}

	if c.authToken == "" || c.userId == "" {
		t.Fatal("login should return an access token and user id")
	}
	if c.editor {
		t.Fatal("self-registered users must not be editors")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)

	c := env.newClient()

	if _, err := c.register("crew@mail.com", "crew_password123"); err != nil {
		t.Fatal(err)
	}

	_, err := c.register("crew@mail.com", "another_password")
	if err == nil {
		t.Fatal("registering the same email twice should fail")
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrNotFound) {
		t.Fatalf("duplicate email should be a conflict, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)

	c := env.newClient()

	login, err := c.register("crew@mail.com", "crew_password123")
	if err != nil {
		t.Fatal(err)
	}

	login.Password = "wrong_password"
	err = c.login(login)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong password should be unauthorized, got %v", err)
	}

	err = c.login(loginInfo{Email: "nobody@mail.com", Password: "crew_password123"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown email should be not found, got %v", err)
	}
}

func TestInitialEditorLogin(t *testing.T) {
	env := setupTestEnv(t)

	editor, err := env.editorClient()
	if err != nil {
		t.Fatal(err)
	}
	if !editor.editor {
		t.Fatal("seeded editor account should carry the editor flag")
	}
}

func TestCheckAuth(t *testing.T) {
	env := setupTestEnv(t)

	anonymous := env.newClient()
	_, err := anonymous.checkAuth()
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("check-auth without a token should be unauthorized, got %v", err)
	}

	viewer, err := env.newViewer("crew@mail.com")
	if err != nil {
		t.Fatal(err)
	}

	res, err := viewer.checkAuth()
	if err != nil {
		t.Fatal(err)
	}
	if !res["isAuthenticated"] || res["isEditor"] {
		t.Fatalf("unexpected check-auth flags for viewer: %v", res)
	}

	editor, err := env.editorClient()
	if err != nil {
		t.Fatal(err)
	}

	res, err = editor.checkAuth()
	if err != nil {
		t.Fatal(err)
	}
	if !res["isAuthenticated"] || !res["isEditor"] {
		t.Fatalf("unexpected check-auth flags for editor: %v", res)
	}
}

func TestLogout(t *testing.T) {
	env := setupTestEnv(t)

	viewer, err := env.newViewer("crew@mail.com")
	if err != nil {
		t.Fatal(err)
	}

	if err := viewer.logout(); err != nil {
		t.Fatal(err)
	}

	// Tokens are stateless, so logout is a client-side discard. A token the
	// client kept around still verifies until it expires.
	if _, err := viewer.checkAuth(); err != nil {
		t.Fatal(err)
	}
}

func TestBadTokenRejected(t *testing.T) {
	env := setupTestEnv(t)

	c := env.newClient()
	c.authToken = "not-a-real-token"

	_, err := c.checkAuth()
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("garbage token should be unauthorized, got %v", err)
	}
}

func TestManyUsersIndependentSessions(t *testing.T) {
	env := setupTestEnv(t)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		viewer, err := env.newViewer(fmt.Sprintf("crew%d@mail.com", i))
		if err != nil {
			t.Fatal(err)
		}
		if seen[viewer.userId] {
			t.Fatalf("user id %v issued twice", viewer.userId)
		}
		seen[viewer.userId] = true
	}
}
