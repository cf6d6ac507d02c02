package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestCreateUserEndpoint(t *testing.T) {
	env := newTestEnv(t)

	body, _ := json.Marshal(CreateUserRequest{
		Email:     "vpupkin@yandex.ru",
		Username:  "vasya",
		FirstName: "Вася",
		LastName:  "Пупкин",
	})
	w := env.do(t, http.MethodPost, "/api/v1/users", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var u UserResponse
	decode(t, w, &u)
	if u.Email != "vpupkin@yandex.ru" || u.Username != "vasya" || u.IsSubscribed {
		t.Fatalf("unexpected body: %+v", u)
	}

	// Same email again is a conflict.
	w = env.do(t, http.MethodPost, "/api/v1/users", "", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", w.Code)
	}

	// Missing required fields fail binding.
	w = env.do(t, http.MethodPost, "/api/v1/users", "", []byte(`{"email":"x@y.z"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete payload, got %d", w.Code)
	}
}

func TestGetUser_SubscribedFlag(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "u@example.com", "u")
	a := env.user(t, "author@example.com", "author")
	env.do(t, http.MethodPost, "/api/v1/users/"+a+"/subscribe", u, nil)

	w := env.do(t, http.MethodGet, "/api/v1/users/"+a, u, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp UserResponse
	decode(t, w, &resp)
	if !resp.IsSubscribed {
		t.Fatalf("expected is_subscribed=true: %+v", resp)
	}

	// From the author's own point of view the flag is down.
	w = env.do(t, http.MethodGet, "/api/v1/users/"+u, a, nil)
	decode(t, w, &resp)
	if resp.IsSubscribed {
		t.Fatalf("expected is_subscribed=false: %+v", resp)
	}

	w = env.do(t, http.MethodGet, "/api/v1/users/00000000-0000-0000-0000-000000000000", u, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestMeEndpoint(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "u@example.com", "u")

	w := env.do(t, http.MethodGet, "/api/v1/users/me", u, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp UserResponse
	decode(t, w, &resp)
	if resp.ID != u {
		t.Fatalf("expected own profile, got %+v", resp)
	}

	// Unknown identity has no profile.
	w = env.do(t, http.MethodGet, "/api/v1/users/me", "ghost", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown identity, got %d", w.Code)
	}
}

func TestListUsers_Pagination(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "carol@example.com", "carol")
	env.user(t, "alice@example.com", "alice")
	env.user(t, "bob@example.com", "bob")

	w := env.do(t, http.MethodGet, "/api/v1/users?page=1&page_size=2", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp ListUsersResponse
	decode(t, w, &resp)
	if resp.Pagination.Total != 3 || len(resp.Users) != 2 || !resp.Pagination.HasNext {
		t.Fatalf("unexpected page: %+v", resp.Pagination)
	}
	if resp.Users[0].Email != "alice@example.com" {
		t.Fatalf("expected email ordering, got %+v", resp.Users)
	}
}
