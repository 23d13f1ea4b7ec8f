package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/roster/internal/adapters/http/api"
	"github.com/okian/roster/internal/adapters/repository"
	"github.com/okian/roster/internal/domain/record"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps implements api.Dependencies with the store's merge semantics so
// handler behavior can be asserted end to end.
type mockDeps struct {
	users     []record.Record
	products  []record.Record
	createErr error
	listErr   error
}

func (m *mockDeps) ListUsers(ctx context.Context) ([]record.Record, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]record.Record, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

func (m *mockDeps) CreateUser(ctx context.Context, rec record.Record) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.users = append(m.users, rec.Clone())
	return nil
}

func (m *mockDeps) UpdateUser(ctx context.Context, id int64, patch record.Record) (record.Record, error) {
	for _, u := range m.users {
		uid, ok := u.ID()
		if !ok {
			continue
		}
		if uid == id {
			u.Merge(patch)
			return u.Clone(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockDeps) ListProducts(ctx context.Context) ([]record.Record, error) {
	out := make([]record.Record, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p.Clone())
	}
	return out, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	if m.stats == nil {
		return map[string]interface{}{"started": true}
	}
	return m.stats
}

func newTestMux(deps *mockDeps) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{}, 1<<20)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func doJSON(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := &mockDeps{}
		mux := newTestMux(deps)

		Convey("Then the health endpoint should be accessible", func() {
			w := doJSON(mux, "GET", "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint should be accessible", func() {
			w := doJSON(mux, "GET", "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the root endpoint should greet", func() {
			w := doJSON(mux, "GET", "/", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var resp map[string]string
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp["message"], ShouldEqual, "Hello, World!")
		})

		Convey("And unknown paths should 404", func() {
			w := doJSON(mux, "GET", "/nope", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestUsers_ListAndCreate(t *testing.T) {
	Convey("Given an empty users collection", t, func() {
		deps := &mockDeps{}
		mux := newTestMux(deps)

		Convey("When listing users", func() {
			w := doJSON(mux, "GET", "/users", "")

			Convey("Then the response is an empty JSON array, not null", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
			})
		})

		Convey("When creating users in sequence", func() {
			w1 := doJSON(mux, "POST", "/users", `{"id":1,"name":"John"}`)
			w2 := doJSON(mux, "POST", "/users", `{"id":2,"name":"Jane"}`)

			Convey("Then each create echoes its input", func() {
				So(w1.Code, ShouldEqual, http.StatusOK)
				var created map[string]any
				So(json.Unmarshal(w1.Body.Bytes(), &created), ShouldBeNil)
				So(created["name"], ShouldEqual, "John")
				So(created["id"], ShouldEqual, 1)
				So(w2.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And a subsequent list returns them in submission order", func() {
				w := doJSON(mux, "GET", "/users", "")
				So(w.Code, ShouldEqual, http.StatusOK)
				var users []map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &users), ShouldBeNil)
				So(len(users), ShouldEqual, 2)
				So(users[0]["name"], ShouldEqual, "John")
				So(users[1]["name"], ShouldEqual, "Jane")
			})
		})

		Convey("When creating a user without an id", func() {
			w := doJSON(mux, "POST", "/users", `{"name":"Ghost"}`)

			Convey("Then the create succeeds and echoes the object", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var created map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &created), ShouldBeNil)
				So(created["name"], ShouldEqual, "Ghost")
			})
		})

		Convey("When creating a user with a duplicate id", func() {
			_ = doJSON(mux, "POST", "/users", `{"id":1,"name":"first"}`)
			w := doJSON(mux, "POST", "/users", `{"id":1,"name":"second"}`)

			Convey("Then the duplicate is stored as well", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				list := doJSON(mux, "GET", "/users", "")
				var users []map[string]any
				So(json.Unmarshal(list.Body.Bytes(), &users), ShouldBeNil)
				So(len(users), ShouldEqual, 2)
			})
		})

		Convey("When posting a malformed body", func() {
			w := doJSON(mux, "POST", "/users", `{not json`)

			Convey("Then the request is rejected with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting a JSON array instead of an object", func() {
			w := doJSON(mux, "POST", "/users", `[1,2,3]`)

			Convey("Then the request is rejected with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting a record with a non-integer id", func() {
			w := doJSON(mux, "POST", "/users", `{"id":"abc","name":"Bad"}`)

			Convey("Then boundary validation rejects it with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When using an unsupported method on /users", func() {
			w := doJSON(mux, "DELETE", "/users", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestUsers_Update(t *testing.T) {
	Convey("Given a collection with two users", t, func() {
		deps := &mockDeps{}
		mux := newTestMux(deps)
		_ = doJSON(mux, "POST", "/users", `{"id":1,"name":"John","city":"Rome"}`)
		_ = doJSON(mux, "POST", "/users", `{"id":2,"name":"Jane"}`)

		Convey("When updating an existing user", func() {
			w := doJSON(mux, "PUT", "/users/1", `{"name":"Jonathan"}`)

			Convey("Then the response echoes the patch, not the merged record", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["name"], ShouldEqual, "Jonathan")
				_, hasCity := resp["city"]
				So(hasCity, ShouldBeFalse)
			})

			Convey("And a subsequent list shows the merge with untouched fields preserved", func() {
				list := doJSON(mux, "GET", "/users", "")
				var users []map[string]any
				So(json.Unmarshal(list.Body.Bytes(), &users), ShouldBeNil)
				So(users[0]["name"], ShouldEqual, "Jonathan")
				So(users[0]["city"], ShouldEqual, "Rome")
				So(users[1]["name"], ShouldEqual, "Jane")
			})
		})

		Convey("When updating a missing id", func() {
			w := doJSON(mux, "PUT", "/users/99", `{"name":"X"}`)

			Convey("Then the legacy error body is returned with 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				var resp map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["error"], ShouldEqual, "User not found")
			})

			Convey("And the collection is unchanged", func() {
				list := doJSON(mux, "GET", "/users", "")
				var users []map[string]any
				So(json.Unmarshal(list.Body.Bytes(), &users), ShouldBeNil)
				So(len(users), ShouldEqual, 2)
				So(users[0]["name"], ShouldEqual, "John")
			})
		})

		Convey("When duplicate ids exist", func() {
			_ = doJSON(mux, "POST", "/users", `{"id":1,"name":"shadow"}`)
			w := doJSON(mux, "PUT", "/users/1", `{"name":"patched"}`)

			Convey("Then only the first match is updated", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				list := doJSON(mux, "GET", "/users", "")
				var users []map[string]any
				So(json.Unmarshal(list.Body.Bytes(), &users), ShouldBeNil)
				So(users[0]["name"], ShouldEqual, "patched")
				So(users[2]["name"], ShouldEqual, "shadow")
			})
		})

		Convey("When the path id is not an integer", func() {
			w := doJSON(mux, "PUT", "/users/abc", `{"name":"X"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the path has extra segments", func() {
			w := doJSON(mux, "PUT", "/users/1/extra", `{"name":"X"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the patch body is malformed", func() {
			w := doJSON(mux, "PUT", "/users/1", `{bad`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using GET on /users/{id}", func() {
			w := doJSON(mux, "GET", "/users/1", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestUsers_DependencyFailures(t *testing.T) {
	Convey("Given failing dependencies", t, func() {
		Convey("When listing fails", func() {
			deps := &mockDeps{listErr: errors.New("store exploded")}
			mux := newTestMux(deps)
			w := doJSON(mux, "GET", "/users", "")

			Convey("Then the API answers 500 with the structured error shape", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				var resp map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "internal_error")
			})
		})

		Convey("When create fails", func() {
			deps := &mockDeps{createErr: errors.New("store exploded")}
			mux := newTestMux(deps)
			w := doJSON(mux, "POST", "/users", `{"id":1}`)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestProducts_List(t *testing.T) {
	Convey("Given seeded products", t, func() {
		deps := &mockDeps{products: []record.Record{
			{"id": float64(1), "name": "Product 1"},
			{"id": float64(2), "name": "Product 2"},
		}}
		mux := newTestMux(deps)

		Convey("When listing products", func() {
			w := doJSON(mux, "GET", "/products", "")

			Convey("Then seeded rows come back in order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var products []map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &products), ShouldBeNil)
				So(len(products), ShouldEqual, 2)
				So(products[0]["name"], ShouldEqual, "Product 1")
				So(products[1]["name"], ShouldEqual, "Product 2")
			})
		})

		Convey("When posting to /products", func() {
			w := doJSON(mux, "POST", "/products", `{"id":3}`)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given the users endpoint", t, func() {
		deps := &mockDeps{}
		mux := newTestMux(deps)

		Convey("When no request id is supplied", func() {
			w := doJSON(mux, "GET", "/users", "")

			Convey("Then one is generated", func() {
				So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
			})
		})

		Convey("When the caller supplies a request id", func() {
			req := httptest.NewRequest("GET", "/users", nil)
			req.Header.Set("X-Request-ID", "req-123")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is echoed back", func() {
				So(w.Header().Get("X-Request-ID"), ShouldEqual, "req-123")
			})
		})
	})
}
