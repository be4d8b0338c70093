package panel

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientListFaculty(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"Name":"Ada","Initials":"AL","Designation":"Professor","Phone":"1","Email":"a@b.co"},{"Name":"Bob","isActive":false}]`)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL+"/", nil)
	records, err := client.ListFaculty(context.Background(), "ELECTRICAL/ELECTRONICS")
	require.NoError(t, err)

	assert.Equal(t, "/api/faculty/ELECTRICAL%2FELECTRONICS", gotPath)
	require.Len(t, records, 2)
	assert.Nil(t, records[0].IsActive)
	assert.True(t, records[0].Active())
	assert.False(t, records[1].Active())
}

func TestHTTPClientListFacultyEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	records, err := NewHTTPClient(srv.URL, nil).ListFaculty(context.Background(), "CS101")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHTTPClientStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"status":"error","message":"Missing required field: Email"}`)
	}))
	defer srv.Close()

	err := NewHTTPClient(srv.URL, nil).AddFaculty(context.Background(), "CS101", validForm())

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadRequest, reqErr.Status)
	assert.Equal(t, "Bad Request", reqErr.StatusText)
	assert.Equal(t, "Missing required field: Email", reqErr.Message)
}

func TestHTTPClientAddFacultyBody(t *testing.T) {
	var body map[string]string
	var method, path, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, contentType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"status":"success"}`)
	}))
	defer srv.Close()

	require.NoError(t, NewHTTPClient(srv.URL, nil).AddFaculty(context.Background(), "CS101", validForm()))

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/faculty/CS101/add", path)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, map[string]string{
		"name":        "Jane Doe",
		"initials":    "JD",
		"designation": "Professor",
		"phone":       "555-0100",
		"email":       "jane@uni.edu",
	}, body)
}

func TestHTTPClientToggleStatus(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/faculty/CS101/toggle_status", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"status":"success","isActive":false,"message":"Status updated successfully"}`)
	}))
	defer srv.Close()

	active, err := NewHTTPClient(srv.URL, nil).ToggleStatus(context.Background(), "CS101", 2)
	require.NoError(t, err)
	assert.False(t, active)
	assert.Equal(t, map[string]interface{}{"index": float64(2)}, body)
}

func TestHTTPClientErrorEnvelopeWithOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"error","message":"nope"}`)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, nil).ToggleStatus(context.Background(), "CS101", 0)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "nope", reqErr.Message)
}

func TestHTTPClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url, nil).ListDepartments(context.Background())
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Zero(t, reqErr.Status)
	assert.Error(t, reqErr.Unwrap())
}

func TestHTTPClientAcceptsBareSuccessBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/faculty/CS101/add":
			_, _ = io.WriteString(w, `{"status":200}`)
		case "/api/faculty/CS101/toggle_status":
			_, _ = io.WriteString(w, `{"isActive":false}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, nil)

	t.Run("Add with numeric status", func(t *testing.T) {
		assert.NoError(t, client.AddFaculty(context.Background(), "CS101", validForm()))
	})

	t.Run("Add with non JSON body", func(t *testing.T) {
		other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "OK")
		}))
		defer other.Close()
		assert.NoError(t, NewHTTPClient(other.URL, nil).AddFaculty(context.Background(), "CS101", validForm()))
	})

	t.Run("Toggle with only isActive", func(t *testing.T) {
		active, err := client.ToggleStatus(context.Background(), "CS101", 2)
		require.NoError(t, err)
		assert.False(t, active)
	})
}

func TestHTTPClientToggleWithoutIsActive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"success"}`)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, nil).ToggleStatus(context.Background(), "CS101", 0)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusOK, reqErr.Status)
}
