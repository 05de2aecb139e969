package eventstore

import (
	"context"
	"crypto/x509"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL + "/api"})
	require.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "valid", baseURL: "http://localhost:8000/api"},
		{name: "trailing slash", baseURL: "http://localhost:8000/api/"},
		{name: "empty", baseURL: "", wantErr: true},
		{name: "garbage", baseURL: "::::", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(Config{BaseURL: tt.baseURL})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:8000/api", client.baseURL)
		})
	}
}

func TestClient_ListEvents(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/events", r.URL.Path)
		assert.Equal(t, "order", r.URL.Query().Get("event_type"))

		_, _ = io.WriteString(w, `{"events":[
			{"id":"e2","event_type":"order","customer_name":"박영희","datetime":"2025-03-01T12:00:00","original_text":"b","created_at":"2025-02-01T00:00:00","confidence":0.8},
			{"id":"e1","event_type":"order","customer_name":null,"original_text":"a","created_at":"2025-01-01T00:00:00","confidence":0.5}
		],"total":2}`)
	})

	events, err := client.ListEvents(context.Background(), model.CategoryOrder)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e2", events[0].IDValue(), "server order is preserved")
	assert.Equal(t, "박영희", model.Deref(events[0].SubjectName))
	assert.Nil(t, events[1].SubjectName)
}

func TestClient_ListEvents_EmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})

	events, err := client.ListEvents(context.Background(), model.CategoryWork)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestClient_ListEvents_Failures(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, `{"detail":"boom"}`)
			},
			wantKind: ErrTransport,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"events": [`)
			},
			wantKind: ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			events, err := client.ListEvents(context.Background(), model.CategoryWork)
			require.ErrorIs(t, err, tt.wantKind)
			assert.NotNil(t, events)
			assert.Empty(t, events)

			var storeErr *Error
			require.True(t, errors.As(err, &storeErr))
			assert.Equal(t, "list events", storeErr.Op)
		})
	}
}

func TestClient_ListEvents_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := New(Config{BaseURL: url})
	require.NoError(t, err)

	events, err := client.ListEvents(context.Background(), model.CategoryWork)
	require.ErrorIs(t, err, ErrTransport)
	assert.Empty(t, events)
}

func TestClient_ListEvents_RootCAs(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"events":[],"total":0}`)
	}))
	t.Cleanup(srv.Close)

	untrusted, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	_, err = untrusted.ListEvents(context.Background(), model.CategoryWork)
	require.ErrorIs(t, err, ErrTransport, "self-signed certificate is rejected by default")

	pool := x509.NewCertPool()
	pool.AddCert(srv.Certificate())
	trusted, err := New(Config{BaseURL: srv.URL, RootCAs: pool})
	require.NoError(t, err)
	events, err := trusted.ListEvents(context.Background(), model.CategoryWork)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestClient_CreateEvent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/events", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "김철수 클라이언트: 목요일 3시", body["text"])
		assert.Equal(t, "work", body["mode"])
		assert.Contains(t, body, "user_id")
		assert.Nil(t, body["user_id"])

		_, _ = io.WriteString(w, `{"event":{"id":"e1","event_type":"work","customer_name":null,"datetime":null,
			"original_text":"김철수 클라이언트: 목요일 3시","created_at":"2025-01-15T10:00:00","confidence":0.8},
			"analysis":"Meeting detected","tokens_used":42}`)
	})

	res, err := client.CreateEvent(context.Background(), model.CategoryWork, "김철수 클라이언트: 목요일 3시", nil)
	require.NoError(t, err)
	assert.Equal(t, "e1", res.Record.IDValue())
	assert.Equal(t, "Meeting detected", res.AnalysisSummary)
	assert.Equal(t, 42, res.TokensUsed)
	assert.Nil(t, res.Record.ScheduledAt)
}

func TestClient_CreateEvent_SendsOwner(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "owner-1", body["user_id"])
		_, _ = io.WriteString(w, `{"event":{"id":"e9","event_type":"recruit","original_text":"x","created_at":"t","confidence":0},"analysis":"ok","tokens_used":0}`)
	})

	_, err := client.CreateEvent(context.Background(), model.CategoryRecruit, "x", model.Ptr("owner-1"))
	require.NoError(t, err)
}

func TestClient_CreateEvent_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"detail":"이벤트 생성 실패"}`, wantKind: ErrTransport},
		{name: "validation error", status: http.StatusUnprocessableEntity, body: `{"detail":"bad mode"}`, wantKind: ErrTransport},
		{name: "malformed json", status: http.StatusOK, body: `not json`, wantKind: ErrDecode},
		{name: "missing event", status: http.StatusOK, body: `{"analysis":"x","tokens_used":1}`, wantKind: ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.CreateEvent(context.Background(), model.CategoryWork, "text", nil)
			require.ErrorIs(t, err, tt.wantKind)
		})
	}
}

func TestClient_DeleteEvent(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.DeleteEvent(context.Background(), "e1")
	require.NoError(t, err, "any HTTP response is treated as success")
	assert.Equal(t, "/api/events/e1", gotPath)
}

func TestClient_DeleteEvent_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := New(Config{BaseURL: url})
	require.NoError(t, err)

	err = client.DeleteEvent(context.Background(), "e1")
	require.ErrorIs(t, err, ErrTransport)
}

func TestClient_GetEvent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/events/e1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"not found"}`)
			return
		}
		_, _ = io.WriteString(w, `{"id":"e1","event_type":"work","original_text":"x","created_at":"t","confidence":1}`)
	})

	rec, err := client.GetEvent(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryWork, rec.Category)

	_, err = client.GetEvent(context.Background(), "missing")
	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, http.StatusNotFound, storeErr.StatusCode)
}

func TestError_Message(t *testing.T) {
	err := transportErr("list events", 502, errors.New("bad gateway"))
	assert.Equal(t, "list events: transport failure (status 502): bad gateway", err.Error())

	err = decodeErr("create event", errors.New("eof"))
	assert.Equal(t, "create event: decode failure: eof", err.Error())
	assert.NotErrorIs(t, err, ErrTransport)
}
