package deepseek

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientValidatesAPIKey(t *testing.T) {
	cases := []struct {
		name string
		key  string
		ok   bool
	}{
		{name: "valid", key: "sk-abc123", ok: true},
		{name: "valid with spaces", key: "  sk-abc123  ", ok: true},
		{name: "empty", key: ""},
		{name: "wrong prefix", key: "api-abc123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewClient(Config{APIKey: tc.key})
			if tc.ok && err != nil {
				t.Fatalf("want client, got %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrConfigInvalid) {
				t.Fatalf("want ErrConfigInvalid got %v", err)
			}
		})
	}
}

func TestChatReturnsFirstCompletion(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request failed: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "hola"}},
				{"message": map[string]string{"role": "assistant", "content": "segunda"}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}

	reply, err := client.Chat(context.Background(), []Message{
		{Role: "system", Content: "eres un asistente"},
		{Role: "user", Content: "saluda"},
	})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply != "hola" {
		t.Fatalf("reply want hola got %q", reply)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("authorization header want Bearer sk-test got %q", gotAuth)
	}
	if gotReq.Model != defaultModel || len(gotReq.Messages) != 2 {
		t.Fatalf("unexpected request payload: %+v", gotReq)
	}
}

func TestChatErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("X-Case") {
		case "bad-status":
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		case "empty-choices":
			json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
		default:
			w.Write([]byte("no es json"))
		}
	}))
	defer srv.Close()

	newClientWithHeader := func(value string) *Client {
		client, err := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL})
		if err != nil {
			t.Fatalf("new client failed: %v", err)
		}
		client.httpClient.Transport = headerTransport{header: value}
		return client
	}

	if _, err := newClientWithHeader("bad-status").Chat(context.Background(), []Message{{Role: "user", Content: "x"}}); !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("bad status want ErrRequestFailed got %v", err)
	}
	if _, err := newClientWithHeader("empty-choices").Chat(context.Background(), []Message{{Role: "user", Content: "x"}}); !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("empty choices want ErrResponseInvalid got %v", err)
	}
	if _, err := newClientWithHeader("garbage").Chat(context.Background(), []Message{{Role: "user", Content: "x"}}); !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("garbage body want ErrResponseInvalid got %v", err)
	}

	client, _ := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL})
	if _, err := client.Chat(context.Background(), nil); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("no messages want ErrConfigInvalid got %v", err)
	}

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Chat(canceled, []Message{{Role: "user", Content: "x"}}); !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("canceled context want ErrRequestFailed got %v", err)
	}
}

type headerTransport struct {
	header string
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Case", t.header)
	return http.DefaultTransport.RoundTrip(req)
}
