package advice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func completionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("response_format = %+v", req.ResponseFormat)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
		})
	}))
}

func newTestClient(url string, timeout time.Duration) *OpenAIClient {
	return NewOpenAIClient(ClientConfig{BaseURL: url + "/", APIKey: "test-key", Model: "test", Timeout: timeout})
}

func TestOpenAIClient_SavingTips(t *testing.T) {
	srv := completionServer(t, http.StatusOK, `{"savingTips":"Skip takeout."}`)
	defer srv.Close()

	res, err := newTestClient(srv.URL, time.Second).GenerateAdvice(context.Background(), Request{Kind: KindSavingTips})
	if err != nil {
		t.Fatal(err)
	}
	if res.SavingTips != "Skip takeout." {
		t.Errorf("tips = %q", res.SavingTips)
	}
}

func TestOpenAIClient_SpendingAlerts(t *testing.T) {
	srv := completionServer(t, http.StatusOK, `{"alerts":[{"category":"rent","spikeAmount":100,"message":"Rent up ₹100"}]}`)
	defer srv.Close()

	res, err := newTestClient(srv.URL, time.Second).GenerateAdvice(context.Background(), Request{Kind: KindSpendingAlerts, UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Alerts) != 1 || res.Alerts[0].Category != "rent" {
		t.Errorf("alerts = %+v", res.Alerts)
	}
}

func TestOpenAIClient_Failures(t *testing.T) {
	t.Run("malformed content", func(t *testing.T) {
		srv := completionServer(t, http.StatusOK, "I cannot help with that")
		defer srv.Close()
		_, err := newTestClient(srv.URL, time.Second).GenerateAdvice(context.Background(), Request{Kind: KindSpendingAlerts})
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("err = %v, want ErrMalformed", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		srv := completionServer(t, http.StatusInternalServerError, "")
		defer srv.Close()
		if _, err := newTestClient(srv.URL, time.Second).GenerateAdvice(context.Background(), Request{Kind: KindSavingTips}); err == nil {
			t.Error("expected error on 500")
		}
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()
		_, err := newTestClient(srv.URL, time.Second).GenerateAdvice(context.Background(), Request{Kind: KindSavingTips})
		if !errors.Is(err, ErrEmptyResponse) {
			t.Errorf("err = %v, want ErrEmptyResponse", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer srv.Close()
		_, err := newTestClient(srv.URL, 50*time.Millisecond).GenerateAdvice(context.Background(), Request{Kind: KindSavingTips})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("err = %v, want deadline exceeded", err)
		}
	})
}

func TestDisabled(t *testing.T) {
	if _, err := (Disabled{}).GenerateAdvice(context.Background(), Request{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v", err)
	}
}
