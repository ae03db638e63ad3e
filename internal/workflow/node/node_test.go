package node

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestDecodeJSONObjectWithKeys(t *testing.T) {
	type hooks struct {
		Hooks []string `json:"hooks"`
	}
	tests := []struct {
		name string
		in   string
		ok   bool
		want []string
	}{
		{"prose around", `prefix {"hooks":["a","b","c","d"]} suffix`, true, []string{"a", "b", "c", "d"}},
		{"code fence", "```json\n{\"hooks\":[\"x\"]}\n```", true, []string{"x"}},
		{"skips object without key", `{"note":"hi"} then {"hooks":["y"]}`, true, []string{"y"}},
		{"braces in prose", `use {curly} words {"hooks":["z"]}`, true, []string{"z"}},
		{"truncated", `{"hooks":["a","b"`, false, nil},
		{"no json", "just text", false, nil},
		{"empty", "", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got hooks
			ok := DecodeJSONObjectWithKeys(tt.in, &got, "hooks")
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !reflect.DeepEqual(got.Hooks, tt.want) {
				t.Errorf("hooks = %v, want %v", got.Hooks, tt.want)
			}
		})
	}
}

func TestDecodeJSONObjectWithKeysIgnoresProse(t *testing.T) {
	var out struct {
		Hook string `json:"hook"`
		Body string `json:"body"`
	}
	if !DecodeJSONObjectWithKeys(`Sure! {"hook":"H","body":"B"} Hope it helps`, &out, "hook", "body") {
		t.Fatal("expected object to be found")
	}
	if out.Hook != "H" || out.Body != "B" {
		t.Fatalf("decoded = %+v", out)
	}
}

type statusErr struct{ code int }

func (e statusErr) Error() string   { return "upstream failure" }
func (e statusErr) StatusCode() int { return e.code }

func TestIsQuotaExceededError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("error, status code: 429, message: slow down"), true},
		{errors.New("You exceeded your current quota"), true},
		{errors.New("Rate limit reached"), true},
		{fmt.Errorf("wrapped: %w", statusErr{429}), true},
		{statusErr{500}, false},
		{errors.New("connection reset"), false},
		{errors.New("dial tcp 10.0.0.1:4290: connection refused"), false},
		{errors.New("read 1429 bytes: unexpected EOF"), false},
	}
	for _, tt := range tests {
		if got := IsQuotaExceededError(tt.err); got != tt.want {
			t.Errorf("IsQuotaExceededError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestIsCredentialError(t *testing.T) {
	if !IsCredentialError(errors.New("API key not valid. Please pass a valid API key.")) {
		t.Error("expected API key message to be a credential error")
	}
	if !IsCredentialError(statusErr{401}) {
		t.Error("expected 401 to be a credential error")
	}
	if IsCredentialError(errors.New("timeout")) {
		t.Error("timeout is not a credential error")
	}
}

func TestShortLines(t *testing.T) {
	in := "short1\n\n  short2  \na line that is far longer than sixty characters and therefore excluded\nshort3\n"
	got := ShortLines(in, 60)
	want := []string{"short1", "short2", "short3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ShortLines() = %v, want %v", got, want)
	}
}

func TestTruncateByRunes(t *testing.T) {
	if got := TruncateByRunes("héllo", 2); got != "hé" {
		t.Errorf("got %q", got)
	}
	if got := TruncateByRunes("abc", 10); got != "abc" {
		t.Errorf("got %q", got)
	}
	if got := TruncateByRunes("abc", 0); got != "" {
		t.Errorf("got %q", got)
	}
}
