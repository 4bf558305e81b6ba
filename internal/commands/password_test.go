package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestReadPassword_Precedence(t *testing.T) {
	t.Setenv(PasswordEnv, "from-env")

	got, err := readPassword("from-flag", strings.NewReader("from-stdin\n"), nil)
	if err != nil || got != "from-flag" {
		t.Errorf("expected flag value, got %q, %v", got, err)
	}

	got, err = readPassword("", strings.NewReader("from-stdin\n"), nil)
	if err != nil || got != "from-env" {
		t.Errorf("expected env value, got %q, %v", got, err)
	}
}

func TestReadPassword_FirstLineOfStdin(t *testing.T) {
	t.Setenv(PasswordEnv, "")

	cases := map[string]string{
		"secret\n":             "secret",
		"secret\r\nmore\n":     "secret",
		"no-trailing-newline": "no-trailing-newline",
	}
	for in, want := range cases {
		var prompt bytes.Buffer
		got, err := readPassword("", strings.NewReader(in), &prompt)
		if err != nil {
			t.Errorf("readPassword(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("readPassword(%q) = %q, want %q", in, got, want)
		}
		// Piped input is not prompted for.
		if prompt.Len() != 0 {
			t.Errorf("unexpected prompt %q for piped input", prompt.String())
		}
	}
}

func TestReadPassword_Errors(t *testing.T) {
	t.Setenv(PasswordEnv, "")

	if _, err := readPassword("", strings.NewReader("\n"), nil); err == nil || err.Error() != "password required" {
		t.Errorf("expected password required, got %v", err)
	}
	if _, err := readPassword("", failingReader{}, nil); err == nil || !strings.Contains(err.Error(), "device gone") {
		t.Errorf("expected read failure, got %v", err)
	}
}
