package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const responseBinaryHex = "f4f100000000f200000000f300000002" +
	"f4f10000007bf200000005416c696365" +
	"f4f1000001c8f200000003426f62"

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(append([]string{"modelctl"}, args...), strings.NewReader(stdin), &out)
	return out.String(), err
}

func TestSampleLiteral(t *testing.T) {
	out, err := runCLI(t, "", "sample", "--kind", "response", "--format", "literal")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if out != `(0,"",[(123,"Alice"),(456,"Bob")])` {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestSampleBinaryHex(t *testing.T) {
	out, err := runCLI(t, "", "sample", "--kind", "response", "--format", "binary", "--hex")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if strings.TrimSpace(out) != responseBinaryHex {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestTranscodeLiteralToJSON(t *testing.T) {
	out, err := runCLI(t, `(0,"",[(123,"Alice"),(456,"Bob")])`,
		"transcode", "--kind", "response", "--from", "literal", "--to", "json")
	if err != nil {
		t.Fatalf("transcode: %v", err)
	}
	want := `{"code":0,"msg":"","data":[{"id":123,"name":"Alice"},{"id":456,"name":"Bob"}]}`
	if out != want {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestTranscodeHexInputToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.hex")
	dst := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(in, []byte(responseBinaryHex+"\n"), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if _, err := runCLI(t, "", "transcode", "--kind", "response", "--from", "binary", "--to", "repr",
		"--in", in, "--in-hex", "--out", dst); err != nil {
		t.Fatalf("transcode: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != `(0,"",[(123,"Alice"),(456,"Bob")])` {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestTranscodeRejectsMalformedInput(t *testing.T) {
	_, err := runCLI(t, `(0,"",[(123,"Alice")`, "transcode", "--kind", "response", "--from", "literal", "--to", "json")
	if err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestInspectDumpsValue(t *testing.T) {
	out, err := runCLI(t, `{"id":7,"name":"Eve"}`, "inspect", "--kind", "user", "--format", "json")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, `"Eve"`) || !strings.Contains(out, "ID: (int32) 7") {
		t.Fatalf("unexpected dump: %s", out)
	}
}

func TestKindsAndFormats(t *testing.T) {
	out, err := runCLI(t, "", "kinds")
	if err != nil {
		t.Fatalf("kinds: %v", err)
	}
	for _, id := range []string{"position", "response", "telemetry", "user"} {
		if !strings.Contains(out, id) {
			t.Fatalf("missing kind %q in %q", id, out)
		}
	}

	out, err = runCLI(t, "", "formats")
	if err != nil {
		t.Fatalf("formats: %v", err)
	}
	if !strings.HasPrefix(out, "binary\njson\nliteral\n") {
		t.Fatalf("unexpected formats: %q", out)
	}
}

func TestUnknownKindFails(t *testing.T) {
	if _, err := runCLI(t, "", "sample", "--kind", "widget", "--format", "json"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
	if _, err := runCLI(t, "", "sample", "--kind", "user"); err != nil {
		t.Fatalf("sample with kind default format: %v", err)
	}
}
