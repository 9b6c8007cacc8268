package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runReplayCmd(t *testing.T, script string, extra ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.json")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"replay", path}, extra...))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("replay: %v", err)
	}
	return out.String()
}

func TestReplayTapPrintsClick(t *testing.T) {
	out := runReplayCmd(t, `{"steps": [{"action": "tap", "key": "center"}]}`, "--json=false")

	var actions []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		f := strings.Fields(line)
		if len(f) >= 3 && f[1] == "pointer" {
			actions = append(actions, f[2])
		}
	}
	if strings.Join(actions, ",") != "down,up" {
		t.Errorf("pointer actions = %v, want [down up]\n%s", actions, out)
	}
}

func TestReplayJSONPinch(t *testing.T) {
	out := runReplayCmd(t, `{"steps": [{"action": "zoom-in"}]}`, "--json")

	var records []traceRecord
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var r traceRecord
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Fatalf("bad JSON line %q: %v", line, err)
		}
		records = append(records, r)
	}
	if len(records) < 4 {
		t.Fatalf("got %d records, want a full pinch", len(records))
	}
	if records[1].Action != "pointer2-down" || records[1].ID != 1 || records[1].Count != 2 {
		t.Errorf("second record = %+v, want pointer2-down of pointer 1", records[1])
	}
	last := records[len(records)-1]
	if last.Action != "up" || last.Count != 1 {
		t.Errorf("last record = %+v, want up with one pointer", last)
	}
}

func TestReplayRejectsBadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"steps": [{"action": "fly"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"replay", path})
	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "unknown action") {
		t.Errorf("err = %v, want unknown action", err)
	}
}
