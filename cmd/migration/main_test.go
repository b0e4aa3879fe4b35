package main

import "testing"

func TestParseSteps(t *testing.T) {
	t.Parallel()

	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("default steps: got=%d err=%v", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("explicit steps: got=%d err=%v", got, err)
	}
	if _, err := parseSteps([]string{"0"}); err == nil {
		t.Fatal("expected error for zero steps")
	}
	if _, err := parseSteps([]string{"abc"}); err == nil {
		t.Fatal("expected error for non-numeric steps")
	}
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	if got, err := parseVersion("1"); err != nil || got != 1 {
		t.Fatalf("parse version: got=%d err=%v", got, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatal("expected error for negative version")
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("SCORESYNC_TEST_BOOL", "false")
	if envBool("SCORESYNC_TEST_BOOL", true) {
		t.Fatal("expected false from env")
	}
	t.Setenv("SCORESYNC_TEST_BOOL", "nope")
	if !envBool("SCORESYNC_TEST_BOOL", true) {
		t.Fatal("invalid value must use fallback")
	}
}
