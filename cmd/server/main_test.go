package main

import (
	"bytes"
	"strings"
	"testing"
)

func runStatus(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs(append([]string{"status"}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("执行 status 失败: %v", err)
	}
	return strings.TrimSpace(out.String())
}

func TestStatusCommand(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"--scheduled", "10:00", "--actual", "10:05"}, "on_time"},
		{[]string{"--scheduled", "10:00", "--actual", "10:06"}, "late"},
		{[]string{"--actual", "10:06"}, "running"},
		{[]string{"--scheduled", "10:00"}, "awaiting"},
		{[]string{"--scheduled", "xx", "--actual", "10:00"}, "awaiting"},
	}
	for _, tc := range cases {
		if got := runStatus(t, tc.args...); got != tc.want {
			t.Errorf("status %v 期望 %s，实际 %s", tc.args, tc.want, got)
		}
	}
}

func TestStatusCommand_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"status", "extra"})
	if err := cmd.Execute(); err == nil {
		t.Error("多余参数应报错")
	}
}
