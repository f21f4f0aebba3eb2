package parser

import "testing"

func TestSplitCommandFromArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		command string
		args    string
	}{
		{"/cmd", "/cmd", ""},
		{"/cmd one two", "/cmd", "one two"},
		{"/cmd@bot --x 1", "/cmd@bot", "--x 1"},
		{"/cmd\targ", "/cmd", "arg"},
		{"  /cmd  arg", "/cmd", "arg"},
		{"", "", ""},
	}
	for _, tt := range tests {
		command, args := SplitCommandFromArgs(tt.in)
		if command != tt.command || args != tt.args {
			t.Errorf("SplitCommandFromArgs(%q) = (%q, %q), want (%q, %q)",
				tt.in, command, args, tt.command, tt.args)
		}
	}
}

func TestSplitCommandFromTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		name   string
		target string
	}{
		{"/cmd", "/cmd", ""},
		{"/cmd@mybot", "/cmd", "mybot"},
		{"/cmd@other@weird", "/cmd", "other@weird"},
	}
	for _, tt := range tests {
		name, target := SplitCommandFromTarget(tt.in)
		if name != tt.name || target != tt.target {
			t.Errorf("SplitCommandFromTarget(%q) = (%q, %q), want (%q, %q)",
				tt.in, name, target, tt.name, tt.target)
		}
	}
}

func TestResolveTarget(t *testing.T) {
	t.Parallel()

	if _, target := ResolveTarget("mybot", "/cmd"); target != "mybot" {
		t.Errorf("target = %q, want mybot", target)
	}
	if _, target := ResolveTarget("mybot", "/cmd@other"); target != "other" {
		t.Errorf("target = %q, want other", target)
	}
}

func TestFilterTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target  string
		allowed CommandTarget
		want    bool
	}{
		{"", TargetUnspecified, true},
		{"", TargetSelf, false},
		{"", TargetUnspecified | TargetSelf, true},
		{"mybot", TargetSelf, true},
		{"mybot", TargetUnspecified, false},
		{"otherbot", TargetSelf, false},
		{"otherbot", TargetOther, true},
		{"", TargetAny, true},
		{"mybot", TargetAny, true},
		{"otherbot", TargetAny, true},
	}
	for _, tt := range tests {
		if got := FilterTarget(tt.target, "mybot", tt.allowed); got != tt.want {
			t.Errorf("FilterTarget(%q, mybot, %b) = %v, want %v",
				tt.target, tt.allowed, got, tt.want)
		}
	}
}

func TestCommandName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		name string
		ok   bool
	}{
		{"/cmd", "cmd", true},
		{"/cmd@bot", "cmd", true},
		{"cmd", "", false},
		{"", "", false},
		{"/", "", false},
		{"/@bot", "", false},
	}
	for _, tt := range tests {
		name, ok := CommandName(tt.in)
		if name != tt.name || ok != tt.ok {
			t.Errorf("CommandName(%q) = (%q, %v), want (%q, %v)", tt.in, name, ok, tt.name, tt.ok)
		}
	}
}
