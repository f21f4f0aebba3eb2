package command

import (
	"context"
	"errors"
	"testing"

	"github.com/keshon/chatclick/pkg/argument"
	"github.com/keshon/chatclick/pkg/parser"
	"github.com/keshon/chatclick/pkg/permission"
	"github.com/keshon/chatclick/pkg/tokenize"
)

type recordingHandler struct {
	permission int
	validation int
	execution  int
	lastErr    error
	handled    bool
}

func (h *recordingHandler) OnPermissionError(context.Context, any, *Command) bool {
	h.permission++
	return h.handled
}

func (h *recordingHandler) OnValidationError(_ context.Context, _ any, _ *Command, err error) bool {
	h.validation++
	h.lastErr = err
	return h.handled
}

func (h *recordingHandler) OnExecutionError(_ context.Context, _ any, _ *Command, err error) bool {
	h.execution++
	h.lastErr = err
	return h.handled
}

func setupRegistry(t *testing.T) (*Registry, *[]map[string]any) {
	t.Helper()
	var invocations []map[string]any
	r := NewRegistry()
	err := r.Register(&Command{
		Names:       []string{"greet", "hello"},
		Description: "Greets someone.",
		Arguments: []*argument.Argument{
			{Names: []string{"name", "n"}, Kind: argument.String},
			{Names: []string{"amount", "a"}, Kind: argument.Int, Optional: true, Default: 1},
			argument.NewFlag("shout it", "s", "shout"),
		},
		Handler: func(_ context.Context, inv *Invocation) error {
			invocations = append(invocations, inv.Args)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return r, &invocations
}

func TestDispatchInvokes(t *testing.T) {
	t.Parallel()

	r, invocations := setupRegistry(t)
	res := r.Dispatch(context.Background(), "mybot", `/greet --name "dear friend" -s -a 2`, nil)
	if res.Status != StatusInvoked {
		t.Fatalf("Status = %v (err %v), want invoked", res.Status, res.Err)
	}
	if len(*invocations) != 1 {
		t.Fatalf("handler ran %d times, want 1", len(*invocations))
	}
	args := (*invocations)[0]
	if args["name"] != "dear friend" || args["amount"] != 2 || args["s"] != true {
		t.Errorf("args = %v", args)
	}
}

func TestDispatchAlias(t *testing.T) {
	t.Parallel()

	r, invocations := setupRegistry(t)
	res := r.Dispatch(context.Background(), "mybot", "/hello bob", nil)
	if res.Status != StatusInvoked {
		t.Fatalf("Status = %v, want invoked", res.Status)
	}
	if (*invocations)[0]["name"] != "bob" {
		t.Errorf("positional name = %v", (*invocations)[0]["name"])
	}
}

func TestDispatchSkips(t *testing.T) {
	t.Parallel()

	r, invocations := setupRegistry(t)

	tests := []struct {
		name string
		text string
	}{
		{"not a command", "just chatting"},
		{"unknown command", "/unknown"},
		{"addressed to another bot", "/greet@otherbot bob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Dispatch(context.Background(), "mybot", tt.text, nil)
			if res.Status != StatusSkipped {
				t.Errorf("Status = %v, want skipped", res.Status)
			}
		})
	}
	if len(*invocations) != 0 {
		t.Errorf("handler ran %d times, want 0", len(*invocations))
	}
}

func TestDispatchExplicitSelfTarget(t *testing.T) {
	t.Parallel()

	r, _ := setupRegistry(t)
	res := r.Dispatch(context.Background(), "mybot", "/greet@mybot bob", nil)
	if res.Status != StatusInvoked {
		t.Errorf("Status = %v, want invoked", res.Status)
	}
}

func TestDispatchTargetAny(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	ran := false
	err := r.Register(&Command{
		Names:  []string{"eavesdrop"},
		Target: parser.TargetAny,
		Handler: func(context.Context, *Invocation) error {
			ran = true
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	res := r.Dispatch(context.Background(), "mybot", "/eavesdrop@otherbot", nil)
	if res.Status != StatusInvoked || !ran {
		t.Errorf("Status = %v, ran = %v; want invoked", res.Status, ran)
	}
}

func TestDispatchDenied(t *testing.T) {
	t.Parallel()

	reporter := &recordingHandler{}
	r := NewRegistry()
	r.AddErrorHandler(reporter)
	err := r.Register(&Command{
		Names:      []string{"secret"},
		Permission: permission.Nobody(),
		Handler: func(context.Context, *Invocation) error {
			t.Error("handler ran despite denial")
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	res := r.Dispatch(context.Background(), "mybot", "/secret", nil)
	if res.Status != StatusDenied {
		t.Errorf("Status = %v, want denied", res.Status)
	}
	if reporter.permission != 1 {
		t.Errorf("permission reports = %d, want 1", reporter.permission)
	}
}

func TestDispatchPermissionReceivesData(t *testing.T) {
	t.Parallel()

	type caller struct{ admin bool }

	r := NewRegistry()
	adminOnly := permission.New("admin", func(_ context.Context, data any) (bool, error) {
		c, ok := data.(*caller)
		return ok && c.admin, nil
	})
	if err := r.Register(&Command{Names: []string{"x"}, Permission: adminOnly, Handler: nopHandler}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if res := r.Dispatch(context.Background(), "mybot", "/x", &caller{admin: true}); res.Status != StatusInvoked {
		t.Errorf("admin Status = %v, want invoked", res.Status)
	}
	if res := r.Dispatch(context.Background(), "mybot", "/x", &caller{admin: false}); res.Status != StatusDenied {
		t.Errorf("non-admin Status = %v, want denied", res.Status)
	}
}

func TestDispatchInvalid(t *testing.T) {
	t.Parallel()

	reporter := &recordingHandler{}
	r, invocations := setupRegistry(t)
	r.AddErrorHandler(reporter)

	tests := []struct {
		name string
		text string
		as   func(error) bool
	}{
		{"missing required", "/greet", func(err error) bool {
			var e *argument.MissingRequiredError
			return errors.As(err, &e)
		}},
		{"unknown argument", "/greet --bogus x", func(err error) bool {
			var e *parser.UnknownArgumentError
			return errors.As(err, &e)
		}},
		{"bad value", "/greet bob --amount lots", func(err error) bool {
			var e *argument.InvalidValueError
			return errors.As(err, &e)
		}},
		{"unterminated quote", `/greet "bob`, func(err error) bool {
			return errors.Is(err, tokenize.ErrUnterminatedQuote)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Dispatch(context.Background(), "mybot", tt.text, nil)
			if res.Status != StatusInvalid {
				t.Fatalf("Status = %v, want invalid", res.Status)
			}
			if !tt.as(res.Err) {
				t.Errorf("Err = %v, wrong type", res.Err)
			}
		})
	}
	if len(*invocations) != 0 {
		t.Errorf("handler ran %d times, want 0", len(*invocations))
	}
	if reporter.validation != len(tests) {
		t.Errorf("validation reports = %d, want %d", reporter.validation, len(tests))
	}
}

func TestDispatchHandlerError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	reporter := &recordingHandler{}
	r := NewRegistry()
	r.AddErrorHandler(reporter)
	err := r.Register(&Command{
		Names:   []string{"explode"},
		Handler: func(context.Context, *Invocation) error { return boom },
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	res := r.Dispatch(context.Background(), "mybot", "/explode", nil)
	if res.Status != StatusFailed || !errors.Is(res.Err, boom) {
		t.Errorf("Result = %+v, want failed with boom", res)
	}
	if reporter.execution != 1 || !errors.Is(reporter.lastErr, boom) {
		t.Errorf("execution reports = %d (last %v)", reporter.execution, reporter.lastErr)
	}
}

func TestErrorHandlerChainStopsWhenHandled(t *testing.T) {
	t.Parallel()

	first := &recordingHandler{handled: true}
	second := &recordingHandler{}
	r := NewRegistry()
	r.AddErrorHandler(first, second)
	if err := r.Register(&Command{Names: []string{"secret"}, Permission: permission.Nobody(), Handler: nopHandler}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	r.Dispatch(context.Background(), "mybot", "/secret", nil)
	if first.permission != 1 {
		t.Errorf("first handler reports = %d, want 1", first.permission)
	}
	if second.permission != 0 {
		t.Errorf("second handler reports = %d, want 0", second.permission)
	}
}
