package stdio_exec

import (
	"context"
	"testing"
)

func TestStdioExecEcho(t *testing.T) {
	ctx := context.Background()
	stdio, status := NewStdioExec(ctx, "cat")
	if status != nil {
		t.Fatalf("NewStdioExec failed: %s", status)
	}
	defer stdio.Close()
	result, status := stdio.Process(`{"text":"hello"}`)
	if status != nil {
		t.Fatalf("Process failed: %s", status)
	}
	if result != `{"text":"hello"}` {
		t.Errorf("unexpected echo result: %q", result)
	}
	result, status = stdio.Process("second line")
	if status != nil {
		t.Fatalf("second Process failed: %s", status)
	}
	if result != "second line" {
		t.Errorf("unexpected second result: %q", result)
	}
}
