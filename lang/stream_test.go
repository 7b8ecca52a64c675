package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestReadSource(t *testing.T) {
	text := strings.Repeat("Pay @=rate[50*2] to @<.\n", 1000)

	src, err := ReadSource(context.Background(), "ledger.txt", strings.NewReader(text))
	if err != nil {
		t.Fatalf("ReadSource failed: %v", err)
	}

	if src.Name != "ledger.txt" {
		t.Errorf("Name = %q, want %q", src.Name, "ledger.txt")
	}

	if src.Text != text {
		t.Errorf("read %d bytes, want %d", len(src.Text), len(text))
	}
}

func TestReadSource_Error(t *testing.T) {
	boom := errors.New("boom")

	_, err := ReadSource(context.Background(), "bad", iotest.ErrReader(boom))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("error = %v, want ErrReadInput", err)
	}

	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want to wrap %v", err, boom)
	}
}

func TestReadSource_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadSource(ctx, "stdin", strings.NewReader("@=a[1]"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
