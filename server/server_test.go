package server

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"
)

func TestRun_AcceptsAndShutsDown(t *testing.T) {
	s := New("127.0.0.1", 0)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	// Bind on an ephemeral port ourselves first so the test can dial it;
	// Run(ctx) binds its own listener, so we instead drive Run directly
	// and discover its address via a short retry loop.
	go func() { errCh <- s.Run(ctx) }()

	var addr string
	for i := 0; i < 100 && s.ln == nil; i++ {
		time.Sleep(time.Millisecond)
	}
	if s.ln == nil {
		t.Fatalf("listener never came up")
	}
	addr = s.ln.Addr().String()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	conn.Write([]byte("Mnau\a\b"))
	r := bufio.NewReader(conn)
	msg, err := r.ReadString(0x08)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if msg != "107 KEY REQUEST\a\b" {
		t.Fatalf("got %q", msg)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after context cancellation")
	}
}
