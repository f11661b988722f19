package session

import (
	"net"
	"testing"
	"time"

	"code.hybscloud.com/rovernet/protoerr"
)

func TestExchange_PlainMessage(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go client.Write([]byte("OK 1 2\a\b"))

	s := New(server)
	msg, err := s.Exchange(12, time.Second)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if msg != "OK 1 2" {
		t.Fatalf("got %q", msg)
	}
}

func TestExchange_RechargeInterlude(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		client.Write([]byte("RECHARGING\a\b"))
		time.Sleep(10 * time.Millisecond)
		client.Write([]byte("FULL POWER\a\b"))
		client.Write([]byte("OK -1 0\a\b"))
	}()

	var rechargeSeen bool
	s := New(server)
	s.OnRecharge = func() { rechargeSeen = true }

	msg, err := s.Exchange(12, time.Second)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if msg != "OK -1 0" {
		t.Fatalf("got %q, want OK -1 0", msg)
	}
	if !rechargeSeen {
		t.Fatalf("OnRecharge callback not invoked")
	}
}

func TestExchange_UnexpectedFullPower(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go client.Write([]byte("FULL POWER\a\b"))

	s := New(server)
	_, err := s.Exchange(12, time.Second)
	kind, ok := protoerr.As(err)
	if !ok || kind != protoerr.Logic {
		t.Fatalf("got err=%v, want Logic", err)
	}
}

func TestExchange_RechargeNotFollowedByFullPower(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		client.Write([]byte("RECHARGING\a\b"))
		client.Write([]byte("OK 0 0\a\b"))
	}()

	s := New(server)
	_, err := s.Exchange(12, time.Second)
	kind, ok := protoerr.As(err)
	if !ok || kind != protoerr.Logic {
		t.Fatalf("got err=%v, want Logic", err)
	}
}
