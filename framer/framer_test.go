// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framer

import (
	"net"
	"testing"
	"time"

	"code.hybscloud.com/rovernet/protoerr"
)

func TestReadMessage_Basic(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		client.Write([]byte("Mnau\a\b"))
	}()

	f := New(server)
	msg, err := f.ReadMessage(20, time.Second)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if msg != "Mnau" {
		t.Fatalf("got %q, want %q", msg, "Mnau")
	}
}

func TestReadMessage_SplitAcrossReads(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		client.Write([]byte("he"))
		client.Write([]byte("llo"))
		client.Write([]byte{0x07, 0x08})
	}()

	f := New(server)
	msg, err := f.ReadMessage(20, time.Second)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if msg != "hello" {
		t.Fatalf("got %q, want %q", msg, "hello")
	}
}

func TestReadMessage_TooLongBeforeTerminator(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		// 25 bytes, no terminator, against a 20-byte budget.
		client.Write([]byte("abcdefghijklmnopqrstuvwxy"))
	}()

	f := New(server)
	_, err := f.ReadMessage(20, time.Second)
	kind, ok := protoerr.As(err)
	if !ok || kind != protoerr.Syntax {
		t.Fatalf("got err=%v, want Syntax", err)
	}
}

func TestReadMessage_TerminatorPastMaxLength(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		// 19 payload bytes + 2-byte terminator = 21 > maxLength(20).
		client.Write([]byte("1234567890123456789"))
		client.Write([]byte{0x07, 0x08})
	}()

	f := New(server)
	_, err := f.ReadMessage(20, time.Second)
	kind, ok := protoerr.As(err)
	if !ok || kind != protoerr.Syntax {
		t.Fatalf("got err=%v, want Syntax", err)
	}
}

func TestReadMessage_Timeout(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	f := New(server)
	_, err := f.ReadMessage(20, 20*time.Millisecond)
	kind, ok := protoerr.As(err)
	if !ok || kind != protoerr.Timeout {
		t.Fatalf("got err=%v, want Timeout", err)
	}
}

func TestReadMessage_MinLengthFloorAdmitsRecharge(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		client.Write([]byte("RECHARGING\a\b"))
	}()

	f := New(server)
	// Caller asks for a 5-byte budget (e.g. a key id read); the floor must
	// still admit a 12-byte RECHARGING notification.
	msg, err := f.ReadMessage(5, time.Second)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if msg != "RECHARGING" {
		t.Fatalf("got %q, want RECHARGING", msg)
	}
}

func TestReadMessage_ResidualHandoff(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		// Two messages arrive in one segment.
		client.Write([]byte("first\a\bsecond\a\b"))
	}()

	f := New(server)
	msg1, err := f.ReadMessage(20, time.Second)
	if err != nil {
		t.Fatalf("ReadMessage 1: %v", err)
	}
	if msg1 != "first" {
		t.Fatalf("got %q, want first", msg1)
	}

	// Simulate handing the connection off to a different protocol stage:
	// transfer the residual inbox to a fresh Framer.
	residual := f.Inbox()
	g := New(server)
	g.SetInbox(residual)

	msg2, err := g.ReadMessage(20, time.Second)
	if err != nil {
		t.Fatalf("ReadMessage 2: %v", err)
	}
	if msg2 != "second" {
		t.Fatalf("got %q, want second", msg2)
	}
}

func TestReadMessage_NilConn(t *testing.T) {
	f := New(nil)
	_, err := f.ReadMessage(20, time.Second)
	if err != ErrInvalidArgument {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}
