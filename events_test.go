package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"stickerbingo/internal/bingo"
)

func TestHubBroadcastBySession(t *testing.T) {
	hub := NewHub()
	a := hub.Register("a")
	b := hub.Register("b")
	defer hub.Unregister(b)

	hub.Broadcast("a", bingo.View{Status: "hello"})

	select {
	case msg := <-a.ch:
		var v bingo.View
		if err := json.Unmarshal(msg, &v); err != nil || v.Status != "hello" {
			t.Errorf("subscriber a got %s (%v)", msg, err)
		}
	default:
		t.Fatal("subscriber a got nothing")
	}
	select {
	case msg := <-b.ch:
		t.Errorf("subscriber b got %s, want nothing", msg)
	default:
	}

	if n := hub.SubscriberCount("a"); n != 1 {
		t.Errorf("SubscriberCount(a) = %d, want 1", n)
	}
	hub.Unregister(a)
	hub.Unregister(a)
	if n := hub.SubscriberCount("a"); n != 0 {
		t.Errorf("SubscriberCount(a) after unregister = %d, want 0", n)
	}
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	hub := NewHub()
	s := hub.Register("a")
	defer hub.Unregister(s)
	for i := 0; i < wsChannelBuffer+5; i++ {
		hub.Broadcast("a", bingo.View{})
	}
	if len(s.ch) != wsChannelBuffer {
		t.Errorf("buffered %d messages, want %d", len(s.ch), wsChannelBuffer)
	}
}

func TestEventsStreamViews(t *testing.T) {
	router := setupTestRouter(newTestApp(nil))
	srv := httptest.NewServer(router)
	defer srv.Close()

	header := http.Header{}
	header.Set("Cookie", SessionCookieName+"="+testSession)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + RouteEvents
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var initial bingo.View
	if err := conn.ReadJSON(&initial); err != nil {
		t.Fatalf("read initial view: %v", err)
	}
	if len(revealedTiles(initial)) != 0 {
		t.Fatal("initial view should be a fresh board")
	}

	req, _ := http.NewRequest("POST", srv.URL+RouteReveal, nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: testSession})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	resp.Body.Close()

	var update bingo.View
	if err := conn.ReadJSON(&update); err != nil {
		t.Fatalf("read update: %v", err)
	}
	if len(revealedTiles(update)) != 1 {
		t.Errorf("update has %d revealed tiles, want 1", len(revealedTiles(update)))
	}
}
