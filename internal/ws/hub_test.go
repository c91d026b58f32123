package ws

import (
	"encoding/json"
	"testing"
	"time"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub, topic string) *Client {
	return &Client{
		hub:   hub,
		topic: topic,
		send:  make(chan []byte, 256),
	}
}

func TestHubRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub, TopicOrders)
	hub.register <- client

	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.rooms[TopicOrders] == nil {
		t.Fatal("topic room not created")
	}
	if !hub.rooms[TopicOrders][client] {
		t.Fatal("client not registered in topic room")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub, TopicOrders)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	// Room should be cleaned up when empty
	if hub.rooms[TopicOrders] != nil {
		t.Fatal("topic room not cleaned up after last client unregistered")
	}
}

func TestBroadcastToSingleTopic(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	ordersClient := mockClient(hub, TopicOrders)
	menuClient := mockClient(hub, TopicMenu)

	hub.register <- ordersClient
	hub.register <- menuClient
	time.Sleep(10 * time.Millisecond)

	testPayload := json.RawMessage(`{"order_id":"test-123"}`)
	hub.Broadcast(TopicOrders, Event{Type: "order.created", Payload: testPayload})

	select {
	case msg := <-ordersClient.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if received.Type != "order.created" {
			t.Errorf("expected type 'order.created', got '%s'", received.Type)
		}
		if string(received.Payload) != string(testPayload) {
			t.Errorf("expected payload '%s', got '%s'", testPayload, received.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("orders client did not receive message")
	}

	select {
	case <-menuClient.send:
		t.Fatal("menu client should not have received an orders event")
	case <-time.After(50 * time.Millisecond):
		// Expected - no message received
	}
}

func TestBroadcastToMultipleClientsInSameTopic(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client1 := mockClient(hub, TopicMenu)
	client2 := mockClient(hub, TopicMenu)
	client3 := mockClient(hub, TopicMenu)

	hub.register <- client1
	hub.register <- client2
	hub.register <- client3
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast(TopicMenu, Event{
		Type:    "menu.updated",
		Payload: json.RawMessage(`{"available":false}`),
	})

	clients := []*Client{client1, client2, client3}
	for i, client := range clients {
		select {
		case msg := <-client.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("client%d: failed to unmarshal: %v", i+1, err)
			}
			if received.Type != "menu.updated" {
				t.Errorf("client%d: expected type 'menu.updated', got '%s'", i+1, received.Type)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client%d did not receive message", i+1)
		}
	}
}

func TestHubTopicIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	clients := map[string][]*Client{
		TopicOrders: {mockClient(hub, TopicOrders), mockClient(hub, TopicOrders)},
		TopicMenu:   {mockClient(hub, TopicMenu), mockClient(hub, TopicMenu)},
		TopicConfig: {mockClient(hub, TopicConfig), mockClient(hub, TopicConfig)},
	}
	for _, clientList := range clients {
		for _, client := range clientList {
			hub.register <- client
		}
	}
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast(TopicConfig, Event{
		Type:    "config.updated",
		Payload: json.RawMessage(`{"acceptingOrders":false}`),
	})

	for topic, clientList := range clients {
		for i, client := range clientList {
			select {
			case msg := <-client.send:
				if topic != TopicConfig {
					t.Fatalf("topic %s client %d should not receive message", topic, i)
				}
				var received Event
				if err := json.Unmarshal(msg, &received); err != nil {
					t.Fatalf("unmarshal error: %v", err)
				}
				if received.Type != "config.updated" {
					t.Errorf("wrong event type: %s", received.Type)
				}
			case <-time.After(50 * time.Millisecond):
				if topic == TopicConfig {
					t.Fatalf("config client %d should have received message", i)
				}
				// Expected for other topics
			}
		}
	}
}

func TestHubCleanupEmptyRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client1 := mockClient(hub, TopicOrders)
	client2 := mockClient(hub, TopicOrders)

	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	if len(hub.rooms[TopicOrders]) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(hub.rooms[TopicOrders]))
	}
	hub.mu.RUnlock()

	hub.unregister <- client1
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	if len(hub.rooms[TopicOrders]) != 1 {
		t.Fatalf("expected 1 client after first unregister, got %d", len(hub.rooms[TopicOrders]))
	}
	hub.mu.RUnlock()

	hub.unregister <- client2
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	if hub.rooms[TopicOrders] != nil {
		t.Fatal("room should be deleted when last client unregisters")
	}
	hub.mu.RUnlock()
}

func TestBroadcastToEmptyTopic(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub, TopicMenu)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast(TopicOrders, Event{
		Type:    "order.created",
		Payload: json.RawMessage(`{"test":"data"}`),
	})

	select {
	case <-client.send:
		t.Fatal("client should not receive message for a different topic")
	case <-time.After(50 * time.Millisecond):
		// Expected - no message
	}
}
