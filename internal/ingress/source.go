// Package ingress accepts push deliveries over HTTP and hands them to
// whatever handlers are subscribed in the running process.
package ingress

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"sync"

	"dashnotify/internal/common"

	"github.com/gorilla/mux"
)

const maxPayloadBytes = 64 << 10

// SecretHeader carries the shared secret the push relay was given.
const SecretHeader = "X-Ingress-Secret"

type Source struct {
	mu       sync.RWMutex
	handlers map[int]common.MessageHandler
	next     int
	secret   []byte
}

// NewSource builds a source whose HTTP endpoint only accepts requests
// carrying secret. An empty secret rejects every request.
func NewSource(secret string) *Source {
	return &Source{
		handlers: make(map[int]common.MessageHandler),
		secret:   []byte(secret),
	}
}

func (s *Source) OnMessage(handler common.MessageHandler) common.Unsubscribe {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.handlers[id] = handler

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.handlers, id)
	}
}

// Deliver passes payload to each subscribed handler in subscription order
// and returns how many received it.
func (s *Source) Deliver(payload common.PushPayload) int {
	s.mu.RLock()
	ids := make([]int, 0, len(s.handlers))
	for id := range s.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]common.MessageHandler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, s.handlers[id])
	}
	s.mu.RUnlock()

	for _, handler := range handlers {
		handler(payload)
	}
	return len(handlers)
}

func (s *Source) Routes(router *mux.Router) {
	router.HandleFunc("/push", s.receive).Methods(http.MethodPost)
}

func (s *Source) receive(w http.ResponseWriter, r *http.Request) {
	//relay auth, constant time so the secret can't be guessed byte by byte
	given := []byte(r.Header.Get(SecretHeader))
	if len(s.secret) == 0 || subtle.ConstantTimeCompare(given, s.secret) != 1 {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var payload common.PushPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayloadBytes)).Decode(&payload); err != nil {
		http.Error(w, "invalid push payload", http.StatusBadRequest)
		return
	}

	delivered := s.Deliver(payload)
	if delivered == 0 {
		log.Println("[Ingress] push received with no subscribers")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]int{"delivered": delivered})
}
