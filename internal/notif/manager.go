package notif

import (
	"log"
	"sync"

	"dashnotify/internal/common"
)

// NotificationManager fans a routed event out to its observers in
// subscription order.
type NotificationManager struct {
	observers map[string]common.Observer
	order     []string
	mu        sync.RWMutex
}

func NewNotificationManager() *NotificationManager {
	return &NotificationManager{
		observers: make(map[string]common.Observer),
	}
}

func (nm *NotificationManager) Subscribe(observer common.Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	name := observer.Name()
	if _, exists := nm.observers[name]; !exists {
		nm.order = append(nm.order, name)
	}
	nm.observers[name] = observer
	log.Printf("Observer %s subscribed", name)
}

func (nm *NotificationManager) Unsubscribe(observer common.Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	name := observer.Name()
	delete(nm.observers, name)
	for i, n := range nm.order {
		if n == name {
			nm.order = append(nm.order[:i], nm.order[i+1:]...)
			break
		}
	}
	log.Printf("Observer %s unsubscribed", name)
}

func (nm *NotificationManager) Notify(event common.NotificationEvent) {
	nm.mu.RLock()
	observers := make([]common.Observer, 0, len(nm.order))
	for _, name := range nm.order {
		observers = append(observers, nm.observers[name])
	}
	nm.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.Update(event); err != nil {
			log.Printf("Observer %s update failed: %v", observer.Name(), err)
		}
	}
}
