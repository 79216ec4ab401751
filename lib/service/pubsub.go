package service

import (
	"sync"

	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/google/uuid"
)

// Pubsub fans reimbursement events out to in-process subscribers, keyed by event type.
type Pubsub struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan models.Remboursement
}

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[string]map[string]chan models.Remboursement)
	return ps
}

func (ps *Pubsub) Subscribe(topic string, ch chan models.Remboursement) (subId string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		ps.subs[topic] = make(map[string]chan models.Remboursement)
	}
	subId = uuid.NewString()
	ps.subs[topic][subId] = ch
	return subId
}

func (ps *Pubsub) Unsubscribe(id string, topic string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		return
	}
	if ps.subs[topic][id] == nil {
		return
	}
	close(ps.subs[topic][id])
	delete(ps.subs[topic], id)
}

// Publish never blocks: a subscriber whose buffer is full misses the event.
// It returns how many subscribers missed it.
func (ps *Pubsub) Publish(topic string, msg models.Remboursement) (dropped int) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for _, ch := range ps.subs[topic] {
		select {
		case ch <- msg:
		default:
			dropped++
		}
	}
	return dropped
}

func (ps *Pubsub) SubscriberCount(topic string) int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.subs[topic])
}
