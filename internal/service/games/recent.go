package games

import (
	"strings"
	"sync"
)

// recentList remembers the last few values per topic.
type recentList struct {
	mu     sync.Mutex
	limit  int
	topics map[string][]string
}

func newRecentList(limit int) *recentList {
	return &recentList{limit: limit, topics: make(map[string][]string)}
}

func topicKey(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}

func (r *recentList) snapshot(topic string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.topics[topicKey(topic)]...)
}

func (r *recentList) contains(topic, value string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.topics[topicKey(topic)] {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

func (r *recentList) add(topic string, values ...string) {
	if r.limit <= 0 {
		return
	}
	key := topicKey(topic)

	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.topics[key]
	for _, v := range values {
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		kept := list[:0]
		for _, existing := range list {
			if !strings.EqualFold(existing, v) {
				kept = append(kept, existing)
			}
		}
		list = append(kept, v)
	}
	if len(list) > r.limit {
		list = append([]string(nil), list[len(list)-r.limit:]...)
	}
	r.topics[key] = list
}
