// Package inflight track outgoing publish messages until the peer
// acknowledges them. Messages are indexed by token, by topic and by
// address, so that acknowledgements, per-topic resends and session
// cleanup are each a tree lookup.
package inflight

import "fmt"
import "sync"

import "github.com/bnclabs/rbindex/api"
import "github.com/bnclabs/rbindex/lib"
import "github.com/bnclabs/rbindex/log"
import "github.com/bnclabs/rbindex/rbtree"

const (
	bytoken = 0
	bytopic = 1
	byaddr  = 2
)

// Message awaiting delivery.
type Message struct {
	Token   int64
	Topic   string
	QoS     byte
	Payload []byte
}

// Registry of in-flight messages, safe for concurrent use.
type Registry struct {
	mu          sync.Mutex
	name        string
	store       *rbtree.Store[*Message]
	nexttoken   int64
	maxinflight int64
	logprefix   string
}

// Defaultsettings for registry.
//
// "maxinflight" (int64, default: 65535),
//		Maximum number of messages awaiting delivery.
//
// Along with rbtree.Defaultsettings(), "allowdups" is forced to true
// so that many messages can share a topic.
func Defaultsettings() lib.Settings {
	setts := rbtree.Defaultsettings()
	setts["maxinflight"] = int64(65535)
	return setts
}

// NewRegistry create an empty registry.
func NewRegistry(name string, setts lib.Settings) *Registry {
	setts = make(lib.Settings).Mixin(Defaultsettings(), setts)
	setts["allowdups"] = true

	reg := &Registry{name: name, nexttoken: 1}
	reg.logprefix = fmt.Sprintf("INFLIGHT [%s]", name)
	if reg.maxinflight = setts.Int64("maxinflight"); reg.maxinflight <= 0 {
		panic(fmt.Errorf("%v maxinflight cannot be %v", reg.logprefix, reg.maxinflight))
	}

	byToken := rbtree.IntKey(func(m *Message) int64 { return m.Token })
	reg.store = rbtree.NewStore[*Message](name, byToken, setts)
	byTopic := rbtree.StringKey(func(m *Message) string { return m.Topic })
	if _, err := reg.store.AddIndex("topic", byTopic); err != nil {
		panic(err)
	}
	if _, err := reg.store.AddIndex("addr", rbtree.Pointers[Message]{}); err != nil {
		panic(err)
	}
	log.Verbosef("%v started with maxinflight:%v\n", reg.logprefix, reg.maxinflight)
	return reg
}

// Publish register a new message under the next token.
func (reg *Registry) Publish(topic string, qos byte, payload []byte) (*Message, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if n := reg.store.Count(); n >= reg.maxinflight {
		return nil, fmt.Errorf("%w: %v %v messages in flight", api.ErrorOutofMemory, reg.logprefix, n)
	}
	msg := &Message{Token: reg.nexttoken, Topic: topic, QoS: qos, Payload: payload}
	if _, _, err := reg.store.Insert(msg, int64(len(payload))); err != nil {
		return nil, err
	}
	reg.nexttoken++
	return msg, nil
}

// Delivered remove the message acknowledged under token.
func (reg *Registry) Delivered(token int64) (*Message, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.store.RemoveKey(&Message{Token: token}, bytoken)
}

// Lookup return the message in flight under token.
func (reg *Registry) Lookup(token int64) (*Message, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.store.Find(&Message{Token: token}, bytoken)
}

// Pending return messages in flight for topic, in publish order.
func (reg *Registry) Pending(topic string) []*Message {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	msgs := []*Message{}
	reg.store.IterateFrom(bytopic, &Message{Topic: topic}, func(msg *Message) bool {
		if msg.Topic != topic {
			return false
		}
		msgs = append(msgs, msg)
		return true
	})
	return msgs
}

// Drop remove msg, typically when the session is torn down.
func (reg *Registry) Drop(msg *Message) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.store.RemoveKey(msg, byaddr); ok {
		return true
	}
	log.Warnf("%v drop of unknown message %v\n", reg.logprefix, msg.Token)
	return false
}

// Oldest return the in-flight message with the lowest token.
func (reg *Registry) Oldest() (*Message, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.store.Min(bytoken)
}

// Len return number of messages in flight.
func (reg *Registry) Len() int64 {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.store.Count()
}

// Bytes return payload bytes in flight.
func (reg *Registry) Bytes() int64 {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.store.Size()
}

// Stats return registry statistics.
func (reg *Registry) Stats() map[string]interface{} {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	stats := reg.store.Stats()
	stats["nexttoken"] = reg.nexttoken
	return stats
}

// Validate the underlying store.
func (reg *Registry) Validate() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.store.Validate()
}
