package progress

import "sync"

// Stream fans progress events of one operation out to any number of subscribers.
// Every subscriber sees every event in publish order; a late subscriber starts
// from the most recent event. After close no further events are delivered.
type Stream struct {
	key   int64
	runID string

	mu      sync.Mutex
	subs    map[int]*subscriber
	nextID  int
	last    Event
	hasLast bool
	closed  bool
	done    chan struct{}
}

func newStream(key int64, runID string) *Stream {
	return &Stream{
		key:   key,
		runID: runID,
		subs:  make(map[int]*subscriber),
		done:  make(chan struct{}),
	}
}

func (s *Stream) Key() int64 { return s.key }

// RunID identifies this run of the operation in logs.
func (s *Stream) RunID() string { return s.runID }

// Done is closed once the stream has delivered its terminal event.
func (s *Stream) Done() <-chan struct{} { return s.done }

func (s *Stream) Last() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasLast
}

// Subscribe returns a channel of events and a cancel func releasing it.
// The channel is closed after the terminal event or on cancel.
func (s *Stream) Subscribe() (<-chan Event, func()) {
	sub := newSubscriber()
	go sub.run()

	s.mu.Lock()
	if s.hasLast {
		sub.push(s.last)
	}
	if s.closed {
		s.mu.Unlock()
		sub.finish()
		return sub.out, sub.stop
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = sub
	s.mu.Unlock()

	return sub.out, func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		sub.stop()
	}
}

func (s *Stream) publish(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.last = ev
	s.hasLast = true
	for _, sub := range s.subs {
		sub.push(ev)
	}
	return true
}

func (s *Stream) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, sub := range s.subs {
		sub.finish()
		delete(s.subs, id)
	}
	close(s.done)
}

type subscriber struct {
	mu       sync.Mutex
	queue    []Event
	finished bool
	wake     chan struct{}
	cancel   chan struct{}
	stopOnce sync.Once
	out      chan Event
}

func newSubscriber() *subscriber {
	return &subscriber{
		wake:   make(chan struct{}, 1),
		cancel: make(chan struct{}),
		out:    make(chan Event),
	}
}

func (s *subscriber) push(ev Event) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, ev)
	s.mu.Unlock()
	s.notify()
}

func (s *subscriber) finish() {
	s.mu.Lock()
	s.finished = true
	s.mu.Unlock()
	s.notify()
}

func (s *subscriber) stop() {
	s.stopOnce.Do(func() { close(s.cancel) })
}

func (s *subscriber) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) next() (Event, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) > 0 {
		ev := s.queue[0]
		s.queue = s.queue[1:]
		return ev, true, false
	}
	return Event{}, false, s.finished
}

func (s *subscriber) run() {
	defer close(s.out)
	for {
		ev, ok, finished := s.next()
		if !ok {
			if finished {
				return
			}
			select {
			case <-s.wake:
			case <-s.cancel:
				return
			}
			continue
		}

		select {
		case s.out <- ev:
		case <-s.cancel:
			return
		}
	}
}
