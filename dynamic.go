package glstate

// CompletedCallback is notified when every dynamic object submitted for
// the current frame on a context has been drawn.
//
// Completed runs synchronously on the goroutine whose decrement brought
// the count to zero. It must not call back into the counter of the same
// state.
type CompletedCallback interface {
	Completed(s *State)
}

// CompletedFunc adapts a function to CompletedCallback.
type CompletedFunc func(s *State)

// Completed calls f(s).
func (f CompletedFunc) Completed(s *State) { f(s) }

type completedHolder struct {
	cb CompletedCallback
}

// SetCompletedCallback registers the callback fired when the dynamic
// object count reaches zero. Pass nil to remove it.
func (s *State) SetCompletedCallback(cb CompletedCallback) {
	if cb == nil {
		s.completed.Store(nil)
		return
	}
	s.completed.Store(&completedHolder{cb: cb})
}

// CompletedCallback returns the registered callback, or nil.
func (s *State) CompletedCallback() CompletedCallback {
	if h := s.completed.Load(); h != nil {
		return h.cb
	}
	return nil
}

// SetDynamicObjectCount starts counting n outstanding dynamic objects.
// Setting the current count again is a no-op. When n is zero and
// callOnZero is set, the callback fires immediately.
func (s *State) SetDynamicObjectCount(n int, callOnZero bool) {
	n64 := int64(max(n, 0))
	if s.dynamicCount.Swap(n64) == n64 {
		return
	}
	if n64 == 0 && callOnZero {
		s.fireCompleted()
	}
}

// DynamicObjectCount returns the number of outstanding dynamic objects.
func (s *State) DynamicObjectCount() int {
	return int(s.dynamicCount.Load())
}

// DecrementDynamicObjectCount marks one dynamic object as drawn. The
// decrement that reaches zero fires the callback; further decrements are
// ignored until the count is set again.
//
// DecrementDynamicObjectCount is safe for concurrent use.
func (s *State) DecrementDynamicObjectCount() {
	for {
		cur := s.dynamicCount.Load()
		if cur <= 0 {
			return
		}
		if s.dynamicCount.CompareAndSwap(cur, cur-1) {
			if cur == 1 {
				s.fireCompleted()
			}
			return
		}
	}
}

func (s *State) fireCompleted() {
	if h := s.completed.Load(); h != nil {
		h.cb.Completed(s)
	}
}
