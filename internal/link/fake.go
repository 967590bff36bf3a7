package link

import "sync"

// FakeTransport records sent frames for tests.
type FakeTransport struct {
	mu sync.Mutex

	// Frames contains every frame passed to Send.
	Frames []string

	// State is returned by Status.
	State Status

	// SendError, if set, is returned by Send.
	SendError error

	// Closed tracks if Close was called.
	Closed bool
}

func (f *FakeTransport) Send(frame string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendError != nil {
		return f.SendError
	}
	f.Frames = append(f.Frames, frame)
	return nil
}

func (f *FakeTransport) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.State
}

// SetStatus changes the reported status.
func (f *FakeTransport) SetStatus(s Status) {
	f.mu.Lock()
	f.State = s
	f.mu.Unlock()
}

// Sent returns a copy of the recorded frames.
func (f *FakeTransport) Sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Frames...)
}

func (f *FakeTransport) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.State = Off
	f.mu.Unlock()
	return nil
}
