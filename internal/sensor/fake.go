package sensor

// FakeAmbient returns scripted readings; the last one repeats.
type FakeAmbient struct {
	Samples []AmbientSample
	Err     error
	Calls   int
	index   int
}

// AmbientSample is one scripted ambient reading.
type AmbientSample struct {
	Humidity    float32
	Temperature float32
}

// Read returns the next sample or Err.
func (f *FakeAmbient) Read() (float32, float32, error) {
	f.Calls++
	if f.Err != nil {
		return 0, 0, f.Err
	}
	if len(f.Samples) == 0 {
		return 0, 0, ErrReadFailure
	}
	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s.Humidity, s.Temperature, nil
}

// FakeAnalog returns a fixed raw count or Err.
type FakeAnalog struct {
	Raw   int
	Err   error
	Calls int
}

// ReadChannel returns Raw or Err.
func (f *FakeAnalog) ReadChannel() (int, error) {
	f.Calls++
	if f.Err != nil {
		return 0, f.Err
	}
	return f.Raw, nil
}
