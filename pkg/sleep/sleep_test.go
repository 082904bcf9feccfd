package sleep

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeconds(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{d: 0, want: 1},
		{d: -time.Second, want: 1},
		{d: 300 * time.Millisecond, want: 1},
		{d: time.Second, want: 1},
		{d: 1500 * time.Millisecond, want: 2},
		{d: time.Minute, want: 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, seconds(tt.d), "seconds(%s)", tt.d)
	}
}

func TestNew(t *testing.T) {
	s, err := New("", "")
	require.NoError(t, err)
	require.IsType(t, &RTCWake{}, s)
	assert.Equal(t, DefaultRTCWakeMode, s.(*RTCWake).Mode)

	s, err = New(MethodRTCWake, "mem")
	require.NoError(t, err)
	assert.Equal(t, "mem", s.(*RTCWake).Mode)

	s, err = New(MethodLogind, "")
	require.NoError(t, err)
	assert.IsType(t, &Logind{}, s)

	_, err = New("hibernate", "")
	assert.Error(t, err)
}

func TestRTCWake(t *testing.T) {
	var gotName string
	var gotArgs []string
	r := NewRTCWake("")
	r.run = func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	slept, err := Operation(r, 90*time.Second)()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, slept, time.Duration(0))
	assert.Equal(t, "rtcwake", gotName)
	assert.Equal(t, []string{"-m", "freeze", "-s", "90"}, gotArgs)
}

func TestRTCWakeFails(t *testing.T) {
	r := NewRTCWake("mem")
	r.run = func(string, ...string) error {
		return errors.New("exit status 1")
	}

	_, err := Operation(r, time.Second)()
	assert.ErrorContains(t, err, "rtcwake")
}

type fakeManager struct {
	events      chan bool
	suspendErr  error
	suspended   bool
	stopped     bool
	closed      bool
	sendOnSleep []bool
}

func (f *fakeManager) PrepareForSleep() (<-chan bool, func(), error) {
	return f.events, func() { f.stopped = true }, nil
}

func (f *fakeManager) Suspend() error {
	f.suspended = true
	for _, v := range f.sendOnSleep {
		f.events <- v
	}
	return f.suspendErr
}

func (f *fakeManager) Close() error {
	f.closed = true
	return nil
}

func newTestLogind(t *testing.T, m *fakeManager) *Logind {
	alarm := filepath.Join(t.TempDir(), "wakealarm")
	require.NoError(t, os.WriteFile(alarm, nil, 0644))

	l := NewLogind()
	l.WakeAlarmPath = alarm
	l.ResumeGrace = 0
	l.connect = func() (loginManager, error) { return m, nil }
	return l
}

func TestLogindSleep(t *testing.T) {
	m := &fakeManager{events: make(chan bool, 2), sendOnSleep: []bool{true, false}}
	l := newTestLogind(t, m)

	require.NoError(t, l.Sleep(30*time.Second))

	assert.True(t, m.suspended)
	assert.True(t, m.stopped)
	assert.True(t, m.closed)

	b, err := os.ReadFile(l.WakeAlarmPath)
	require.NoError(t, err)
	assert.Equal(t, "+30", string(b))
}

func TestLogindNoResume(t *testing.T) {
	m := &fakeManager{events: make(chan bool, 1), sendOnSleep: []bool{true}}
	l := newTestLogind(t, m)

	start := time.Now()
	err := l.Sleep(time.Second)
	assert.ErrorContains(t, err, "no resume signal")
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}

func TestLogindSuspendRefused(t *testing.T) {
	m := &fakeManager{events: make(chan bool), suspendErr: errors.New("org.freedesktop.login1.NotSupported")}
	l := newTestLogind(t, m)

	err := l.Sleep(time.Second)
	assert.ErrorContains(t, err, "logind refused to suspend")
	assert.True(t, m.closed)
}

func TestLogindAlarmNotWritable(t *testing.T) {
	m := &fakeManager{events: make(chan bool)}
	l := newTestLogind(t, m)
	l.WakeAlarmPath = filepath.Join(t.TempDir(), "missing", "wakealarm")

	err := l.Sleep(time.Second)
	assert.ErrorContains(t, err, "failed to clear")
	assert.False(t, m.suspended)
}
