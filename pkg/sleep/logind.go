package sleep

import (
	"os"
	"strconv"
	"time"

	"github.com/godbus/dbus/v5"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	logindService    = "org.freedesktop.login1"
	logindPath       = dbus.ObjectPath("/org/freedesktop/login1")
	logindManagerIfc = "org.freedesktop.login1.Manager"

	// DefaultWakeAlarmPath is the sysfs alarm of the first RTC.
	DefaultWakeAlarmPath = "/sys/class/rtc/rtc0/wakealarm"
	// DefaultResumeGrace is how long past the alarm we wait for the resume
	// signal before giving up.
	DefaultResumeGrace = 2 * time.Minute
)

// loginManager is the part of org.freedesktop.login1.Manager we use.
type loginManager interface {
	// PrepareForSleep delivers the argument of each PrepareForSleep signal:
	// true right before suspending, false after resuming.
	PrepareForSleep() (<-chan bool, func(), error)
	Suspend() error
	Close() error
}

// Logind arms the RTC wake alarm and asks systemd-logind to suspend. Polkit
// decides whether the calling user may suspend; writing the alarm still
// needs write access to the sysfs file.
type Logind struct {
	WakeAlarmPath string
	ResumeGrace   time.Duration

	connect func() (loginManager, error)
}

func NewLogind() *Logind {
	return &Logind{
		WakeAlarmPath: DefaultWakeAlarmPath,
		ResumeGrace:   DefaultResumeGrace,
		connect:       connectLogind,
	}
}

func (l *Logind) Sleep(d time.Duration) error {
	secs := seconds(d)

	if err := l.setWakeAlarm(secs); err != nil {
		return err
	}

	m, err := l.connect()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to connect to logind")
	}
	defer func() {
		if err := m.Close(); err != nil {
			logrus.Debugf("failed to close system bus connection: %v", err)
		}
	}()

	// Subscribe before suspending so the resume signal cannot be missed.
	events, stop, err := m.PrepareForSleep()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to subscribe to PrepareForSleep")
	}
	defer stop()

	logrus.WithField("duration", d).Info("suspending with logind")
	if err := m.Suspend(); err != nil {
		return pkgerrors.Wrap(err, "logind refused to suspend")
	}

	timeout := time.NewTimer(time.Duration(secs)*time.Second + l.ResumeGrace)
	defer timeout.Stop()

	for {
		select {
		case sleeping := <-events:
			if sleeping {
				logrus.Debug("system is going to sleep")
				continue
			}
			logrus.Info("resumed")
			return nil
		case <-timeout.C:
			return pkgerrors.Errorf("no resume signal from logind within %s", time.Duration(secs)*time.Second+l.ResumeGrace)
		}
	}
}

// setWakeAlarm clears any pending alarm and sets a new one secs from now.
// The kernel rejects a new alarm while one is armed.
func (l *Logind) setWakeAlarm(secs int) error {
	if err := os.WriteFile(l.WakeAlarmPath, []byte("0"), 0); err != nil {
		return pkgerrors.Wrapf(err, "failed to clear %s", l.WakeAlarmPath)
	}
	if err := os.WriteFile(l.WakeAlarmPath, []byte("+"+strconv.Itoa(secs)), 0); err != nil {
		return pkgerrors.Wrapf(err, "failed to arm %s", l.WakeAlarmPath)
	}
	logrus.WithField("seconds", secs).Debug("wake alarm armed")
	return nil
}

type dbusLoginManager struct {
	conn *dbus.Conn
}

func connectLogind() (loginManager, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, err
	}
	return &dbusLoginManager{conn: conn}, nil
}

func (m *dbusLoginManager) PrepareForSleep() (<-chan bool, func(), error) {
	opts := []dbus.MatchOption{
		dbus.WithMatchObjectPath(logindPath),
		dbus.WithMatchInterface(logindManagerIfc),
		dbus.WithMatchMember("PrepareForSleep"),
	}
	if err := m.conn.AddMatchSignal(opts...); err != nil {
		return nil, nil, err
	}

	signals := make(chan *dbus.Signal, 8)
	m.conn.Signal(signals)

	out := make(chan bool, 8)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-signals:
				if sig == nil || sig.Name != logindManagerIfc+".PrepareForSleep" || len(sig.Body) != 1 {
					continue
				}
				if v, ok := sig.Body[0].(bool); ok {
					select {
					case out <- v:
					default:
					}
				}
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		m.conn.RemoveSignal(signals)
		_ = m.conn.RemoveMatchSignal(opts...)
	}
	return out, stop, nil
}

func (m *dbusLoginManager) Suspend() error {
	// The argument is "interactive": do not prompt for authentication.
	return m.conn.Object(logindService, logindPath).Call(logindManagerIfc+".Suspend", 0, false).Err
}

func (m *dbusLoginManager) Close() error {
	return m.conn.Close()
}
