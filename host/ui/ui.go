// host/ui/ui.go
package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"lostwheel-go/host/acquire"
)

type State int

const (
	StateIdle State = iota
	StateMonitor
	StateRecord
)

func (s State) String() string {
	switch s {
	case StateMonitor:
		return "Monitoring"
	case StateRecord:
		return "Recording"
	default:
		return "Idle"
	}
}

// Hooks connect the window to the recording pipeline. StartRecord opens a
// session (CSV file, database rows), Append stores one measurement, and
// StopRecord closes the session.
type Hooks struct {
	StartRecord func(session string) error
	Append      func(m acquire.Measurement) error
	StopRecord  func() error
}

// WheelUI is the desktop window: a live revolution counter, a session
// timer and the Monitor / Record / Stop controls.
type WheelUI struct {
	log          zerolog.Logger
	hooks        Hooks
	measurements <-chan acquire.Measurement

	mtx   sync.Mutex
	state State
	total uint64
}

func New(measurements <-chan acquire.Measurement, hooks Hooks, log zerolog.Logger) *WheelUI {
	return &WheelUI{log: log, hooks: hooks, measurements: measurements}
}

// timer renders mm:ss since its start time once per second.
type timer struct {
	mtx       sync.Mutex
	startTime time.Time
	running   bool
	text      *canvas.Text
	stop      chan struct{}
}

func newTimer() *timer {
	return &timer{
		text: canvas.NewText("00:00", nil),
		stop: make(chan struct{}),
	}
}

func (t *timer) Start(at time.Time) {
	t.mtx.Lock()
	t.startTime = at
	t.running = true
	t.mtx.Unlock()
}

func (t *timer) Pause() {
	t.mtx.Lock()
	t.running = false
	t.mtx.Unlock()
}

func (t *timer) Stop() { close(t.stop) }

func (t *timer) Go() {
	go func() {
		for range time.Tick(time.Second) {
			select {
			case <-t.stop:
				return
			default:
			}
			fyne.Do(func() {
				t.mtx.Lock()
				defer t.mtx.Unlock()
				if !t.running {
					return
				}
				elapsed := time.Since(t.startTime)
				minutes := int(elapsed.Minutes())
				seconds := int(elapsed.Seconds()) % 60
				t.text.Text = fmt.Sprintf("%02d:%02d", minutes, seconds)
				t.text.Refresh()
			})
		}
	}()
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
func (ui *WheelUI) Run(ctx context.Context) {
	application := app.New()
	window := application.NewWindow("LostWheel")

	countText := canvas.NewText("0", nil)
	countText.TextSize = 48
	stateLabel := widget.NewLabel(StateIdle.String())
	sessionTimer := newTimer()
	sessionTimer.Go()

	var monitorBtn, recordBtn, stopBtn *widget.Button

	setState := func(s State) {
		ui.mtx.Lock()
		ui.state = s
		ui.total = 0
		ui.mtx.Unlock()
		stateLabel.SetText(s.String())
		countText.Text = "0"
		countText.Refresh()
		monitorBtn.Enable()
		recordBtn.Enable()
		stopBtn.Enable()
		switch s {
		case StateIdle:
			stopBtn.Disable()
			sessionTimer.Pause()
		case StateMonitor:
			monitorBtn.Disable()
			sessionTimer.Start(time.Now())
		case StateRecord:
			monitorBtn.Disable()
			recordBtn.Disable()
			sessionTimer.Start(time.Now())
		}
	}

	monitorBtn = widget.NewButton("Monitor", func() {
		setState(StateMonitor)
	})
	recordBtn = widget.NewButton("Record", func() {
		session := time.Now().Format("20060102-150405")
		if err := ui.hooks.StartRecord(session); err != nil {
			ui.log.Error().Err(err).Msg("start recording")
			return
		}
		setState(StateRecord)
	})
	stopBtn = widget.NewButton("Stop", func() {
		ui.mtx.Lock()
		wasRecording := ui.state == StateRecord
		ui.mtx.Unlock()
		if wasRecording {
			if err := ui.hooks.StopRecord(); err != nil {
				ui.log.Error().Err(err).Msg("stop recording")
			}
		}
		setState(StateIdle)
	})

	go ui.consume(ctx, countText)

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			application.Quit()
		})
	}()

	window.SetContent(container.NewVBox(
		container.NewHBox(
			container.NewPadded(countText),
			layout.NewSpacer(),
			container.NewPadded(sessionTimer.text),
		),
		stateLabel,
		container.NewGridWithColumns(3, monitorBtn, recordBtn, stopBtn),
	))
	window.Resize(fyne.NewSize(360, 200))

	stopBtn.Disable()
	window.ShowAndRun()
	sessionTimer.Stop()
}

// consume drains the measurement stream, keeps the running total and
// forwards rows to the recording hooks while a session is active.
func (ui *WheelUI) consume(ctx context.Context, countText *canvas.Text) {
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ui.measurements:
			if !ok {
				return
			}
			ui.mtx.Lock()
			state := ui.state
			if state != StateIdle {
				ui.total += uint64(m.Count)
			}
			total := ui.total
			ui.mtx.Unlock()

			if state == StateIdle {
				continue
			}
			if state == StateRecord && ui.hooks.Append != nil {
				if err := ui.hooks.Append(m); err != nil {
					ui.log.Error().Err(err).Msg("append measurement")
				}
			}
			fyne.Do(func() {
				countText.Text = fmt.Sprintf("%d", total)
				countText.Refresh()
			})
		}
	}
}
