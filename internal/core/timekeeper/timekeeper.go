package timekeeper

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/stats"
	"timekeeper/internal/core/timevalue"
)

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	QueueSize    int
}

// TimeKeeper owns the state machine aggregate. Commands are processed one at a
// time by a single loop goroutine; nothing else touches the live state.
type TimeKeeper struct {
	options  Config
	ports    Ports
	state    State
	commands chan Command
	results  chan PersistResult
	persist  *persistQueue

	mu       sync.Mutex
	snapshot State
	events   []chan Event
	running  bool
	cancel   context.CancelFunc
	loopDone chan struct{}
	saveDone chan struct{}
}

type persistJob struct {
	target PersistTarget
	run    func() (string, error)
}

// persistQueue is an unbounded FIFO so the event loop never waits on the writer.
type persistQueue struct {
	mu     sync.Mutex
	jobs   []persistJob
	closed bool
	signal chan struct{}
}

func newPersistQueue() *persistQueue {
	return &persistQueue{signal: make(chan struct{}, 1)}
}

func (queue *persistQueue) push(job persistJob) {
	queue.mu.Lock()
	queue.jobs = append(queue.jobs, job)
	queue.mu.Unlock()
	queue.wake()
}

func (queue *persistQueue) close() {
	queue.mu.Lock()
	queue.closed = true
	queue.mu.Unlock()
	queue.wake()
}

// pop blocks until a job is queued. It reports false once the queue is closed
// and drained.
func (queue *persistQueue) pop() (persistJob, bool) {
	for {
		queue.mu.Lock()
		if len(queue.jobs) > 0 {
			job := queue.jobs[0]
			queue.jobs[0] = persistJob{}
			queue.jobs = queue.jobs[1:]
			queue.mu.Unlock()
			return job, true
		}
		closed := queue.closed
		queue.mu.Unlock()
		if closed {
			return persistJob{}, false
		}
		<-queue.signal
	}
}

func (queue *persistQueue) wake() {
	select {
	case queue.signal <- struct{}{}:
	default:
	}
}

type closeLoop struct{}

func (closeLoop) command() {}

// New creates a TimeKeeper around state.
func New(state State, ports Ports, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.QueueSize <= 0 {
		options.QueueSize = 64
	}
	if ports.FormatDate == nil {
		ports.FormatDate = DefaultDateFormat
	}

	return &TimeKeeper{
		options:  options,
		ports:    ports,
		state:    state,
		snapshot: state,
		commands: make(chan Command, options.QueueSize),
		results:  make(chan PersistResult),
		persist:  newPersistQueue(),
		loopDone: make(chan struct{}),
		saveDone: make(chan struct{}),
	}
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Start launches the event loop and the persistence writer.
func (keeper *TimeKeeper) Start(ctx context.Context) {
	keeper.mu.Lock()
	if keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.running = true
	runCtx, cancel := context.WithCancel(ctx)
	keeper.cancel = cancel
	snapshot := keeper.snapshot
	keeper.mu.Unlock()

	keeper.emit(Event{Type: EventStateChange, State: snapshot, At: time.Now()})

	go keeper.persistLoop()
	go keeper.run(runCtx)
}

// Close processes the commands queued so far, waits for pending writes and
// closes observers. Close is a no-op before Start.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.running = false
	keeper.mu.Unlock()

	select {
	case keeper.commands <- closeLoop{}:
	case <-keeper.loopDone:
	}
	<-keeper.loopDone
	<-keeper.saveDone
	keeper.cancel()

	keeper.mu.Lock()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Dispatch queues command for the event loop.
func (keeper *TimeKeeper) Dispatch(command Command) {
	select {
	case keeper.commands <- command:
	case <-keeper.loopDone:
		log.Debug().Type("command", command).Msg("timekeeper closed, command dropped")
	}
}

// Snapshot returns a copy of the state as of the last processed command.
func (keeper *TimeKeeper) Snapshot() State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.snapshot
}

// TogglePause starts or pauses the timer.
func (keeper *TimeKeeper) TogglePause() { keeper.Dispatch(TogglePause{}) }

// Stop discards the running phase and pauses on a fresh work phase.
func (keeper *TimeKeeper) Stop() { keeper.Dispatch(Stop{}) }

// SaveSettings stores new phase lengths and persists them.
func (keeper *TimeKeeper) SaveSettings(work, rest timevalue.Duration) {
	keeper.Dispatch(SaveSettings{Work: work, Break: rest})
}

// SetNotifications toggles desktop notifications.
func (keeper *TimeKeeper) SetNotifications(enabled bool) {
	keeper.Dispatch(SetNotifications{Enabled: enabled})
}

// ApplyConfig replaces the config without persisting it.
func (keeper *TimeKeeper) ApplyConfig(config model.PhaseConfig) {
	keeper.Dispatch(ApplyConfig{Config: config})
}

// ClearStats drops the statistics log.
func (keeper *TimeKeeper) ClearStats() { keeper.Dispatch(ClearStats{}) }

// RemoveStat deletes the statistics entry shown at index, 0 being the oldest.
func (keeper *TimeKeeper) RemoveStat(index int, entry stats.Entry) {
	keeper.Dispatch(RemoveStat{Index: index, Entry: entry})
}

// ExportStats writes the statistics log as CSV.
func (keeper *TimeKeeper) ExportStats() { keeper.Dispatch(ExportStats{}) }

// PersistStats saves the statistics log.
func (keeper *TimeKeeper) PersistStats() { keeper.Dispatch(PersistStats{}) }

// WindowOpened acknowledges a modal window.
func (keeper *TimeKeeper) WindowOpened(handle WindowHandle) {
	keeper.Dispatch(WindowOpened{Handle: handle})
}

// WindowClosed reports that a modal window went away.
func (keeper *TimeKeeper) WindowClosed(handle WindowHandle) {
	keeper.Dispatch(WindowClosed{Handle: handle})
}

func (keeper *TimeKeeper) run(ctx context.Context) {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer func() {
		ticker.Stop()
		close(keeper.loopDone)
		keeper.persist.close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case tickTime := <-ticker.C:
			keeper.handle(Tick{At: tickTime})
		case result := <-keeper.results:
			keeper.handle(result)
		case command := <-keeper.commands:
			if _, ok := command.(closeLoop); ok {
				return
			}
			keeper.handle(command)
		}
	}
}

func (keeper *TimeKeeper) handle(command Command) {
	previous := keeper.state
	next, effects := Reduce(previous, command)
	keeper.state = next

	keeper.mu.Lock()
	keeper.snapshot = next
	keeper.mu.Unlock()

	if _, ticked := command.(Tick); ticked && previous.Phase != next.Phase {
		log.Info().
			Stringer("completed", previous.Phase).
			Uint16("elapsed", previous.Elapsed+1).
			Msg("phase completed")
	}

	now := time.Now()
	for _, effect := range effects {
		keeper.execute(effect, next, now)
	}
	keeper.publish(command, previous, next, now)
}

func (keeper *TimeKeeper) execute(effect Effect, state State, now time.Time) {
	switch effect := effect.(type) {
	case Notify:
		if keeper.ports.Notifier == nil {
			return
		}
		notifier := keeper.ports.Notifier
		go func() {
			if err := notifier.Notify(effect.Completed); err != nil {
				log.Warn().Err(err).Stringer("phase", effect.Completed).Msg("desktop notification failed")
			}
		}()

	case OpenModal:
		if keeper.ports.Windows != nil {
			keeper.ports.Windows.OpenModal(effect.Handle)
		}
	case CloseModal:
		if keeper.ports.Windows != nil {
			keeper.ports.Windows.CloseModal(effect.Handle)
		}
	case Maximize:
		if keeper.ports.Windows != nil {
			keeper.ports.Windows.Maximize(effect.Handle)
		}

	case SaveConfig:
		keeper.enqueue(TargetConfig, func(store Store) (string, error) {
			return "", store.SaveConfig(effect.Config)
		})
	case SaveStats:
		keeper.enqueue(TargetStats, func(store Store) (string, error) {
			return "", store.SaveStats(effect.Stats)
		})
	case ExportCSV:
		content := effect.Stats.CSV(keeper.ports.FormatDate)
		keeper.enqueue(TargetCSV, func(store Store) (string, error) {
			return store.ExportCSV(content)
		})

	case ReportError:
		log.Warn().Err(effect.Err).Msg("timekeeper error")
		keeper.emit(Event{Type: EventError, State: state, Message: effect.Err.Error(), At: now})
	}
}

func (keeper *TimeKeeper) enqueue(target PersistTarget, run func(Store) (string, error)) {
	store := keeper.ports.Store
	if store == nil {
		return
	}
	keeper.persist.push(persistJob{
		target: target,
		run:    func() (string, error) { return run(store) },
	})
}

// persistLoop writes in request order and reports each result back to the
// event loop while it is alive.
func (keeper *TimeKeeper) persistLoop() {
	defer close(keeper.saveDone)
	for {
		job, ok := keeper.persist.pop()
		if !ok {
			return
		}
		path, err := job.run()
		if err != nil {
			log.Error().Err(err).Str("target", string(job.target)).Msg("persistence failed")
		} else {
			log.Debug().Str("target", string(job.target)).Str("path", path).Msg("persisted")
		}

		select {
		case keeper.results <- PersistResult{Target: job.target, Path: path, Err: err}:
		case <-keeper.loopDone:
		}
	}
}

func (keeper *TimeKeeper) publish(command Command, previous, next State, now time.Time) {
	var eventType EventType
	message := ""

	switch command := command.(type) {
	case Tick:
		eventType = EventProgress
		if previous.Phase != next.Phase {
			keeper.emit(Event{Type: EventStatsChange, State: next, At: now})
			eventType = EventStateChange
		}
	case TogglePause, Stop:
		eventType = EventStateChange
	case SaveSettings, SetNotifications, ApplyConfig:
		eventType = EventConfigChange
	case ClearStats, RemoveStat:
		eventType = EventStatsChange
	case PersistResult:
		if command.Target != TargetCSV || command.Err != nil {
			return
		}
		eventType = EventExported
		message = command.Path
	default:
		return
	}

	keeper.emit(Event{Type: eventType, State: next, Message: message, At: now})
}

func (keeper *TimeKeeper) emit(event Event) {
	keeper.mu.Lock()
	events := append([]chan Event(nil), keeper.events...)
	keeper.mu.Unlock()

	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
