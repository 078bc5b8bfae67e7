package pipeline

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"framepipe/executor"
	"framepipe/frame"
	"framepipe/mysync"
	"framepipe/stage"
)

// Pipeline owns an ordered list of executors, a shared atomic
// frame-id counter, and the worker goroutines that drive frames through
// every executor in declaration order. Grounded on the teacher's
// scheduler.Config-driven RunPipeBSP (scheduler/PipeBSP.go): that
// function spawns nThreads goroutines per phase, each draining a
// channel of ws.Runnable tasks; this Pipeline spawns Workers goroutines
// that instead draw frame ids from a shared atomic counter and walk the
// executor list directly, since there is no upstream task source to
// channel in.
type Pipeline struct {
	cfg       Config
	metrics   *metrics
	stop      *mysync.StopFlag
	mu        sync.Mutex
	executors []executor.Executor
	started   bool
	nextID    atomic.Uint64
}

// New returns an empty Pipeline. reg may be nil to use the default
// Prometheus registry.
func New(cfg Config, reg prometheus.Registerer) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		metrics: newMetrics(reg),
		stop:    mysync.NewStopFlag(),
	}
}

// Stop asks the pipeline's workers to exit after their current frame,
// without waiting for the configured frame budget to be reached.
func (p *Pipeline) Stop() { p.stop.Stop() }

// Add inspects s's policy, wraps it in the matching executor, and
// appends it to the pipeline's stage list. Add must not be called after
// Start; doing so returns ErrAlreadyStarted.
func (p *Pipeline) Add(s stage.Stage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return fmt.Errorf("%w: stage %q", ErrAlreadyStarted, s.Name())
	}
	exe, err := executor.New(s)
	if err != nil {
		return err
	}
	p.executors = append(p.executors, exe)
	return nil
}

// Start spawns the configured worker count and blocks until every
// worker exits, either because the frame budget was exhausted, Stop
// was called, or a stage panicked on that worker's frame (the other
// workers keep running). Re-starting a Pipeline is not supported.
func (p *Pipeline) Start() {
	p.mu.Lock()
	p.started = true
	executors := p.executors
	p.mu.Unlock()

	budget := p.cfg.frameBudget()
	logger := p.cfg.logger()
	frame.SetLogger(logger)

	var wg sync.WaitGroup
	workers := p.cfg.workers()
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(workerIdx int) {
			defer wg.Done()
			p.runWorker(workerIdx, executors, budget, logger)
		}(w)
	}
	wg.Wait()
}

func (p *Pipeline) runWorker(workerIdx int, executors []executor.Executor, budget uint64, logger *zap.Logger) {
	p.metrics.workersRunning.Inc()
	defer p.metrics.workersRunning.Dec()

	ctx := frame.New()
	for {
		if p.stop.Stopped() {
			return
		}
		id := p.nextID.Add(1) - 1
		if id >= budget {
			return
		}

		ctx.Clear()
		ctx.SetFrameID(id)
		if p.cfg.AutoStamp {
			ctx.SetTime(time.Now())
		}

		if !p.runFrame(ctx, executors, logger, workerIdx) {
			return
		}
		p.metrics.framesProcessed.Inc()
	}
}

// runFrame walks ctx through every executor, recovering a stage panic
// so that one worker's fatal error does not take down the others. The
// bool return reports whether the frame completed every stage; on false
// the calling worker stops drawing frames.
func (p *Pipeline) runFrame(ctx *frame.Context, executors []executor.Executor, logger *zap.Logger, workerIdx int) (completed bool) {
	var stageName string
	defer func() {
		if r := recover(); r != nil {
			logger.Error("stage panicked; abandoning frame",
				zap.Uint64("frame_id", ctx.FrameID()),
				zap.String("stage", stageName),
				zap.Int("worker", workerIdx),
				zap.Any("panic", r),
			)
			completed = false
		}
	}()

	for _, exe := range executors {
		stageName = exe.Stage().Name()
		start := time.Now()
		exe.Run(ctx)
		p.metrics.stageDuration.WithLabelValues(exe.Stage().Name()).Observe(time.Since(start).Seconds())
	}
	return true
}
