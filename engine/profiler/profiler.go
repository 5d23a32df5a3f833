package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"
)

// Stats is one reporting window of simulation and memory statistics.
type Stats struct {
	TicksPerSecond  float64
	FramesPerSecond float64
	AvgTickCost     time.Duration
	MaxTickCost     time.Duration
	HeapMB          float64
	AllocRateMB     float64
	SysMB           float64
	GCCount         uint32
	LastPauseUs     uint64
	MaxPauseUs      uint64
}

// Profiler tracks tick rate, tick cost, frame rate and memory statistics.
// The tick goroutine calls RecordTick and the frame consumer calls Frame; whichever call
// closes the reporting window logs the stats. Safe for concurrent use.
type Profiler struct {
	mu *sync.Mutex

	tickCount      int
	tickCost       time.Duration
	maxTickCost    time.Duration
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats

	now func() time.Time
}

// NewProfiler creates a new Profiler reporting every interval.
// Intervals <= 0 default to 1 second.
//
// Parameters:
//   - interval: the reporting window
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		mu:             &sync.Mutex{},
		lastTime:       time.Now(),
		updateInterval: interval,
		now:            time.Now,
	}
}

// RecordTick accounts one simulation tick that took cost to run.
//
// Parameters:
//   - cost: wall time spent in the tick
//
// Returns:
//   - bool: true if stats were logged by this call
func (p *Profiler) RecordTick(cost time.Duration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tickCount++
	p.tickCost += cost
	p.maxTickCost = max(p.maxTickCost, cost)
	return p.maybeReport()
}

// Frame accounts one delivered frame.
//
// Returns:
//   - bool: true if stats were logged by this call
func (p *Profiler) Frame() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frameCount++
	return p.maybeReport()
}

// Last returns the stats of the most recently closed reporting window.
func (p *Profiler) Last() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// maybeReport closes the window and logs if the interval has elapsed. Caller must hold the mutex.
func (p *Profiler) maybeReport() bool {
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}
	secs := elapsed.Seconds()

	s := Stats{
		TicksPerSecond:  float64(p.tickCount) / secs,
		FramesPerSecond: float64(p.frameCount) / secs,
		MaxTickCost:     p.maxTickCost,
	}
	if p.tickCount > 0 {
		s.AvgTickCost = p.tickCost / time.Duration(p.tickCount)
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap. TotalAlloc: cumulative (tracks churn). Sys: obtained from the OS.
	s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	s.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / secs

	s.GCCount = p.memStats.NumGC
	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	log.Printf("[Profiler] TPS: %.2f | FPS: %.2f | Tick: avg %s max %s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.TicksPerSecond, s.FramesPerSecond, s.AvgTickCost, s.MaxTickCost, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)

	p.last = s
	p.tickCount = 0
	p.tickCost = 0
	p.maxTickCost = 0
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
