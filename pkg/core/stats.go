package core

import (
	"sync"
	"time"

	"github.com/informaticafecor/OCRProyecto/pkg/types"
)

// BatchStatistics accumulates per-instance counters across batch runs.
// Counters only grow; Reset is the single way back to zero. All methods are
// safe for concurrent use.
type BatchStatistics struct {
	mu sync.Mutex

	filesProcessed int
	filesWithOCR   int
	filesCopied    int
	errors         int
	totalSize      int64
	workTime       time.Duration

	startTime time.Time
	endTime   time.Time
}

func NewBatchStatistics() *BatchStatistics {
	return &BatchStatistics{}
}

// Begin marks the start of a batch. Each batch re-anchors StartTime, so
// TotalDuration covers the most recent batch while the counters keep
// accumulating until Reset.
func (s *BatchStatistics) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startTime = time.Now()
}

// End marks the end of the most recent batch.
func (s *BatchStatistics) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endTime = time.Now()
}

// RecordSuccess counts one successfully processed file.
func (s *BatchStatistics) RecordSuccess(strategy types.ProcessingStrategy, size int64, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filesProcessed++
	s.totalSize += size
	s.workTime += elapsed
	switch strategy {
	case types.StrategyOCRApplied:
		s.filesWithOCR++
	case types.StrategyCopyOnly:
		s.filesCopied++
	}
}

// RecordError counts one failed file.
func (s *BatchStatistics) RecordError(elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors++
	s.workTime += elapsed
}

// Reset returns every counter to zero.
func (s *BatchStatistics) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filesProcessed = 0
	s.filesWithOCR = 0
	s.filesCopied = 0
	s.errors = 0
	s.totalSize = 0
	s.workTime = 0
	s.startTime = time.Time{}
	s.endTime = time.Time{}
}

// Snapshot computes a read-only view of the counters. Derived values follow
// the documented formulas: success rate is processed files over attempted
// files as a percentage, average time is accumulated work time over
// processed files.
func (s *BatchStatistics) Snapshot() types.StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := types.StatsSnapshot{
		FilesProcessed:     s.filesProcessed,
		FilesWithOCR:       s.filesWithOCR,
		FilesCopied:        s.filesCopied,
		Errors:             s.errors,
		TotalSizeProcessed: s.totalSize,
		StartTime:          s.startTime,
		EndTime:            s.endTime,
	}
	if !s.startTime.IsZero() && !s.endTime.IsZero() {
		snap.TotalDuration = s.endTime.Sub(s.startTime)
	}
	if attempted := s.filesProcessed + s.errors; attempted > 0 {
		snap.SuccessRate = float64(s.filesProcessed) / float64(attempted) * 100
	}
	if s.filesProcessed > 0 {
		snap.AverageTimePerFile = s.workTime / time.Duration(s.filesProcessed)
	}
	return snap
}
