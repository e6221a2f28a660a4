package core

import (
	"sync"
	"testing"
	"time"

	"github.com/informaticafecor/OCRProyecto/pkg/types"
)

func TestStatisticsCounters(t *testing.T) {
	s := NewBatchStatistics()
	s.Begin()
	s.RecordSuccess(types.StrategyOCRApplied, 1000, time.Second)
	s.RecordSuccess(types.StrategyCopyOnly, 500, time.Second)
	s.RecordSuccess(types.StrategyOCRApplied, 2000, 4*time.Second)
	s.RecordError(time.Second)
	s.End()

	snap := s.Snapshot()
	if snap.FilesProcessed != 3 {
		t.Errorf("FilesProcessed = %d, want 3", snap.FilesProcessed)
	}
	if snap.FilesWithOCR != 2 {
		t.Errorf("FilesWithOCR = %d, want 2", snap.FilesWithOCR)
	}
	if snap.FilesCopied != 1 {
		t.Errorf("FilesCopied = %d, want 1", snap.FilesCopied)
	}
	if snap.Errors != 1 {
		t.Errorf("Errors = %d, want 1", snap.Errors)
	}
	if snap.TotalSizeProcessed != 3500 {
		t.Errorf("TotalSizeProcessed = %d, want 3500", snap.TotalSizeProcessed)
	}
	if snap.SuccessRate != 75 {
		t.Errorf("SuccessRate = %v, want 75", snap.SuccessRate)
	}
	if snap.AverageTimePerFile != 2*time.Second {
		t.Errorf("AverageTimePerFile = %v, want 2s", snap.AverageTimePerFile)
	}
	if snap.TotalDuration < 0 {
		t.Errorf("TotalDuration must be non-negative, got %v", snap.TotalDuration)
	}
}

func TestStatisticsEmptySnapshot(t *testing.T) {
	snap := NewBatchStatistics().Snapshot()
	if snap.SuccessRate != 0 {
		t.Errorf("SuccessRate on empty stats = %v, want 0", snap.SuccessRate)
	}
	if snap.AverageTimePerFile != 0 {
		t.Errorf("AverageTimePerFile on empty stats = %v, want 0", snap.AverageTimePerFile)
	}
}

func TestStatisticsReset(t *testing.T) {
	s := NewBatchStatistics()
	s.Begin()
	s.RecordSuccess(types.StrategyOCRApplied, 100, time.Second)
	s.RecordError(time.Second)
	s.Reset()

	snap := s.Snapshot()
	if snap.FilesProcessed != 0 || snap.Errors != 0 || snap.TotalSizeProcessed != 0 {
		t.Errorf("counters survived reset: %+v", snap)
	}
	if !snap.StartTime.IsZero() {
		t.Error("StartTime survived reset")
	}
}

func TestStatisticsConcurrentUpdates(t *testing.T) {
	s := NewBatchStatistics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.RecordSuccess(types.StrategyOCRApplied, 10, time.Millisecond)
		}()
		go func() {
			defer wg.Done()
			s.RecordError(time.Millisecond)
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if snap.FilesProcessed != 50 || snap.Errors != 50 {
		t.Errorf("lost updates: processed=%d errors=%d", snap.FilesProcessed, snap.Errors)
	}
}
