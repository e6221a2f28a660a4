package types

import "testing"

func TestProcessingNeeded(t *testing.T) {
	cases := []struct {
		name     string
		hasText  bool
		forceOCR bool
		want     bool
	}{
		{"scanned document", false, false, true},
		{"scanned document forced", false, true, true},
		{"searchable document", true, false, false},
		{"searchable document forced", true, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &AnalysisResult{HasEmbeddedText: tc.hasText}
			if got := a.ProcessingNeeded(tc.forceOCR); got != tc.want {
				t.Errorf("ProcessingNeeded(%v) = %v, want %v", tc.forceOCR, got, tc.want)
			}
		})
	}
}

func TestDefaultOCROptions(t *testing.T) {
	opts := DefaultOCROptions("spa")

	if opts.Language != "spa" {
		t.Errorf("Language = %q", opts.Language)
	}
	if opts.Optimize != 1 {
		t.Errorf("Optimize = %d, want 1", opts.Optimize)
	}
	if !opts.Clean || !opts.Deskew || !opts.RotatePages {
		t.Error("Clean, Deskew and RotatePages should default on")
	}
	if opts.RemoveBackground {
		t.Error("RemoveBackground should default off")
	}
	if opts.JPEGQuality != 85 || opts.PNGQuality != 85 {
		t.Errorf("quality defaults = %d/%d, want 85/85", opts.JPEGQuality, opts.PNGQuality)
	}
	if opts.SkipBigMB != 100.0 {
		t.Errorf("SkipBigMB = %v, want 100", opts.SkipBigMB)
	}
	if opts.MaxImageMPixels != 128 {
		t.Errorf("MaxImageMPixels = %d, want 128", opts.MaxImageMPixels)
	}
	if opts.ForceOCR {
		t.Error("ForceOCR should default off")
	}
	if !opts.InvalidateDigitalSignatures {
		t.Error("InvalidateDigitalSignatures should default on")
	}
}

func TestSkipTextIsInverseOfForceOCR(t *testing.T) {
	opts := DefaultOCROptions("eng")
	if !opts.SkipText() {
		t.Error("SkipText should be true when ForceOCR is false")
	}
	opts.ForceOCR = true
	if opts.SkipText() {
		t.Error("SkipText should be false when ForceOCR is true")
	}
}

func TestProgressEventFailed(t *testing.T) {
	if (ProgressEvent{Percent: 0}).Failed() {
		t.Error("zero percent is not a failure")
	}
	if (ProgressEvent{Percent: 100}).Failed() {
		t.Error("complete is not a failure")
	}
	if !(ProgressEvent{Percent: -1}).Failed() {
		t.Error("-1 is the failure sentinel")
	}
}
