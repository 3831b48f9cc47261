package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Veraticus/sortbin/internal/common"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	results []model.ClassificationResult
	mu      sync.Mutex
}

func (s *recordingSink) SetResult(result model.ClassificationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// fakeClassifier counts calls and tracks how many are in flight at once.
type fakeClassifier struct {
	err         error
	release     chan struct{}
	started     chan struct{}
	result      model.ClassificationResult
	calls       atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeClassifier) Classify(ctx context.Context, _ model.Image) (model.ClassificationResult, error) {
	f.calls.Add(1)
	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		prev := f.maxInFlight.Load()
		if current <= prev || f.maxInFlight.CompareAndSwap(prev, current) {
			break
		}
	}

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return model.ClassificationResult{}, ctx.Err()
		}
	}
	return f.result, f.err
}

func plasticResult() model.ClassificationResult {
	return model.ClassificationResult{
		PredictedClass: "plastic",
		Confidence:     0.7,
		AllScores: model.Scores{
			{Class: "plastic", Probability: 0.7},
			{Class: "paper", Probability: 0.2},
			{Class: "glass", Probability: 0.1},
		},
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestWorkflow_SelectPath_Image(t *testing.T) {
	w := NewWorkflow(&recordingSink{})
	path := writeFile(t, "bottle.png", pngBytes(t, 4, 3))

	require.NoError(t, w.SelectPath(path))

	assert.Equal(t, StateFileSelected, w.State())
	assert.True(t, w.CanSubmit())

	img, preview, ok := w.Selected()
	require.True(t, ok)
	assert.Equal(t, "bottle.png", img.Name)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, "PNG", preview.Format)
	assert.Equal(t, "4×3", preview.Dimensions())
}

func TestWorkflow_NonImageNeverReachesGateway(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		data  []byte
		prior bool
	}{
		{name: "text file without prior selection", file: "notes.txt", data: []byte("hello")},
		{name: "text file keeps prior selection", file: "notes.txt", data: []byte("hello"), prior: true},
		{name: "pdf", file: "scan.pdf", data: []byte("%PDF-1.4"), prior: true},
		{name: "unknown extension sniffed as text", file: "blob.xyz123", data: []byte("plain words")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := &fakeClassifier{result: plasticResult()}
			w := NewWorkflow(&recordingSink{})

			var priorPath string
			if tt.prior {
				priorPath = writeFile(t, "prior.png", pngBytes(t, 2, 2))
				require.NoError(t, w.SelectPath(priorPath))
			}

			err := w.SelectPath(writeFile(t, tt.file, tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidFileType)
			assert.Equal(t, "invalid file type", common.UserMessage(w.Err()))
			assert.Equal(t, StateError, w.State())

			img, _, ok := w.Selected()
			if tt.prior {
				assert.Equal(t, StateFileSelected, w.Phase())
				require.True(t, ok)
				assert.Equal(t, "prior.png", img.Name)
			} else {
				assert.Equal(t, StateIdle, w.Phase())
				assert.False(t, ok)
				_, submitErr := w.Submit(context.Background(), classifier)
				assert.ErrorIs(t, submitErr, common.ErrNoFileSelected)
			}

			assert.Equal(t, int32(0), classifier.calls.Load())
		})
	}
}

func TestWorkflow_DragAndDrop(t *testing.T) {
	w := NewWorkflow(nil)

	w.DragEnter()
	assert.True(t, w.Dragging())
	assert.Equal(t, StateIdle, w.State())

	w.DragLeave()
	assert.False(t, w.Dragging())

	w.DragEnter()
	err := w.Drop(writeFile(t, "notes.txt", []byte("text")))
	assert.ErrorIs(t, err, common.ErrInvalidFileType)
	assert.False(t, w.Dragging())

	require.NoError(t, w.Drop(writeFile(t, "can.png", pngBytes(t, 1, 1))))
	assert.Equal(t, StateFileSelected, w.State())
}

func TestWorkflow_Submit_Success(t *testing.T) {
	sink := &recordingSink{}
	classifier := &fakeClassifier{result: plasticResult()}
	w := NewWorkflow(sink)
	require.NoError(t, w.Select(model.Image{Name: "a.png", ContentType: "image/png", Data: pngBytes(t, 1, 1)}))

	result, err := w.Submit(context.Background(), classifier)
	require.NoError(t, err)

	assert.Equal(t, "plastic", result.PredictedClass)
	assert.Equal(t, StateIdle, w.State())
	assert.Equal(t, 1, sink.count())
	assert.True(t, w.CanSubmit(), "selection is kept so the image can be resubmitted")
}

func TestWorkflow_Submit_FailureKeepsSelection(t *testing.T) {
	sink := &recordingSink{}
	classifier := &fakeClassifier{err: &common.ServiceError{Op: "classify", StatusCode: 500, Body: "model offline"}}
	w := NewWorkflow(sink)
	require.NoError(t, w.Select(model.Image{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}}))

	_, err := w.Submit(context.Background(), classifier)
	require.Error(t, err)

	assert.Equal(t, StateError, w.State())
	assert.Equal(t, StateIdle, w.Phase())
	assert.Contains(t, common.UserMessage(w.Err()), "Error processing image:")
	assert.Contains(t, common.UserMessage(w.Err()), "model offline")
	assert.Equal(t, 0, sink.count())

	// Retry succeeds with the preserved selection.
	classifier.err = nil
	classifier.result = plasticResult()
	_, err = w.Submit(context.Background(), classifier)
	require.NoError(t, err)
	assert.Equal(t, 1, sink.count())
	assert.NoError(t, w.Err())
}

func TestWorkflow_AtMostOneSubmissionInFlight(t *testing.T) {
	classifier := &fakeClassifier{
		result:  plasticResult(),
		release: make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	sink := &recordingSink{}
	w := NewWorkflow(sink)
	require.NoError(t, w.Select(model.Image{Name: "a.png", ContentType: "image/png", Data: []byte{1}}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = w.Submit(context.Background(), classifier)
	}()
	<-classifier.started

	assert.Equal(t, StateSubmitting, w.State())
	assert.False(t, w.CanSubmit())

	var rejected atomic.Int32
	var inner sync.WaitGroup
	for range 10 {
		inner.Add(1)
		go func() {
			defer inner.Done()
			if _, err := w.Submit(context.Background(), classifier); errors.Is(err, common.ErrSubmissionInFlight) {
				rejected.Add(1)
			}
		}()
	}
	inner.Wait()

	close(classifier.release)
	wg.Wait()

	assert.Equal(t, int32(10), rejected.Load())
	assert.Equal(t, int32(1), classifier.calls.Load())
	assert.Equal(t, int32(1), classifier.maxInFlight.Load())
	assert.Equal(t, 1, sink.count())
}

func TestWorkflow_StaleCompletionDiscarded(t *testing.T) {
	sink := &recordingSink{}
	w := NewWorkflow(sink)
	require.NoError(t, w.Select(model.Image{Name: "a.png", ContentType: "image/png", Data: []byte{1}}))

	req, err := w.BeginSubmit()
	require.NoError(t, err)

	w.Reset()
	assert.False(t, w.CompleteSubmit(req, plasticResult(), nil))
	assert.Equal(t, 0, sink.count())
	assert.Equal(t, StateIdle, w.State())

	_, err = w.BeginSubmit()
	assert.ErrorIs(t, err, common.ErrNoFileSelected)
}

func TestWorkflow_MaxBytes(t *testing.T) {
	w := NewWorkflow(nil, WithMaxBytes(4))

	err := w.Select(model.Image{Name: "big.png", ContentType: "image/png", Data: []byte("12345")})
	assert.ErrorIs(t, err, common.ErrFileTooLarge)
	assert.True(t, IsValidationError(err))

	assert.NoError(t, w.Select(model.Image{Name: "ok.png", ContentType: "image/png", Data: []byte("1234")}))

	unlimited := NewWorkflow(nil, WithMaxBytes(0))
	assert.NoError(t, unlimited.Select(model.Image{Name: "big.png", ContentType: "image/png", Data: make([]byte, 64)}))
}

func TestWorkflow_SelectPath_Missing(t *testing.T) {
	w := NewWorkflow(nil)
	err := w.SelectPath(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
	assert.Equal(t, StateError, w.State())

	err = w.SelectPath(t.TempDir())
	assert.ErrorIs(t, err, common.ErrInvalidFileType)
}

func TestDeclaredType(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
		data []byte
	}{
		{name: "jpeg by extension", file: "a.JPG", want: "image/jpeg"},
		{name: "png by extension", file: "a.png", want: "image/png"},
		{name: "text by extension", file: "a.txt", want: "text/plain"},
		{name: "sniffed png", file: "noext", data: []byte("\x89PNG\r\n\x1a\n0000"), want: "image/png"},
		{name: "nothing to go on", file: "noext", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeclaredType(tt.file, tt.data))
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Idle", StateIdle.String())
	assert.Equal(t, "FileSelected", StateFileSelected.String())
	assert.Equal(t, "Submitting", StateSubmitting.String())
	assert.Equal(t, "Error", StateError.String())
	assert.Equal(t, "Unknown(9)", State(9).String())
}
