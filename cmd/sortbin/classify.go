package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/Veraticus/sortbin/internal/cli"
	"github.com/Veraticus/sortbin/internal/common"
	"github.com/Veraticus/sortbin/internal/config"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/service"
	"github.com/Veraticus/sortbin/internal/tui/viewmodel"
	"github.com/Veraticus/sortbin/internal/upload"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// classifyRecord is the outcome for one image.
type classifyRecord struct {
	Result *model.ClassificationResult `json:"result,omitempty" yaml:"result,omitempty"`
	Image  string                      `json:"image" yaml:"image"`
	Error  string                      `json:"error,omitempty" yaml:"error,omitempty"`

	Elapsed time.Duration `json:"-" yaml:"-"`
}

// resultFunc adapts a function to service.ResultSink.
type resultFunc func(model.ClassificationResult)

func (f resultFunc) SetResult(result model.ClassificationResult) { f(result) }

var _ service.ResultSink = resultFunc(nil)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <image>...",
		Short: "Classify one or more images",
		Long: `Upload images to the classification service and print the predicted
material with the full score breakdown.

Each image goes through its own upload workflow, so a bad file never stops
the rest of the batch. Successful classifications are recorded in the
service history.

Examples:
  sortbin classify bottle.jpg              # Classify a single image
  sortbin classify photos/*.png -c 8       # Classify a batch, 8 at a time
  sortbin classify can.jpg --output json   # Machine-readable output`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().IntP("concurrency", "c", 4, "number of images uploaded at once")
	addOutputFlag(cmd)

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", concurrency)
	}

	maxBytes, err := config.MaxUploadBytes(viper.GetViper())
	if err != nil {
		return err
	}

	gw, err := newGateway()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var done atomic.Int64
	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx = handler.HandleInterrupts(ctx, func() (int, int) {
		return int(done.Load()), len(args)
	})

	slog.Info("Classifying images", "count", len(args), "concurrency", concurrency)

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(args), "Classifying")
	records := classifyAll(ctx, gw, args, concurrency, maxBytes, func() {
		done.Add(1)
		if err := bar.Add(1); err != nil {
			slog.Debug("Failed to update progress bar", "error", err)
		}
	})

	if handler.WasInterrupted() {
		return nil
	}

	out := cmd.OutOrStdout()
	if format != cli.FormatTable {
		if err := cli.Encode(out, format, records); err != nil {
			return err
		}
	} else {
		printClassifyTable(out, records)
	}

	failed := 0
	for _, r := range records {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d images could not be classified", failed, len(records))
	}
	return nil
}

// classifyAll runs one workflow per path, at most limit at a time. Records
// keep the order of paths.
func classifyAll(ctx context.Context, classifier service.Classifier, paths []string, limit int, maxBytes int64, onDone func()) []classifyRecord {
	records := make([]classifyRecord, len(paths))

	var g errgroup.Group
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			records[i] = classifyOne(ctx, classifier, path, maxBytes)
			onDone()
			return nil
		})
	}
	_ = g.Wait()

	return records
}

func classifyOne(ctx context.Context, classifier service.Classifier, path string, maxBytes int64) classifyRecord {
	record := classifyRecord{Image: path}

	if err := ctx.Err(); err != nil {
		record.Error = common.UserMessage(err)
		return record
	}

	var result *model.ClassificationResult
	wf := upload.NewWorkflow(resultFunc(func(r model.ClassificationResult) {
		result = &r
	}), upload.WithMaxBytes(maxBytes))

	if err := wf.SelectPath(config.ExpandPath(path)); err != nil {
		record.Error = common.UserMessage(err)
		return record
	}

	start := time.Now()
	if _, err := wf.Submit(ctx, classifier); err != nil {
		record.Error = common.UserMessage(wf.Err())
		return record
	}

	record.Result = result
	record.Elapsed = time.Since(start)
	return record
}

func printClassifyTable(w io.Writer, records []classifyRecord) {
	// A single successful image gets the full breakdown.
	if len(records) == 1 && records[0].Result != nil {
		printResult(w, records[0])
		return
	}

	fmt.Fprintln(w, cli.FormatTitle("Classification Results"))

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		if r.Result == nil {
			rows = append(rows, []string{filepath.Base(r.Image), "-", "-", "-", cli.StyleError(r.Error)})
			continue
		}
		view := viewmodel.NewResultView(*r.Result)
		rows = append(rows, []string{
			filepath.Base(r.Image),
			view.Predicted.Icon + " " + cli.StyleMaterial(view.Predicted.DisplayName),
			view.ConfidenceText,
			viewmodel.FormatDuration(r.Elapsed),
			cli.StyleSuccess("ok"),
		})
	}
	fmt.Fprintln(w, cli.RenderTable([]string{"Image", "Material", "Confidence", "Time", "Status"}, rows))
}

func printResult(w io.Writer, record classifyRecord) {
	view := viewmodel.NewResultView(*record.Result)

	fmt.Fprintln(w, cli.FormatTitle("Classification Result"))
	fmt.Fprintf(w, "Image:      %s\n", filepath.Base(record.Image))
	fmt.Fprintf(w, "Material:   %s %s\n", view.Predicted.Icon, cli.StyleMaterial(view.Predicted.DisplayName))
	fmt.Fprintf(w, "Confidence: %s (%s)\n", view.ConfidenceText, view.ConfidenceLevel)
	fmt.Fprintf(w, "Time:       %s\n", viewmodel.FormatDuration(record.Elapsed))
	if view.PredictedMissing {
		fmt.Fprintln(w, cli.FormatWarning("The predicted class is missing from the score breakdown."))
	}

	rows := make([][]string, 0, len(view.Scores))
	for _, s := range view.Scores {
		name := s.DisplayName
		if s.Predicted {
			name = "▸ " + name
		}
		rows = append(rows, []string{s.Icon + " " + name, s.PercentText})
	}
	fmt.Fprintln(w, cli.RenderTable([]string{"Material", "Probability"}, rows))

	if view.Predicted.Known {
		fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("Learn how to recycle it: sortbin reference %s", view.Predicted.Name)))
	}
}
