package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

var (
	promptColor  = color.New(color.FgGreen, color.Bold)
	headingColor = color.New(color.FgCyan, color.Bold)
	okColor      = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errColor     = color.New(color.FgRed)
	dimColor     = color.New(color.Faint)
)

func (a *App) heading(format string, args ...any) {
	headingColor.Fprintf(a.out, "\n"+format+"\n", args...)
}

func (a *App) info(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

func (a *App) success(format string, args ...any) {
	okColor.Fprintf(a.out, "✓ "+format+"\n", args...)
}

func (a *App) warn(format string, args ...any) {
	warnColor.Fprintf(a.out, format+"\n", args...)
}

func (a *App) failure(err error) {
	errColor.Fprintf(a.out, "Error: %v\n", err)
}

// byteBar tracks an upload of size bytes. Writes to it advance the bar.
func byteBar(w io.Writer, size int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionClearOnFinish(),
	)
}

// spin shows a spinner on w while fn runs.
func spin(w io.Writer, description string, fn func() error) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(100 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				_ = bar.Add(1)
			}
		}
	}()

	err := fn()
	close(done)
	wg.Wait()
	_ = bar.Finish()
	return err
}
