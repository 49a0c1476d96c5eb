// Soak runner for the TodoMVC app.
//
// This tool drives the app through full CRUD cycles for a long period and
// monitors it for failing operations, todos that survive a cycle, and
// growth of the page's JavaScript heap or DOM.
//
// Usage:
//
//	go run ./cmd/todomvc-soak -duration 1h
//	go run ./cmd/todomvc-soak -duration 10m -url https://todomvc.com/examples/javascript-es6/dist/
//
// Browser selection follows the E2E suite: TODOMVC_BROWSER_BIN,
// TODOMVC_CONTROL_URL and TODOMVC_HEADLESS are honored.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/thesyncim/todomvc/cmd/todomvc-server/server"
	"github.com/thesyncim/todomvc/pkg/todomvc"
	"github.com/thesyncim/todomvc/pkg/todomvc/testutil"
)

// SoakResult contains the results of a soak run.
type SoakResult struct {
	Duration      time.Duration
	Cycles        int
	Failures      int
	Leftovers     int
	PeakHeapMB    float64
	PeakNodes     int
	LimitExceeded bool // a heap or node sample crossed its limit
	Status        string
}

// soakLimits are the pass criteria of a run.
type soakLimits struct {
	HeapMB float64
	Nodes  int
}

func main() {
	duration := flag.Duration("duration", 10*time.Minute, "Soak duration (e.g., 10m, 1h)")
	url := flag.String("url", "", "App under test; empty starts the bundled server")
	statusInterval := flag.Duration("status-interval", time.Minute, "Interval between status lines")
	heapLimit := flag.Float64("heap-limit-mb", 64, "Fail when the page's JS heap exceeds this")
	nodeLimit := flag.Int("node-limit", 5000, "Fail when the page's DOM node count exceeds this")
	flag.Parse()

	fmt.Printf("TodoMVC Soak Runner\n")
	fmt.Printf("===================\n")
	fmt.Printf("Duration: %v\n", *duration)
	fmt.Printf("\n")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := soak(ctx, *url, *duration, *statusInterval, soakLimits{HeapMB: *heapLimit, Nodes: *nodeLimit})
	if err != nil {
		fmt.Fprintf(os.Stderr, "soak: %v\n", err)
		os.Exit(1)
	}

	printSummary(os.Stdout, result)

	if result.Status == "PASS" {
		os.Exit(0)
	}
	os.Exit(1)
}

func soak(ctx context.Context, url string, duration, statusInterval time.Duration, limits soakLimits) (SoakResult, error) {
	cfg, err := testutil.ConfigFromEnv()
	if err != nil {
		return SoakResult{}, err
	}

	if url == "" {
		srv, err := server.NewServer(server.DefaultConfig())
		if err != nil {
			return SoakResult{}, err
		}
		if _, err := srv.Start(); err != nil {
			return SoakResult{}, err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				fmt.Fprintf(os.Stderr, "soak: server shutdown error: %v\n", err)
			}
		}()
		url = srv.URL()
	}

	client, err := testutil.NewBrowserClient(cfg)
	if err != nil {
		return SoakResult{}, err
	}
	defer func() {
		if err := client.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "soak: browser close error: %v\n", err)
		}
	}()

	sess, err := client.NewSession()
	if err != nil {
		return SoakResult{}, err
	}
	defer func() {
		if err := sess.ClearStorage(); err != nil {
			fmt.Fprintf(os.Stderr, "soak: storage cleanup error: %v\n", err)
		}
		if err := sess.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "soak: session close error: %v\n", err)
		}
	}()

	if err := (proto.PerformanceEnable{}).Call(sess.Page()); err != nil {
		return SoakResult{}, fmt.Errorf("failed to enable metrics: %w", err)
	}

	todos := todomvc.New(sess.Page(), url).Context(ctx).Timeout(cfg.Timeout)
	if err := todos.NavigateTo(); err != nil {
		return SoakResult{}, err
	}

	return runSoak(ctx, todos, sess.Page().Context(ctx), duration, statusInterval, limits), nil
}

func runSoak(ctx context.Context, todos *todomvc.Page, page *rod.Page, duration, statusInterval time.Duration, limits soakLimits) SoakResult {
	result := SoakResult{
		Status: "PASS",
	}

	startTime := time.Now()
	lastStatusTime := startTime

	fmt.Printf("[%s] Starting soak run against %s...\n", formatDuration(0), todos.URL())

	for {
		select {
		case <-ctx.Done():
			result.Duration = time.Since(startTime)
			return result
		default:
		}

		now := time.Now()
		elapsed := now.Sub(startTime)
		if elapsed >= duration {
			result.Duration = elapsed
			return result
		}

		left, err := cycle(todos, result.Cycles)
		if interrupted(ctx, err) {
			fmt.Printf("[%s] Interrupted during cycle %d\n", formatDuration(elapsed), result.Cycles+1)
			result.Duration = time.Since(startTime)
			return result
		}
		result.Cycles++
		switch {
		case err != nil:
			fmt.Printf("[%s] ERROR: cycle %d: %v\n", formatDuration(elapsed), result.Cycles, err)
			result.Failures++
			result.Status = "FAIL"
			if errors.Is(err, todomvc.ErrSession) {
				result.Duration = elapsed
				return result
			}
		case left != 0:
			fmt.Printf("[%s] ERROR: cycle %d left %d todos behind\n", formatDuration(elapsed), result.Cycles, left)
			result.Leftovers += left
			result.Status = "FAIL"
		}

		// Periodic status output
		if now.Sub(lastStatusTime) >= statusInterval {
			lastStatusTime = now

			heapMB, nodes, err := pageMetrics(page)
			if err != nil {
				fmt.Printf("[%s] WARNING: metrics unavailable: %v\n", formatDuration(elapsed), err)
				continue
			}
			result.PeakHeapMB = max(result.PeakHeapMB, heapMB)
			result.PeakNodes = max(result.PeakNodes, nodes)

			fmt.Printf("[%s] Cycles: %d, Failures: %d, JSHeap: %.2f MB, Nodes: %d\n",
				formatDuration(elapsed), result.Cycles, result.Failures, heapMB, nodes)

			if verdict := checkLimits(heapMB, nodes, limits); verdict != "" {
				fmt.Printf("[%s] ERROR: %s\n", formatDuration(elapsed), verdict)
				result.LimitExceeded = true
				result.Status = "FAIL"
			}
		}
	}
}

// interrupted reports whether err ended a cycle because ctx was canceled
// rather than because the app misbehaved.
func interrupted(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}

// cycle runs one full CRUD pass and returns how many todos it left behind.
func cycle(todos *todomvc.Page, n int) (int, error) {
	a := fmt.Sprintf("Soak %d a", n)
	b := fmt.Sprintf("Soak %d b", n)
	c := fmt.Sprintf("Soak %d c", n)

	if err := todos.CreateTodos(a, b, c); err != nil {
		return 0, err
	}
	if err := todos.CompleteTodo(a); err != nil {
		return 0, err
	}
	if err := todos.RenameTodo(b, b+" renamed"); err != nil {
		return 0, err
	}
	if err := todos.ShowCompleted(); err != nil {
		return 0, err
	}
	if err := todos.ShowActive(); err != nil {
		return 0, err
	}
	if err := todos.RemoveTodo(c); err != nil {
		return 0, err
	}
	if err := todos.CompleteAllTodos(); err != nil {
		return 0, err
	}
	if err := todos.ClearCompleted(); err != nil {
		return 0, err
	}
	if err := todos.ShowAll(); err != nil {
		return 0, err
	}
	return todos.TodoCount()
}

// pageMetrics reads the page's JS heap in MB and its DOM node count.
func pageMetrics(page *rod.Page) (float64, int, error) {
	res, err := proto.PerformanceGetMetrics{}.Call(page)
	if err != nil {
		return 0, 0, err
	}
	var heapMB float64
	var nodes int
	for _, m := range res.Metrics {
		switch m.Name {
		case "JSHeapUsedSize":
			heapMB = m.Value / (1024 * 1024)
		case "Nodes":
			nodes = int(m.Value)
		}
	}
	return heapMB, nodes, nil
}

// checkLimits returns a description of the first exceeded limit, or "".
func checkLimits(heapMB float64, nodes int, limits soakLimits) string {
	if limits.HeapMB > 0 && heapMB > limits.HeapMB {
		return fmt.Sprintf("JS heap limit exceeded: %.2f MB > %.2f MB", heapMB, limits.HeapMB)
	}
	if limits.Nodes > 0 && nodes > limits.Nodes {
		return fmt.Sprintf("DOM node limit exceeded: %d > %d", nodes, limits.Nodes)
	}
	return ""
}

func printSummary(w io.Writer, result SoakResult) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Soak Run Complete\n")
	fmt.Fprintf(w, "=================\n")
	fmt.Fprintf(w, "Duration:        %v\n", result.Duration.Round(time.Second))
	fmt.Fprintf(w, "Cycles:          %d\n", result.Cycles)
	fmt.Fprintf(w, "Failed cycles:   %d\n", result.Failures)
	fmt.Fprintf(w, "Leftover todos:  %d\n", result.Leftovers)
	fmt.Fprintf(w, "Peak JS heap:    %.2f MB\n", result.PeakHeapMB)
	fmt.Fprintf(w, "Peak DOM nodes:  %d\n", result.PeakNodes)
	fmt.Fprintf(w, "Status:          %s\n", result.Status)
	fmt.Fprintf(w, "\n")

	// Pass criteria
	fmt.Fprintf(w, "Pass Criteria:\n")
	fmt.Fprintf(w, "  - At least one cycle:  %s\n", checkMark(result.Cycles > 0))
	fmt.Fprintf(w, "  - No failed cycles:    %s\n", checkMark(result.Failures == 0))
	fmt.Fprintf(w, "  - No leftover todos:   %s\n", checkMark(result.Leftovers == 0))
	fmt.Fprintf(w, "  - Within page limits:  %s\n", checkMark(!result.LimitExceeded))
}

func formatDuration(d time.Duration) string {
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func checkMark(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}
