// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/H0llyW00dzZ/spawn-sync/src/spawn"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

const mb = 1024 * 1024

// SpawnStats counts spawn tool calls. The zero value is ready to use and
// safe for concurrent calls.
type SpawnStats struct {
	total       atomic.Uint64
	started     atomic.Uint64
	notStarted  atomic.Uint64
	failed      atomic.Uint64
	nonZeroExit atomic.Uint64
	denied      atomic.Uint64
}

// record counts one finished spawn.
func (s *SpawnStats) record(res *spawn.Result, err error) {
	s.total.Add(1)
	switch {
	case res == nil || !res.Started:
		s.notStarted.Add(1)
		return
	case err != nil:
		s.failed.Add(1)
	}
	s.started.Add(1)
	if res.ExitCode > 0 {
		s.nonZeroExit.Add(1)
	}
}

// Snapshot returns the counters as a map keyed like the JSON output.
func (s *SpawnStats) Snapshot() map[string]any {
	return map[string]any{
		"total":         s.total.Load(),
		"started":       s.started.Load(),
		"not_started":   s.notStarted.Load(),
		"failed":        s.failed.Load(),
		"non_zero_exit": s.nonZeroExit.Load(),
		"denied":        s.denied.Load(),
	}
}

// ResourceUsageData represents the complete resource usage information
type ResourceUsageData struct {
	Timestamp      string         `json:"timestamp"`
	MemoryUsage    map[string]any `json:"memory_usage"`
	GCStats        map[string]any `json:"gc_stats"`
	SystemInfo     map[string]any `json:"system_info"`
	Spawns         map[string]any `json:"spawns,omitempty"`
	DetailedMemory map[string]any `json:"detailed_memory,omitempty"`
}

// CollectResourceUsage gathers current runtime statistics and, when stats
// is non-nil, the spawn counters.
func CollectResourceUsage(detailed bool, stats *SpawnStats) *ResourceUsageData {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	data := &ResourceUsageData{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		MemoryUsage: map[string]any{
			"heap_alloc_mb":    float64(memStats.HeapAlloc) / mb,
			"heap_sys_mb":      float64(memStats.HeapSys) / mb,
			"heap_idle_mb":     float64(memStats.HeapIdle) / mb,
			"heap_inuse_mb":    float64(memStats.HeapInuse) / mb,
			"heap_released_mb": float64(memStats.HeapReleased) / mb,
			"heap_objects":     memStats.HeapObjects,
			"stack_inuse_mb":   float64(memStats.StackInuse) / mb,
			"stack_sys_mb":     float64(memStats.StackSys) / mb,
		},
		GCStats: map[string]any{
			"num_gc":          memStats.NumGC,
			"num_forced_gc":   memStats.NumForcedGC,
			"gc_cpu_fraction": memStats.GCCPUFraction,
			"enable_gc":       memStats.EnableGC,
		},
		SystemInfo: map[string]any{
			"go_version":    runtime.Version(),
			"go_os":         runtime.GOOS,
			"go_arch":       runtime.GOARCH,
			"num_cpu":       runtime.NumCPU(),
			"num_goroutine": runtime.NumGoroutine(),
		},
	}
	if stats != nil {
		data.Spawns = stats.Snapshot()
	}

	if detailed {
		data.DetailedMemory = map[string]any{
			"alloc_mb":          float64(memStats.Alloc) / mb,
			"total_alloc_mb":    float64(memStats.TotalAlloc) / mb,
			"sys_mb":            float64(memStats.Sys) / mb,
			"mallocs":           memStats.Mallocs,
			"frees":             memStats.Frees,
			"gc_pause_total_ns": memStats.PauseTotalNs,
			"next_gc_mb":        float64(memStats.NextGC) / mb,
		}
	}

	return data
}

// FormatResourceUsageAsJSON formats resource usage data as JSON
func FormatResourceUsageAsJSON(data *ResourceUsageData) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal resource usage: %w", err)
	}
	return string(jsonData), nil
}

// FormatResourceUsageAsMarkdown formats resource usage data as markdown tables
func FormatResourceUsageAsMarkdown(data *ResourceUsageData) string {
	var buf strings.Builder

	buf.WriteString("# Resource Usage Report\n\n")
	if parsed, err := time.Parse(time.RFC3339, data.Timestamp); err == nil {
		fmt.Fprintf(&buf, "**Generated:** %s\n\n", parsed.Format("January 2, 2006 at 3:04 PM MST"))
	} else {
		fmt.Fprintf(&buf, "**Generated:** %s\n\n", data.Timestamp)
	}

	section(&buf, "System Information", data.SystemInfo, []string{
		"Go Version", "go_version",
		"Operating System", "go_os",
		"Architecture", "go_arch",
		"CPU Count", "num_cpu",
		"Goroutines", "num_goroutine",
	})
	if data.Spawns != nil {
		section(&buf, "Spawns", data.Spawns, []string{
			"Requests", "total",
			"Started", "started",
			"Not Started", "not_started",
			"Failed After Start", "failed",
			"Non-Zero Exit", "non_zero_exit",
			"Refused", "denied",
		})
	}
	section(&buf, "Memory Usage", data.MemoryUsage, []string{
		"Heap Allocated", "heap_alloc_mb",
		"Heap System", "heap_sys_mb",
		"Heap In Use", "heap_inuse_mb",
		"Heap Idle", "heap_idle_mb",
		"Heap Released", "heap_released_mb",
		"Heap Objects", "heap_objects",
		"Stack In Use", "stack_inuse_mb",
		"Stack System", "stack_sys_mb",
	})
	section(&buf, "Garbage Collection", data.GCStats, []string{
		"GC Cycles", "num_gc",
		"Forced GC", "num_forced_gc",
		"GC CPU Fraction", "gc_cpu_fraction",
		"GC Enabled", "enable_gc",
	})
	if data.DetailedMemory != nil {
		section(&buf, "Detailed Memory Statistics", data.DetailedMemory, []string{
			"Current Alloc", "alloc_mb",
			"Total Alloc", "total_alloc_mb",
			"System Memory", "sys_mb",
			"Mallocs", "mallocs",
			"Frees", "frees",
			"GC Pause Total", "gc_pause_total_ns",
			"Next GC", "next_gc_mb",
		})
	}

	return buf.String()
}

// section writes a heading and a Metric/Value table built from the
// (label, key) pairs in fields.
func section(buf *strings.Builder, title string, values map[string]any, fields []string) {
	fmt.Fprintf(buf, "## %s\n\n", title)

	table := tablewriter.NewTable(buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Metric", "Value"})

	rows := make([][]string, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		label, key := fields[i], fields[i+1]
		value, ok := values[key]
		if !ok {
			continue
		}
		rows = append(rows, []string{label, formatValue(key, value)})
	}
	table.Bulk(rows)
	table.Render()
	buf.WriteString("\n")
}

func formatValue(key string, v any) string {
	switch n := v.(type) {
	case float64:
		if strings.HasSuffix(key, "_mb") {
			return fmt.Sprintf("%.2f MB", n)
		}
		return fmt.Sprintf("%.4f", n)
	default:
		return fmt.Sprint(v)
	}
}
