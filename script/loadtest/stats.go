package main

import (
	"fmt"
	"io"
	"slices"
	"time"
)

// Stats aggregates request results
type Stats struct {
	Successful    int
	Failed        int
	ResponseTimes []time.Duration
	Errors        map[string]int
	Scenarios     map[string]int
}

// NewStats creates empty statistics
func NewStats() *Stats {
	return &Stats{
		Errors:    make(map[string]int),
		Scenarios: make(map[string]int),
	}
}

// Add records one result
func (s *Stats) Add(r Result) {
	s.Scenarios[r.Scenario]++
	s.ResponseTimes = append(s.ResponseTimes, r.ResponseTime)
	if r.Success {
		s.Successful++
		return
	}
	s.Failed++
	msg := "unknown"
	if r.Err != nil {
		msg = r.Err.Error()
	}
	s.Errors[msg]++
}

// Total is the number of recorded results
func (s *Stats) Total() int {
	return s.Successful + s.Failed
}

// Percentile returns the p-th percentile response time, p in [0, 100]
func (s *Stats) Percentile(p int) time.Duration {
	if len(s.ResponseTimes) == 0 {
		return 0
	}
	sorted := slices.Clone(s.ResponseTimes)
	slices.Sort(sorted)

	i := len(sorted) * p / 100
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	return sorted[i]
}

// Print writes a summary report
func (s *Stats) Print(w io.Writer, elapsed time.Duration) {
	total := s.Total()
	if total == 0 {
		fmt.Fprintln(w, "No requests completed")
		return
	}

	var sum time.Duration
	for _, d := range s.ResponseTimes {
		sum += d
	}

	fmt.Fprintln(w, "\n================= TEST RESULTS =================")
	fmt.Fprintf(w, "Total Requests:      %d\n", total)
	fmt.Fprintf(w, "Successful Requests: %d (%.1f%%)\n", s.Successful, percent(s.Successful, total))
	fmt.Fprintf(w, "Failed Requests:     %d (%.1f%%)\n", s.Failed, percent(s.Failed, total))
	fmt.Fprintf(w, "Total Test Time:     %.2f seconds\n", elapsed.Seconds())
	fmt.Fprintf(w, "Throughput:          %.2f requests/second\n", float64(total)/elapsed.Seconds())

	fmt.Fprintln(w, "\n----------------- RESPONSE TIMES -----------------")
	fmt.Fprintf(w, "Average Response:    %v\n", sum/time.Duration(total))
	fmt.Fprintf(w, "Minimum Response:    %v\n", slices.Min(s.ResponseTimes))
	fmt.Fprintf(w, "Maximum Response:    %v\n", slices.Max(s.ResponseTimes))
	for _, p := range []int{50, 90, 95, 99} {
		fmt.Fprintf(w, "P%d Response:        %v\n", p, s.Percentile(p))
	}

	fmt.Fprintln(w, "\n----------------- SCENARIO DISTRIBUTION -----------------")
	for _, name := range sortedKeys(s.Scenarios) {
		fmt.Fprintf(w, "%-15s: %d requests (%.1f%%)\n", name, s.Scenarios[name], percent(s.Scenarios[name], total))
	}

	if s.Failed > 0 {
		fmt.Fprintln(w, "\n----------------- ERROR DISTRIBUTION -----------------")
		for _, msg := range sortedKeys(s.Errors) {
			fmt.Fprintf(w, "%-40s: %d (%.1f%%)\n", msg, s.Errors[msg], percent(s.Errors[msg], total))
		}
	}
}

func percent(part, total int) float64 {
	return float64(part) / float64(total) * 100
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
