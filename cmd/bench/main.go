// Bench sorts a generated or stored input once and reports array length,
// worker count, round structure, and phase times.
//
// Usage:
//
//	go run ./cmd/bench -n 10000000 -workers 8 -strategy counting
//
// Flags:
//
//	-n            Number of values to sort (default: 10,000,000)
//	-workers      Partition and worker count (default: GOMAXPROCS)
//	-strategy     Local sort: counting or radix (default: counting)
//	-max          Largest generated value (default: 1,000,000)
//	-seed         Input generator seed (default: 0x1234)
//	-verify       Verify sortedness and multiset after sorting (default: false)
//	-in           Read input from a run file instead of generating it
//	-out          Write the sorted output to a run file
//	-pushgateway  Push sort metrics to this Prometheus Pushgateway URL
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/spaolacci/murmur3"

	"github.com/tamirms/treesort"
)

// generate fills n values in [0, maxValue] from murmur3 of the index, so the
// same seed always yields the same input regardless of worker count.
func generate(n int, maxValue uint64, seed uint32) []uint64 {
	values := make([]uint64, n)
	var buf [8]byte
	for i := range values {
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		h := murmur3.Sum64WithSeed(buf[:], seed)
		if maxValue == ^uint64(0) {
			values[i] = h
		} else {
			values[i] = h % (maxValue + 1)
		}
	}
	return values
}

func main() {
	nFlag := flag.Int("n", 10_000_000, "number of values to sort")
	workersFlag := flag.Int("workers", runtime.GOMAXPROCS(0), "number of partitions and workers")
	strategyFlag := flag.String("strategy", "counting", "local sort strategy: counting or radix")
	maxFlag := flag.Uint64("max", 1_000_000, "largest generated value")
	seedFlag := flag.Uint("seed", 0x1234, "input generator seed")
	verifyFlag := flag.Bool("verify", false, "verify the output after sorting")
	inFlag := flag.String("in", "", "read input values from this run file")
	outFlag := flag.String("out", "", "write sorted values to this run file")
	gatewayFlag := flag.String("pushgateway", "", "Prometheus Pushgateway URL (empty disables push)")
	flag.Parse()

	strategy, err := treesort.ParseStrategy(*strategyFlag)
	if err != nil {
		fmt.Printf("%v (use 'counting' or 'radix')\n", err)
		os.Exit(2)
	}

	var values []uint64
	if *inFlag != "" {
		fmt.Printf("Reading values from %s...\n", *inFlag)
		rf, err := treesort.OpenRunFile(*inFlag)
		if err != nil {
			fmt.Printf("OpenRunFile failed: %v\n", err)
			os.Exit(1)
		}
		values, err = rf.Values()
		_ = rf.Close() // Read-only mapping; values are already copied out
		if err != nil {
			fmt.Printf("Reading values failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println("Generating values...")
		values = generate(*nFlag, *maxFlag, uint32(*seedFlag))
	}

	reg := prometheus.NewRegistry()
	m, err := treesort.NewMetrics(reg)
	if err != nil {
		fmt.Printf("NewMetrics failed: %v\n", err)
		os.Exit(1)
	}

	var roundWidths []int
	sorter, err := treesort.NewSorter(
		treesort.WithWorkers(*workersFlag),
		treesort.WithStrategy(strategy),
		treesort.WithVerify(*verifyFlag),
		treesort.WithMetrics(m),
		treesort.WithRoundObserver(func(info treesort.RoundInfo) {
			roundWidths = append(roundWidths, len(info.ChunkLens))
		}),
	)
	if err != nil {
		fmt.Printf("NewSorter failed: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("Sorting %d values with %d workers (%s)...\n", len(values), sorter.Workers(), sorter.Strategy())
	res, sortErr := sorter.Sort(context.Background(), values)

	if *gatewayFlag != "" {
		// Push even on failure so the error counters reach the gateway.
		if err := push.New(*gatewayFlag, "treesort_bench").Gatherer(reg).Push(); err != nil {
			fmt.Printf("Pushgateway push failed: %v\n", err)
		}
	}

	if sortErr != nil {
		fmt.Printf("Sort failed: %v\n", sortErr)
		os.Exit(1)
	}

	if *outFlag != "" {
		fmt.Printf("Writing sorted values to %s...\n", *outFlag)
		if err := treesort.WriteRunFile(*outFlag, res.Values); err != nil {
			fmt.Printf("WriteRunFile failed: %v\n", err)
			os.Exit(1)
		}
	}

	st := res.Stats
	throughput := 0.0
	if st.Elapsed > 0 {
		throughput = float64(st.Elements) / st.Elapsed.Seconds() / 1_000_000
	}

	fmt.Printf("\n")
	fmt.Printf("╔═════════════════════╦══════════════════╗\n")
	fmt.Printf("║ Metric              ║ Value            ║\n")
	fmt.Printf("╠═════════════════════╬══════════════════╣\n")
	fmt.Printf("║ Array length        ║ %16d ║\n", st.Elements)
	fmt.Printf("║ Workers             ║ %16d ║\n", st.Partitions)
	fmt.Printf("║ Strategy            ║ %16s ║\n", st.Strategy)
	fmt.Printf("║ Merge rounds        ║ %16d ║\n", st.Rounds)
	fmt.Printf("║ Round widths        ║ %16s ║\n", fmt.Sprint(roundWidths))
	fmt.Printf("║ Local sort time     ║ %12.3f sec ║\n", st.LocalSort.Seconds())
	fmt.Printf("║ Merge time          ║ %12.3f sec ║\n", st.Merge.Seconds())
	fmt.Printf("║ Time taken          ║ %12.3f sec ║\n", st.Elapsed.Seconds())
	fmt.Printf("║ Throughput          ║ %10.2f M/sec ║\n", throughput)
	fmt.Printf("╚═════════════════════╩══════════════════╝\n")
}
