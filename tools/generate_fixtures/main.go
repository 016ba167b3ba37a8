// Transaction Log Generator
//
// This tool generates a large transaction log for performance testing and
// profiling. It emits a mix of deposits, withdrawals, and dispute
// lifecycles across a pool of clients.
//
// Usage:
//
//	go run main.go > large.csv
//	go run main.go 1000000 > large.csv  # Specify row count
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
)

const (
	defaultRows = 100000
	clients     = 500
)

func main() {
	rows := defaultRows
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "invalid row count %q\n", os.Args[1])
			os.Exit(1)
		}
		rows = n
	}

	rng := rand.New(rand.NewSource(42))
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	fmt.Fprintln(w, "type,client,tx,amount")

	// Deposit ids eligible for the dispute lifecycle, per client.
	deposits := make(map[int][]int)

	nextTx := 1
	for i := 0; i < rows; i++ {
		client := 1 + rng.Intn(clients)

		switch r := rng.Float64(); {
		case r < 0.55:
			amount := float64(rng.Intn(1_000_000)) / 100.0
			fmt.Fprintf(w, "deposit,%d,%d,%.4f\n", client, nextTx, amount)
			deposits[client] = append(deposits[client], nextTx)
			nextTx++

		case r < 0.85:
			amount := float64(rng.Intn(100_000)) / 100.0
			fmt.Fprintf(w, "withdrawal,%d,%d,%.4f\n", client, nextTx, amount)
			nextTx++

		default:
			ids := deposits[client]
			if len(ids) == 0 {
				continue
			}
			ref := ids[rng.Intn(len(ids))]
			fmt.Fprintf(w, "dispute,%d,%d,\n", client, ref)
			// Most disputes resolve; a few charge back.
			if rng.Float64() < 0.9 {
				fmt.Fprintf(w, "resolve,%d,%d,\n", client, ref)
			} else {
				fmt.Fprintf(w, "chargeback,%d,%d,\n", client, ref)
			}
		}
	}
}
