// Package sim provides the discrete-event simulation engine for single- and
// multi-server waiting lines (M/M/1, M/D/1, M/M/k).
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - model.go: QueueModel variants and their service-start rules
//   - event_queue.go: the pending-event heap with FIFO tie-breaking
//   - simulator.go: the event loop of one run
//
// # Architecture
//
// The sim package owns a single run and the batch of independent runs built
// on top of it (batch.go). The rest lives in sub-packages:
//   - sim/trace/: trace entries and per-run summaries
//   - sim/stats/: time averages and confidence intervals over a trace
//   - sim/markov/: chain construction and stationary distributions
//
// Every run draws from its own random streams (rng.go), derived from one seed
// and the run index, so a batch is reproducible run by run.
package sim
