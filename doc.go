// Package fusekafka supervises a fleet of fuse_kafka workers, one per
// managed directory, from configuration merged out of property files.
//
// Configuration is assembled by a Loader: every file matching the search
// path patterns is read line by line, recognized keys are normalized into
// canonical names and their JSON values flattened into ordered tokens:
//
//	loader := fusekafka.NewLoader()
//	cfg, err := loader.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Args()) // [--directories /var/log ... --zookeepers ...]
//
// # Sleep Mode
//
// While the sentinel marker (DefaultSleepMarker) exists, directories under
// any prefix listed in the "sleep" key are left out of the fleet. The sleep
// key itself is never forwarded to workers.
//
// # Supervisor
//
// The Supervisor exposes the four service actions over the whole fleet:
//
//	sup := fusekafka.NewSupervisor(fusekafka.WithLogger(logger))
//	results, err := sup.Start(ctx)
//	for _, r := range results {
//	    fmt.Println(r.Directory, r.PID, r.Err)
//	}
//
// Start launches workers without waiting for readiness. Stop signals tracked
// workers and then every process whose command line carries Signature, so
// it also stops fleets started by earlier invocations. Restart is Stop
// followed by Start. Status has no health information and always reports
// an undefined state.
package fusekafka
