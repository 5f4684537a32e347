// Package badgeflow reconstructs badge-scan event batches into clean,
// calendar-aware attendance sessions and runs device, identity, and
// timestamp anomaly detection over the result.
//
// Quick start:
//
//	bf, err := badgeflow.New(
//	    badgeflow.WithInputs("data/batches.jsonl", "data/calendar.ics"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := bf.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(result.Sessions), len(result.IdentityAlerts))
//
// Run recomputes everything from the inputs; Save overwrites the configured
// output files. The package exposes no network or CLI surface — it is meant
// to be driven by an orchestration layer that owns retries and scheduling.
package badgeflow
