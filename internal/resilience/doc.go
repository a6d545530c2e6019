// Package resilience groups the fault tolerance used by the storage layer.
//
// The circuitbreaker subpackage routes pool calls through sony/gobreaker and only
// counts failures of the store itself. The retry subpackage repeats the first ping
// while the server is unreachable.
//
//	dcb := circuitbreaker.NewDBCircuitBreaker(db)
//	rows, err := dcb.QueryContext(ctx, "SELECT id FROM news")
//
//	err := retry.Do(ctx, retry.ConnectPolicy(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
