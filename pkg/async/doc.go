// Package async provides a panic-safe worker pool for concurrent batch work.
//
// # Usage Example
//
//	errs := async.Batch(ctx, tables, 4, "csv export", time.Minute, logger,
//		func(ctx context.Context, t Table) error {
//			return export(ctx, t)
//		})
//
// Workers recover panics into collected errors and every task runs under a
// timeout derived from the parent context.
package async
