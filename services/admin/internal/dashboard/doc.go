// Package dashboard derives the dashboard figures from raw order and product lists.
//
// Everything here is pure and synchronous: the functions never perform I/O and never mutate
// their inputs. Build is the single entry point used by the dashboard screen; the individual
// aggregations are exported for reuse and testing.
//
// Conventions:
//   - order statuses are matched exactly; unknown values are left out of every bucket;
//   - product rankings are stable, so equal quantities keep first-encounter order;
//   - money is summed with decimal arithmetic and only converted to float64 at the end.
package dashboard
