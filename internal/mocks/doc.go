// Package mocks provides shared test doubles for the store and auth
// interfaces.
//
// Each mock has optional function fields that override a method. When a field
// is nil the mock falls back to an in-memory implementation with the same
// observable semantics as the PostgreSQL stores, so handler and service tests
// can exercise full flows without a database:
//
//	users := mocks.NewMockUserStore()
//	cards := mocks.NewMockCardStore(users)
//	cards.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
//	    return errors.New("connection reset")
//	}
package mocks
