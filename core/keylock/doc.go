// Package keylock provides a keyed mutual-exclusion primitive.
//
// A Locker hands out one exclusive lease per key. It is used to serialise
// reconciliation runs per user and rule edits per community, so that two
// callers never compute a diff against the same stale role or rule state.
//
// # Usage
//
//	locks := keylock.New()
//	unlock, err := locks.Lock(ctx, userID)
//	if err != nil {
//	    return err // ctx cancelled while waiting
//	}
//	defer unlock()
//
// Entries are reference counted and removed once no holder or waiter
// remains, so the map does not grow with the number of distinct keys seen.
package keylock
