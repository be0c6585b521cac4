// Package state provides the observable container that field controllers
// publish their snapshots through.
//
// Observable is the narrow interface a controller needs: read the current
// value, replace it atomically, and let outside code subscribe. Store is the
// in-process implementation. It keeps data in memory, delivers every published
// value to listeners in publish order, and can optionally mirror the current
// value to a JSON file so a half-filled form survives a restart.
//
//	store := state.NewStore(0, state.WithPersistence[int](".fieldstate/age.json"))
//	unsubscribe := store.OnChange(func(v int) { fmt.Println("now", v) })
//	defer unsubscribe()
//
//	store.Update(func(v int) (int, bool) { return v + 1, true })
package state
