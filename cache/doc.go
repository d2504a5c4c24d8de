// Package cache provides a small file-based JSON cache with TTL and version
// invalidation, plus SelectionCache, which remembers the installation chosen
// for a tool between runs.
//
// Resolution itself never caches: every discovery re-probes the file system.
// SelectionCache is for callers that launch the tool often and want to skip
// discovery while the chosen binary is unchanged. An entry is dropped when its
// TTL expires, when the binary disappears, or when the binary's SHA-256 no
// longer matches, for example after an upgrade in place.
//
//	sc := cache.NewSelectionCache(cache.Options{Dir: dir, TTL: 24 * time.Hour})
//	inst, ok, err := sc.Load("claude")
//	if !ok {
//	    inst, err = r.Find(ctx)
//	    _ = sc.Store("claude", inst)
//	}
package cache
