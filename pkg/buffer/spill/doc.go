/*
Package spill persists the contents of a circular buffer in Redis across a restart.

A process that is shutting down seals its ingress buffer, lets its workers finish, and spills
whatever is still queued. Its successor restores those items before accepting new traffic:

	store, err := spill.New(spill.Config[Frame]{
		Redis:  rdb,
		Key:    "ingress",
		KeyTTL: 10 * time.Minute,
	})

	// old process
	sealed := buf.Seal("shutdown")
	n, err := store.Spill(ctx, sealed)
	var lost *spill.UnspilledError[Frame]
	if errors.As(err, &lost) {
		// lost.Items were drained but not persisted
	}

	// new process
	n, err = store.Restore(ctx, buf)

Items are stored oldest first in a Redis list at "<Key>:items", encoded with MessagePack
unless Config.Codec says otherwise. Restore takes no more than the target can admit and
returns anything it refuses to the head of the list, so order survives partial restores.
*/
package spill
