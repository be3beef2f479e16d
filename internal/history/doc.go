// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package history persists and reads back past outfit recommendations.

Store is the adapter between recommendation results and a Repository. It
validates a result before writing, reports every save as a models.SaveOutcome
instead of an error, and collapses every read failure to an empty list, so
callers never have to branch on storage errors.

Two repositories are provided:

  - *database.DB stores records in DuckDB (recommendation_history plus
    ordered recommendation_items rows), one transaction per save.
  - BadgerRepository stores each record as a single JSON value in an
    embedded BadgerDB, keyed so that a reverse prefix scan yields newest
    first.

Usage:

	repo, err := history.OpenBadgerRepository("/data/history", false)
	if err != nil {
		return err
	}
	defer repo.Close()

	store := history.NewStore(repo, history.BackendBadger, &cfg.History)
	outcome := store.Save(ctx, userID, result)
	records := store.Load(ctx, userID, 1)
*/
package history
