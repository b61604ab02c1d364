package tui

import "github.com/nao1215/pokedex/internal/model"

// Every result message carries the sequence number of the request that
// produced it; results of superseded requests are dropped.

type lookupDoneMsg struct {
	seq   int
	entry *model.Entry
	err   error
}

type typesLoadedMsg struct {
	seq   int
	types []string
	err   error
}

type listingLoadedMsg struct {
	seq     int
	listing *model.TypeListing
	err     error
}
