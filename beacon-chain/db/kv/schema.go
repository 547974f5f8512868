package kv

// The schema will define how to store and retrieve data from the db.
// Blocks and states are keyed by block root, fork heads by their block root
// with an empty value.
var (
	blocksBucket = []byte("blocks")
	stateBucket  = []byte("state")
	headsBucket  = []byte("heads")
)
