// Package ffg implements the Casper FFG finality gadget: resolving the
// epoch boundary blocks of a chain, deciding which of their checkpoints are
// justified and finalized by supermajority links, and the incremental
// justification bits rule applied during epoch processing.
package ffg
