package kv

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

const backupsDirectoryName = "backups"

// Backup the database to the datadir backup directory, or outputDir when set.
// The backup is named after the highest fork head slot. An existing backup of
// the same name is only replaced when permissionOverride is set.
func (s *Store) Backup(ctx context.Context, outputDir string, permissionOverride bool) error {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.Backup")
	defer span.End()

	backupsDir := path.Join(s.databasePath, backupsDirectoryName)
	if outputDir != "" {
		backupsDir = outputDir
	}
	heads, err := s.HeadBlockRoots(ctx)
	if err != nil {
		return err
	}
	if len(heads) == 0 {
		return errors.New("no fork head found")
	}
	var headSlot uint64
	for _, r := range heads {
		b, err := s.Block(ctx, r)
		if err != nil {
			return err
		}
		if b != nil && uint64(b.Slot) > headSlot {
			headSlot = uint64(b.Slot)
		}
	}
	if err := os.MkdirAll(backupsDir, 0700); err != nil {
		return err
	}
	backupPath := path.Join(backupsDir, fmt.Sprintf("gasper_chaindb_at_slot_%07d.backup", headSlot))
	if _, err := os.Stat(backupPath); err == nil {
		if !permissionOverride {
			return errors.Errorf("backup %s already exists", backupPath)
		}
		if err := os.Remove(backupPath); err != nil {
			return err
		}
	}
	log.WithField("backup", backupPath).Info("Writing backup database")

	copyDB, err := bolt.Open(backupPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return err
	}
	copyDB.AllocSize = boltAllocSize
	defer func() {
		if err := copyDB.Close(); err != nil {
			log.WithError(err).Error("Failed to close backup database")
		}
	}()

	return s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, b *bolt.Bucket) error {
			logrus.Debugf("Copying bucket %s\n", name)
			return copyDB.Update(func(tx2 *bolt.Tx) error {
				b2, err := tx2.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return b.ForEach(b2.Put)
			})
		})
	})
}
