package persistence

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"gestionale-api/models"
)

var activityBucket = []byte("activity")

// Journal è il registro delle modifiche, salvato in un file bbolt separato dal database principale
type Journal struct {
	db  *bbolt.DB
	now func() time.Time
}

// OpenJournal apre (o crea) il registro nel file indicato
func OpenJournal(path string) (*Journal, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("apertura registro attività: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(activityBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creazione bucket attività: %w", err)
	}

	return &Journal{db: db, now: time.Now}, nil
}

// Record aggiunge una voce in coda al registro
func (j *Journal) Record(entity, action, entityID string) error {
	return j.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(activityBucket)
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		data, err := encodeToBinary(models.Activity{
			Seq:      seq,
			Entity:   entity,
			Action:   action,
			EntityID: entityID,
			At:       j.now().UTC(),
		})
		if err != nil {
			return err
		}
		return bucket.Put(seqKey(seq), data)
	})
}

// Recent restituisce al massimo limit voci, dalla più recente
func (j *Journal) Recent(limit int) ([]models.Activity, error) {
	entries := []models.Activity{}
	if limit <= 0 {
		return entries, nil
	}

	err := j.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(activityBucket).Cursor()
		for k, v := cursor.Last(); k != nil && len(entries) < limit; k, v = cursor.Prev() {
			var entry models.Activity
			if err := decodeBinary(v, &entry); err != nil {
				return fmt.Errorf("voce %x non leggibile: %w", k, err)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Chiavi big-endian: l'ordine lessicografico di bbolt coincide con l'ordine di inserimento
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

func encodeToBinary(data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(data)
	return buf.Bytes(), err
}

func decodeBinary(data []byte, target interface{}) error {
	buf := bytes.NewBuffer(data)
	return gob.NewDecoder(buf).Decode(target)
}
