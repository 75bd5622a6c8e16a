// Package stats keeps the bounded history of completed work and break phases.
package stats

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/timevalue"
)

// Capacity is the number of completed phases retained.
const Capacity = 10

// Entry records one completed phase.
type Entry struct {
	Timestamp uint64
	Phase     model.Phase
	Duration  uint16
}

// Time returns the entry timestamp as local time.
func (entry Entry) Time() time.Time {
	return time.Unix(int64(entry.Timestamp), 0)
}

// Log is a fixed-capacity FIFO of entries. The zero value is an empty log.
// Log is a value type; copies do not share storage.
type Log struct {
	entries [Capacity]Entry
	head    int
	size    int
}

// FromEntries builds a log from entries in chronological order, keeping the newest.
func FromEntries(entries []Entry) Log {
	var log Log
	for _, entry := range entries {
		log.Append(entry)
	}
	return log
}

// Append adds entry at the end, evicting the oldest entry when full.
func (log *Log) Append(entry Entry) {
	if log.size < Capacity {
		log.entries[(log.head+log.size)%Capacity] = entry
		log.size++
		return
	}
	log.entries[log.head] = entry
	log.head = (log.head + 1) % Capacity
}

// Len returns the number of retained entries.
func (log Log) Len() int {
	return log.size
}

// IsEmpty reports whether the log has no entries.
func (log Log) IsEmpty() bool {
	return log.size == 0
}

// At returns the entry at index, 0 being the oldest.
func (log Log) At(index int) (Entry, bool) {
	if index < 0 || index >= log.size {
		return Entry{}, false
	}
	return log.entries[(log.head+index)%Capacity], true
}

// Remove deletes the entry at index, 0 being the oldest.
func (log *Log) Remove(index int) error {
	if index < 0 || index >= log.size {
		return fmt.Errorf("remove stat entry: index %d out of range [0, %d)", index, log.size)
	}
	entries := log.Entries()
	entries = append(entries[:index], entries[index+1:]...)
	*log = FromEntries(entries)
	return nil
}

// Find returns the index of entry, preferring hint when it still holds entry.
// It returns -1 when entry is no longer in the log.
func (log Log) Find(entry Entry, hint int) int {
	if current, ok := log.At(hint); ok && current == entry {
		return hint
	}
	for index := 0; index < log.size; index++ {
		if log.entries[(log.head+index)%Capacity] == entry {
			return index
		}
	}
	return -1
}

// Clear drops every entry.
func (log *Log) Clear() {
	*log = Log{}
}

// Entries returns a copy of the entries, oldest first.
func (log Log) Entries() []Entry {
	entries := make([]Entry, 0, log.size)
	for index := 0; index < log.size; index++ {
		entries = append(entries, log.entries[(log.head+index)%Capacity])
	}
	return entries
}

// Newest returns a copy of the entries, newest first.
func (log Log) Newest() []Entry {
	entries := make([]Entry, 0, log.size)
	for index := log.size - 1; index >= 0; index-- {
		entries = append(entries, log.entries[(log.head+index)%Capacity])
	}
	return entries
}

// CSV renders the log as semicolon separated values with a header row.
func (log Log) CSV(formatDate func(time.Time) string) string {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	writer.Comma = ';'

	_ = writer.Write([]string{"duration", "date", "type"})
	for _, entry := range log.Entries() {
		_ = writer.Write([]string{
			timevalue.FromTotalSeconds(entry.Duration).Format(),
			formatDate(entry.Time()),
			entry.Phase.String(),
		})
	}
	writer.Flush()
	return buffer.String()
}
