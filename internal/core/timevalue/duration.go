// Package timevalue implements the h:mm:ss duration shown and edited by the user.
package timevalue

import (
	"errors"
	"fmt"
	"math"
)

// MaxTotalSeconds is the longest representable duration (18:12:15).
const MaxTotalSeconds = math.MaxUint16

// ErrOutOfRange indicates an invalid duration component.
var ErrOutOfRange = errors.New("duration component out of range")

// RangeError describes which component was rejected.
type RangeError struct {
	Field string
	Value uint
	Max   uint
}

func (err *RangeError) Error() string {
	return fmt.Sprintf("value %q is out of range (max: %d, given: %d)", err.Field, err.Max, err.Value)
}

// Unwrap lets errors.Is match ErrOutOfRange.
func (err *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// Duration is an immutable hours/minutes/seconds value whose total fits in uint16.
type Duration struct {
	hours   uint8
	minutes uint8
	seconds uint8
}

// FromParts validates and builds a Duration.
func FromParts(hours, minutes, seconds uint8) (Duration, error) {
	if minutes >= 60 {
		return Duration{}, &RangeError{Field: "minutes", Value: uint(minutes), Max: 59}
	}
	if seconds >= 60 {
		return Duration{}, &RangeError{Field: "seconds", Value: uint(seconds), Max: 59}
	}
	total := uint(hours)*3600 + uint(minutes)*60 + uint(seconds)
	if total > MaxTotalSeconds {
		return Duration{}, &RangeError{Field: "total seconds", Value: total, Max: MaxTotalSeconds}
	}
	return Duration{hours: hours, minutes: minutes, seconds: seconds}, nil
}

// FromTotalSeconds decomposes total into hours, minutes and seconds.
func FromTotalSeconds(total uint16) Duration {
	return Duration{
		hours:   uint8(total / 3600),
		minutes: uint8(total % 3600 / 60),
		seconds: uint8(total % 60),
	}
}

// Hours returns the hour component.
func (value Duration) Hours() uint8 { return value.hours }

// Minutes returns the minute component.
func (value Duration) Minutes() uint8 { return value.minutes }

// Seconds returns the second component.
func (value Duration) Seconds() uint8 { return value.seconds }

// TotalSeconds converts the value back to seconds.
func (value Duration) TotalSeconds() uint16 {
	return uint16(value.hours)*3600 + uint16(value.minutes)*60 + uint16(value.seconds)
}

// Format renders H:MM:SS.
func (value Duration) Format() string {
	return fmt.Sprintf("%d:%02d:%02d", value.hours, value.minutes, value.seconds)
}

// FormatWithoutSeconds renders H:MM.
func (value Duration) FormatWithoutSeconds() string {
	return fmt.Sprintf("%d:%02d", value.hours, value.minutes)
}

func (value Duration) String() string {
	return value.Format()
}
