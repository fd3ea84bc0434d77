// Package save holds the player's persisted save record: high score, the
// high scorer's initials and the two mute flags.
package save

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// Field offsets, in 32-bit words.
const (
	FieldHighScore = iota
	FieldUserChar1
	FieldUserChar2
	FieldUserChar3
	FieldMusicMuted
	FieldSFXMuted
	NumFields
)

// RecordSize is the encoded size in bytes.
const RecordSize = NumFields * 4

// NameLength is the number of username characters stored.
const NameLength = 3

var (
	// ErrNotFound is returned by a BlobStore when the key has no data.
	ErrNotFound = errors.New("save: record not found")
	// ErrMalformed is returned when a blob is not a valid record.
	ErrMalformed = errors.New("save: malformed record")
)

// Record is the decoded save data.
type Record struct {
	HighScore  uint32
	Username   [NameLength]byte
	MusicMuted bool
	SFXMuted   bool
}

// Default returns the record used when nothing has been saved yet.
func Default() Record {
	return Record{Username: [NameLength]byte{' ', ' ', ' '}}
}

// Name returns the username as a string of exactly NameLength characters.
func (r Record) Name() string {
	return string(r.Username[:])
}

// SetName stores up to NameLength upper-cased ASCII characters, padding with
// spaces. Characters outside printable ASCII become spaces.
func (r *Record) SetName(name string) {
	name = strings.ToUpper(name)
	for i := 0; i < NameLength; i++ {
		c := byte(' ')
		if i < len(name) && name[i] >= 0x20 && name[i] < 0x7f {
			c = name[i]
		}
		r.Username[i] = c
	}
}

// MarshalBinary encodes the record as NumFields little-endian uint32 words.
func (r Record) MarshalBinary() ([]byte, error) {
	buf := make([]byte, RecordSize)
	words := [NumFields]uint32{
		FieldHighScore:  r.HighScore,
		FieldUserChar1:  uint32(r.Username[0]),
		FieldUserChar2:  uint32(r.Username[1]),
		FieldUserChar3:  uint32(r.Username[2]),
		FieldMusicMuted: boolWord(r.MusicMuted),
		FieldSFXMuted:   boolWord(r.SFXMuted),
	}
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return buf, nil
}

// UnmarshalBinary decodes a record. Anything other than a complete record
// with byte-sized name characters and 0/1 flags is ErrMalformed.
func (r *Record) UnmarshalBinary(data []byte) error {
	if len(data) != RecordSize {
		return fmt.Errorf("%w: %d bytes, expected %d", ErrMalformed, len(data), RecordSize)
	}
	var words [NumFields]uint32
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}

	var out Record
	out.HighScore = words[FieldHighScore]
	for i := 0; i < NameLength; i++ {
		c := words[FieldUserChar1+i]
		if c > 0xff {
			return fmt.Errorf("%w: username character %d out of range", ErrMalformed, i+1)
		}
		out.Username[i] = byte(c)
	}
	var err error
	if out.MusicMuted, err = wordBool(words[FieldMusicMuted]); err != nil {
		return fmt.Errorf("%w: music flag", ErrMalformed)
	}
	if out.SFXMuted, err = wordBool(words[FieldSFXMuted]); err != nil {
		return fmt.Errorf("%w: sfx flag", ErrMalformed)
	}

	*r = out
	return nil
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func wordBool(w uint32) (bool, error) {
	switch w {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrMalformed
	}
}
