package property

import (
	"encoding/binary"
	"errors"
	"sort"
	"sync"
)

// FlashDevice is the block-device subset FlashStore needs. It is
// satisfied by tinygo.org/x/drivers/flash.Device (external SPI/QSPI NOR
// chips) and by machine.Flash on targets with an on-chip data partition.
type FlashDevice interface {
	ReadAt(p []byte, off int64) (n int, err error)
	WriteAt(p []byte, off int64) (n int, err error)
	EraseBlocks(start, length int64) error
	EraseBlockSize() int64
	Size() int64
}

// FlashStore keeps the settings in the first erase block of a flash
// device. The block holds a header followed by typed records; Set only
// stages values in RAM, Commit rewrites the whole block. Erased NOR
// reads as 0xFF, which doubles as the end-of-records marker.
//
// Record layout: keyLen(1) | key | kind(1) | payload. A word record
// carries a 4-byte little-endian u32; a string record carries a length
// byte and the bytes.
type FlashStore struct {
	mu      sync.Mutex
	dev     FlashDevice
	values  map[string]uint32
	strings map[string]string
	loaded  bool
}

var flashMagic = [4]byte{'Q', 'S', 'E', 'T'}

const (
	flashVersion   = 2
	flashHeaderLen = 5 // magic + version
	maxKeyLen      = 64
	maxStrLen      = 128

	kindWord   = 0
	kindString = 1
)

var (
	errBlockFull    = errors.New("property: settings block full")
	errKeyTooLong   = errors.New("property: key too long")
	errValueTooLong = errors.New("property: string value too long")
)

// NewFlashStore creates a store over dev. The first read loads the
// settings block; a block with no valid header is treated as empty, not
// as an error, so first boot on blank flash just yields defaults.
func NewFlashStore(dev FlashDevice) *FlashStore {
	return &FlashStore{
		dev:     dev,
		values:  make(map[string]uint32),
		strings: make(map[string]string),
	}
}

func (f *FlashStore) load() {
	if f.loaded {
		return
	}
	f.loaded = true

	buf := make([]byte, f.dev.EraseBlockSize())
	if _, err := f.dev.ReadAt(buf, 0); err != nil {
		return
	}
	if [4]byte(buf[0:4]) != flashMagic || buf[4] != flashVersion {
		return
	}

	pos := flashHeaderLen
	for pos < len(buf) {
		keyLen := int(buf[pos])
		if keyLen == 0 || keyLen == 0xFF {
			break
		}
		pos++
		if keyLen > maxKeyLen || pos+keyLen+1 > len(buf) {
			// Truncated or corrupt record; keep what parsed so far.
			break
		}
		key := string(buf[pos : pos+keyLen])
		pos += keyLen

		kind := buf[pos]
		pos++
		switch kind {
		case kindWord:
			if pos+4 > len(buf) {
				return
			}
			f.values[key] = binary.LittleEndian.Uint32(buf[pos : pos+4])
			pos += 4
		case kindString:
			if pos >= len(buf) {
				return
			}
			strLen := int(buf[pos])
			pos++
			if strLen > maxStrLen || pos+strLen > len(buf) {
				return
			}
			f.strings[key] = string(buf[pos : pos+strLen])
			pos += strLen
		default:
			// Unknown record kind; nothing after it can be trusted.
			return
		}
	}
}

func (f *FlashStore) GetU32(key string) (uint32, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()
	v, ok := f.values[key]
	return v, ok
}

func (f *FlashStore) SetU32(key string, value uint32) error {
	if len(key) == 0 || len(key) > maxKeyLen {
		return errKeyTooLong
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()
	f.values[key] = value
	return nil
}

func (f *FlashStore) GetString(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()
	v, ok := f.strings[key]
	return v, ok
}

func (f *FlashStore) SetString(key string, value string) error {
	if len(key) == 0 || len(key) > maxKeyLen {
		return errKeyTooLong
	}
	if len(value) > maxStrLen {
		return errValueTooLong
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()
	f.strings[key] = value
	return nil
}

// Commit serializes every staged value and rewrites the settings block.
func (f *FlashStore) Commit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()

	blockSize := int(f.dev.EraseBlockSize())
	buf := make([]byte, 0, blockSize)
	buf = append(buf, flashMagic[:]...)
	buf = append(buf, flashVersion)

	// Sorted keys keep the block contents stable across commits.
	for _, k := range sortedKeys(f.values) {
		if len(buf)+1+len(k)+1+4 > blockSize {
			return errBlockFull
		}
		buf = append(buf, byte(len(k)))
		buf = append(buf, k...)
		buf = append(buf, kindWord)
		var word [4]byte
		binary.LittleEndian.PutUint32(word[:], f.values[k])
		buf = append(buf, word[:]...)
	}
	for _, k := range sortedKeys(f.strings) {
		s := f.strings[k]
		if len(buf)+1+len(k)+1+1+len(s) > blockSize {
			return errBlockFull
		}
		buf = append(buf, byte(len(k)))
		buf = append(buf, k...)
		buf = append(buf, kindString, byte(len(s)))
		buf = append(buf, s...)
	}

	if err := f.dev.EraseBlocks(0, 1); err != nil {
		return err
	}
	// Pad to a word boundary; NOR writes want aligned lengths.
	for len(buf)%4 != 0 {
		buf = append(buf, 0xFF)
	}
	_, err := f.dev.WriteAt(buf, 0)
	return err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
