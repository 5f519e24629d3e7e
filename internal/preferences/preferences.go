// Package preferences saves and loads application values as encrypted
// containers.
//
// The encryption core only ever sees text. A value takes part by providing
// two capabilities: Encoder produces its serialized text, Decoder rebuilds it
// from that text. Map covers the common string-to-string case and JSON adapts
// any value encoding/json can handle.
//
// Keys roughly map to a directory hierarchy with forward slashes as
// separators on all platforms, for example "options/graphics",
// "saves/quicksave" or "bookmarks/favorites". See package storage for how
// keys are sanitized.
package preferences

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
	"github.com/PolarWolf314/sealpref/internal/security"
	"github.com/PolarWolf314/sealpref/internal/storage"
)

// Encoder produces the serialized text of a value.
type Encoder interface {
	EncodePreferences() (string, error)
}

// Decoder replaces a value's state with the one described by text.
type Decoder interface {
	DecodePreferences(text string) error
}

// Store is the byte sink and source preferences are persisted to.
type Store interface {
	Create(key string) (*storage.AtomicFile, error)
	Open(key string) (io.ReadCloser, error)
}

// Map is a bundle of related string preferences.
type Map map[string]string

// EncodePreferences implements Encoder.
func (m Map) EncodePreferences() (string, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(map[string]string(m))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodePreferences implements Decoder. Existing entries are discarded.
func (m *Map) DecodePreferences(text string) error {
	decoded := make(map[string]string)
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return err
	}
	// "null" leaves decoded nil.
	if decoded == nil {
		decoded = map[string]string{}
	}
	*m = decoded
	return nil
}

// JSONValue adapts an arbitrary value to Encoder and Decoder.
type JSONValue struct {
	v any
}

// JSON wraps v. To load into it, v must be a non-nil pointer.
func JSON(v any) JSONValue {
	return JSONValue{v: v}
}

// EncodePreferences implements Encoder.
func (j JSONValue) EncodePreferences() (string, error) {
	data, err := json.Marshal(j.v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodePreferences implements Decoder.
func (j JSONValue) DecodePreferences(text string) error {
	return json.Unmarshal([]byte(text), j.v)
}

// SaveTo encrypts v's serialized form and writes it to w.
func SaveTo(w io.Writer, m *security.Manager, v Encoder) error {
	text, err := v.EncodePreferences()
	if err != nil {
		return fmt.Errorf("%w: encoding: %v", kerrors.ErrInvalidPayload, err)
	}
	return m.EncryptTo(w, text)
}

// LoadFrom reads one container from r, decrypts it and decodes it into v.
func LoadFrom(r io.Reader, m *security.Manager, v Decoder) error {
	text, err := m.DecryptFrom(r)
	if err != nil {
		return err
	}
	return decode(v, text)
}

// Save stores v under key. The previous value, if any, is replaced only once
// the new one is completely written.
func Save(store Store, m *security.Manager, key string, v Encoder) (err error) {
	f, err := store.Create(key)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Abort()
		}
	}()

	if err := SaveTo(f, m, v); err != nil {
		return fmt.Errorf("saving %q: %w", key, err)
	}
	return f.Close()
}

// Load reads the value stored under key into v.
func Load(store Store, m *security.Manager, key string, v Decoder) (err error) {
	r, err := store.Open(key)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %q: %w", key, cerr)
		}
	}()

	// Files hold exactly one container, so read it whole and let the parser
	// reject trailing bytes.
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading %q: %w", key, err)
	}
	text, err := m.DecryptText(data)
	if err != nil {
		return fmt.Errorf("loading %q: %w", key, err)
	}
	if err := decode(v, text); err != nil {
		return fmt.Errorf("loading %q: %w", key, err)
	}
	return nil
}

func decode(v Decoder, text string) error {
	if err := v.DecodePreferences(text); err != nil {
		return fmt.Errorf("%w: decoding: %v", kerrors.ErrInvalidPayload, err)
	}
	return nil
}

// IsNotFound reports whether err means nothing was stored under the key.
func IsNotFound(err error) bool {
	return errors.Is(err, kerrors.ErrPreferencesNotFound)
}
