package container

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/PolarWolf314/sealpref/internal/aead"
	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
	"github.com/PolarWolf314/sealpref/internal/kdf"
)

// Format versions. Readers reject anything they do not know.
const (
	Version1       uint8 = 1
	CurrentVersion       = Version1
)

// SaltSize is the size of the key derivation salt in version 1.
const SaltSize = kdf.SaltSize

const (
	prefixSize = 2 // version + cipher id
	lengthSize = 4
)

// Swapped out in tests to observe whether parsing reached key derivation.
var (
	deriveKey            = kdf.Derive
	random     io.Reader = rand.Reader
)

// Container is one parsed or freshly sealed container.
type Container struct {
	Version    uint8
	Cipher     aead.ID
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// Header summarizes a container without decrypting it.
type Header struct {
	Version        uint8
	Cipher         aead.ID
	SaltSize       int
	NonceSize      int
	CiphertextSize int
	TagSize        int
	TotalSize      int

	// Overhead is the container size for an empty plaintext under Cipher.
	Overhead int
}

// MinSize returns the size of a container holding an empty plaintext under id.
func MinSize(id aead.ID) (int, error) {
	suite, err := aead.Lookup(id)
	if err != nil {
		return 0, err
	}
	return prefixSize + SaltSize + suite.NonceSize + lengthSize + suite.TagSize, nil
}

// Seal encrypts plaintext under passphrase with a fresh salt and nonce.
func Seal(passphrase []byte, id aead.ID, plaintext []byte) (*Container, error) {
	suite, err := aead.Lookup(id)
	if err != nil {
		return nil, err
	}
	if uint64(len(plaintext)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", kerrors.ErrPayloadTooLarge, len(plaintext), uint32(math.MaxUint32))
	}

	c := &Container{
		Version: CurrentVersion,
		Cipher:  id,
		Salt:    make([]byte, SaltSize),
		Nonce:   make([]byte, suite.NonceSize),
	}
	if _, err := io.ReadFull(random, c.Salt); err != nil {
		return nil, fmt.Errorf("%w: generating salt: %v", kerrors.ErrCryptoInternal, err)
	}
	if _, err := io.ReadFull(random, c.Nonce); err != nil {
		return nil, fmt.Errorf("%w: generating nonce: %v", kerrors.ErrCryptoInternal, err)
	}

	key, err := deriveKey(passphrase, c.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrCryptoInternal, err)
	}
	defer key.Destroy()

	ciphertext, tag, err := aead.Seal(id, key.Bytes(), c.Nonce, plaintext, c.header(len(plaintext)))
	if err != nil {
		return nil, err
	}
	// All supported suites are stream ciphers; the length field was bound
	// into the associated data before sealing.
	if len(ciphertext) != len(plaintext) {
		return nil, fmt.Errorf("%w: %s changed the payload length", kerrors.ErrCryptoInternal, id)
	}

	c.Ciphertext = ciphertext
	c.Tag = tag
	return c, nil
}

// Open checks the container's structure, derives the key and decrypts.
func (c *Container) Open(passphrase []byte) ([]byte, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	key, err := deriveKey(passphrase, c.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrMalformedContainer, err)
	}
	defer key.Destroy()

	return aead.Open(c.Cipher, key.Bytes(), c.Nonce, c.Ciphertext, c.Tag, c.header(len(c.Ciphertext)))
}

// Header reports the container's metadata.
func (c *Container) Header() Header {
	// Cipher was validated when the container was built or parsed.
	overhead, _ := MinSize(c.Cipher)
	return Header{
		Version:        c.Version,
		Cipher:         c.Cipher,
		SaltSize:       len(c.Salt),
		NonceSize:      len(c.Nonce),
		CiphertextSize: len(c.Ciphertext),
		TagSize:        len(c.Tag),
		TotalSize:      c.size(),
		Overhead:       overhead,
	}
}

// MarshalBinary serializes the container.
func (c *Container) MarshalBinary() ([]byte, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	out := make([]byte, 0, c.size())
	out = append(out, c.header(len(c.Ciphertext))...)
	out = append(out, c.Ciphertext...)
	out = append(out, c.Tag...)
	return out, nil
}

// WriteTo writes the serialized container to w. Errors from w are returned
// wrapped but otherwise untouched.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	data, err := c.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("writing container: %w", err)
	}
	if n != len(data) {
		return int64(n), fmt.Errorf("writing container: %w", io.ErrShortWrite)
	}
	return int64(n), nil
}

// Unmarshal parses exactly one container from data. Trailing bytes are an error.
func Unmarshal(data []byte) (*Container, error) {
	r := bytes.NewReader(data)
	c, err := ReadFrom(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", kerrors.ErrMalformedContainer, r.Len())
	}
	return c, nil
}

// ReadFrom reads one container from r and stops right after its tag.
//
// Running out of input is reported as ErrMalformedContainer. Any other read
// error comes from the source and is wrapped unchanged.
func ReadFrom(r io.Reader) (*Container, error) {
	var prefix [prefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, readError(err, "prefix")
	}

	version, id := prefix[0], aead.ID(prefix[1])
	if version != Version1 {
		return nil, fmt.Errorf("%w: unsupported version %d", kerrors.ErrMalformedContainer, version)
	}
	suite, err := aead.Lookup(id)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown cipher id 0x%02x", kerrors.ErrMalformedContainer, uint8(id))
	}

	fixed := make([]byte, SaltSize+suite.NonceSize+lengthSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, readError(err, "header")
	}
	length := binary.BigEndian.Uint32(fixed[SaltSize+suite.NonceSize:])

	// ReadAll grows with the data actually present, so a forged length
	// cannot force a huge allocation up front.
	want := int64(length) + int64(suite.TagSize)
	body, err := io.ReadAll(io.LimitReader(r, want))
	if err != nil {
		return nil, readError(err, "body")
	}
	if int64(len(body)) != want {
		return nil, fmt.Errorf("%w: body is %d bytes, header declares %d", kerrors.ErrMalformedContainer, len(body), want)
	}

	return &Container{
		Version:    version,
		Cipher:     id,
		Salt:       fixed[:SaltSize:SaltSize],
		Nonce:      fixed[SaltSize : SaltSize+suite.NonceSize : SaltSize+suite.NonceSize],
		Ciphertext: body[:length:length],
		Tag:        body[length:],
	}, nil
}

func readError(err error, field string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated %s", kerrors.ErrMalformedContainer, field)
	}
	return fmt.Errorf("reading container %s: %w", field, err)
}

// header encodes every field in front of the ciphertext. It doubles as the
// associated data.
func (c *Container) header(ciphertextLen int) []byte {
	h := make([]byte, 0, prefixSize+len(c.Salt)+len(c.Nonce)+lengthSize)
	h = append(h, c.Version, byte(c.Cipher))
	h = append(h, c.Salt...)
	h = append(h, c.Nonce...)
	return binary.BigEndian.AppendUint32(h, uint32(ciphertextLen))
}

func (c *Container) size() int {
	return prefixSize + len(c.Salt) + len(c.Nonce) + lengthSize + len(c.Ciphertext) + len(c.Tag)
}

func (c *Container) validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil container", kerrors.ErrMalformedContainer)
	}
	if c.Version != Version1 {
		return fmt.Errorf("%w: unsupported version %d", kerrors.ErrMalformedContainer, c.Version)
	}
	suite, err := aead.Lookup(c.Cipher)
	if err != nil {
		return fmt.Errorf("%w: unknown cipher id 0x%02x", kerrors.ErrMalformedContainer, uint8(c.Cipher))
	}
	switch {
	case len(c.Salt) != SaltSize:
		return fmt.Errorf("%w: salt is %d bytes, want %d", kerrors.ErrMalformedContainer, len(c.Salt), SaltSize)
	case len(c.Nonce) != suite.NonceSize:
		return fmt.Errorf("%w: nonce is %d bytes, want %d", kerrors.ErrMalformedContainer, len(c.Nonce), suite.NonceSize)
	case len(c.Tag) != suite.TagSize:
		return fmt.Errorf("%w: tag is %d bytes, want %d", kerrors.ErrMalformedContainer, len(c.Tag), suite.TagSize)
	case uint64(len(c.Ciphertext)) > math.MaxUint32:
		return fmt.Errorf("%w: ciphertext too long", kerrors.ErrMalformedContainer)
	}
	return nil
}
