// Package container implements the self-describing encrypted container.
//
// A container carries everything needed to decrypt it except the passphrase.
// All integers are big-endian and every field has either a fixed size or an
// explicit length prefix:
//
//	+---------+-----------+------------+-------------+-------------+--------------+---------+
//	| version | cipher id | salt       | nonce       | length      | ciphertext   | tag     |
//	| 1 byte  | 1 byte    | 16 bytes   | M bytes     | uint32      | length bytes | T bytes |
//	+---------+-----------+------------+-------------+-------------+--------------+---------+
//
// M and T are fixed by the cipher suite (see package aead). The header, that
// is every field before the ciphertext, is passed to the AEAD as associated
// data, so the tag covers the metadata as well as the ciphertext.
//
// Parsing validates the version, the cipher id and all lengths before any key
// derivation happens. Structural problems are ErrMalformedContainer; a wrong
// passphrase and a corrupted ciphertext are both ErrAuthenticationFailed.
//
// Salt and nonce are drawn from crypto/rand on every Seal. A container is
// never modified after it is built; re-encrypting always produces a new one.
package container
