package models

import "encoding/hex"

const HashSize = 20

// Hash is a SHA-1 digest.
type Hash [HashSize]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// HashList holds one hash per piece; index i is the hash of piece i.
type HashList []Hash
