package entity

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Proof carries the authenticity proof the external asset registry needs to
// verify inclusion and execute delegation or ownership changes.
type Proof struct {
	Root        string `json:"root"`
	DataHash    string `json:"dataHash"`
	CreatorHash string `json:"creatorHash"`
	Nonce       uint64 `json:"nonce"`
	Index       uint32 `json:"index"`
}

// Creator is one royalty beneficiary; Share is an integer percentage out of
// 100 across all creators of an asset.
type Creator struct {
	Address string `json:"address"`
	Share   uint8  `json:"share"`
}

// MetadataArgs is the asset metadata supplied at settlement time. Its hash
// must match the data hash in the proof, otherwise cheaper metadata could be
// substituted to shrink the royalty pool.
type MetadataArgs struct {
	Name                 string    `json:"name"`
	Symbol               string    `json:"symbol"`
	Uri                  string    `json:"uri"`
	SellerFeeBasisPoints uint16    `json:"sellerFeeBasisPoints"`
	Creators             []Creator `json:"creators"`
}

// CanonicalBytes serializes the metadata deterministically: length-prefixed
// strings, little-endian integers, creators in declared order.
func (m MetadataArgs) CanonicalBytes() []byte {
	buf := make([]byte, 0, 128)
	buf = appendString(buf, m.Name)
	buf = appendString(buf, m.Symbol)
	buf = appendString(buf, m.Uri)
	buf = appendUint16LE(buf, m.SellerFeeBasisPoints)

	buf = appendUint32LE(buf, uint32(len(m.Creators)))
	for _, c := range m.Creators {
		buf = appendString(buf, c.Address)
		buf = append(buf, c.Share)
	}

	return buf
}

// Hash computes the data hash of the metadata: the keccak256 of the canonical
// bytes, hashed again with the seller fee basis points. Returned hex encoded.
func (m MetadataArgs) Hash() string {
	inner := keccak256(m.CanonicalBytes())

	var fee [2]byte
	binary.LittleEndian.PutUint16(fee[:], m.SellerFeeBasisPoints)

	return hex.EncodeToString(keccak256(inner, fee[:]))
}

func keccak256(chunks ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, c := range chunks {
		h.Write(c)
	}
	return h.Sum(nil)
}

func appendString(buf []byte, s string) []byte {
	buf = appendUint32LE(buf, uint32(len(s)))
	return append(buf, s...)
}

func appendUint16LE(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}

func appendUint32LE(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}
